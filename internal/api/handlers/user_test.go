package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/J-A-Y2/Big-Money/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

func TestUserHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewUserBuilder().
		WithEmail("taken@test.com").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]interface{}
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]interface{}{
				"email":    "newuser@test.com",
				"password": "secret123",
				"name":     "New User",
				"nickname": "newbie",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result UserResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.NotEmpty(t, result.ID)
				assert.Equal(t, "newuser@test.com", result.Email)
				assert.Equal(t, "New User", result.Name)
				assert.Equal(t, "newbie", result.Nickname)

				assert.Contains(t, ts.Mailer.Sent, "newuser@test.com")
			},
		},
		{
			name: "duplicate email",
			request: map[string]interface{}{
				"email":    "taken@test.com",
				"password": "secret123",
				"name":     "Imposter",
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "missing name",
			request: map[string]interface{}{
				"email":    "incomplete@test.com",
				"password": "secret123",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.APIURL("/users/"), tt.request, nil)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestUserHandler_VerifyEmail(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().
		WithEmail("verify@test.com").
		Build(t, ts.DB.DB)

	t.Run("valid token signs the user in", func(t *testing.T) {
		verifyURL := ts.APIURL("/users/email-verify") + "?signupVerifyToken=" + url.QueryEscape(user.ID.String())

		resp, err := http.Get(verifyURL)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		access := testutil.Cookie(resp, "accessToken")
		require.NotNil(t, access)
		assert.NotEmpty(t, access.Value)
	})

	t.Run("unknown token", func(t *testing.T) {
		verifyURL := ts.APIURL("/users/email-verify") + "?signupVerifyToken=11111111-1111-1111-1111-111111111111"

		resp, err := http.Get(verifyURL)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing token", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/users/email-verify"))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUserHandler_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, password := testutil.NewUserBuilder().
		WithEmail("update@test.com").
		WithName("Before").
		Build(t, ts.DB.DB)

	cookies := loginUser(t, ts, "update@test.com", password)

	t.Run("partial update", func(t *testing.T) {
		req, err := http.NewRequest("PATCH", ts.APIURL("/users/me"), jsonBody(t, map[string]string{
			"nickname": "after",
		}))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		for _, c := range cookies {
			req.AddCookie(c)
		}

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result UserResponse
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "after", result.Nickname)
		assert.Equal(t, "Before", result.Name, "untouched fields survive")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req, err := http.NewRequest("PATCH", ts.APIURL("/users/me"), jsonBody(t, map[string]string{
			"nickname": "nope",
		}))
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, password := testutil.NewUserBuilder().
		WithEmail("delete@test.com").
		Build(t, ts.DB.DB)

	cookies := loginUser(t, ts, "delete@test.com", password)

	req, err := http.NewRequest("DELETE", ts.APIURL("/users/me"), nil)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	access := testutil.Cookie(resp, "accessToken")
	require.NotNil(t, access)
	assert.Negative(t, access.MaxAge)

	// The deleted account can no longer log in.
	loginResp := postJSON(t, ts.APIURL("/auth/login"), map[string]string{
		"email":    "delete@test.com",
		"password": password,
	}, nil)
	defer loginResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, loginResp.StatusCode)
}
