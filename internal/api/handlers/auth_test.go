package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/J-A-Y2/Big-Money/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loginUser posts credentials and returns the auth cookies from the response.
func loginUser(t *testing.T, ts *testutil.TestServer, email, password string) []*http.Cookie {
	t.Helper()

	resp := postJSON(t, ts.APIURL("/auth/login"), map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode, "login failed")
	return resp.Cookies()
}

func jsonBody(t *testing.T, payload interface{}) *bytes.Buffer {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func postJSON(t *testing.T, url string, payload interface{}, cookies []*http.Cookie) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, password := testutil.NewUserBuilder().
		WithEmail("login@test.com").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful login sets auth cookies",
			request: map[string]string{
				"email":    "login@test.com",
				"password": password,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				access := testutil.Cookie(resp, "accessToken")
				require.NotNil(t, access)
				assert.NotEmpty(t, access.Value)
				assert.True(t, access.HttpOnly)

				refresh := testutil.Cookie(resp, "refreshToken")
				require.NotNil(t, refresh)
				assert.NotEmpty(t, refresh.Value)
				assert.True(t, refresh.HttpOnly)
			},
		},
		{
			name: "wrong password",
			request: map[string]string{
				"email":    "login@test.com",
				"password": "not-the-password",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown email",
			request: map[string]string{
				"email":    "nobody@test.com",
				"password": password,
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "missing password",
			request: map[string]string{
				"email": "login@test.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.APIURL("/auth/login"), tt.request, nil)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, password := testutil.NewUserBuilder().
		WithEmail("refresh@test.com").
		Build(t, ts.DB.DB)

	t.Run("valid refresh cookie yields a new access token", func(t *testing.T) {
		cookies := loginUser(t, ts, "refresh@test.com", password)

		resp := postJSON(t, ts.APIURL("/auth/refresh"), nil, cookies)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		access := testutil.Cookie(resp, "accessToken")
		require.NotNil(t, access)
		assert.NotEmpty(t, access.Value)
	})

	t.Run("missing refresh cookie", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/refresh"), nil, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage refresh cookie clears auth cookies", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/refresh"), nil, []*http.Cookie{
			{Name: "refreshToken", Value: "not.a.jwt"},
		})
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		access := testutil.Cookie(resp, "accessToken")
		require.NotNil(t, access)
		assert.Negative(t, access.MaxAge)

		refresh := testutil.Cookie(resp, "refreshToken")
		require.NotNil(t, refresh)
		assert.Negative(t, refresh.MaxAge)
	})

	t.Run("refresh after logout is rejected", func(t *testing.T) {
		cookies := loginUser(t, ts, "refresh@test.com", password)

		logoutResp := postJSON(t, ts.APIURL("/auth/logout"), nil, cookies)
		logoutResp.Body.Close()
		require.Equal(t, http.StatusNoContent, logoutResp.StatusCode)

		resp := postJSON(t, ts.APIURL("/auth/refresh"), nil, cookies)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, password := testutil.NewUserBuilder().
		WithEmail("logout@test.com").
		Build(t, ts.DB.DB)

	t.Run("logout clears cookies", func(t *testing.T) {
		cookies := loginUser(t, ts, "logout@test.com", password)

		resp := postJSON(t, ts.APIURL("/auth/logout"), nil, cookies)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		access := testutil.Cookie(resp, "accessToken")
		require.NotNil(t, access)
		assert.Empty(t, access.Value)
		assert.Negative(t, access.MaxAge)
	})

	t.Run("logout without a session requires auth", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/logout"), nil, nil)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAuthHandler_CheckPassword(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, password := testutil.NewUserBuilder().
		WithEmail("check@test.com").
		Build(t, ts.DB.DB)

	cookies := loginUser(t, ts, "check@test.com", password)

	tests := []struct {
		name           string
		cookies        []*http.Cookie
		request        map[string]string
		expectedStatus int
	}{
		{
			name:           "correct password",
			cookies:        cookies,
			request:        map[string]string{"password": password},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "wrong password",
			cookies:        cookies,
			request:        map[string]string{"password": "wrong"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty password",
			cookies:        cookies,
			request:        map[string]string{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unauthenticated",
			cookies:        nil,
			request:        map[string]string{"password": password},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.APIURL("/auth/check-password"), tt.request, tt.cookies)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAuthHandler_Status(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, password := testutil.NewUserBuilder().
		WithEmail("status@test.com").
		Build(t, ts.DB.DB)

	t.Run("valid access token", func(t *testing.T) {
		cookies := loginUser(t, ts, "status@test.com", password)

		req, err := http.NewRequest("GET", ts.APIURL("/auth/status"), nil)
		require.NoError(t, err)
		for _, c := range cookies {
			req.AddCookie(c)
		}

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("no token", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/auth/status"))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
