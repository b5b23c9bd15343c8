package password_test

import (
	"testing"

	"github.com/J-A-Y2/Big-Money/internal/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher_HashAndCompare(t *testing.T) {
	hasher := password.NewHasher()

	hash, err := hasher.Hash("Password1234!")
	require.NoError(t, err)
	assert.NotEqual(t, "Password1234!", hash)

	assert.True(t, hasher.Compare("Password1234!", hash))
	assert.False(t, hasher.Compare("wrong-password", hash))
}

func TestHasher_CompareMalformedHash(t *testing.T) {
	hasher := password.NewHasher()

	assert.False(t, hasher.Compare("anything", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Compare("anything", ""))
}

func TestHasher_HashIsSalted(t *testing.T) {
	hasher := password.NewHasher()

	first, err := hasher.Hash("same-secret")
	require.NoError(t, err)
	second, err := hasher.Hash("same-secret")
	require.NoError(t, err)

	// bcrypt salts every hash, so the strings differ but both verify
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Compare("same-secret", first))
	assert.True(t, hasher.Compare("same-secret", second))
}
