package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTMaker(t *testing.T) {
	maker, err := NewJWTMaker(testSecret, time.Hour)
	require.NoError(t, err)

	t.Run("round trip preserves identity", func(t *testing.T) {
		tokenString, err := maker.CreateToken("user-public-id", "individual")
		require.NoError(t, err)
		require.NotEmpty(t, tokenString)

		claims, err := maker.VerifyToken(tokenString)
		require.NoError(t, err)
		assert.Equal(t, "user-public-id", claims.UserPublicID)
		assert.Equal(t, "individual", claims.Role)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		_, err := maker.VerifyToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		other, err := NewJWTMaker("ffffffffffffffffffffffffffffffff", time.Hour)
		require.NoError(t, err)
		tokenString, err := other.CreateToken("user-public-id", "ngo")
		require.NoError(t, err)

		_, err = maker.VerifyToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired, err := NewJWTMaker(testSecret, -time.Minute)
		require.NoError(t, err)
		// Constructor normalizes non-positive TTLs, so build one directly
		expired.ttl = -time.Minute
		tokenString, err := expired.CreateToken("user-public-id", "individual")
		require.NoError(t, err)

		_, err = maker.VerifyToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("rejects a short secret", func(t *testing.T) {
		_, err := NewJWTMaker("too-short", time.Hour)
		assert.Error(t, err)
	})
}
