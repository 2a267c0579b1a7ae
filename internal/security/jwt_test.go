package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scholarfind/internal/common"
)

func TestJWTProviderRoundTrip(t *testing.T) {
	provider := NewJWTProvider("secret")
	userID := common.NewUUID()

	token, expiresAt, err := provider.Generate(userID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := provider.Parse(token)
	require.NoError(t, err)
	require.Equal(t, userID.String(), claims.UserID)
}

func TestJWTProviderParse_WrongSecret(t *testing.T) {
	token, _, err := NewJWTProvider("secret").Generate(common.NewUUID(), time.Hour)
	require.NoError(t, err)

	_, err = NewJWTProvider("other").Parse(token)
	require.Error(t, err)
}

func TestJWTProviderParse_Expired(t *testing.T) {
	provider := NewJWTProvider("secret")
	token, _, err := provider.Generate(common.NewUUID(), -time.Minute)
	require.NoError(t, err)

	_, err = provider.Parse(token)
	require.Error(t, err)
}

func TestJWTProviderParse_Garbage(t *testing.T) {
	_, err := NewJWTProvider("secret").Parse("not.a.token")
	require.Error(t, err)
}
