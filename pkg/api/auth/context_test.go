package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsFromContext(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		assert.Nil(t, CredentialsFromContext(context.Background()))
	})

	t.Run("round trip", func(t *testing.T) {
		expected := &Credentials{Tenant: "acme", UserName: "admin@acme"}
		ctx := ContextWithCredentials(context.Background(), expected)

		creds := CredentialsFromContext(ctx)
		require.NotNil(t, creds)
		assert.Equal(t, "acme", creds.Tenant)
		assert.Equal(t, "admin@acme", creds.UserName)
	})
}
