package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyID = "test-key"

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func jwksJSON(t *testing.T, pub *rsa.PublicKey) json.RawMessage {
	t.Helper()
	jwks := map[string]any{
		"keys": []map[string]any{
			{
				"kty": "RSA",
				"kid": testKeyID,
				"use": "sig",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
			},
		},
	}
	raw, err := json.Marshal(jwks)
	require.NoError(t, err)
	return raw
}

func testKeyfunc(t *testing.T, pub *rsa.PublicKey) keyfunc.Keyfunc {
	t.Helper()
	kf, err := keyfunc.NewJWKSetJSON(jwksJSON(t, pub))
	require.NoError(t, err)
	return kf
}

func sign(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKeyID
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func baseClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"ten":       "acme",
		"subtenant": "plant1",
		"user_name": "operator@acme",
		"scope":     "sidiro.user sidiro.admin",
		"iss":       "https://idp.test/oauth/token",
		"iat":       jwt.NewNumericDate(time.Now()),
		"exp":       jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func TestNewVerifierFetchesRemoteJWKS(t *testing.T) {
	key := testKey(t)
	raw := jwksJSON(t, &key.PublicKey)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	v, err := NewVerifier(VerifierConfig{JWKSURL: srv.URL})
	require.NoError(t, err)

	creds, err := v.Verify(context.Background(), sign(t, key, baseClaims()))
	require.NoError(t, err)
	assert.Equal(t, "acme", creds.Tenant)
	assert.Equal(t, "operator@acme", creds.UserName)
}

func TestNewVerifierRejectsMalformedURL(t *testing.T) {
	_, err := NewVerifier(VerifierConfig{JWKSURL: "://not-a-url"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWKS URL")
}

func TestVerifyValidToken(t *testing.T) {
	key := testKey(t)
	v := NewVerifierWithKeyfunc(testKeyfunc(t, &key.PublicKey), "https://idp.test/oauth/token")

	creds, err := v.Verify(context.Background(), sign(t, key, baseClaims()))
	require.NoError(t, err)
	assert.Equal(t, "acme", creds.Tenant)
	assert.Equal(t, "plant1", creds.Subtenant)
	assert.Equal(t, "operator@acme", creds.UserName)
	assert.Equal(t, []string{"sidiro.user", "sidiro.admin"}, creds.Scopes)
	assert.True(t, creds.HasScope("sidiro.admin"))
	assert.False(t, creds.HasScope("sidiro.root"))
}

func TestVerifyExpiredToken(t *testing.T) {
	key := testKey(t)
	v := NewVerifierWithKeyfunc(testKeyfunc(t, &key.PublicKey), "")

	claims := baseClaims()
	claims["exp"] = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	_, err := v.Verify(context.Background(), sign(t, key, claims))
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyWrongIssuer(t *testing.T) {
	key := testKey(t)
	v := NewVerifierWithKeyfunc(testKeyfunc(t, &key.PublicKey), "https://expected.test")

	_, err := v.Verify(context.Background(), sign(t, key, baseClaims()))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMissingTenantClaim(t *testing.T) {
	key := testKey(t)
	v := NewVerifierWithKeyfunc(testKeyfunc(t, &key.PublicKey), "")

	claims := baseClaims()
	delete(claims, "ten")

	_, err := v.Verify(context.Background(), sign(t, key, claims))
	assert.ErrorIs(t, err, ErrMissingTenant)
}

func TestVerifyRejectsHMACToken(t *testing.T) {
	key := testKey(t)
	v := NewVerifierWithKeyfunc(testKeyfunc(t, &key.PublicKey), "")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, baseClaims())
	token.Header["kid"] = testKeyID
	signed, err := token.SignedString([]byte("shared-secret-shared-secret-1234"))
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongKey(t *testing.T) {
	key := testKey(t)
	other := testKey(t)
	v := NewVerifierWithKeyfunc(testKeyfunc(t, &key.PublicKey), "")

	_, err := v.Verify(context.Background(), sign(t, other, baseClaims()))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
