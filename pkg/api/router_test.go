package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WKolaj/SIDIRO-sub006/pkg/api/auth"
	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

const testKeyID = "test-key-sidiro"

// --- upstream fakes ---

type fakeDirectory struct {
	mu          sync.Mutex
	users       []userconfig.DirectoryUser
	groups      []userconfig.DirectoryGroup
	memberships map[string][]string
	nextID      int
}

func (d *fakeDirectory) ListUsers(_ context.Context, q userconfig.UserQuery) ([]userconfig.DirectoryUser, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []userconfig.DirectoryUser
	for _, u := range d.users {
		if q.UserName != "" && u.UserName != q.UserName {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (d *fakeDirectory) CreateUser(_ context.Context, nu userconfig.NewDirectoryUser) (*userconfig.DirectoryUser, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	u := userconfig.DirectoryUser{
		ID:         fmt.Sprintf("u-%d", d.nextID),
		UserName:   nu.UserName,
		Active:     nu.Active,
		Subtenants: nu.Subtenants,
	}
	d.users = append(d.users, u)
	return &u, nil
}

func (d *fakeDirectory) DeleteUser(_ context.Context, userID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, u := range d.users {
		if u.ID == userID {
			d.users = append(d.users[:i], d.users[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("directory user %s not found", userID)
}

func (d *fakeDirectory) ListGroups(context.Context) ([]userconfig.DirectoryGroup, error) {
	return d.groups, nil
}

func (d *fakeDirectory) AddUserToGroup(_ context.Context, groupID, userID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.memberships[groupID] = append(d.memberships[groupID], userID)
	return nil
}

func (d *fakeDirectory) RemoveUserFromGroup(_ context.Context, groupID, userID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	members := d.memberships[groupID]
	for i, id := range members {
		if id == userID {
			d.memberships[groupID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeFiles struct {
	mu    sync.Mutex
	files map[string]map[string]json.RawMessage
}

func (f *fakeFiles) GetFileContent(_ context.Context, containerID, name string, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.files[containerID][name]
	if !ok {
		return fmt.Errorf("%s in container %s: %w", name, containerID, userconfig.ErrFileNotFound)
	}
	return json.Unmarshal(raw, out)
}

func (f *fakeFiles) SetFileContent(_ context.Context, containerID, name string, content any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := json.Marshal(content)
	if err != nil {
		return err
	}
	if f.files[containerID] == nil {
		f.files[containerID] = make(map[string]json.RawMessage)
	}
	f.files[containerID][name] = raw
	return nil
}

func (f *fakeFiles) DeleteFile(_ context.Context, containerID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[containerID][name]; !ok {
		return fmt.Errorf("%s in container %s: %w", name, containerID, userconfig.ErrFileNotFound)
	}
	delete(f.files[containerID], name)
	return nil
}

func (f *fakeFiles) ListFiles(_ context.Context, containerID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for name := range f.files[containerID] {
		names = append(names, name)
	}
	return names, nil
}

type fakeAssets struct {
	assets []userconfig.Asset
}

func (a *fakeAssets) ListAssets(context.Context, string) ([]userconfig.Asset, error) {
	return a.assets, nil
}

// --- fixture ---

func record(userName string, role userconfig.Role) json.RawMessage {
	raw, _ := json.Marshal(userconfig.UserConfigRecord{
		Data:     map[string]any{},
		Config:   map[string]any{},
		UserName: userName,
		Permissions: userconfig.PermissionSet{
			Role:   role,
			Plants: map[string]userconfig.PlantPermission{},
		},
	})
	return raw
}

func newTestRegistry(t *testing.T) *userconfig.Registry {
	t.Helper()

	max := 5
	descriptor, err := json.Marshal(userconfig.AppSettings{MaxNumberOfUsers: &max, AppName: "sidiro"})
	require.NoError(t, err)

	directory := &fakeDirectory{
		users: []userconfig.DirectoryUser{
			{ID: "admin-1", UserName: "admin@acme", Active: true},
			{ID: "user-1", UserName: "user@acme", Active: true},
		},
		groups: []userconfig.DirectoryGroup{
			{ID: "g-ga", Name: userconfig.GroupGlobalAdmin},
			{ID: "g-gu", Name: userconfig.GroupGlobalUser},
			{ID: "g-la", Name: userconfig.GroupLocalAdmin},
			{ID: "g-lu", Name: userconfig.GroupLocalUser},
			{ID: "g-su", Name: userconfig.GroupStandardUser},
			{ID: "g-sub", Name: userconfig.GroupSubtenantUser},
		},
		memberships: make(map[string][]string),
		nextID:      100,
	}
	files := &fakeFiles{
		files: map[string]map[string]json.RawMessage{
			"asset-1": {
				userconfig.MainAppConfigFile: descriptor,
				"admin-1.user.config.json":  record("admin@acme", userconfig.RoleGlobalAdmin),
				"user-1.user.config.json":   record("user@acme", userconfig.RoleLocalUser),
			},
		},
	}
	assets := &fakeAssets{assets: []userconfig.Asset{{ID: "asset-1", Name: "sidiro", Tenant: "acme"}}}

	registry := userconfig.NewRegistry(userconfig.RegistryConfig{
		Tenant:    "acme",
		AppTypeID: "core.sidiroapp",
		Directory: directory,
		Files:     files,
		Assets:    assets,
	})
	require.NoError(t, registry.Load(context.Background()))
	return registry
}

// --- token helpers ---

func generateTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func buildJWKSetJSON(pub *rsa.PublicKey, kid string) json.RawMessage {
	jwks := map[string]any{
		"keys": []map[string]any{
			{
				"kty": "RSA",
				"kid": kid,
				"use": "sig",
				"alg": "RS256",
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
			},
		},
	}
	data, _ := json.Marshal(jwks)
	return data
}

func newTestVerifier(t *testing.T, key *rsa.PrivateKey) *auth.Verifier {
	t.Helper()
	kf, err := keyfunc.NewJWKSetJSON(buildJWKSetJSON(&key.PublicKey, testKeyID))
	require.NoError(t, err)
	return auth.NewVerifierWithKeyfunc(kf, "")
}

func signToken(t *testing.T, key *rsa.PrivateKey, tenant, subtenant, userName string, expired bool) string {
	t.Helper()
	exp := time.Now().Add(time.Hour)
	if expired {
		exp = time.Now().Add(-time.Hour)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"ten":       tenant,
		"subtenant": subtenant,
		"user_name": userName,
		"scope":     "sidiro.user",
		"iat":       jwt.NewNumericDate(time.Now()),
		"exp":       jwt.NewNumericDate(exp),
	})
	token.Header["kid"] = testKeyID
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

type testServer struct {
	router http.Handler
	key    *rsa.PrivateKey
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	key := generateTestKey(t)
	return &testServer{
		router: NewRouter(newTestRegistry(t), newTestVerifier(t, key)),
		key:    key,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func validPayload(userName string, role userconfig.Role) userconfig.UserConfigRecord {
	return userconfig.UserConfigRecord{
		Data:     map[string]any{},
		Config:   map[string]any{},
		UserName: userName,
		Permissions: userconfig.PermissionSet{
			Role:   role,
			Plants: map[string]userconfig.PlantPermission{},
		},
	}
}

// --- tests ---

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestAuthenticationRequired(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/applications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired := signToken(t, s.key, "acme", "", "admin@acme", true)
	rec = s.do(t, http.MethodGet, "/api/v1/applications", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListApplications(t *testing.T) {
	s := newTestServer(t)
	token := signToken(t, s.key, "acme", "", "admin@acme", false)

	rec := s.do(t, http.MethodGet, "/api/v1/applications", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var apps []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apps))
	require.Len(t, apps, 1)
	assert.Equal(t, "ten-acme", apps[0]["appId"])
	assert.Equal(t, true, apps[0]["descriptorLoaded"])
	assert.Equal(t, float64(2), apps[0]["users"])
}

func TestGetApplication(t *testing.T) {
	s := newTestServer(t)

	token := signToken(t, s.key, "acme", "", "admin@acme", false)
	rec := s.do(t, http.MethodGet, "/api/v1/applications/ten-acme", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/applications/ten-other", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	foreign := signToken(t, s.key, "other", "", "admin@other", false)
	rec = s.do(t, http.MethodGet, "/api/v1/applications/ten-acme", foreign, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListUsersRequiresAdmin(t *testing.T) {
	s := newTestServer(t)

	user := signToken(t, s.key, "acme", "", "user@acme", false)
	rec := s.do(t, http.MethodGet, "/api/v1/applications/ten-acme/users", user, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := signToken(t, s.key, "acme", "", "admin@acme", false)
	rec = s.do(t, http.MethodGet, "/api/v1/applications/ten-acme/users", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users map[string]userconfig.StoredUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)
	assert.Equal(t, "admin@acme", users["admin-1"].UserName)
}

func TestSelfAccess(t *testing.T) {
	s := newTestServer(t)
	user := signToken(t, s.key, "acme", "", "user@acme", false)

	// Own configuration is readable
	rec := s.do(t, http.MethodGet, "/api/v1/applications/ten-acme/users/user-1", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got userconfig.StoredUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "ten-acme", got.AppID)

	// Someone else's is not
	rec = s.do(t, http.MethodGet, "/api/v1/applications/ten-acme/users/admin-1", user, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Mutations are admin only even on the own record
	rec = s.do(t, http.MethodPut, "/api/v1/applications/ten-acme/users/user-1", user, validPayload("user@acme", userconfig.RoleLocalUser))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateUser(t *testing.T) {
	s := newTestServer(t)
	admin := signToken(t, s.key, "acme", "", "admin@acme", false)

	rec := s.do(t, http.MethodPost, "/api/v1/applications/ten-acme/users", admin, validPayload("new@acme", userconfig.RoleLocalUser))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created userconfig.StoredUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.UserID)
	assert.Equal(t, "new@acme", created.UserName)

	// Duplicate login name conflicts
	rec = s.do(t, http.MethodPost, "/api/v1/applications/ten-acme/users", admin, validPayload("new@acme", userconfig.RoleLocalUser))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Structurally invalid payload is rejected before any upstream call
	bad := validPayload("bad@acme", userconfig.Role(42))
	rec = s.do(t, http.MethodPost, "/api/v1/applications/ten-acme/users", admin, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateUserNameImmutable(t *testing.T) {
	s := newTestServer(t)
	admin := signToken(t, s.key, "acme", "", "admin@acme", false)

	rec := s.do(t, http.MethodPut, "/api/v1/applications/ten-acme/users/user-1", admin, validPayload("renamed@acme", userconfig.RoleLocalUser))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot be modified")
}

func TestDeleteUser(t *testing.T) {
	s := newTestServer(t)
	admin := signToken(t, s.key, "acme", "", "admin@acme", false)

	rec := s.do(t, http.MethodDelete, "/api/v1/applications/ten-acme/users/user-1", admin, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/applications/ten-acme/users/user-1", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/applications/ten-acme/users/missing", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownApplication(t *testing.T) {
	s := newTestServer(t)
	admin := signToken(t, s.key, "acme", "", "admin@acme", false)

	rec := s.do(t, http.MethodGet, "/api/v1/applications/ten-missing/users", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
