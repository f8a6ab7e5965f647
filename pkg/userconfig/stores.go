package userconfig

import "context"

// DirectoryUser is a user record held by the platform identity directory.
type DirectoryUser struct {
	ID         string   `json:"id"`
	UserName   string   `json:"userName"`
	Active     bool     `json:"active"`
	GivenName  string   `json:"givenName,omitempty"`
	FamilyName string   `json:"familyName,omitempty"`
	Subtenants []string `json:"subtenants,omitempty"`
}

// NewDirectoryUser is the payload for creating a directory user.
type NewDirectoryUser struct {
	UserName   string   `json:"userName"`
	Active     bool     `json:"active"`
	GivenName  string   `json:"givenName,omitempty"`
	FamilyName string   `json:"familyName,omitempty"`
	Subtenants []string `json:"subtenants,omitempty"`
}

// DirectoryGroup is a role or scope group held by the identity directory.
type DirectoryGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserQuery filters a directory user listing. Zero-value fields are not
// applied. An empty Subtenant queries the whole tenant.
type UserQuery struct {
	UserName  string
	Subtenant string
	Group     string
}

// DirectoryClient is the accessor over the identity/user/group upstream.
// One client instance is scoped to one tenant; the cache and coordinator
// consume it and never reimplement it.
//
// Implementations must not retry; any failure surfaces to the caller.
type DirectoryClient interface {
	ListUsers(ctx context.Context, q UserQuery) ([]DirectoryUser, error)
	CreateUser(ctx context.Context, nu NewDirectoryUser) (*DirectoryUser, error)
	DeleteUser(ctx context.Context, userID string) error

	ListGroups(ctx context.Context) ([]DirectoryGroup, error)
	AddUserToGroup(ctx context.Context, groupID, userID string) error
	RemoveUserFromGroup(ctx context.Context, groupID, userID string) error
}

// FileStore is the accessor over the upstream blob/file storage. Content
// is JSON; implementations marshal/unmarshal for the caller.
//
// GetFileContent returns an error satisfying errors.Is(err,
// ErrFileNotFound) when the file does not exist. ListFiles is used only at
// application bootstrap.
type FileStore interface {
	GetFileContent(ctx context.Context, containerID, name string, out any) error
	SetFileContent(ctx context.Context, containerID, name string, content any) error
	DeleteFile(ctx context.Context, containerID, name string) error
	ListFiles(ctx context.Context, containerID string) ([]string, error)
}

// Asset is a platform asset representing one application instance.
type Asset struct {
	ID        string `json:"assetId"`
	Name      string `json:"name"`
	TypeID    string `json:"typeId"`
	Tenant    string `json:"tenantId"`
	Subtenant string `json:"subTenant,omitempty"`
}

// AssetProvider enumerates the tenant's application assets. Used once at
// registry bootstrap.
type AssetProvider interface {
	ListAssets(ctx context.Context, typeID string) ([]Asset, error)
}
