package mindsphere

import (
	"context"
	"fmt"
	"net/url"

	"github.com/WKolaj/SIDIRO-sub006/internal/telemetry"
	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

const identityBasePath = "/api/identitymanagement/v3"

// IdentityClient accesses the platform identity service. It implements
// userconfig.DirectoryClient for exactly one tenant, the one the technical
// credentials are scoped to.
type IdentityClient struct {
	client *Client
}

// NewIdentityClient creates an identity client over the shared HTTP layer.
func NewIdentityClient(client *Client) *IdentityClient {
	return &IdentityClient{client: client}
}

// SCIM wire types. Only the fields the proxy reads are mapped.
type scimName struct {
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
}

type scimRef struct {
	ID string `json:"id"`
}

type scimUser struct {
	ID         string    `json:"id,omitempty"`
	UserName   string    `json:"userName"`
	Active     bool      `json:"active"`
	Name       *scimName `json:"name,omitempty"`
	Subtenants []scimRef `json:"subtenants,omitempty"`
}

type scimUserList struct {
	TotalResults int        `json:"totalResults"`
	Resources    []scimUser `json:"resources"`
}

type scimGroup struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type scimGroupList struct {
	TotalResults int         `json:"totalResults"`
	Resources    []scimGroup `json:"resources"`
}

func (u scimUser) toDirectoryUser() userconfig.DirectoryUser {
	out := userconfig.DirectoryUser{
		ID:       u.ID,
		UserName: u.UserName,
		Active:   u.Active,
	}
	if u.Name != nil {
		out.GivenName = u.Name.GivenName
		out.FamilyName = u.Name.FamilyName
	}
	for _, st := range u.Subtenants {
		out.Subtenants = append(out.Subtenants, st.ID)
	}
	return out
}

// ListUsers queries the tenant's users. Query fields translate to SCIM
// filters; zero-value fields are not applied.
func (ic *IdentityClient) ListUsers(ctx context.Context, q userconfig.UserQuery) ([]userconfig.DirectoryUser, error) {
	ctx, span := telemetry.StartDirectorySpan(ctx, "ListUsers")
	defer span.End()

	query := url.Values{}
	if q.UserName != "" {
		query.Set("filter", fmt.Sprintf("userName eq %q", q.UserName))
	}
	if q.Subtenant != "" {
		query.Set("subtenant", q.Subtenant)
	}
	if q.Group != "" {
		query.Set("group", q.Group)
	}

	var list scimUserList
	if err := ic.client.get(ctx, identityBasePath+"/Users", query, &list); err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	users := make([]userconfig.DirectoryUser, 0, len(list.Resources))
	for _, u := range list.Resources {
		users = append(users, u.toDirectoryUser())
	}
	return users, nil
}

// CreateUser creates a directory user and returns the record with its
// server-assigned id.
func (ic *IdentityClient) CreateUser(ctx context.Context, nu userconfig.NewDirectoryUser) (*userconfig.DirectoryUser, error) {
	ctx, span := telemetry.StartDirectorySpan(ctx, "CreateUser", telemetry.UserName(nu.UserName))
	defer span.End()

	payload := scimUser{
		UserName: nu.UserName,
		Active:   nu.Active,
	}
	if nu.GivenName != "" || nu.FamilyName != "" {
		payload.Name = &scimName{GivenName: nu.GivenName, FamilyName: nu.FamilyName}
	}
	for _, st := range nu.Subtenants {
		payload.Subtenants = append(payload.Subtenants, scimRef{ID: st})
	}

	var created scimUser
	if err := ic.client.post(ctx, identityBasePath+"/Users", payload, &created); err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	user := created.toDirectoryUser()
	return &user, nil
}

// DeleteUser removes a directory user by id.
func (ic *IdentityClient) DeleteUser(ctx context.Context, userID string) error {
	ctx, span := telemetry.StartDirectorySpan(ctx, "DeleteUser", telemetry.UserID(userID))
	defer span.End()

	if err := ic.client.delete(ctx, identityBasePath+"/Users/"+url.PathEscape(userID)); err != nil {
		telemetry.RecordError(ctx, err)
		return err
	}
	return nil
}

// ListGroups enumerates the tenant's directory groups.
func (ic *IdentityClient) ListGroups(ctx context.Context) ([]userconfig.DirectoryGroup, error) {
	ctx, span := telemetry.StartDirectorySpan(ctx, "ListGroups")
	defer span.End()

	var list scimGroupList
	if err := ic.client.get(ctx, identityBasePath+"/Groups", nil, &list); err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	groups := make([]userconfig.DirectoryGroup, 0, len(list.Resources))
	for _, g := range list.Resources {
		groups = append(groups, userconfig.DirectoryGroup{ID: g.ID, Name: g.DisplayName})
	}
	return groups, nil
}

// AddUserToGroup adds the user as a member of the group.
func (ic *IdentityClient) AddUserToGroup(ctx context.Context, groupID, userID string) error {
	ctx, span := telemetry.StartDirectorySpan(ctx, "AddUserToGroup", telemetry.UserID(userID))
	defer span.End()

	member := struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{Type: "USER", Value: userID}

	path := identityBasePath + "/Groups/" + url.PathEscape(groupID) + "/members"
	if err := ic.client.post(ctx, path, member, nil); err != nil {
		telemetry.RecordError(ctx, err)
		return err
	}
	return nil
}

// RemoveUserFromGroup removes the user's group membership.
func (ic *IdentityClient) RemoveUserFromGroup(ctx context.Context, groupID, userID string) error {
	ctx, span := telemetry.StartDirectorySpan(ctx, "RemoveUserFromGroup", telemetry.UserID(userID))
	defer span.End()

	path := identityBasePath + "/Groups/" + url.PathEscape(groupID) + "/members/" + url.PathEscape(userID)
	if err := ic.client.delete(ctx, path); err != nil {
		telemetry.RecordError(ctx, err)
		return err
	}
	return nil
}
