package apiclient

import (
	"fmt"

	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

// ListUsers returns every user configuration of the application, keyed by
// user id.
func (c *Client) ListUsers(appID string) (map[string]userconfig.StoredUser, error) {
	var users map[string]userconfig.StoredUser
	if err := c.get(fmt.Sprintf("/api/v1/applications/%s/users", appID), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns one user's stored configuration.
func (c *Client) GetUser(appID, userID string) (*userconfig.StoredUser, error) {
	var user userconfig.StoredUser
	if err := c.get(fmt.Sprintf("/api/v1/applications/%s/users/%s", appID, userID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new user in the application.
func (c *Client) CreateUser(appID string, payload *userconfig.UserConfigRecord) (*userconfig.StoredUser, error) {
	var user userconfig.StoredUser
	if err := c.post(fmt.Sprintf("/api/v1/applications/%s/users", appID), payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser replaces a user's configuration record. The login name is
// immutable; a changed userName is rejected by the server.
func (c *Client) UpdateUser(appID, userID string, payload *userconfig.UserConfigRecord) (*userconfig.StoredUser, error) {
	var user userconfig.StoredUser
	if err := c.put(fmt.Sprintf("/api/v1/applications/%s/users/%s", appID, userID), payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes a user from the application.
func (c *Client) DeleteUser(appID, userID string) error {
	return c.delete(fmt.Sprintf("/api/v1/applications/%s/users/%s", appID, userID), nil)
}
