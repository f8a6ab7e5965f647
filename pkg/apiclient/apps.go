package apiclient

import "fmt"

// Application is the registry view of one registered application.
type Application struct {
	AppID            string `json:"appId"`
	Tenant           string `json:"tenant"`
	Subtenant        string `json:"subtenant,omitempty"`
	ContainerID      string `json:"containerId"`
	IsSubtenant      bool   `json:"isSubtenant"`
	DescriptorLoaded bool   `json:"descriptorLoaded"`
	AppName          string `json:"appName,omitempty"`
	MaxNumberOfUsers *int   `json:"maxNumberOfUsers,omitempty"`
	Users            int    `json:"users"`
}

// ListApplications returns the applications of the token's tenant.
func (c *Client) ListApplications() ([]Application, error) {
	var apps []Application
	if err := c.get("/api/v1/applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// GetApplication returns one application by id.
func (c *Client) GetApplication(appID string) (*Application, error) {
	var app Application
	if err := c.get(fmt.Sprintf("/api/v1/applications/%s", appID), &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Ready checks the server's readiness probe.
func (c *Client) Ready() (*HealthStatus, error) {
	var status HealthStatus
	if err := c.get("/health/ready", &status); err != nil {
		return nil, err
	}
	return &status, nil
}
