package mindsphere

import (
	"context"
	"fmt"
	"net/url"

	"github.com/WKolaj/SIDIRO-sub006/internal/telemetry"
	"github.com/WKolaj/SIDIRO-sub006/pkg/userconfig"
)

const assetsBasePath = "/api/assetmanagement/v3/assets"

// AssetsClient accesses the platform asset service. It implements
// userconfig.AssetProvider; application instances are modeled as assets of
// a dedicated asset type.
type AssetsClient struct {
	client *Client
}

// NewAssetsClient creates an asset client over the shared HTTP layer.
func NewAssetsClient(client *Client) *AssetsClient {
	return &AssetsClient{client: client}
}

type assetResource struct {
	AssetID   string `json:"assetId"`
	Name      string `json:"name"`
	TypeID    string `json:"typeId"`
	TenantID  string `json:"tenantId"`
	Subtenant string `json:"subTenant,omitempty"`
}

type assetPage struct {
	Embedded struct {
		Assets []assetResource `json:"assets"`
	} `json:"_embedded"`
	Page struct {
		Size          int `json:"size"`
		TotalElements int `json:"totalElements"`
		TotalPages    int `json:"totalPages"`
		Number        int `json:"number"`
	} `json:"page"`
}

// ListAssets enumerates every asset of the given type, following
// pagination until the last page.
func (ac *AssetsClient) ListAssets(ctx context.Context, typeID string) ([]userconfig.Asset, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanAssetList)
	defer span.End()

	var assets []userconfig.Asset
	for page := 0; ; page++ {
		query := url.Values{}
		query.Set("filter", fmt.Sprintf(`{"typeId":{"eq":%q}}`, typeID))
		query.Set("page", fmt.Sprintf("%d", page))

		var resp assetPage
		if err := ac.client.get(ctx, assetsBasePath, query, &resp); err != nil {
			telemetry.RecordError(ctx, err)
			return nil, err
		}

		for _, a := range resp.Embedded.Assets {
			assets = append(assets, userconfig.Asset{
				ID:        a.AssetID,
				Name:      a.Name,
				TypeID:    a.TypeID,
				Tenant:    a.TenantID,
				Subtenant: a.Subtenant,
			})
		}

		if page >= resp.Page.TotalPages-1 {
			break
		}
	}
	return assets, nil
}
