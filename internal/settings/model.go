// Package settings holds the branding record shown on documents and the
// storefront: logo, banner and contact number. The brand_settings row is
// authoritative; Redis keeps a device-local copy used only to bootstrap
// the UI before the first successful fetch.
package settings

// BrandRowID is the fixed id of the singleton brand_settings row.
const BrandRowID = "brand"

type BrandSettings struct {
	ID            string `json:"id"`
	LogoDataURL   string `json:"logo_data_url,omitempty"`
	BannerDataURL string `json:"banner_data_url,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
}

type UpdateBrandRequest struct {
	ContactNumber *string `json:"contact_number,omitempty" validate:"omitempty,max=40"`
}
