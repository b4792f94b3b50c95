package domain

// DefaultAssetsBaseURL is where raw icon files are published.
const DefaultAssetsBaseURL = "https://raw.githubusercontent.com/code3-dev/piraicons-assets/refs/heads/master/"

// CatalogConfig holds catalog query settings.
type CatalogConfig struct {
	PageSize      int
	MaxPageSize   int
	AssetsBaseURL string
}

// DefaultCatalogConfig returns the settings used when nothing is configured.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		PageSize:      50,
		MaxPageSize:   500,
		AssetsBaseURL: DefaultAssetsBaseURL,
	}
}
