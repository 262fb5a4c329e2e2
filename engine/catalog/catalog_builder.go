package catalog

import "github.com/rs/zerolog"

// CatalogBuilderOption is a functional option for configuring a Catalog.
type CatalogBuilderOption func(*catalogImpl)

// WithLogger sets the logger used to report ingestion results.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - CatalogBuilderOption: the option
func WithLogger(log zerolog.Logger) CatalogBuilderOption {
	return func(c *catalogImpl) {
		c.log = log
	}
}
