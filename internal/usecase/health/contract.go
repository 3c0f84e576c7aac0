package health

import "context"

// CachePinger checks cache store availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// CatalogPinger checks catalog availability.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}
