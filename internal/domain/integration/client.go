package integration

import (
	"context"
	"encoding/json"
)

// MaxPageSize is the largest page the remote API will serve
const MaxPageSize = 250

// Credentials carries the per-tenant connection data a client call needs
type Credentials struct {
	ShopDomain  string
	AccessToken string
}

// Page is one page of raw records from the remote API. NextCursor is the
// opaque token for the following page; empty means the listing is exhausted.
type Page struct {
	Records    []json.RawMessage
	NextCursor string
}

// ShopInfo is the remote shop profile returned by a connection check
type ShopInfo struct {
	Name     string
	Domain   string
	Currency string
	Email    string
}

// CatalogClient is the port to the remote commerce platform. Implementations
// handle transport, auth headers, pagination tokens and retries; callers see
// raw records plus a cursor.
type CatalogClient interface {
	// VerifyShop checks that the credentials can reach the shop profile.
	// Used when connecting a tenant.
	VerifyShop(ctx context.Context, creds Credentials) (*ShopInfo, error)

	// FetchPage retrieves one page of records of the given kind. An empty
	// cursor requests the first page. Limit is capped at MaxPageSize.
	FetchPage(ctx context.Context, creds Credentials, kind EntityKind, cursor string, limit int) (*Page, error)
}

// SyncCounts tallies records ingested per kind during a run
type SyncCounts struct {
	Customers int
	Products  int
	Orders    int
}

// Add increments the counter for the given kind by n
func (c *SyncCounts) Add(kind EntityKind, n int) {
	switch kind {
	case KindCustomer:
		c.Customers += n
	case KindProduct:
		c.Products += n
	case KindOrder:
		c.Orders += n
	}
}

// Total returns the total number of ingested records
func (c SyncCounts) Total() int {
	return c.Customers + c.Products + c.Orders
}
