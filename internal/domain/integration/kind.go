package integration

// EntityKind identifies the kind of record a sync or webhook carries
type EntityKind string

const (
	KindCustomer EntityKind = "customers"
	KindProduct  EntityKind = "products"
	KindOrder    EntityKind = "orders"
)

// SyncOrder is the fixed order in which kinds are ingested. Customers and
// products go first so order link resolution can find them.
var SyncOrder = []EntityKind{KindCustomer, KindProduct, KindOrder}

// IsValid checks if the entity kind is a known value
func (k EntityKind) IsValid() bool {
	switch k {
	case KindCustomer, KindProduct, KindOrder:
		return true
	default:
		return false
	}
}

// String returns the string representation of the entity kind
func (k EntityKind) String() string {
	return string(k)
}
