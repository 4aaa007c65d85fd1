package ingest

// Remote payload shapes for the three ingested kinds. The same shapes
// arrive from bulk sync pages and from webhook bodies, so the mapper
// handles both. Optional fields are pointers so absent and empty can be
// told apart where it matters.

type addressPayload struct {
	Address1 string `json:"address1"`
	City     string `json:"city"`
	Province string `json:"province"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
}

type customerPayload struct {
	ID               int64           `json:"id"`
	Email            string          `json:"email"`
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	Phone            string          `json:"phone"`
	TotalSpent       string          `json:"total_spent"`
	OrdersCount      int             `json:"orders_count"`
	AcceptsMarketing bool            `json:"accepts_marketing"`
	Tags             string          `json:"tags"`
	Note             string          `json:"note"`
	DefaultAddress   *addressPayload `json:"default_address"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
}

type variantPayload struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	Price             string  `json:"price"`
	CompareAtPrice    *string `json:"compare_at_price"`
	SKU               string  `json:"sku"`
	InventoryQuantity int     `json:"inventory_quantity"`
	Weight            float64 `json:"weight"`
	WeightUnit        string  `json:"weight_unit"`
}

type imagePayload struct {
	Src string `json:"src"`
}

type productPayload struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	BodyHTML    string           `json:"body_html"`
	Vendor      string           `json:"vendor"`
	ProductType string           `json:"product_type"`
	Handle      string           `json:"handle"`
	Tags        string           `json:"tags"`
	Status      string           `json:"status"`
	Variants    []variantPayload `json:"variants"`
	Images      []imagePayload   `json:"images"`
	CreatedAt   string           `json:"created_at"`
	UpdatedAt   string           `json:"updated_at"`
}

type lineItemPayload struct {
	ID            int64  `json:"id"`
	ProductID     *int64 `json:"product_id"`
	VariantID     *int64 `json:"variant_id"`
	Title         string `json:"title"`
	VariantTitle  string `json:"variant_title"`
	SKU           string `json:"sku"`
	Quantity      int    `json:"quantity"`
	Price         string `json:"price"`
	TotalDiscount string `json:"total_discount"`
}

type orderCustomerPayload struct {
	ID int64 `json:"id"`
}

type orderPayload struct {
	ID                int64                 `json:"id"`
	Name              string                `json:"name"`
	OrderNumber       int                   `json:"order_number"`
	Customer          *orderCustomerPayload `json:"customer"`
	Email             string                `json:"email"`
	TotalPrice        string                `json:"total_price"`
	SubtotalPrice     string                `json:"subtotal_price"`
	TotalTax          string                `json:"total_tax"`
	TotalDiscounts    string                `json:"total_discounts"`
	Currency          string                `json:"currency"`
	FinancialStatus   string                `json:"financial_status"`
	FulfillmentStatus *string               `json:"fulfillment_status"`
	Note              string                `json:"note"`
	Tags              string                `json:"tags"`
	SourceName        string                `json:"source_name"`
	Confirmed         bool                  `json:"confirmed"`
	CancelledAt       *string               `json:"cancelled_at"`
	CancelReason      string                `json:"cancel_reason"`
	ProcessedAt       *string               `json:"processed_at"`
	CreatedAt         string                `json:"created_at"`
	LineItems         []lineItemPayload     `json:"line_items"`
}
