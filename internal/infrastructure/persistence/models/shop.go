package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsync/backend/internal/domain/shop"
)

// CustomerModel is the persistence model for the synced Customer entity.
// The remote ID is unique per tenant, which is what makes upserts idempotent.
type CustomerModel struct {
	BaseModel
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_customer_tenant_external,priority:1"`
	ExternalID       string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_customer_tenant_external,priority:2"`
	Email            string          `gorm:"type:varchar(200);index"`
	FirstName        string          `gorm:"type:varchar(100)"`
	LastName         string          `gorm:"type:varchar(100)"`
	Phone            string          `gorm:"type:varchar(50)"`
	TotalSpent       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OrdersCount      int             `gorm:"not null;default:0"`
	AcceptsMarketing bool            `gorm:"not null;default:false"`
	Tags             string          `gorm:"type:text"`
	Note             string          `gorm:"type:text"`
	Address1         string          `gorm:"type:varchar(300)"`
	City             string          `gorm:"type:varchar(100)"`
	Province         string          `gorm:"type:varchar(100)"`
	Country          string          `gorm:"type:varchar(100)"`
	Zip              string          `gorm:"type:varchar(20)"`
	RemoteCreatedAt  *time.Time
	RemoteUpdatedAt  *time.Time
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity
func (m *CustomerModel) ToDomain() *shop.Customer {
	return &shop.Customer{
		TenantEntity:     tenantEntity(m.BaseModel, m.TenantID),
		ExternalID:       m.ExternalID,
		Email:            m.Email,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Phone:            m.Phone,
		TotalSpent:       m.TotalSpent,
		OrdersCount:      m.OrdersCount,
		AcceptsMarketing: m.AcceptsMarketing,
		Tags:             m.Tags,
		Note:             m.Note,
		Address1:         m.Address1,
		City:             m.City,
		Province:         m.Province,
		Country:          m.Country,
		Zip:              m.Zip,
		RemoteCreatedAt:  m.RemoteCreatedAt,
		RemoteUpdatedAt:  m.RemoteUpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Customer entity
func (m *CustomerModel) FromDomain(c *shop.Customer) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.TenantID = c.TenantID
	m.ExternalID = c.ExternalID
	m.Email = c.Email
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Phone = c.Phone
	m.TotalSpent = c.TotalSpent
	m.OrdersCount = c.OrdersCount
	m.AcceptsMarketing = c.AcceptsMarketing
	m.Tags = c.Tags
	m.Note = c.Note
	m.Address1 = c.Address1
	m.City = c.City
	m.Province = c.Province
	m.Country = c.Country
	m.Zip = c.Zip
	m.RemoteCreatedAt = c.RemoteCreatedAt
	m.RemoteUpdatedAt = c.RemoteUpdatedAt
}

// ProductModel is the persistence model for the synced Product entity
type ProductModel struct {
	BaseModel
	TenantID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_product_tenant_external,priority:1"`
	ExternalID        string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_product_tenant_external,priority:2"`
	Title             string          `gorm:"type:varchar(300);not null"`
	BodyHTML          string          `gorm:"type:text"`
	Vendor            string          `gorm:"type:varchar(200)"`
	ProductType       string          `gorm:"type:varchar(200)"`
	Handle            string          `gorm:"type:varchar(300)"`
	Tags              string          `gorm:"type:text"`
	Status            string          `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	VariantExternalID string          `gorm:"type:varchar(64)"`
	Price             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CompareAtPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SKU               string          `gorm:"type:varchar(100);index"`
	InventoryQuantity int             `gorm:"not null;default:0"`
	Weight            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	WeightUnit        string          `gorm:"type:varchar(10)"`
	ImageURL          string          `gorm:"type:varchar(1000)"`
	RemoteCreatedAt   *time.Time
	RemoteUpdatedAt   *time.Time
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity
func (m *ProductModel) ToDomain() *shop.Product {
	return &shop.Product{
		TenantEntity:      tenantEntity(m.BaseModel, m.TenantID),
		ExternalID:        m.ExternalID,
		Title:             m.Title,
		BodyHTML:          m.BodyHTML,
		Vendor:            m.Vendor,
		ProductType:       m.ProductType,
		Handle:            m.Handle,
		Tags:              m.Tags,
		Status:            shop.ProductStatus(m.Status),
		VariantExternalID: m.VariantExternalID,
		Price:             m.Price,
		CompareAtPrice:    m.CompareAtPrice,
		SKU:               m.SKU,
		InventoryQuantity: m.InventoryQuantity,
		Weight:            m.Weight,
		WeightUnit:        m.WeightUnit,
		ImageURL:          m.ImageURL,
		RemoteCreatedAt:   m.RemoteCreatedAt,
		RemoteUpdatedAt:   m.RemoteUpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Product entity
func (m *ProductModel) FromDomain(p *shop.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.TenantID = p.TenantID
	m.ExternalID = p.ExternalID
	m.Title = p.Title
	m.BodyHTML = p.BodyHTML
	m.Vendor = p.Vendor
	m.ProductType = p.ProductType
	m.Handle = p.Handle
	m.Tags = p.Tags
	m.Status = p.Status.String()
	m.VariantExternalID = p.VariantExternalID
	m.Price = p.Price
	m.CompareAtPrice = p.CompareAtPrice
	m.SKU = p.SKU
	m.InventoryQuantity = p.InventoryQuantity
	m.Weight = p.Weight
	m.WeightUnit = p.WeightUnit
	m.ImageURL = p.ImageURL
	m.RemoteCreatedAt = p.RemoteCreatedAt
	m.RemoteUpdatedAt = p.RemoteUpdatedAt
}

// OrderModel is the persistence model for the synced Order entity
type OrderModel struct {
	BaseModel
	TenantID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_tenant_external,priority:1"`
	ExternalID         string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_order_tenant_external,priority:2"`
	OrderNumber        string          `gorm:"type:varchar(50);index"`
	CustomerID         *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerExternalID string          `gorm:"type:varchar(64);index"`
	Email              string          `gorm:"type:varchar(200)"`
	TotalPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SubtotalPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalTax           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDiscounts     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency           string          `gorm:"type:varchar(10)"`
	FinancialStatus    string          `gorm:"type:varchar(30);not null;default:'PENDING';index"`
	FulfillmentStatus  *string         `gorm:"type:varchar(30)"`
	Note               string          `gorm:"type:text"`
	Tags               string          `gorm:"type:text"`
	SourceName         string          `gorm:"type:varchar(100)"`
	Confirmed          bool            `gorm:"not null;default:false"`
	CancelledAt        *time.Time
	CancelReason       string `gorm:"type:varchar(100)"`
	ProcessedAt        *time.Time
	ItemCount          int              `gorm:"not null;default:0"`
	Items              []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity
func (m *OrderModel) ToDomain() *shop.Order {
	var fulfillment *shop.FulfillmentStatus
	if m.FulfillmentStatus != nil {
		s := shop.FulfillmentStatus(*m.FulfillmentStatus)
		fulfillment = &s
	}

	items := make([]shop.OrderItem, len(m.Items))
	for i := range m.Items {
		items[i] = *m.Items[i].ToDomain()
	}

	return &shop.Order{
		TenantEntity:       tenantEntity(m.BaseModel, m.TenantID),
		ExternalID:         m.ExternalID,
		OrderNumber:        m.OrderNumber,
		CustomerID:         m.CustomerID,
		CustomerExternalID: m.CustomerExternalID,
		Email:              m.Email,
		TotalPrice:         m.TotalPrice,
		SubtotalPrice:      m.SubtotalPrice,
		TotalTax:           m.TotalTax,
		TotalDiscounts:     m.TotalDiscounts,
		Currency:           m.Currency,
		FinancialStatus:    shop.FinancialStatus(m.FinancialStatus),
		FulfillmentStatus:  fulfillment,
		Note:               m.Note,
		Tags:               m.Tags,
		SourceName:         m.SourceName,
		Confirmed:          m.Confirmed,
		CancelledAt:        m.CancelledAt,
		CancelReason:       m.CancelReason,
		ProcessedAt:        m.ProcessedAt,
		ItemCount:          m.ItemCount,
		Items:              items,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
// Items are mapped separately by the repository because replacement is a
// delete-then-insert inside the save transaction.
func (m *OrderModel) FromDomain(o *shop.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.TenantID = o.TenantID
	m.ExternalID = o.ExternalID
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.CustomerExternalID = o.CustomerExternalID
	m.Email = o.Email
	m.TotalPrice = o.TotalPrice
	m.SubtotalPrice = o.SubtotalPrice
	m.TotalTax = o.TotalTax
	m.TotalDiscounts = o.TotalDiscounts
	m.Currency = o.Currency
	m.FinancialStatus = o.FinancialStatus.String()
	if o.FulfillmentStatus != nil {
		s := o.FulfillmentStatus.String()
		m.FulfillmentStatus = &s
	} else {
		m.FulfillmentStatus = nil
	}
	m.Note = o.Note
	m.Tags = o.Tags
	m.SourceName = o.SourceName
	m.Confirmed = o.Confirmed
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason
	m.ProcessedAt = o.ProcessedAt
	m.ItemCount = o.ItemCount
}

// OrderItemModel is the persistence model for an order line item
type OrderItemModel struct {
	BaseModel
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExternalID        string          `gorm:"type:varchar(64);not null"`
	ProductID         *uuid.UUID      `gorm:"type:uuid;index"`
	ProductExternalID string          `gorm:"type:varchar(64)"`
	VariantExternalID string          `gorm:"type:varchar(64)"`
	Title             string          `gorm:"type:varchar(300)"`
	VariantTitle      string          `gorm:"type:varchar(300)"`
	SKU               string          `gorm:"type:varchar(100)"`
	Quantity          int             `gorm:"not null;default:0"`
	Price             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDiscount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() *shop.OrderItem {
	return &shop.OrderItem{
		BaseEntity:        m.BaseModel.ToDomain(),
		OrderID:           m.OrderID,
		ExternalID:        m.ExternalID,
		ProductID:         m.ProductID,
		ProductExternalID: m.ProductExternalID,
		VariantExternalID: m.VariantExternalID,
		Title:             m.Title,
		VariantTitle:      m.VariantTitle,
		SKU:               m.SKU,
		Quantity:          m.Quantity,
		Price:             m.Price,
		TotalDiscount:     m.TotalDiscount,
	}
}

// FromDomain populates the persistence model from a domain OrderItem
func (m *OrderItemModel) FromDomain(i *shop.OrderItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.OrderID = i.OrderID
	m.ExternalID = i.ExternalID
	m.ProductID = i.ProductID
	m.ProductExternalID = i.ProductExternalID
	m.VariantExternalID = i.VariantExternalID
	m.Title = i.Title
	m.VariantTitle = i.VariantTitle
	m.SKU = i.SKU
	m.Quantity = i.Quantity
	m.Price = i.Price
	m.TotalDiscount = i.TotalDiscount
}

// PlatformEventModel is the persistence model for webhook audit rows
type PlatformEventModel struct {
	BaseModel
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Topic      string    `gorm:"type:varchar(100);not null;index"`
	DeliveryID string `gorm:"type:varchar(100);index"`
	ExternalID string `gorm:"type:varchar(64)"`
	ShopDomain string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (PlatformEventModel) TableName() string {
	return "platform_events"
}

// ToDomain converts the persistence model to a domain PlatformEvent
func (m *PlatformEventModel) ToDomain() *shop.PlatformEvent {
	return &shop.PlatformEvent{
		TenantEntity: tenantEntity(m.BaseModel, m.TenantID),
		Topic:        m.Topic,
		DeliveryID:   m.DeliveryID,
		ExternalID:   m.ExternalID,
		ShopDomain:   m.ShopDomain,
	}
}

// FromDomain populates the persistence model from a domain PlatformEvent
func (m *PlatformEventModel) FromDomain(e *shop.PlatformEvent) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.TenantID = e.TenantID
	m.Topic = e.Topic
	m.DeliveryID = e.DeliveryID
	m.ExternalID = e.ExternalID
	m.ShopDomain = e.ShopDomain
}
