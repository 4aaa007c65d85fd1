package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/identity"
	"github.com/shopsync/backend/internal/domain/integration"
)

// TenantModel is the persistence model for the Tenant domain entity
type TenantModel struct {
	BaseModel
	Name          string     `gorm:"type:varchar(200);not null"`
	// uniqueness is enforced by a partial index in the migrations, only
	// for non-empty domains
	ShopDomain    string     `gorm:"type:varchar(200);index"`
	AccessToken   string     `gorm:"type:varchar(500)"`
	WebhookSecret string     `gorm:"type:varchar(200)"`
	Connected     bool       `gorm:"not null;default:false"`
	Active        bool       `gorm:"not null;default:true"`
	SyncStatus    string     `gorm:"type:varchar(20);not null;default:'NEVER';index"`
	SyncMessage   string     `gorm:"type:text"`
	SyncStartedAt *time.Time `gorm:"index"`
	LastSyncAt    *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseEntity:    m.BaseModel.ToDomain(),
		Name:          m.Name,
		ShopDomain:    m.ShopDomain,
		AccessToken:   m.AccessToken,
		WebhookSecret: m.WebhookSecret,
		Connected:     m.Connected,
		Active:        m.Active,
		SyncStatus:    integration.SyncStatus(m.SyncStatus),
		SyncMessage:   m.SyncMessage,
		SyncStartedAt: m.SyncStartedAt,
		LastSyncAt:    m.LastSyncAt,
	}
}

// FromDomain populates the persistence model from a domain Tenant entity
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Name = t.Name
	m.ShopDomain = t.ShopDomain
	m.AccessToken = t.AccessToken
	m.WebhookSecret = t.WebhookSecret
	m.Connected = t.Connected
	m.Active = t.Active
	m.SyncStatus = t.SyncStatus.String()
	m.SyncMessage = t.SyncMessage
	m.SyncStartedAt = t.SyncStartedAt
	m.LastSyncAt = t.LastSyncAt
}

// UserModel is the persistence model for the User domain entity
type UserModel struct {
	BaseModel
	TenantID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(200);not null"`
	Name         string     `gorm:"type:varchar(200)"`
	Active       bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		TenantID:     m.TenantID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Active:       m.Active,
		LastLoginAt:  m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User entity
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainBaseEntity(u.BaseEntity)
	m.TenantID = u.TenantID
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Name = u.Name
	m.Active = u.Active
	m.LastLoginAt = u.LastLoginAt
}
