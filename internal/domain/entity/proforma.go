package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
)

// Proforma represents a provisional invoice awaiting conversion to a sale.
// It stays pending until an invoice document is attached and the conversion
// succeeds; a converted proforma is never converted again.
type Proforma struct {
	ID             uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	EmployeeID     *uuid.UUID          `gorm:"type:uuid;index" json:"employee_id,omitempty"`
	CustomerID     *uuid.UUID          `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Reference      string              `gorm:"size:100;unique;not null" json:"reference"`
	Date           time.Time           `gorm:"type:date;not null" json:"date"`
	ExpiryDate     time.Time           `gorm:"type:date;not null" json:"expiry_date"`
	CustomerName   string              `gorm:"size:255" json:"customer_name"`
	CustomerPhone  *string             `gorm:"size:50" json:"customer_phone,omitempty"`
	ApplyVAT       bool                `gorm:"default:false" json:"apply_vat"`
	VATRate        float64             `gorm:"type:decimal(5,2);default:0" json:"vat_rate"`
	VATAmount      float64             `gorm:"type:decimal(15,2);default:0" json:"vat_amount"`
	DiscountType   enum.DiscountType   `gorm:"default:0" json:"discount_type"`
	DiscountValue  float64             `gorm:"type:decimal(15,2);default:0" json:"discount_value"`
	DiscountAmount float64             `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	GrandTotal     float64             `gorm:"type:decimal(15,2);default:0" json:"grand_total"`
	Status         enum.ProformaStatus `gorm:"default:0" json:"status"`
	InvoiceURL     *string             `gorm:"size:512" json:"invoice_url,omitempty"`
	Notes          *string             `gorm:"type:text" json:"notes,omitempty"`
	ConvertedAt    *time.Time          `json:"converted_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	DeletedAt      gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	User     User           `gorm:"foreignKey:UserID" json:"-"`
	Employee *Employee      `gorm:"foreignKey:EmployeeID" json:"-"`
	Customer *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []ProformaItem `gorm:"foreignKey:ProformaID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new proforma
func (p *Proforma) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Proforma model
func (Proforma) TableName() string {
	return "proformas"
}

// IsExpired reports whether the proforma's validity window has lapsed.
func (p *Proforma) IsExpired(now time.Time) bool {
	return now.After(p.ExpiryDate)
}

// HasInvoiceEvidence reports whether an invoice document has been attached.
func (p *Proforma) HasInvoiceEvidence() bool {
	return p.InvoiceURL != nil && *p.InvoiceURL != ""
}

// ProformaItem represents a line item in a proforma
type ProformaItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ProformaID uuid.UUID      `gorm:"type:uuid;not null;index" json:"proforma_id"`
	ItemID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id"`
	ItemName   string         `gorm:"size:255;not null" json:"item_name"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	UnitPrice  float64        `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	LineTotal  float64        `gorm:"type:decimal(15,2);not null" json:"line_total"`
	Reconciled bool           `gorm:"default:false" json:"reconciled"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new proforma item
func (p *ProformaItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProformaItem model
func (ProformaItem) TableName() string {
	return "proforma_items"
}
