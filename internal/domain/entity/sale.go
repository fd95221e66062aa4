package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
)

// Sale represents a completed sales transaction, either recorded directly at
// the point of sale or produced by converting a proforma.
type Sale struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	EmployeeID       *uuid.UUID         `gorm:"type:uuid;index" json:"employee_id,omitempty"`
	CustomerID       *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName     string             `gorm:"size:255" json:"customer_name"`
	CustomerPhone    *string            `gorm:"size:50" json:"customer_phone,omitempty"`
	SaleDate         time.Time          `gorm:"type:date;not null;index" json:"sale_date"`
	InvoiceNumber    *string            `gorm:"size:100;index" json:"invoice_number,omitempty"`
	SourceProformaID *uuid.UUID         `gorm:"type:uuid;index" json:"source_proforma_id,omitempty"`
	ApplyVAT         bool               `gorm:"default:false" json:"apply_vat"`
	VATRate          float64            `gorm:"type:decimal(5,2);default:0" json:"vat_rate"`
	VATAmount        float64            `gorm:"type:decimal(15,2);default:0" json:"vat_amount"`
	DiscountType     enum.DiscountType  `gorm:"default:0" json:"discount_type"`
	DiscountValue    float64            `gorm:"type:decimal(15,2);default:0" json:"discount_value"`
	DiscountAmount   float64            `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	GrandTotal       float64            `gorm:"type:decimal(15,2);default:0" json:"grand_total"`
	AmountPaid       float64            `gorm:"type:decimal(15,2);default:0" json:"amount_paid"`
	PaymentMethod    enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	PaymentStatus    enum.PaymentStatus `gorm:"default:2" json:"payment_status"`
	DueDate          *time.Time         `gorm:"type:date" json:"due_date,omitempty"`
	Notes            *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
	DeletedAt        gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Employee *Employee  `gorm:"foreignKey:EmployeeID" json:"-"`
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	Payments []Payment  `gorm:"foreignKey:SaleID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// Balance returns the outstanding amount on the sale.
func (s *Sale) Balance() float64 {
	balance := s.GrandTotal - s.AmountPaid
	if balance < 0 {
		return 0
	}
	return balance
}

// SaleItem represents a line item in a sale
type SaleItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	ItemID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"item_id"`
	ItemName  string         `gorm:"size:255;not null" json:"item_name"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	UnitPrice float64        `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	LineTotal float64        `gorm:"type:decimal(15,2);not null" json:"line_total"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (s *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
