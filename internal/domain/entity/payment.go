package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
)

// Payment is one instalment recorded against a sale. A sale's amount paid is
// the sum of its payment rows, never a separately maintained counter.
type Payment struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	SaleID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"record_id"`
	Amount        float64            `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentMethod enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	PaymentDate   time.Time          `gorm:"type:date;not null;index" json:"transaction_date"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
