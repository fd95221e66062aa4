package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Pritex32/priscomsales-api/internal/domain/enum"
)

// InventoryItem represents a sellable item in the store catalog
type InventoryItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_items_user_name" json:"user_id"`
	Name      string         `gorm:"size:255;not null;uniqueIndex:idx_items_user_name" json:"name"`
	Price     float64        `gorm:"type:decimal(15,2);default:0" json:"price"`
	Warehouse *string        `gorm:"size:255" json:"warehouse,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User           `gorm:"foreignKey:UserID" json:"-"`
	Logs []InventoryLog `gorm:"foreignKey:ItemID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new inventory item
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// InventoryLog is one day's stock movement row for an item. A sale adds its
// quantity to StockOut; the closing balance is always derived, never stored.
type InventoryLog struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ItemID           uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_logs_item_date" json:"item_id"`
	ItemName         string         `gorm:"size:255;not null" json:"item_name"`
	LogDate          time.Time      `gorm:"type:date;not null;uniqueIndex:idx_logs_item_date" json:"log_date"`
	OpenBalance      int            `gorm:"default:0" json:"open_balance"`
	SuppliedQuantity int            `gorm:"default:0" json:"supplied_quantity"`
	ReturnQuantity   int            `gorm:"default:0" json:"return_quantity"`
	StockOut         int            `gorm:"default:0" json:"stock_out"`
	EmployeeID       *uuid.UUID     `gorm:"type:uuid;index" json:"employee_id,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Item     InventoryItem `gorm:"foreignKey:ItemID" json:"-"`
	Employee *Employee     `gorm:"foreignKey:EmployeeID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new inventory log
func (l *InventoryLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InventoryLog model
func (InventoryLog) TableName() string {
	return "inventory_master_log"
}

// ClosingBalance derives the stock remaining after the day's movements.
func (l *InventoryLog) ClosingBalance() int {
	return l.OpenBalance + l.SuppliedQuantity + l.ReturnQuantity - l.StockOut
}

// ItemAdjustment records the outcome of reconciling one sold item against
// the inventory ledger during a proforma conversion.
type ItemAdjustment struct {
	ItemID   uuid.UUID             `json:"item_id"`
	ItemName string                `json:"item_name"`
	Quantity int                   `json:"quantity"`
	Action   enum.AdjustmentAction `json:"action"`
	Reason   string                `json:"reason,omitempty"`
}
