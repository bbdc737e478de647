package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"gorm.io/gorm"
)

// OrderNumberPrefix prefixes every human-readable order number
const OrderNumberPrefix = "VENDA"

// FormatOrderNumber renders a sequence as VENDA00001
func FormatOrderNumber(seq int) string {
	return fmt.Sprintf("%s%05d", OrderNumberPrefix, seq)
}

// Order represents a sales order
type Order struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber   string             `gorm:"size:20;uniqueIndex;not null" json:"order_number"`
	Sequence      int                `gorm:"not null;uniqueIndex" json:"-"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName  string             `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone *string            `gorm:"size:50" json:"customer_phone,omitempty"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	Status        enum.OrderStatus   `gorm:"not null;default:0;index" json:"status"`
	Total         money.Cents        `gorm:"type:bigint;not null;default:0" json:"total"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	CanceledAt    *time.Time         `json:"canceled_at,omitempty"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsPaid reports whether the order has been settled
func (o *Order) IsPaid() bool {
	return o.Status == enum.OrderStatusPaid
}

// LinesTotal sums quantity x unit price over the lines
func (o *Order) LinesTotal() money.Cents {
	var total money.Cents
	for _, l := range o.Lines {
		total += l.UnitPrice.Mul(l.Quantity)
	}
	return total
}

// OrderLine represents a line item in an order
type OrderLine struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID   `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string      `gorm:"size:255;not null" json:"product_name"`
	Quantity    int         `gorm:"not null;check:chk_order_lines_quantity,quantity > 0" json:"quantity"`
	UnitPrice   money.Cents `gorm:"type:bigint;not null" json:"unit_price"`
	Subtotal    money.Cents `gorm:"type:bigint;not null" json:"subtotal"`
	CreatedAt   time.Time   `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new order line
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}
