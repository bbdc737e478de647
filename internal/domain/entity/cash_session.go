package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"gorm.io/gorm"
)

// BusinessDateLayout is the layout of CashRegisterSession.BusinessDate
const BusinessDateLayout = "2006-01-02"

// CashRegisterSession is one opening of the cash register. At most one session
// is open at a time; the partial unique index enforces it in PostgreSQL.
type CashRegisterSession struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Status           enum.SessionStatus `gorm:"size:10;not null;index;uniqueIndex:idx_cash_sessions_single_open,where:status = 'open'" json:"status"`
	BusinessDate     string             `gorm:"size:10;not null;index" json:"business_date"`
	OpenedAt         time.Time          `gorm:"not null" json:"opened_at"`
	OpeningFloat     money.Cents        `gorm:"type:bigint;not null;default:0" json:"opening_float"`
	ClosedAt         *time.Time         `json:"closed_at,omitempty"`
	AccumulatedSales money.Cents        `gorm:"type:bigint;not null;default:0" json:"accumulated_sales"`
	OrderCount       int                `gorm:"not null;default:0" json:"order_count"`
	FinalBalance     *money.Cents       `gorm:"type:bigint" json:"final_balance,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new session
func (s *CashRegisterSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashRegisterSession model
func (CashRegisterSession) TableName() string {
	return "cash_register_sessions"
}

// IsOpen reports whether the session still accepts sales
func (s *CashRegisterSession) IsOpen() bool {
	return s.Status == enum.SessionStatusOpen
}

// CurrentBalance is the opening float plus accumulated sales
func (s *CashRegisterSession) CurrentBalance() money.Cents {
	return s.OpeningFloat + s.AccumulatedSales
}

// MarshalJSON adds the derived current balance
func (s CashRegisterSession) MarshalJSON() ([]byte, error) {
	type Alias CashRegisterSession
	return json.Marshal(&struct {
		Alias
		CurrentBalance money.Cents `json:"current_balance"`
	}{
		Alias:          Alias(s),
		CurrentBalance: s.CurrentBalance(),
	})
}
