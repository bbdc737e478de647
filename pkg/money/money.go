package money

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in minor units (centavos).
type Cents int64

var hundred = decimal.NewFromInt(100)

// FromDecimal converts a decimal amount to cents, rounding half away from zero.
func FromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Mul(hundred).Round(0).IntPart())
}

// Parse parses a decimal string such as "4.90" or "4,90" into cents.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("money: empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Cents {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Decimal returns the amount in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Mul multiplies the amount by an integer quantity.
func (c Cents) Mul(qty int) Cents {
	return c * Cents(qty)
}

// DivRound divides the amount by n, rounding half away from zero. Returns 0 when n is 0.
func (c Cents) DivRound(n int64) Cents {
	if n == 0 {
		return 0
	}
	return Cents(decimal.NewFromInt(int64(c)).Div(decimal.NewFromInt(n)).Round(0).IntPart())
}

// String renders the amount with exactly two decimals, e.g. "14.70".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as a JSON number with two decimals.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string in major units.
func (c *Cents) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*c = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer.
func (c Cents) Value() (driver.Value, error) {
	return int64(c), nil
}

// Scan implements sql.Scanner.
func (c *Cents) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = 0
	case int64:
		*c = Cents(v)
	case int32:
		*c = Cents(v)
	case int:
		*c = Cents(v)
	case float64:
		*c = Cents(v)
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return err
		}
		*c = Cents(d.IntPart())
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return err
		}
		*c = Cents(d.IntPart())
	default:
		return fmt.Errorf("money: cannot scan %T into Cents", value)
	}
	return nil
}
