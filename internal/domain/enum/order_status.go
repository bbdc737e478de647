package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus represents the status of an order
type OrderStatus int

const (
	OrderStatusPending  OrderStatus = 0
	OrderStatusPaid     OrderStatus = 1
	OrderStatusCanceled OrderStatus = 2
)

var orderStatusNames = [...]string{"pending", "paid", "canceled"}

func (s OrderStatus) String() string {
	if s < 0 || int(s) >= len(orderStatusNames) {
		return fmt.Sprintf("OrderStatus(%d)", int(s))
	}
	return orderStatusNames[s]
}

// ParseOrderStatus parses a status name or its numeric value
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for i, name := range orderStatusNames {
		if name == s || fmt.Sprint(i) == s {
			return OrderStatus(i), true
		}
	}
	return OrderStatusPending, false
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	parsed, ok := ParseOrderStatus(str)
	if !ok {
		return fmt.Errorf("unknown order status %q", str)
	}
	*s = parsed
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int32:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
