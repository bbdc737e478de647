package enum

import (
	"strings"
)

// PaymentMethod is how an order is paid
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodPix   PaymentMethod = "pix"
	PaymentMethodFiado PaymentMethod = "fiado"
)

var paymentMethodAliases = map[string]PaymentMethod{
	"cash":        PaymentMethodCash,
	"dinheiro":    PaymentMethodCash,
	"card":        PaymentMethodCard,
	"cartao":      PaymentMethodCard,
	"cartão":      PaymentMethodCard,
	"credito":     PaymentMethodCard,
	"crédito":     PaymentMethodCard,
	"debito":      PaymentMethodCard,
	"débito":      PaymentMethodCard,
	"credit_card": PaymentMethodCard,
	"debit_card":  PaymentMethodCard,
	"pix":         PaymentMethodPix,
	"fiado":       PaymentMethodFiado,
	"on_credit":   PaymentMethodFiado,
	"credit":      PaymentMethodFiado,
	"a_prazo":     PaymentMethodFiado,
}

// ParsePaymentMethod normalises the spellings used by clients into a PaymentMethod
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	m, ok := paymentMethodAliases[key]
	return m, ok
}

// IsImmediate reports whether the order is settled at the moment of sale
func (m PaymentMethod) IsImmediate() bool {
	return m == PaymentMethodCash || m == PaymentMethodCard || m == PaymentMethodPix
}

func (m PaymentMethod) String() string {
	return string(m)
}
