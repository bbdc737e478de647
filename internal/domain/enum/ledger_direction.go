package enum

// LedgerDirection tells whether money entered or left the business
type LedgerDirection string

const (
	LedgerDirectionIn  LedgerDirection = "in"
	LedgerDirectionOut LedgerDirection = "out"
)

// Ledger categories written by the system
const (
	LedgerCategorySales = "Sales"
	LedgerCategoryFiado = "Fiado"
)
