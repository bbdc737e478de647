package enum

// ReportStatus grades a day's revenue
type ReportStatus string

const (
	ReportStatusExcellent ReportStatus = "excellent"
	ReportStatusGood      ReportStatus = "good"
	ReportStatusWarning   ReportStatus = "warning"
	ReportStatusPoor      ReportStatus = "poor"
)

// Revenue thresholds in cents
const (
	excellentAbove int64 = 50000
	goodAbove      int64 = 20000
)

// ClassifyRevenue maps revenue in cents to a report status.
// > 500.00 excellent, (200.00, 500.00] good, (0, 200.00] warning, 0 poor.
func ClassifyRevenue(revenueCents int64) ReportStatus {
	switch {
	case revenueCents > excellentAbove:
		return ReportStatusExcellent
	case revenueCents > goodAbove:
		return ReportStatusGood
	case revenueCents > 0:
		return ReportStatusWarning
	default:
		return ReportStatusPoor
	}
}
