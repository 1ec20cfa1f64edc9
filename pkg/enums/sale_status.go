package enums

// SaleStatus is the lifecycle state of a sale. Sales commit atomically, so
// completed is the only state the posting path produces; compensating
// records, if ever added, would introduce their own states rather than
// mutate an existing sale.
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
)

// IsValid reports whether the value is a known SaleStatus.
func (s SaleStatus) IsValid() bool {
	return s == SaleStatusCompleted
}
