package domain

import "github.com/shopspring/decimal"

// DashboardSection is one projected block of the dashboard: the active items
// of a single kind and the sum of their amounts.
type DashboardSection struct {
	Total decimal.Decimal `json:"total"`
	Items []Item          `json:"items"`
}

// Dashboard is the read-side projection served to clients: the realized
// balance plus the open recurring/receivable/payable sections.
type Dashboard struct {
	Balance    decimal.Decimal  `json:"balance"`
	Recurring  DashboardSection `json:"recurring"`
	Receivable DashboardSection `json:"receivable"`
	Payable    DashboardSection `json:"payable"`
}

// Completion is the result of settling a receivable or payable: the
// deactivated original item and the movement that realized its amount.
type Completion struct {
	Item     Item `json:"item"`
	Movement Item `json:"movement"`
}
