package dto

import (
	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardResponse is the dashboard snapshot served to clients.
type DashboardResponse struct {
	Balance         decimal.Decimal `json:"balance"`
	RecurringTotal  decimal.Decimal `json:"recurringTotal"`
	RecurringList   []ItemResponse  `json:"recurringList"`
	ReceivableTotal decimal.Decimal `json:"receivableTotal"`
	ReceivableList  []ItemResponse  `json:"receivableList"`
	PayableTotal    decimal.Decimal `json:"payableTotal"`
	PayableList     []ItemResponse  `json:"payableList"`
}

// ToDashboardResponse converts a domain.Dashboard to its DTO.
func ToDashboardResponse(d *domain.Dashboard) DashboardResponse {
	return DashboardResponse{
		Balance:         d.Balance,
		RecurringTotal:  d.Recurring.Total,
		RecurringList:   ToItemResponses(d.Recurring.Items),
		ReceivableTotal: d.Receivable.Total,
		ReceivableList:  ToItemResponses(d.Receivable.Items),
		PayableTotal:    d.Payable.Total,
		PayableList:     ToItemResponses(d.Payable.Items),
	}
}

// HistoryResponse is the filtered history listing.
type HistoryResponse struct {
	Items []ItemResponse `json:"items"`
}
