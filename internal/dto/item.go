package dto

import (
	"time"

	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for ledger dates.
const DateLayout = "2006-01-02"

// CreateItemRequest is the payload for creating a ledger item. MovementType
// is required iff kind is movement; Active is meaningful only for
// recurring/receivable/payable and defaults to true for recurring.
type CreateItemRequest struct {
	Kind         string          `json:"kind" binding:"required,itemkind"`
	MovementType *string         `json:"movementType" binding:"omitempty,movementtype"`
	Description  string          `json:"description" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date" binding:"required,datetime=2006-01-02"`
	Note         *string         `json:"note"`
	Active       *bool           `json:"active"`
}

// UpdateItemRequest is the payload for a partial item edit. Nil fields are
// left untouched.
type UpdateItemRequest struct {
	Description  *string          `json:"description" binding:"omitempty,min=1"`
	Amount       *decimal.Decimal `json:"amount"`
	Date         *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Note         *string          `json:"note"`
	MovementType *string          `json:"movementType" binding:"omitempty,movementtype"`
	Active       *bool            `json:"active"`
}

// ItemResponse defines the data returned for a ledger item.
type ItemResponse struct {
	ItemID       string          `json:"itemID"`
	Kind         string          `json:"kind"`
	MovementType *string         `json:"movementType,omitempty"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Note         *string         `json:"note,omitempty"`
	Active       *bool           `json:"active,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// CompleteItemResponse returns the settled item and the movement that
// realized its amount.
type CompleteItemResponse struct {
	Item     ItemResponse `json:"item"`
	Movement ItemResponse `json:"movement"`
}

// ToItemResponse converts a domain.Item to an ItemResponse DTO.
func ToItemResponse(i *domain.Item) ItemResponse {
	var movementType *string
	if i.MovementType != nil {
		s := string(*i.MovementType)
		movementType = &s
	}
	return ItemResponse{
		ItemID:       i.ItemID,
		Kind:         string(i.Kind),
		MovementType: movementType,
		Description:  i.Description,
		Amount:       i.Amount,
		Date:         i.Date.Format(DateLayout),
		Note:         i.Note,
		Active:       i.Active,
		CreatedAt:    i.CreatedAt,
	}
}

// ToCompleteItemResponse converts a domain.Completion to its DTO.
func ToCompleteItemResponse(c *domain.Completion) CompleteItemResponse {
	return CompleteItemResponse{
		Item:     ToItemResponse(&c.Item),
		Movement: ToItemResponse(&c.Movement),
	}
}

// ToItemResponses converts a slice of domain.Item to []ItemResponse.
func ToItemResponses(items []domain.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses
}
