package mapping

import (
	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	"github.com/pairledger/pair_ledger_app/internal/models"
)

// ToModelItem converts a domain Item to a model Item.
func ToModelItem(d domain.Item) models.Item {
	var movementType *string
	if d.MovementType != nil {
		s := string(*d.MovementType)
		movementType = &s
	}
	return models.Item{
		ItemID:       d.ItemID,
		Kind:         string(d.Kind),
		MovementType: movementType,
		Description:  d.Description,
		Amount:       d.Amount,
		Date:         d.Date,
		Note:         d.Note,
		Active:       d.Active,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainItem converts a model Item to a domain Item.
func ToDomainItem(m models.Item) domain.Item {
	var movementType *domain.MovementType
	if m.MovementType != nil {
		t := domain.MovementType(*m.MovementType)
		movementType = &t
	}
	return domain.Item{
		ItemID:       m.ItemID,
		Kind:         domain.ItemKind(m.Kind),
		MovementType: movementType,
		Description:  m.Description,
		Amount:       m.Amount,
		Date:         m.Date,
		Note:         m.Note,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainItemSlice converts a slice of model Items to domain Items.
func ToDomainItemSlice(ms []models.Item) []domain.Item {
	ds := make([]domain.Item, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainItem(m)
	}
	return ds
}
