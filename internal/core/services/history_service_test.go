package services_test

import (
	"context"
	"testing"

	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	portsrepo "github.com/pairledger/pair_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pairledger/pair_ledger_app/internal/core/ports/services"
	"github.com/pairledger/pair_ledger_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HistoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockItemRepository
	service  portssvc.HistorySvcFacade
}

func (suite *HistoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockItemRepository)
	suite.service = services.NewHistoryService(suite.mockRepo)
}

func (suite *HistoryServiceTestSuite) TestListHistory_IncomeVirtualFilter() {
	ctx := context.Background()
	expected := []domain.Item{
		{Kind: domain.KindMovement, MovementType: movementTypePtr(domain.Income), Description: "Salary", Amount: decimal.NewFromInt(100)},
	}

	suite.mockRepo.On("SearchItems", ctx, mock.MatchedBy(func(f portsrepo.SearchItemsFilter) bool {
		return f.Kind != nil && *f.Kind == domain.KindMovement &&
			f.MovementType != nil && *f.MovementType == domain.Income &&
			f.DescriptionQuery == ""
	})).Return(expected, nil).Once()

	items, err := suite.service.ListHistory(ctx, "income", "")

	suite.Require().NoError(err)
	suite.Equal(expected, items)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HistoryServiceTestSuite) TestListHistory_ExpenseVirtualFilter() {
	ctx := context.Background()

	suite.mockRepo.On("SearchItems", ctx, mock.MatchedBy(func(f portsrepo.SearchItemsFilter) bool {
		return f.Kind != nil && *f.Kind == domain.KindMovement &&
			f.MovementType != nil && *f.MovementType == domain.Expense
	})).Return([]domain.Item{}, nil).Once()

	_, err := suite.service.ListHistory(ctx, "expense", "")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HistoryServiceTestSuite) TestListHistory_DirectKindFilter() {
	ctx := context.Background()

	suite.mockRepo.On("SearchItems", ctx, mock.MatchedBy(func(f portsrepo.SearchItemsFilter) bool {
		return f.Kind != nil && *f.Kind == domain.KindPayable && f.MovementType == nil
	})).Return([]domain.Item{}, nil).Once()

	_, err := suite.service.ListHistory(ctx, "payable", "")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HistoryServiceTestSuite) TestListHistory_UnknownFilterFallsBackToAll() {
	ctx := context.Background()

	suite.mockRepo.On("SearchItems", ctx, mock.MatchedBy(func(f portsrepo.SearchItemsFilter) bool {
		return f.Kind == nil && f.MovementType == nil
	})).Return([]domain.Item{}, nil).Times(3)

	for _, filter := range []string{"all", "", "bogus"} {
		_, err := suite.service.ListHistory(ctx, filter, "")
		suite.Require().NoError(err, filter)
	}
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *HistoryServiceTestSuite) TestListHistory_TrimsQueryAndReturnsEmptySliceForNil() {
	ctx := context.Background()

	suite.mockRepo.On("SearchItems", ctx, mock.MatchedBy(func(f portsrepo.SearchItemsFilter) bool {
		return f.DescriptionQuery == "rent"
	})).Return(nil, nil).Once()

	items, err := suite.service.ListHistory(ctx, "all", "  rent  ")

	suite.Require().NoError(err)
	suite.NotNil(items)
	suite.Empty(items)
}

func (suite *HistoryServiceTestSuite) TestListHistory_RepoFailurePropagates() {
	ctx := context.Background()

	suite.mockRepo.On("SearchItems", ctx, mock.AnythingOfType("repositories.SearchItemsFilter")).
		Return(nil, assert.AnError).Once()

	items, err := suite.service.ListHistory(ctx, "all", "")

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(items)
}

func TestHistoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryServiceTestSuite))
}
