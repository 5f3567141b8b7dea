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

type DashboardServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockItemRepository
	mockBalance *MockBalanceService
	service     portssvc.DashboardSvcFacade
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockItemRepository)
	suite.mockBalance = new(MockBalanceService)
	suite.service = services.NewDashboardService(suite.mockRepo, suite.mockBalance)
}

func listFilterMatcher(kind domain.ItemKind, orderBy portsrepo.ListItemsOrder) interface{} {
	return mock.MatchedBy(func(f portsrepo.ListItemsFilter) bool {
		return f.Kind != nil && *f.Kind == kind && f.ActiveOnly && f.OrderBy == orderBy
	})
}

func (suite *DashboardServiceTestSuite) TestGetDashboard_TotalsAndSections() {
	ctx := context.Background()

	recurring := []domain.Item{
		{Kind: domain.KindRecurring, Description: "Rent", Amount: decimal.NewFromInt(900), Active: boolPtr(true)},
		{Kind: domain.KindRecurring, Description: "Internet", Amount: decimal.NewFromInt(50), Active: boolPtr(true)},
	}
	receivable := []domain.Item{
		{Kind: domain.KindReceivable, Description: "Refund", Amount: decimal.NewFromInt(200), Active: boolPtr(true)},
	}
	payable := []domain.Item{
		{Kind: domain.KindPayable, Description: "Plumber", Amount: decimal.NewFromInt(120), Active: boolPtr(true)},
		{Kind: domain.KindPayable, Description: "Dentist", Amount: decimal.NewFromInt(80), Active: boolPtr(true)},
	}

	suite.mockBalance.On("GetBalance", mock.Anything).
		Return(domain.BalanceState{Balance: decimal.NewFromInt(1234)}, nil).Once()
	suite.mockRepo.On("ListItems", mock.Anything, listFilterMatcher(domain.KindRecurring, portsrepo.OrderByCreatedAtDesc)).
		Return(recurring, nil).Once()
	suite.mockRepo.On("ListItems", mock.Anything, listFilterMatcher(domain.KindReceivable, portsrepo.OrderByDateDesc)).
		Return(receivable, nil).Once()
	suite.mockRepo.On("ListItems", mock.Anything, listFilterMatcher(domain.KindPayable, portsrepo.OrderByDateDesc)).
		Return(payable, nil).Once()

	dashboard, err := suite.service.GetDashboard(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(dashboard)
	suite.True(dashboard.Balance.Equal(decimal.NewFromInt(1234)))
	suite.True(dashboard.Recurring.Total.Equal(decimal.NewFromInt(950)))
	suite.Len(dashboard.Recurring.Items, 2)
	suite.True(dashboard.Receivable.Total.Equal(decimal.NewFromInt(200)))
	suite.True(dashboard.Payable.Total.Equal(decimal.NewFromInt(200)))
	suite.Len(dashboard.Payable.Items, 2)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockBalance.AssertExpectations(suite.T())
}

func (suite *DashboardServiceTestSuite) TestGetDashboard_EmptySectionsYieldZeroTotals() {
	ctx := context.Background()

	suite.mockBalance.On("GetBalance", mock.Anything).
		Return(domain.BalanceState{Balance: decimal.Zero}, nil).Once()
	suite.mockRepo.On("ListItems", mock.Anything, mock.AnythingOfType("repositories.ListItemsFilter")).
		Return(nil, nil).Times(3)

	dashboard, err := suite.service.GetDashboard(ctx)

	suite.Require().NoError(err)
	suite.True(dashboard.Recurring.Total.IsZero())
	suite.NotNil(dashboard.Recurring.Items)
	suite.Empty(dashboard.Recurring.Items)
	suite.NotNil(dashboard.Receivable.Items)
	suite.NotNil(dashboard.Payable.Items)
}

func (suite *DashboardServiceTestSuite) TestGetDashboard_ReadFailurePropagates() {
	ctx := context.Background()

	suite.mockBalance.On("GetBalance", mock.Anything).
		Return(domain.BalanceState{}, assert.AnError).Once()
	suite.mockRepo.On("ListItems", mock.Anything, mock.AnythingOfType("repositories.ListItemsFilter")).
		Return(nil, nil).Maybe()

	dashboard, err := suite.service.GetDashboard(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(dashboard)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
