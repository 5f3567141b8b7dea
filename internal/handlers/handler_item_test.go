package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pairledger/pair_ledger_app/internal/apperrors"
	"github.com/pairledger/pair_ledger_app/internal/core/domain"
	portssvc "github.com/pairledger/pair_ledger_app/internal/core/ports/services"
	"github.com/pairledger/pair_ledger_app/internal/dto"
	"github.com/pairledger/pair_ledger_app/internal/handlers"
	"github.com/pairledger/pair_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*domain.Item, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockLedgerService) EditItem(ctx context.Context, itemID string, req dto.UpdateItemRequest) (*domain.Item, error) {
	args := m.Called(ctx, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockLedgerService) DeleteItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockLedgerService) CompleteItem(ctx context.Context, itemID string) (*domain.Completion, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Completion), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type ItemHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockLedger *MockLedgerService
	jwtSecret  string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ItemHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pla-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *ItemHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterCustomValidations()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	// Use the actual AuthMiddleware
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret, "pla-test"))

	suite.mockLedger = new(MockLedgerService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterItemRoutes(v1, suite.mockLedger)
}

func (suite *ItemHandlerTestSuite) doRequest(method, url string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ItemHandlerTestSuite) TestCreateItem_Success() {
	created := &domain.Item{
		ItemID:      uuid.NewString(),
		Kind:        domain.KindReceivable,
		Description: "Refund",
		Amount:      decimal.NewFromInt(200),
		Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}

	suite.mockLedger.On("CreateItem", mock.Anything, mock.MatchedBy(func(r dto.CreateItemRequest) bool {
		return r.Kind == "receivable" && r.Description == "Refund"
	})).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/items", gin.H{
		"kind":        "receivable",
		"description": "Refund",
		"amount":      200,
		"date":        "2026-08-15",
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.ItemResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ItemID, resp.ItemID)
	suite.Equal("2026-08-15", resp.Date)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ItemHandlerTestSuite) TestCreateItem_RejectsUnknownKindAtBinding() {
	w := suite.doRequest(http.MethodPost, "/api/v1/items", gin.H{
		"kind":        "loan",
		"description": "x",
		"amount":      1,
		"date":        "2026-08-15",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateItem", mock.Anything, mock.Anything)
}

func (suite *ItemHandlerTestSuite) TestCreateItem_ValidationErrorFromService() {
	suite.mockLedger.On("CreateItem", mock.Anything, mock.AnythingOfType("dto.CreateItemRequest")).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/items", gin.H{
		"kind":        "movement",
		"description": "x",
		"amount":      1,
		"date":        "2026-08-15",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ItemHandlerTestSuite) TestCreateItem_Unauthorized() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/items", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "CreateItem", mock.Anything, mock.Anything)
}

func (suite *ItemHandlerTestSuite) TestCreateItem_PartialFailureReturnsItemAndStep() {
	created := &domain.Item{
		ItemID:      uuid.NewString(),
		Kind:        domain.KindMovement,
		Description: "Salary",
		Amount:      decimal.NewFromInt(100),
		Date:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	storeErr := apperrors.NewStoreError("CreateItem", "balance_upsert", []string{"item_insert"}, apperrors.ErrValidation)

	suite.mockLedger.On("CreateItem", mock.Anything, mock.AnythingOfType("dto.CreateItemRequest")).
		Return(created, storeErr).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/items", gin.H{
		"kind":         "movement",
		"movementType": "income",
		"description":  "Salary",
		"amount":       100,
		"date":         "2026-08-01",
	})

	suite.Equal(http.StatusInternalServerError, w.Code)

	var resp map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("balance_upsert", resp["failedStep"])
	suite.NotNil(resp["item"])
}

func (suite *ItemHandlerTestSuite) TestEditItem_NotFound() {
	itemID := uuid.NewString()

	suite.mockLedger.On("EditItem", mock.Anything, itemID, mock.AnythingOfType("dto.UpdateItemRequest")).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPatch, "/api/v1/items/"+itemID, gin.H{"description": "renamed"})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ItemHandlerTestSuite) TestDeleteItem_Success() {
	itemID := uuid.NewString()

	suite.mockLedger.On("DeleteItem", mock.Anything, itemID).Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/items/"+itemID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ItemHandlerTestSuite) TestCompleteItem_Success() {
	itemID := uuid.NewString()
	inactive := false
	completion := &domain.Completion{
		Item: domain.Item{
			ItemID:      itemID,
			Kind:        domain.KindReceivable,
			Description: "Refund",
			Amount:      decimal.NewFromInt(200),
			Active:      &inactive,
		},
		Movement: domain.Item{
			ItemID:      uuid.NewString(),
			Kind:        domain.KindMovement,
			Description: "Cobro: Refund",
			Amount:      decimal.NewFromInt(200),
		},
	}

	suite.mockLedger.On("CompleteItem", mock.Anything, itemID).Return(completion, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/items/"+itemID+"/complete", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.CompleteItemResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(itemID, resp.Item.ItemID)
	suite.Equal("Cobro: Refund", resp.Movement.Description)
	suite.Require().NotNil(resp.Item.Active)
	suite.False(*resp.Item.Active)
}

func (suite *ItemHandlerTestSuite) TestCompleteItem_AlreadyCompletedMapsToConflict() {
	itemID := uuid.NewString()

	suite.mockLedger.On("CompleteItem", mock.Anything, itemID).
		Return(nil, apperrors.ErrAlreadyCompleted).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/items/"+itemID+"/complete", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *ItemHandlerTestSuite) TestCompleteItem_InvalidKindMapsToBadRequest() {
	itemID := uuid.NewString()

	suite.mockLedger.On("CompleteItem", mock.Anything, itemID).
		Return(nil, apperrors.ErrInvalidKind).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/items/"+itemID+"/complete", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestItemHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ItemHandlerTestSuite))
}
