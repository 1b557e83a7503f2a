package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/movement"
	"portfoliotracker/internal/repository"
)

const testApiKey = "test-api-key"

type fakePortfolioService struct {
	portfolio domain.Portfolio
}

func (f fakePortfolioService) Update(ctx context.Context, portfolioID uuid.UUID, update repository.PortfolioUpdate) (*domain.Portfolio, error) {
	if portfolioID != f.portfolio.ID {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioID, domain.ErrNotFound)
	}
	out := f.portfolio
	if update.Name != nil {
		out.Name = *update.Name
	}
	return &out, nil
}

func (f fakePortfolioService) GetSummary(ctx context.Context, portfolioID uuid.UUID) (*domain.PortfolioSummary, error) {
	if portfolioID != f.portfolio.ID {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioID, domain.ErrNotFound)
	}
	return &domain.PortfolioSummary{
		PortfolioID: portfolioID,
		CashBalance: decimal.NewFromInt(70),
		StocksValue: decimal.NewFromInt(40),
		TotalValue:  decimal.NewFromInt(110),
		Currency:    "CLP",
	}, nil
}

func (f fakePortfolioService) GetMovements(ctx context.Context, portfolioID uuid.UUID, limit, page int) (*movement.Page, error) {
	if portfolioID != f.portfolio.ID {
		return nil, fmt.Errorf("portfolio %s: %w", portfolioID, domain.ErrNotFound)
	}
	movements := []domain.Movement{
		domain.NewTransactionMovement(domain.Transaction{
			ID:          uuid.MustParse("33333333-3333-3333-3333-333333333333"),
			PortfolioID: portfolioID,
			UserID:      f.portfolio.UserID,
			Kind:        domain.TransactionKind_Deposit,
			Amount:      decimal.NewFromInt(100),
			Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		}),
	}
	return movement.Paginate(movements, limit, page)
}

func newTestRouter() (*gin.Engine, domain.Portfolio) {
	gin.SetMode(gin.TestMode)
	portfolio := domain.Portfolio{
		ID:       uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		UserID:   uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Name:     "Portafolio Principal",
		Currency: "CLP",
	}
	handler := ApiHandler{
		Logger:           zap.NewNop().Sugar(),
		ApiKey:           testApiKey,
		PortfolioService: fakePortfolioService{portfolio: portfolio},
	}
	return handler.InitializeRouterEngine(), portfolio
}

func doRequest(router *gin.Engine, method, path, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(""))
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestApiKeyMiddleware(t *testing.T) {
	router, portfolio := newTestRouter()
	path := fmt.Sprintf("/portfolios/%s/summary", portfolio.ID)

	t.Run("missing key", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, path, "")
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("wrong key", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, path, "nope")
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("valid key", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, path, testApiKey)
		require.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("health is public", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestGetSummary(t *testing.T) {
	router, portfolio := newTestRouter()

	t.Run("returns the valuation envelope", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, fmt.Sprintf("/portfolios/%s/summary", portfolio.ID), testApiKey)

		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Success bool               `json:"success"`
			Data    GetSummaryResponse `json:"data"`
			Message string             `json:"message"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		require.True(t, body.Success)
		require.Equal(t, 70.0, body.Data.CashBalance)
		require.Equal(t, 40.0, body.Data.StocksValue)
		require.Equal(t, 110.0, body.Data.TotalValue)
		require.Equal(t, "CLP", body.Data.Currency)
	})

	t.Run("unknown portfolio is 404", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, fmt.Sprintf("/portfolios/%s/summary", uuid.New()), testApiKey)
		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, "/portfolios/not-a-uuid/summary", testApiKey)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetMovements(t *testing.T) {
	router, portfolio := newTestRouter()
	base := fmt.Sprintf("/portfolios/%s/movements", portfolio.ID)

	t.Run("defaults to limit 10 page 1", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, base, testApiKey)

		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Data GetMovementsResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		require.Equal(t, 10, body.Data.Limit)
		require.Equal(t, 1, body.Data.Page)
		require.Len(t, body.Data.Items, 1)
		require.Equal(t, "DEPOSIT", body.Data.Items[0].MovementType)
		require.NotNil(t, body.Data.Items[0].Amount)
		require.Nil(t, body.Data.Items[0].Ticker)
	})

	t.Run("out-of-range page is 400", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, base+"?page=0", testApiKey)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("out-of-range limit is 400", func(t *testing.T) {
		recorder := doRequest(router, http.MethodGet, base+"?limit=-1", testApiKey)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
