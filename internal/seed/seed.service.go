package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"portfoliotracker/internal/domain"
	"portfoliotracker/internal/repository"
	"portfoliotracker/internal/util"
)

const _clearTables = `TRUNCATE orders, transactions, portfolios, users`

// Event templates are shipped as CSV fixtures; dates are day offsets
// relative to seeding time so the demo feed always looks recent.
type transactionTemplate struct {
	Kind      string  `csv:"kind"`
	Amount    float64 `csv:"amount"`
	DayOffset int     `csv:"day_offset"`
	Notes     string  `csv:"notes"`
}

type orderTemplate struct {
	Ticker    string  `csv:"ticker"`
	Side      string  `csv:"side"`
	Quantity  float64 `csv:"quantity"`
	Price     float64 `csv:"price"`
	Status    string  `csv:"status"`
	DayOffset int     `csv:"day_offset"`
}

type SeedService interface {
	Seed(ctx context.Context) error
}

type seedServiceHandler struct {
	db                    *sqlx.DB
	dataDir               string
	log                   *zap.SugaredLogger
	UserRepository        repository.UserRepository
	PortfolioRepository   repository.PortfolioRepository
	TransactionRepository repository.TransactionRepository
	OrderRepository       repository.OrderRepository
}

func NewSeedService(
	db *sqlx.DB,
	dataDir string,
	log *zap.SugaredLogger,
	userRepository repository.UserRepository,
	portfolioRepository repository.PortfolioRepository,
	transactionRepository repository.TransactionRepository,
	orderRepository repository.OrderRepository,
) SeedService {
	return seedServiceHandler{
		db:                    db,
		dataDir:               dataDir,
		log:                   log,
		UserRepository:        userRepository,
		PortfolioRepository:   portfolioRepository,
		TransactionRepository: transactionRepository,
		OrderRepository:       orderRepository,
	}
}

// Seed wipes the event store and loads the demo dataset. Refused in
// production.
func (h seedServiceHandler) Seed(ctx context.Context) error {
	if strings.EqualFold(os.Getenv("TRACKER_ENV"), "production") {
		return fmt.Errorf("seeding is not allowed in production")
	}

	transactionTemplates, err := loadTemplates[transactionTemplate](filepath.Join(h.dataDir, "transactions.csv"))
	if err != nil {
		return err
	}
	orderTemplates, err := loadTemplates[orderTemplate](filepath.Join(h.dataDir, "orders.csv"))
	if err != nil {
		return err
	}

	if _, err := h.db.ExecContext(ctx, _clearTables); err != nil {
		return fmt.Errorf("failed to clear collections: %w", err)
	}

	users := []domain.User{
		{
			Name:  "Catalina Rojas Vidal",
			Email: "catalina.rojas@example.com",
			Rut:   util.StringPointer("12.345.678-9"),
			Phone: util.StringPointer("+56912345678"),
		},
		{
			Name:  "Matías Contreras Silva",
			Email: "matias.contreras@example.com",
			Rut:   util.StringPointer("17.654.321-K"),
			Phone: util.StringPointer("+56987654321"),
		},
	}
	portfolioNames := []string{"Portafolio Principal", "Portafolio de Inversiones"}

	now := time.Now().UTC()
	for i, user := range users {
		createdUser, err := h.UserRepository.Add(ctx, user)
		if err != nil {
			return err
		}

		portfolio, err := h.PortfolioRepository.Add(ctx, domain.Portfolio{
			UserID:   createdUser.ID,
			Name:     portfolioNames[i%len(portfolioNames)],
			Currency: "CLP",
		})
		if err != nil {
			return err
		}

		for _, t := range transactionTemplates {
			_, err := h.TransactionRepository.Add(ctx, domain.Transaction{
				PortfolioID: portfolio.ID,
				UserID:      createdUser.ID,
				Kind:        domain.TransactionKind(t.Kind),
				Amount:      decimal.NewFromFloat(t.Amount),
				Date:        now.AddDate(0, 0, t.DayOffset),
				Notes:       util.StringPointer(t.Notes),
			})
			if err != nil {
				return err
			}
		}

		for _, o := range orderTemplates {
			_, err := h.OrderRepository.Add(ctx, domain.Order{
				PortfolioID: portfolio.ID,
				UserID:      createdUser.ID,
				Ticker:      o.Ticker,
				Side:        domain.OrderSide(o.Side),
				Quantity:    decimal.NewFromFloat(o.Quantity),
				Price:       decimal.NewFromFloat(o.Price),
				Status:      domain.OrderStatus(o.Status),
				Date:        now.AddDate(0, 0, o.DayOffset),
			})
			if err != nil {
				return err
			}
		}

		h.log.Infow("seeded portfolio",
			"user", createdUser.Name,
			"portfolioID", portfolio.ID,
			"transactions", len(transactionTemplates),
			"orders", len(orderTemplates),
		)
	}

	return nil
}

func loadTemplates[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed fixture %s: %w", path, err)
	}
	defer f.Close()

	out := []T{}
	if err := gocsv.UnmarshalFile(f, &out); err != nil {
		return nil, fmt.Errorf("failed to parse seed fixture %s: %w", path, err)
	}
	return out, nil
}
