package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/adiwidodo/perjadin/internal/application/port"
	"github.com/adiwidodo/perjadin/internal/domain/entity"
)

// FullboardPriceRepository implements port.FullboardPriceRepository over
// sqlite. Rows come from the seed migration and change rarely.
type FullboardPriceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewFullboardPriceRepository creates a new fullboard price repository
func NewFullboardPriceRepository(db *sql.DB, logger *zap.Logger) port.FullboardPriceRepository {
	return &FullboardPriceRepository{db: db, logger: logger}
}

// GetByID retrieves one fullboard price tier
func (r *FullboardPriceRepository) GetByID(ctx context.Context, id string) (*entity.FullboardPrice, error) {
	query := `SELECT id, province, price FROM fullboard_prices WHERE id = ?`

	var p entity.FullboardPrice
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Province, &p.Rate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get fullboard price", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("get fullboard price: %w", err)
	}
	return &p, nil
}

// List retrieves all fullboard price tiers ordered by province
func (r *FullboardPriceRepository) List(ctx context.Context) ([]*entity.FullboardPrice, error) {
	query := `SELECT id, province, price FROM fullboard_prices ORDER BY province`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list fullboard prices", zap.Error(err))
		return nil, fmt.Errorf("list fullboard prices: %w", err)
	}
	defer rows.Close()

	var prices []*entity.FullboardPrice
	for rows.Next() {
		var p entity.FullboardPrice
		if err := rows.Scan(&p.ID, &p.Province, &p.Rate); err != nil {
			return nil, fmt.Errorf("scan fullboard price: %w", err)
		}
		prices = append(prices, &p)
	}
	return prices, rows.Err()
}

var _ port.FullboardPriceRepository = (*FullboardPriceRepository)(nil)
