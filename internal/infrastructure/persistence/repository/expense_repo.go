package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/adiwidodo/perjadin/internal/application/port"
	"github.com/adiwidodo/perjadin/internal/domain/entity"
)

// ExpenseRepository implements port.ExpenseRepository over sqlite. Each
// report holds at most one sub-report row per variant, so writes are
// upserts keyed on report_id.
type ExpenseRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *sql.DB, logger *zap.Logger) port.ExpenseRepository {
	return &ExpenseRepository{db: db, logger: logger}
}

// UpsertInCity writes the in-city expense sub-report for a report
func (r *ExpenseRepository) UpsertInCity(ctx context.Context, e *entity.InCityExpense) error {
	query := `
		INSERT INTO in_city_expenses (
			id, report_id, daily_allowance, transportation_cost,
			vehicle_rental_fee, actual_expense
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(report_id) DO UPDATE SET
			daily_allowance = excluded.daily_allowance,
			transportation_cost = excluded.transportation_cost,
			vehicle_rental_fee = excluded.vehicle_rental_fee,
			actual_expense = excluded.actual_expense,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		e.ID, e.ReportID, e.DailyAllowance, e.TransportationCost,
		e.VehicleRentalFee, e.ActualExpense,
	)
	if err != nil {
		r.logger.Error("Failed to upsert in-city expense",
			zap.String("report_id", e.ReportID), zap.Error(err))
		return fmt.Errorf("upsert in-city expense: %w", err)
	}
	return nil
}

// UpsertOutCity writes the out-city expense sub-report for a report. The
// allowance source is normalized first so the fullboard XOR custom
// invariant holds in storage.
func (r *ExpenseRepository) UpsertOutCity(ctx context.Context, e *entity.OutCityExpense) error {
	e.NormalizeAllowance()

	query := `
		INSERT INTO out_city_expenses (
			id, report_id, fullboard_price_id, custom_daily_allowance,
			origin_transport_cost, origin_transport_receipt,
			local_transport_cost, local_transport_receipt,
			lodging_cost, lodging_receipt,
			destination_transport_cost, destination_transport_receipt,
			round_trip_ticket_cost, round_trip_ticket_receipt,
			actual_expense
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(report_id) DO UPDATE SET
			fullboard_price_id = excluded.fullboard_price_id,
			custom_daily_allowance = excluded.custom_daily_allowance,
			origin_transport_cost = excluded.origin_transport_cost,
			origin_transport_receipt = excluded.origin_transport_receipt,
			local_transport_cost = excluded.local_transport_cost,
			local_transport_receipt = excluded.local_transport_receipt,
			lodging_cost = excluded.lodging_cost,
			lodging_receipt = excluded.lodging_receipt,
			destination_transport_cost = excluded.destination_transport_cost,
			destination_transport_receipt = excluded.destination_transport_receipt,
			round_trip_ticket_cost = excluded.round_trip_ticket_cost,
			round_trip_ticket_receipt = excluded.round_trip_ticket_receipt,
			actual_expense = excluded.actual_expense,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		e.ID, e.ReportID, e.FullboardPriceID, e.CustomDailyAllowance,
		e.OriginTransportCost, e.OriginTransportReceipt,
		e.LocalTransportCost, e.LocalTransportReceipt,
		e.LodgingCost, e.LodgingReceipt,
		e.DestinationTransportCost, e.DestinationTransportReceipt,
		e.RoundTripTicketCost, e.RoundTripTicketReceipt,
		e.ActualExpense,
	)
	if err != nil {
		r.logger.Error("Failed to upsert out-city expense",
			zap.String("report_id", e.ReportID), zap.Error(err))
		return fmt.Errorf("upsert out-city expense: %w", err)
	}
	return nil
}

// GetInCityByReportID retrieves the in-city sub-report for a report
func (r *ExpenseRepository) GetInCityByReportID(ctx context.Context, reportID string) (*entity.InCityExpense, error) {
	query := `
		SELECT id, report_id, daily_allowance, transportation_cost,
			vehicle_rental_fee, actual_expense, created_at, updated_at
		FROM in_city_expenses WHERE report_id = ?
	`
	var e entity.InCityExpense
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, reportID).Scan(
		&e.ID, &e.ReportID, &e.DailyAllowance, &e.TransportationCost,
		&e.VehicleRentalFee, &e.ActualExpense, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get in-city expense",
			zap.String("report_id", reportID), zap.Error(err))
		return nil, fmt.Errorf("get in-city expense: %w", err)
	}
	return &e, nil
}

// GetOutCityByReportID retrieves the out-city sub-report for a report
func (r *ExpenseRepository) GetOutCityByReportID(ctx context.Context, reportID string) (*entity.OutCityExpense, error) {
	query := `
		SELECT id, report_id, fullboard_price_id, custom_daily_allowance,
			origin_transport_cost, origin_transport_receipt,
			local_transport_cost, local_transport_receipt,
			lodging_cost, lodging_receipt,
			destination_transport_cost, destination_transport_receipt,
			round_trip_ticket_cost, round_trip_ticket_receipt,
			actual_expense, created_at, updated_at
		FROM out_city_expenses WHERE report_id = ?
	`
	var e entity.OutCityExpense
	var fullboardID sql.NullString
	var custom, origin, local, lodging, destination, roundTrip sql.NullInt64

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, reportID).Scan(
		&e.ID, &e.ReportID, &fullboardID, &custom,
		&origin, &e.OriginTransportReceipt,
		&local, &e.LocalTransportReceipt,
		&lodging, &e.LodgingReceipt,
		&destination, &e.DestinationTransportReceipt,
		&roundTrip, &e.RoundTripTicketReceipt,
		&e.ActualExpense, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get out-city expense",
			zap.String("report_id", reportID), zap.Error(err))
		return nil, fmt.Errorf("get out-city expense: %w", err)
	}

	if fullboardID.Valid {
		e.FullboardPriceID = &fullboardID.String
	}
	e.CustomDailyAllowance = nullableInt64(custom)
	e.OriginTransportCost = nullableInt64(origin)
	e.LocalTransportCost = nullableInt64(local)
	e.LodgingCost = nullableInt64(lodging)
	e.DestinationTransportCost = nullableInt64(destination)
	e.RoundTripTicketCost = nullableInt64(roundTrip)
	return &e, nil
}

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

var _ port.ExpenseRepository = (*ExpenseRepository)(nil)
