// Package expense derives the monetary line items and totals of a travel
// report from its expense sub-report.
package expense

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/adiwidodo/perjadin/internal/domain/entity"
)

// Line item descriptions as they appear on the expense statement.
const (
	DescTransport      = "Biaya Transportasi"
	DescDailyAllowance = "Uang Harian"
	DescLodging        = "Biaya Penginapan"
	DescVehicleRental  = "Sewa Kendaraan"
	DescRepresentation = "Biaya Representasi"
)

// LodgingActualShare is the fraction of lodging cost counted toward the
// statement of actual expenditure, in percent.
const LodgingActualShare = 30

// LineItem is one row of the expense statement
type LineItem struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Note        string `json:"note,omitempty"`
}

// Aggregator computes statement line items and totals. It never fails: a
// report whose declared travel type has no matching sub-report loaded
// computes to zero, and the caller logs the anomaly.
type Aggregator struct {
	rates  RateLookup
	logger *zap.Logger
}

// NewAggregator creates an aggregator over the given fullboard rate table
func NewAggregator(rates RateLookup, logger *zap.Logger) *Aggregator {
	return &Aggregator{rates: rates, logger: logger}
}

// LineItems computes the ordered statement rows for a report. Rows with a
// zero amount are omitted, except the representation row which always
// appears as a reserved placeholder.
func (a *Aggregator) LineItems(r *entity.Report) []LineItem {
	items := make([]LineItem, 0, 5)
	duration := r.Duration()

	switch r.TravelType {
	case entity.TravelTypeInCity:
		if e := r.InCityExpense; e != nil {
			items = appendPositive(items, LineItem{
				Description: DescTransport,
				Amount:      e.TransportationCost,
			})
			items = appendPositive(items, LineItem{
				Description: DescDailyAllowance,
				Amount:      e.DailyAllowance * int64(duration),
				Note:        allowanceNote(duration, e.DailyAllowance),
			})
			items = appendPositive(items, LineItem{
				Description: DescVehicleRental,
				Amount:      e.VehicleRentalFee,
				Note:        fmt.Sprintf("%s / %d Hari", FormatRupiah(e.VehicleRentalFee), duration),
			})
		} else {
			a.warnMissingExpense(r)
		}

	case entity.TravelTypeOutCity:
		if e := r.OutCityExpense; e != nil {
			items = appendPositive(items, LineItem{
				Description: DescTransport,
				Amount:      sumOptional(e.OriginTransportCost, e.LocalTransportCost, e.DestinationTransportCost, e.RoundTripTicketCost),
			})
			rate := a.outCityDailyRate(e)
			items = appendPositive(items, LineItem{
				Description: DescDailyAllowance,
				Amount:      rate * int64(duration),
				Note:        allowanceNote(duration, rate),
			})
			items = appendPositive(items, lodgingItem(e, duration))
		} else {
			a.warnMissingExpense(r)
		}

	default:
		// out-of-country computation is not modeled; degrade to zero
		a.warnMissingExpense(r)
	}

	// reserved extension point, always present on the statement
	items = append(items, LineItem{Description: DescRepresentation, Amount: 0})
	return items
}

// Total returns the sum of all statement line items
func (a *Aggregator) Total(r *entity.Report) int64 {
	var total int64
	for _, item := range a.LineItems(r) {
		total += item.Amount
	}
	return total
}

// ActualExpenseTotal computes the statement-of-actual-expenditure amount:
// the out-of-pocket transport expense plus a fixed share of lodging.
func (a *Aggregator) ActualExpenseTotal(r *entity.Report) int64 {
	switch r.TravelType {
	case entity.TravelTypeInCity:
		if e := r.InCityExpense; e != nil {
			return e.ActualExpense
		}
	case entity.TravelTypeOutCity:
		if e := r.OutCityExpense; e != nil {
			var lodging int64
			if e.LodgingCost != nil {
				lodging = *e.LodgingCost
			}
			return e.ActualExpense + lodging*LodgingActualShare/100
		}
	}
	a.warnMissingExpense(r)
	return 0
}

// outCityDailyRate resolves the per-day allowance: an explicit custom
// amount wins, then the fullboard reference, then zero.
func (a *Aggregator) outCityDailyRate(e *entity.OutCityExpense) int64 {
	if e.CustomDailyAllowance != nil {
		return *e.CustomDailyAllowance
	}
	if e.FullboardPriceID != nil {
		if rate, ok := a.rates.Rate(*e.FullboardPriceID); ok {
			return rate
		}
		a.logger.Warn("Fullboard price not found, allowance falls back to zero",
			zap.String("fullboard_price_id", *e.FullboardPriceID))
	}
	return 0
}

func (a *Aggregator) warnMissingExpense(r *entity.Report) {
	a.logger.Warn("Report has no expense sub-report for its travel type, computing zero totals",
		zap.String("report_id", r.ID),
		zap.String("travel_type", r.TravelType))
}

// lodgingItem renders lodging as nights x nightly rate. A trip of n days
// spans n-1 nights, never less than one.
func lodgingItem(e *entity.OutCityExpense, duration int) LineItem {
	var lodging int64
	if e.LodgingCost != nil {
		lodging = *e.LodgingCost
	}
	nights := duration - 1
	if nights < 1 {
		nights = 1
	}
	return LineItem{
		Description: DescLodging,
		Amount:      lodging,
		Note:        fmt.Sprintf("%d Malam x %s", nights, FormatRupiah(lodging/int64(nights))),
	}
}

func allowanceNote(duration int, rate int64) string {
	return fmt.Sprintf("%d Hari x %s", duration, FormatRupiah(rate))
}

func appendPositive(items []LineItem, item LineItem) []LineItem {
	if item.Amount > 0 {
		items = append(items, item)
	}
	return items
}

func sumOptional(amounts ...*int64) int64 {
	var sum int64
	for _, a := range amounts {
		if a != nil {
			sum += *a
		}
	}
	return sum
}
