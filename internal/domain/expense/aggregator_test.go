package expense

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adiwidodo/perjadin/internal/domain/entity"
)

func i64(v int64) *int64 { return &v }

func strp(v string) *string { return &v }

func newTestAggregator(rates RateTable) *Aggregator {
	logger, _ := zap.NewDevelopment()
	return NewAggregator(rates, logger)
}

func TestAggregator_OutCityScenario(t *testing.T) {
	agg := newTestAggregator(RateTable{"fb-jatim": 500000})

	report := &entity.Report{
		ID:             "rpt-1",
		TravelType:     entity.TravelTypeOutCity,
		ActualDuration: 3,
		OutCityExpense: &entity.OutCityExpense{
			FullboardPriceID:    strp("fb-jatim"),
			OriginTransportCost: i64(200000),
			LodgingCost:         i64(300000),
		},
	}

	items := agg.LineItems(report)
	require.Len(t, items, 4)

	assert.Equal(t, DescTransport, items[0].Description)
	assert.Equal(t, int64(200000), items[0].Amount)

	assert.Equal(t, DescDailyAllowance, items[1].Description)
	assert.Equal(t, int64(1500000), items[1].Amount)
	assert.Equal(t, "3 Hari x Rp.500.000", items[1].Note)

	assert.Equal(t, DescLodging, items[2].Description)
	assert.Equal(t, int64(300000), items[2].Amount)
	assert.Equal(t, "2 Malam x Rp.150.000", items[2].Note)

	assert.Equal(t, DescRepresentation, items[3].Description)
	assert.Equal(t, int64(0), items[3].Amount)

	assert.Equal(t, int64(2000000), agg.Total(report))
}

func TestAggregator_InCity(t *testing.T) {
	agg := newTestAggregator(nil)

	report := &entity.Report{
		ID:             "rpt-2",
		TravelType:     entity.TravelTypeInCity,
		ActualDuration: 2,
		InCityExpense: &entity.InCityExpense{
			DailyAllowance:     150000,
			TransportationCost: 50000,
			VehicleRentalFee:   600000,
			ActualExpense:      50000,
		},
	}

	items := agg.LineItems(report)
	require.Len(t, items, 4)

	assert.Equal(t, DescTransport, items[0].Description)
	assert.Equal(t, int64(50000), items[0].Amount)

	assert.Equal(t, DescDailyAllowance, items[1].Description)
	assert.Equal(t, int64(300000), items[1].Amount)

	assert.Equal(t, DescVehicleRental, items[2].Description)
	assert.Equal(t, int64(600000), items[2].Amount)
	assert.Equal(t, "Rp.600.000 / 2 Hari", items[2].Note)

	assert.Equal(t, int64(950000), agg.Total(report))
	assert.Equal(t, int64(50000), agg.ActualExpenseTotal(report))
}

func TestAggregator_CustomAllowanceBeatsLookup(t *testing.T) {
	agg := newTestAggregator(RateTable{"fb-x": 999999})

	report := &entity.Report{
		TravelType:     entity.TravelTypeOutCity,
		ActualDuration: 2,
		OutCityExpense: &entity.OutCityExpense{
			CustomDailyAllowance: i64(100000),
		},
	}

	items := agg.LineItems(report)
	require.Len(t, items, 2)
	assert.Equal(t, DescDailyAllowance, items[0].Description)
	assert.Equal(t, int64(200000), items[0].Amount)
}

func TestAggregator_UnknownFullboardRateFallsBackToZero(t *testing.T) {
	agg := newTestAggregator(RateTable{})

	report := &entity.Report{
		TravelType:     entity.TravelTypeOutCity,
		ActualDuration: 5,
		OutCityExpense: &entity.OutCityExpense{
			FullboardPriceID: strp("missing"),
		},
	}

	items := agg.LineItems(report)
	// only the representation placeholder remains
	require.Len(t, items, 1)
	assert.Equal(t, DescRepresentation, items[0].Description)
	assert.Equal(t, int64(0), agg.Total(report))
}

func TestAggregator_MissingSubReportDegradesToZero(t *testing.T) {
	agg := newTestAggregator(nil)

	for _, travelType := range []string{entity.TravelTypeInCity, entity.TravelTypeOutCity, entity.TravelTypeOutCountry} {
		report := &entity.Report{ID: "rpt-x", TravelType: travelType}
		items := agg.LineItems(report)
		require.Len(t, items, 1, "travel type %s", travelType)
		assert.Equal(t, DescRepresentation, items[0].Description)
		assert.Equal(t, int64(0), agg.Total(report))
		assert.Equal(t, int64(0), agg.ActualExpenseTotal(report))
	}
}

func TestAggregator_TotalMatchesLineItemSum(t *testing.T) {
	agg := newTestAggregator(RateTable{"fb-1": 400000})

	reports := []*entity.Report{
		{TravelType: entity.TravelTypeOutCity, ActualDuration: 4, OutCityExpense: &entity.OutCityExpense{
			FullboardPriceID:         strp("fb-1"),
			OriginTransportCost:      i64(150000),
			LocalTransportCost:       i64(75000),
			DestinationTransportCost: i64(125000),
			RoundTripTicketCost:      i64(1200000),
			LodgingCost:              i64(900000),
		}},
		{TravelType: entity.TravelTypeInCity, InCityExpense: &entity.InCityExpense{
			DailyAllowance: 150000, TransportationCost: 30000,
		}},
		{TravelType: entity.TravelTypeOutCity},
	}

	for _, r := range reports {
		var sum int64
		for _, item := range agg.LineItems(r) {
			assert.GreaterOrEqual(t, item.Amount, int64(0))
			sum += item.Amount
		}
		assert.Equal(t, sum, agg.Total(r))
	}
}

func TestAggregator_DurationFloor(t *testing.T) {
	agg := newTestAggregator(nil)

	sameDay := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	report := &entity.Report{
		TravelType: entity.TravelTypeInCity,
		StartDate:  &sameDay,
		EndDate:    &sameDay,
		InCityExpense: &entity.InCityExpense{
			DailyAllowance:   100000,
			VehicleRentalFee: 500000,
		},
	}

	items := agg.LineItems(report)
	require.Len(t, items, 3)
	assert.Equal(t, int64(100000), items[0].Amount)
	assert.Equal(t, "1 Hari x Rp.100.000", items[0].Note)
	assert.Equal(t, "Rp.500.000 / 1 Hari", items[1].Note)
}

func TestAggregator_ActualExpenseIncludesLodgingShare(t *testing.T) {
	agg := newTestAggregator(nil)

	report := &entity.Report{
		TravelType:     entity.TravelTypeOutCity,
		ActualDuration: 3,
		OutCityExpense: &entity.OutCityExpense{
			ActualExpense: 250000,
			LodgingCost:   i64(1000000),
		},
	}

	// 250000 + 30% of 1000000
	assert.Equal(t, int64(550000), agg.ActualExpenseTotal(report))
}

func TestReportDuration(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		report entity.Report
		want   int
	}{
		{"actual duration override", entity.Report{ActualDuration: 5, StartDate: &start, EndDate: &end}, 5},
		{"inclusive day count", entity.Report{StartDate: &start, EndDate: &end}, 3},
		{"equal dates", entity.Report{StartDate: &start, EndDate: &start}, 1},
		{"zero actual duration ignored", entity.Report{ActualDuration: 0}, 1},
		{"no information", entity.Report{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.report.Duration())
		})
	}
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp.500.000", FormatRupiah(500000))
	assert.Equal(t, "Rp.1.500.000", FormatRupiah(1500000))
	assert.Equal(t, "Rp.0", FormatRupiah(0))
	assert.Equal(t, "Rp.999", FormatRupiah(999))
}

func TestOutCityExpense_NormalizeAllowance(t *testing.T) {
	t.Run("fullboard wins when both set", func(t *testing.T) {
		e := &entity.OutCityExpense{
			FullboardPriceID:     strp("fb-1"),
			CustomDailyAllowance: i64(123),
		}
		e.NormalizeAllowance()
		require.NotNil(t, e.FullboardPriceID)
		assert.Nil(t, e.CustomDailyAllowance)
	})

	t.Run("both absent stays absent", func(t *testing.T) {
		e := &entity.OutCityExpense{}
		e.NormalizeAllowance()
		assert.Nil(t, e.FullboardPriceID)
		assert.Nil(t, e.CustomDailyAllowance)
	})

	t.Run("custom alone is kept", func(t *testing.T) {
		e := &entity.OutCityExpense{CustomDailyAllowance: i64(123)}
		e.NormalizeAllowance()
		require.NotNil(t, e.CustomDailyAllowance)
		assert.Equal(t, int64(123), *e.CustomDailyAllowance)
	})
}
