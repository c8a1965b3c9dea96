package entity

import "time"

// InCityExpense is the expense sub-report for in-city travel. The daily
// allowance is stored as an already-resolved per-day amount; lodging is not
// modeled for in-city trips.
type InCityExpense struct {
	ID                 string    `json:"id"`
	ReportID           string    `json:"report_id"`
	DailyAllowance     int64     `json:"daily_allowance"`
	TransportationCost int64     `json:"transportation_cost"`
	VehicleRentalFee   int64     `json:"vehicle_rental_fee"`
	ActualExpense      int64     `json:"actual_expense"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// OutCityExpense is the expense sub-report for out-of-city travel. The daily
// allowance comes from either a fullboard rate reference or an explicit
// per-day amount, never both. The five cost legs are independently optional,
// each paired with a receipt reference.
type OutCityExpense struct {
	ID       string `json:"id"`
	ReportID string `json:"report_id"`

	FullboardPriceID     *string `json:"fullboard_price_id,omitempty"`
	CustomDailyAllowance *int64  `json:"custom_daily_allowance,omitempty"`

	OriginTransportCost         *int64 `json:"origin_transport_cost,omitempty"`
	OriginTransportReceipt      string `json:"origin_transport_receipt,omitempty"`
	LocalTransportCost          *int64 `json:"local_transport_cost,omitempty"`
	LocalTransportReceipt       string `json:"local_transport_receipt,omitempty"`
	LodgingCost                 *int64 `json:"lodging_cost,omitempty"`
	LodgingReceipt              string `json:"lodging_receipt,omitempty"`
	DestinationTransportCost    *int64 `json:"destination_transport_cost,omitempty"`
	DestinationTransportReceipt string `json:"destination_transport_receipt,omitempty"`
	RoundTripTicketCost         *int64 `json:"round_trip_ticket_cost,omitempty"`
	RoundTripTicketReceipt      string `json:"round_trip_ticket_receipt,omitempty"`

	ActualExpense int64 `json:"actual_expense"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeAllowance enforces the mutual exclusivity of the allowance
// source: when both a fullboard reference and a custom per-day amount are
// supplied, the fullboard reference wins and the custom amount is cleared.
// Must run before the record is persisted.
func (e *OutCityExpense) NormalizeAllowance() {
	if e.FullboardPriceID != nil && e.CustomDailyAllowance != nil {
		e.CustomDailyAllowance = nil
	}
}

// FullboardPrice is a province-indexed fixed daily all-inclusive allowance
// rate used by out-of-city expense sub-reports.
type FullboardPrice struct {
	ID       string `json:"id"`
	Province string `json:"province"`
	Rate     int64  `json:"rate"`
}
