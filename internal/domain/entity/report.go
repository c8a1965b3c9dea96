package entity

import "time"

// Report is the aggregate root of one official travel claim. It owns at most
// one expense sub-report (variant chosen by TravelType), at most one
// narrative report and zero or more reviews.
type Report struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id"`
	AssignmentID   string     `json:"assignment_id"`
	TravelType     string     `json:"travel_type"`
	Status         string     `json:"status"`
	ActualDuration int        `json:"actual_duration"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`

	InCityExpense  *InCityExpense   `json:"in_city_expense,omitempty"`
	OutCityExpense *OutCityExpense  `json:"out_city_expense,omitempty"`
	Narrative      *NarrativeReport `json:"narrative,omitempty"`
	Reviews        []*Review        `json:"reviews,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Duration returns the trip duration in days, never less than 1.
// ActualDuration overrides the assignment dates when set.
func (r *Report) Duration() int {
	if r.ActualDuration > 0 {
		return r.ActualDuration
	}
	if r.StartDate != nil && r.EndDate != nil {
		days := int(r.EndDate.Sub(*r.StartDate).Hours()/24) + 1
		if days > 0 {
			return days
		}
	}
	return 1
}

// HasExpense reports whether the expense sub-report matching the declared
// travel type is loaded. Out-of-country reports carry no expense variant.
func (r *Report) HasExpense() bool {
	switch r.TravelType {
	case TravelTypeInCity:
		return r.InCityExpense != nil
	case TravelTypeOutCity:
		return r.OutCityExpense != nil
	case TravelTypeOutCountry:
		return true
	}
	return false
}

// HasNarrative reports whether the narrative report is loaded.
func (r *Report) HasNarrative() bool {
	return r.Narrative != nil
}
