package dto

type TripRequest struct {
	IncludeReturn bool     `json:"include_return"`
	RatePerKm     *float64 `json:"rate_per_km"`
	Profile       string   `json:"profile"`
}

type LegResponse struct {
	From            string       `json:"from"`
	To              string       `json:"to"`
	IsReturn        bool         `json:"is_return"`
	DistanceMeters  float64      `json:"distance_meters"`
	DurationSeconds float64      `json:"duration_seconds"`
	DistanceText    string       `json:"distance_text"`
	DurationText    string       `json:"duration_text"`
	Path            [][2]float64 `json:"path"`
}

type CostResponse struct {
	Profile string  `json:"profile"`
	Amount  float64 `json:"amount"`
	Text    string  `json:"text"`
}

type SummaryResponse struct {
	Legs                 []LegResponse `json:"legs"`
	TotalDistanceMeters  float64       `json:"total_distance_meters"`
	TotalDurationSeconds float64       `json:"total_duration_seconds"`
	TotalDistanceText    string        `json:"total_distance_text"`
	TotalDurationText    string        `json:"total_duration_text"`
	EstimatedCost        *CostResponse `json:"estimated_cost,omitempty"`
}
