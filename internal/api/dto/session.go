package dto

type StopResponse struct {
	Index    int     `json:"index"`
	Label    string  `json:"label"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Endpoint bool    `json:"endpoint"`
}

type SessionResponse struct {
	ID             string           `json:"id"`
	Stops          []StopResponse   `json:"stops"`
	Anchored       bool             `json:"anchored"`
	Subtitle       string           `json:"subtitle"`
	Theme          string           `json:"theme"`
	Busy           bool             `json:"busy"`
	SummaryVisible bool             `json:"summary_visible"`
	Summary        *SummaryResponse `json:"summary,omitempty"`
}

type AddStopRequest struct {
	Query string `json:"query"`
}

// From is a pointer so an unset drag source can be expressed as null.
type MoveStopRequest struct {
	From *int `json:"from"`
	To   int  `json:"to"`
}

type ThemeRequest struct {
	Theme string `json:"theme"`
}

type ThemeResponse struct {
	Theme string `json:"theme"`
}
