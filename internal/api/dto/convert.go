package dto

import (
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/services"
)

func FromSessionView(v services.SessionView) SessionResponse {
	res := SessionResponse{
		ID:             v.ID,
		Stops:          make([]StopResponse, 0, len(v.Stops)),
		Anchored:       v.Anchored,
		Subtitle:       v.Subtitle,
		Theme:          string(v.Theme),
		Busy:           v.Busy,
		SummaryVisible: v.SummaryVisible,
	}
	for _, s := range v.Stops {
		res.Stops = append(res.Stops, StopResponse{
			Index:    s.Index,
			Label:    s.Label,
			Name:     s.Point.Name,
			Lat:      s.Point.Lat,
			Lng:      s.Point.Lng,
			Endpoint: s.Endpoint,
		})
	}
	if v.Summary != nil {
		sum := FromSummary(v.Summary)
		res.Summary = &sum
	}
	return res
}

func FromSummary(s *domain.TripSummary) SummaryResponse {
	res := SummaryResponse{
		Legs:                 make([]LegResponse, 0, len(s.Legs)),
		TotalDistanceMeters:  s.TotalDistanceMeters,
		TotalDurationSeconds: s.TotalDurationSeconds,
		TotalDistanceText:    domain.FormatDistance(s.TotalDistanceMeters),
		TotalDurationText:    domain.FormatDuration(s.TotalDurationSeconds),
	}

	for _, lr := range s.Legs {
		path := make([][2]float64, 0, len(lr.Result.Path))
		for _, c := range lr.Result.Path {
			path = append(path, [2]float64{c.Lat, c.Lng})
		}
		res.Legs = append(res.Legs, LegResponse{
			From:            lr.Leg.From.Name,
			To:              lr.Leg.To.Name,
			IsReturn:        lr.Leg.IsReturn,
			DistanceMeters:  lr.Result.DistanceMeters,
			DurationSeconds: lr.Result.DurationSeconds,
			DistanceText:    domain.FormatDistance(lr.Result.DistanceMeters),
			DurationText:    domain.FormatDuration(lr.Result.DurationSeconds),
			Path:            path,
		})
	}

	if s.EstimatedCost != nil {
		res.EstimatedCost = &CostResponse{
			Profile: s.CostProfile,
			Amount:  *s.EstimatedCost,
			Text:    domain.FormatCost(*s.EstimatedCost),
		}
	}

	return res
}
