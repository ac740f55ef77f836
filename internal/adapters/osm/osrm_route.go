package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/platform/obs"
	"strconv"
	"strings"
)

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route asks OSRM for a driving path from -> to. Every call issues exactly one request.
func (c *Client) Route(ctx context.Context, from, to domain.GeoPoint) (_ domain.RouteResult, err error) {
	defer obs.Time(ctx, "osrm.Route")(&err)

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s;%s?overview=full&geometries=geojson&steps=false",
		c.osrmURL, c.profile, coordParam(from), coordParam(to),
	)

	req, err := c.newRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return domain.RouteResult{}, &domain.RoutingError{From: from.Name, To: to.Name, Err: err}
	}

	// OSRM reports failures such as NoRoute with a 4xx status and a JSON body,
	// so the body is decoded regardless of status.
	resp, err := c.session.Do(req)
	if err != nil {
		c.observeRoute("error")
		return domain.RouteResult{}, &domain.RoutingError{From: from.Name, To: to.Name, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observeRoute("error")
		return domain.RouteResult{}, &domain.RoutingError{From: from.Name, To: to.Name, Err: fmt.Errorf("read response: %w", err)}
	}

	var decoded routeResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		c.observeRoute("error")
		if resp.StatusCode != http.StatusOK {
			err = &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		}
		return domain.RouteResult{}, &domain.RoutingError{From: from.Name, To: to.Name, Err: err}
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		c.observeRoute("rejected")
		return domain.RouteResult{}, &domain.RoutingError{
			From: from.Name,
			To:   to.Name,
			Err:  fmt.Errorf("status %q: %s", decoded.Code, decoded.Message),
		}
	}

	route := decoded.Routes[0]
	path := make([]domain.LatLng, 0, len(route.Geometry.Coordinates))
	for _, pt := range route.Geometry.Coordinates {
		if len(pt) < 2 {
			continue
		}
		// GeoJSON order is [lng, lat].
		path = append(path, domain.LatLng{Lat: pt[1], Lng: pt[0]})
	}

	c.observeRoute("ok")
	return domain.RouteResult{
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
		Path:            path,
	}, nil
}

func coordParam(p domain.GeoPoint) string {
	return strconv.FormatFloat(p.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
}
