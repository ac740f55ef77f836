package osm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"roadtrip-planner/internal/domain"
	"roadtrip-planner/internal/platform/obs"
	"strconv"
	"strings"
)

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Resolve looks up query with Nominatim, asking for a single match.
func (c *Client) Resolve(ctx context.Context, query string) (_ domain.GeoPoint, err error) {
	defer obs.Time(ctx, "nominatim.Resolve")(&err)

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.GeoPoint{}, errors.New("resolve: query must be non-empty")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := c.newRequest(ctx, http.MethodGet, c.nominatimURL+"/search?"+params.Encode())
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("resolve %q: %w", query, err)
	}

	resp, err := c.do(req)
	if err != nil {
		c.observeGeocode("error")
		return domain.GeoPoint{}, fmt.Errorf("resolve %q: execute request: %w", query, err)
	}
	defer resp.Body.Close()

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.observeGeocode("error")
		return domain.GeoPoint{}, fmt.Errorf("resolve %q: decode geocode response: %w", query, err)
	}

	if len(results) == 0 {
		c.observeGeocode("not_found")
		return domain.GeoPoint{}, &domain.NotFoundError{Query: query}
	}

	top := results[0]
	lat, err := strconv.ParseFloat(strings.TrimSpace(top.Lat), 64)
	if err != nil {
		c.observeGeocode("error")
		return domain.GeoPoint{}, fmt.Errorf("resolve %q: invalid latitude %q: %w", query, top.Lat, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(top.Lon), 64)
	if err != nil {
		c.observeGeocode("error")
		return domain.GeoPoint{}, fmt.Errorf("resolve %q: invalid longitude %q: %w", query, top.Lon, err)
	}

	name := domain.ShortName(top.DisplayName)
	if name == "" {
		name = query
	}

	p, err := domain.NewGeoPoint(name, lat, lng)
	if err != nil {
		c.observeGeocode("error")
		return domain.GeoPoint{}, fmt.Errorf("resolve %q: %w", query, err)
	}

	c.observeGeocode("ok")
	return p, nil
}
