package domain

import "fmt"

// NotFoundError reports that geocoding yielded no match for a query.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("location not found: %s", e.Query)
}

// RoutingError reports that the routing service rejected or failed a pair.
type RoutingError struct {
	From string
	To   string
	Err  error
}

func (e *RoutingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("routing failed: %s → %s: %v", e.From, e.To, e.Err)
	}
	return fmt.Sprintf("routing failed: %s → %s", e.From, e.To)
}

func (e *RoutingError) Unwrap() error { return e.Err }

// Pair is the human readable description of the failed leg.
func (e *RoutingError) Pair() string { return e.From + " → " + e.To }

type InsufficientStopsError struct {
	Count int
}

func (e *InsufficientStopsError) Error() string {
	return fmt.Sprintf("add at least 2 stops to calculate a route (have %d)", e.Count)
}

// IndexError reports a stop list position that is out of range or protected.
type IndexError struct {
	Index  int
	Reason string
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("stop index %d: %s", e.Index, e.Reason)
}
