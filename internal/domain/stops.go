package domain

// NoSource marks a reorder with no active drag source. MoveTo treats it as a no-op.
const NoSource = -1

type ChangeKind string

const (
	StopAppended ChangeKind = "appended"
	StopRemoved  ChangeKind = "removed"
	StopMoved    ChangeKind = "moved"
)

// Change describes a completed Stop List mutation. Stops is a snapshot taken
// after the mutation.
type Change struct {
	Kind   ChangeKind
	Index  int
	Target int
	Stops  []GeoPoint
}

// StopList is the ordered itinerary. Insertion order is itinerary order.
//
// In the free-form variant every position is mutable. In the anchored variant
// index 0 (origin) and the last index (destination) are fixed and only the
// middle sub-sequence can be changed.
//
// StopList is not safe for concurrent use; the owning session serializes access.
type StopList struct {
	points    []GeoPoint
	anchored  bool
	observers []func(Change)
}

func NewStopList(initial ...GeoPoint) *StopList {
	points := make([]GeoPoint, len(initial))
	copy(points, initial)
	return &StopList{points: points}
}

// NewAnchoredStopList brackets a mutable middle with a fixed origin and destination.
func NewAnchoredStopList(origin, destination GeoPoint) *StopList {
	return &StopList{
		points:   []GeoPoint{origin, destination},
		anchored: true,
	}
}

func (l *StopList) Anchored() bool { return l.anchored }

func (l *StopList) Len() int { return len(l.points) }

// Snapshot returns a copy of the current itinerary.
func (l *StopList) Snapshot() []GeoPoint {
	out := make([]GeoPoint, len(l.points))
	copy(out, l.points)
	return out
}

// Subscribe registers fn to run synchronously after every mutation.
func (l *StopList) Subscribe(fn func(Change)) {
	l.observers = append(l.observers, fn)
}

// Append adds p to the end of the itinerary, or just before the destination
// when the list is anchored.
func (l *StopList) Append(p GeoPoint) {
	idx := len(l.points)
	if l.anchored {
		idx = len(l.points) - 1
	}
	l.points = insertAt(l.points, idx, p)
	l.notify(Change{Kind: StopAppended, Index: idx, Target: idx})
}

// RemoveAt deletes the stop at index and shifts later stops left.
func (l *StopList) RemoveAt(index int) error {
	if err := l.checkMutable(index, len(l.points)); err != nil {
		return err
	}
	l.points = append(l.points[:index], l.points[index+1:]...)
	l.notify(Change{Kind: StopRemoved, Index: index, Target: index})
	return nil
}

// MoveTo removes the stop at source and reinserts it at target, where target
// is an index in the post-removal list. Equal indexes and NoSource are no-ops.
func (l *StopList) MoveTo(source, target int) error {
	if source == NoSource || source == target {
		return nil
	}
	if err := l.checkMutable(source, len(l.points)); err != nil {
		return err
	}
	// The post-removal list has one fewer element, but inserting at its
	// length (the end) is allowed, so the bound is unchanged.
	if err := l.checkMutable(target, len(l.points)); err != nil {
		return err
	}

	moved := l.points[source]
	rest := append(l.points[:source:source], l.points[source+1:]...)
	l.points = insertAt(rest, target, moved)
	l.notify(Change{Kind: StopMoved, Index: source, Target: target})
	return nil
}

// Labels returns the positional labels for the current itinerary.
func (l *StopList) Labels() []string {
	out := make([]string, len(l.points))
	for i := range l.points {
		out[i] = Label(i)
	}
	return out
}

// IsEndpoint reports whether index is the first or last stop.
func (l *StopList) IsEndpoint(index int) bool {
	return IsEndpoint(index, len(l.points))
}

func IsEndpoint(index, n int) bool {
	return n > 0 && (index == 0 || index == n-1)
}

func (l *StopList) checkMutable(index, n int) error {
	if index < 0 || index >= n {
		return &IndexError{Index: index, Reason: "out of range"}
	}
	if l.anchored && (index == 0 || index == n-1) {
		return &IndexError{Index: index, Reason: "fixed anchor cannot be changed"}
	}
	return nil
}

func (l *StopList) notify(c Change) {
	c.Stops = l.Snapshot()
	for _, fn := range l.observers {
		fn(c)
	}
}

func insertAt(points []GeoPoint, idx int, p GeoPoint) []GeoPoint {
	points = append(points, GeoPoint{})
	copy(points[idx+1:], points[idx:])
	points[idx] = p
	return points
}
