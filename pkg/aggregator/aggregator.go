package aggregator

import "sync"

const (
	// MaxLocations is the number of real locations kept per feature.
	MaxLocations = 10
	// TruncationSentinel is appended once a feature is seen in more than MaxLocations places.
	TruncationSentinel = "... and more"
)

// FeatureRecord holds the hits accumulated for one feature during a scan
type FeatureRecord struct {
	ID        string
	Count     int      // total number of hits, not capped
	Locations []string // at most MaxLocations entries plus TruncationSentinel
}

type entry struct {
	count     int
	locations *BoundedList
}

// Aggregator collects detector hits for a single scan session.
// Record is safe for concurrent use.
type Aggregator struct {
	mu       sync.Mutex
	features map[string]*entry
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{features: make(map[string]*entry)}
}

// Record counts one hit of featureID at location.
func (a *Aggregator) Record(featureID, location string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.features[featureID]
	if !ok {
		e = &entry{locations: NewBoundedList(MaxLocations, TruncationSentinel)}
		a.features[featureID] = e
	}
	e.count++
	e.locations.Push(location)
}

// RecordAll records a hit for each id at location.
func (a *Aggregator) RecordAll(featureIDs []string, location string) {
	for _, id := range featureIDs {
		a.Record(id, location)
	}
}

// Snapshot returns a copy of the current records keyed by feature id.
func (a *Aggregator) Snapshot() map[string]FeatureRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := make(map[string]FeatureRecord, len(a.features))
	for id, e := range a.features {
		snap[id] = FeatureRecord{
			ID:        id,
			Count:     e.count,
			Locations: e.locations.Items(),
		}
	}
	return snap
}

// Len returns the number of distinct features recorded so far.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.features)
}
