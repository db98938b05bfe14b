package report

import (
	"sort"
	"time"

	"github.com/sambabib/webcompat/pkg/aggregator"
	"github.com/sambabib/webcompat/pkg/catalog"
	"github.com/sambabib/webcompat/pkg/compat"
)

// TimestampLayout is the ISO-8601 UTC layout used for report timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FeatureSummary is one detected feature as it appears in a report
type FeatureSummary struct {
	ID        string                 `json:"id" yaml:"id"`
	Name      string                 `json:"name" yaml:"name"`
	Status    string                 `json:"status" yaml:"status"`
	Since     string                 `json:"since" yaml:"since"`
	Browsers  map[string]string      `json:"browsers" yaml:"browsers"`
	Locations []string               `json:"locations" yaml:"locations"`
	Count     int                    `json:"count" yaml:"count"`
	Targets   []compat.TargetSupport `json:"targets,omitempty" yaml:"targets,omitempty"` // only when browser targets are configured
}

// ScanReport is the result of a single scan
type ScanReport struct {
	Timestamp string           `json:"timestamp" yaml:"timestamp"`
	Project   string           `json:"project" yaml:"project"`
	Features  []FeatureSummary `json:"features" yaml:"features"`
}

// Options tweak report construction.
type Options struct {
	Targets compat.Targets   // evaluated against each feature's browser data when set
	Now     func() time.Time // defaults to time.Now
}

// Timestamp formats t the way reports store it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Build joins the aggregated records with their catalog descriptors and returns the
// sorted report. Features without hits are not part of the snapshot and never appear.
func Build(snapshot map[string]aggregator.FeatureRecord, cat *catalog.Catalog, project string, opts Options) *ScanReport {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	features := make([]FeatureSummary, 0, len(snapshot))
	for id, rec := range snapshot {
		d := cat.MustLookup(id)
		features = append(features, FeatureSummary{
			ID:        id,
			Name:      d.Name,
			Status:    d.Status,
			Since:     d.Since,
			Browsers:  d.Browsers,
			Locations: append([]string{}, rec.Locations...),
			Count:     rec.Count,
			Targets:   compat.Evaluate(d.Browsers, opts.Targets),
		})
	}
	Sort(features)

	return &ScanReport{
		Timestamp: Timestamp(now()),
		Project:   project,
		Features:  features,
	}
}

// Sort orders features baseline first, then by status, display name and id.
func Sort(features []FeatureSummary) {
	sort.SliceStable(features, func(i, j int) bool {
		a, b := features[i], features[j]
		if ra, rb := statusRank(a.Status), statusRank(b.Status); ra != rb {
			return ra < rb
		}
		if a.Status != b.Status {
			return a.Status < b.Status
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}

func statusRank(status string) int {
	if status == catalog.StatusBaseline {
		return 0
	}
	return 1
}

// Feature returns the summary for id, if the feature was detected.
func (r *ScanReport) Feature(id string) (FeatureSummary, bool) {
	for _, f := range r.Features {
		if f.ID == id {
			return f, true
		}
	}
	return FeatureSummary{}, false
}

// FeatureIDs returns the ids of all reported features in report order.
func (r *ScanReport) FeatureIDs() []string {
	ids := make([]string, 0, len(r.Features))
	for _, f := range r.Features {
		ids = append(ids, f.ID)
	}
	return ids
}
