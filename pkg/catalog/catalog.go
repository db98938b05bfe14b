package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// StatusBaseline marks a feature that is broadly supported across major browsers.
const StatusBaseline = "baseline"

// StatusUnknown is used for features without compatibility data yet.
const StatusUnknown = "unknown"

// SinceUnspecified is the "since" label for features without a known baseline year.
const SinceUnspecified = "—"

// ErrUnknownFeature is returned when a feature id is not part of the catalog.
var ErrUnknownFeature = errors.New("unknown feature")

// FeatureDescriptor holds the static metadata of a single web platform feature
type FeatureDescriptor struct {
	ID       string            `json:"id" yaml:"id"`
	Name     string            `json:"name" yaml:"name"`
	Status   string            `json:"status" yaml:"status"` // "baseline", "unknown" or free-form
	Since    string            `json:"since" yaml:"since"`
	Browsers map[string]string `json:"browsers" yaml:"browsers"` // browser name -> minimum version
}

// IsBaseline reports whether the feature has baseline status.
func (d FeatureDescriptor) IsBaseline() bool {
	return d.Status == StatusBaseline
}

func (d FeatureDescriptor) clone() FeatureDescriptor {
	browsers := make(map[string]string, len(d.Browsers))
	for b, v := range d.Browsers {
		browsers[b] = v
	}
	d.Browsers = browsers
	return d
}

// Catalog is a read-only table of feature descriptors keyed by id.
// It is built once and shared by reference; nothing mutates it after New returns.
type Catalog struct {
	features map[string]FeatureDescriptor
}

// New builds a catalog from the given descriptors.
func New(descriptors ...FeatureDescriptor) (*Catalog, error) {
	features := make(map[string]FeatureDescriptor, len(descriptors))
	for _, d := range descriptors {
		if d.ID == "" {
			return nil, fmt.Errorf("catalog: descriptor %q has an empty id", d.Name)
		}
		if _, dup := features[d.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate feature id %q", d.ID)
		}
		features[d.ID] = d.clone()
	}
	return &Catalog{features: features}, nil
}

// Lookup returns a copy of the descriptor registered under id.
func (c *Catalog) Lookup(id string) (FeatureDescriptor, error) {
	d, ok := c.features[id]
	if !ok {
		return FeatureDescriptor{}, fmt.Errorf("%w: %s", ErrUnknownFeature, id)
	}
	return d.clone(), nil
}

// MustLookup is like Lookup but panics for ids outside the catalog.
// Detectors are validated against the catalog up front, so a miss here is a programming error.
func (c *Catalog) MustLookup(id string) FeatureDescriptor {
	d, err := c.Lookup(id)
	if err != nil {
		panic(err)
	}
	return d
}

// Has reports whether id is registered.
func (c *Catalog) Has(id string) bool {
	_, ok := c.features[id]
	return ok
}

// IDs returns all registered ids in lexical order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.features))
	for id := range c.features {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered features.
func (c *Catalog) Len() int {
	return len(c.features)
}
