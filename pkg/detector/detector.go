package detector

import (
	"fmt"

	"github.com/sambabib/webcompat/pkg/catalog"
)

// Set is an ordered, immutable collection of detection rules.
type Set struct {
	rules []Rule
}

// NewSet validates rules against cat and returns a Set evaluating them in the given order.
// With no rules, DefaultRules is used.
func NewSet(cat *catalog.Catalog, rules ...Rule) (*Set, error) {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	for _, r := range rules {
		if r.Pattern == nil {
			return nil, fmt.Errorf("detector: rule %q has no pattern", r.Name)
		}
		if !cat.Has(r.Feature) {
			return nil, fmt.Errorf("detector: rule %q: %w: %s", r.Name, catalog.ErrUnknownFeature, r.Feature)
		}
	}
	return &Set{rules: append([]Rule(nil), rules...)}, nil
}

// Rules returns a copy of the rule table.
func (s *Set) Rules() []Rule {
	return append([]Rule(nil), s.rules...)
}

// Detect returns the distinct feature ids whose rules match content of type t,
// in rule order. It has no side effects.
func (s *Set) Detect(content string, t ContentType) []string {
	found := []string{}
	seen := make(map[string]bool)
	for _, r := range s.rules {
		if seen[r.Feature] || !r.AppliesTo(t) {
			continue
		}
		if r.Pattern.Match(content) {
			seen[r.Feature] = true
			found = append(found, r.Feature)
		}
	}
	return found
}

// DetectLocation classifies location and runs Detect with the resulting type.
func (s *Set) DetectLocation(content, location string) []string {
	return s.Detect(content, Classify(location))
}
