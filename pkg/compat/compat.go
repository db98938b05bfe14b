package compat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Support outcomes for a single browser target.
const (
	Supported   = "supported"
	Unsupported = "unsupported"
	Unknown     = "unknown"
)

// Targets maps a browser name (e.g. "chrome") to the oldest version a project supports
type Targets map[string]string

// ParseTargets parses a comma separated list such as "chrome=90,safari=14.1".
func ParseTargets(s string) (Targets, error) {
	targets := Targets{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		browser, version, ok := strings.Cut(part, "=")
		browser = strings.ToLower(strings.TrimSpace(browser))
		version = strings.TrimSpace(version)
		if !ok || browser == "" || version == "" {
			return nil, fmt.Errorf("invalid browser target %q (expected browser=version)", part)
		}
		if _, err := semver.NewVersion(version); err != nil {
			return nil, fmt.Errorf("invalid version for browser target %q: %w", browser, err)
		}
		targets[browser] = version
	}
	return targets, nil
}

// Merge returns a copy of t overlaid with other; entries in other win.
func (t Targets) Merge(other Targets) Targets {
	merged := Targets{}
	for b, v := range t {
		merged[strings.ToLower(b)] = v
	}
	for b, v := range other {
		merged[strings.ToLower(b)] = v
	}
	return merged
}

// TargetSupport is the outcome of checking one browser target against a feature
type TargetSupport struct {
	Browser  string `json:"browser" yaml:"browser"`
	Target   string `json:"target" yaml:"target"`
	Required string `json:"required,omitempty" yaml:"required,omitempty"` // minimum version needed by the feature
	Status   string `json:"status" yaml:"status"`
}

// Evaluate checks each target browser against the feature's minimum versions.
// Results are ordered by browser name.
func Evaluate(browsers map[string]string, targets Targets) []TargetSupport {
	if len(targets) == 0 {
		return nil
	}
	names := make([]string, 0, len(targets))
	for b := range targets {
		names = append(names, b)
	}
	sort.Strings(names)

	results := make([]TargetSupport, 0, len(names))
	for _, b := range names {
		ts := TargetSupport{Browser: b, Target: targets[b], Required: browsers[b], Status: Unknown}
		if ts.Required != "" {
			ts.Status = compare(ts.Required, ts.Target)
		}
		results = append(results, ts)
	}
	return results
}

func compare(required, target string) string {
	minimum, err := semver.NewVersion(required)
	if err != nil {
		return Unknown
	}
	have, err := semver.NewVersion(target)
	if err != nil {
		return Unknown
	}
	if have.LessThan(minimum) {
		return Unsupported
	}
	return Supported
}

// Summarize folds per-browser results into one status: unsupported if any target is
// unsupported, supported if all are supported, unknown otherwise.
func Summarize(results []TargetSupport) string {
	if len(results) == 0 {
		return Unknown
	}
	all := true
	for _, r := range results {
		switch r.Status {
		case Unsupported:
			return Unsupported
		case Unknown:
			all = false
		}
	}
	if all {
		return Supported
	}
	return Unknown
}
