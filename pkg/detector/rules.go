package detector

import (
	"regexp"
	"strings"

	"github.com/sambabib/webcompat/pkg/catalog"
)

// Matcher tests raw content for a pattern
type Matcher interface {
	Match(content string) bool
	String() string
}

type substrings []string

// Contains matches when any of the literal substrings occurs in the content.
func Contains(literals ...string) Matcher {
	return substrings(literals)
}

func (s substrings) Match(content string) bool {
	for _, lit := range s {
		if strings.Contains(content, lit) {
			return true
		}
	}
	return false
}

func (s substrings) String() string {
	return strings.Join(s, " | ")
}

type expressions []*regexp.Regexp

// Regexp matches when any of the expressions matches the content.
// It panics if an expression does not compile, like regexp.MustCompile.
func Regexp(exprs ...string) Matcher {
	res := make(expressions, 0, len(exprs))
	for _, e := range exprs {
		res = append(res, regexp.MustCompile(e))
	}
	return res
}

func (e expressions) Match(content string) bool {
	for _, re := range e {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

func (e expressions) String() string {
	parts := make([]string, 0, len(e))
	for _, re := range e {
		parts = append(parts, re.String())
	}
	return strings.Join(parts, " | ")
}

// Rule pairs a content-type condition and a pattern with the feature it signals
type Rule struct {
	Name    string
	Types   []ContentType // empty means the rule applies to every content type
	Pattern Matcher
	Feature string
}

// AppliesTo reports whether the rule is evaluated for content of type t.
func (r Rule) AppliesTo(t ContentType) bool {
	if len(r.Types) == 0 {
		return true
	}
	for _, rt := range r.Types {
		if rt == t {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in rule table in evaluation order.
//
// The grid and flex rules apply to every content type, so they also fire on matching text
// inside scripts or markup. This is a plain substring heuristic.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "display-grid",
			Pattern: Contains("display: grid", "display:grid"),
			Feature: catalog.CSSGrid,
		},
		{
			Name:    "display-flex",
			Pattern: Contains("display: flex", "display:flex"),
			Feature: catalog.Flexbox,
		},
		{
			Name:    "container-queries",
			Types:   []ContentType{CSS},
			Pattern: Regexp(`@container\b`, `container-type\s*:`),
			Feature: catalog.CSSContainerQueries,
		},
		{
			Name:    "has-pseudo",
			Types:   []ContentType{CSS},
			Pattern: Regexp(`:has\s*\(`),
			Feature: catalog.CSSHasPseudo,
		},
		{
			Name:    "custom-properties",
			Types:   []ContentType{CSS},
			Pattern: Regexp(`--[a-zA-Z0-9_-]+\s*:`),
			Feature: catalog.CSSCustomProperties,
		},
		{
			Name:    "position-sticky",
			Types:   []ContentType{CSS},
			Pattern: Regexp(`position\s*:\s*sticky\b`),
			Feature: catalog.CSSPositionSticky,
		},
		{
			Name:    "import-map-script",
			Types:   []ContentType{HTML},
			Pattern: Regexp(`(?i)<script[^>]+type\s*=\s*["']importmap["']`),
			Feature: catalog.JSImportMaps,
		},
		{
			Name:    "module-script",
			Types:   []ContentType{HTML},
			Pattern: Regexp(`(?i)<script[^>]+type\s*=\s*["']module["']`),
			Feature: catalog.JSESModules,
		},
		{
			Name:    "optional-chaining",
			Types:   []ContentType{JS},
			Pattern: Regexp(`\?\.`),
			Feature: catalog.JSOptionalChaining,
		},
		{
			Name:    "nullish-coalescing",
			Types:   []ContentType{JS},
			Pattern: Regexp(`\?\?`),
			Feature: catalog.JSNullishCoalescing,
		},
		{
			// naive: also matches inside comments
			Name:    "esm-syntax",
			Types:   []ContentType{JS},
			Pattern: Regexp(`\bimport\s+[^'"].*from\s+['"][^'"]+['"]`, `\bexport\s+(default|\{)`),
			Feature: catalog.JSESModules,
		},
	}
}
