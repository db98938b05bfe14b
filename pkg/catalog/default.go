package catalog

// Feature ids known to the built-in catalog.
const (
	CSSGrid             = "css-grid"
	Flexbox             = "flexbox"
	CSSContainerQueries = "css-container-queries"
	CSSHasPseudo        = "css-has-pseudo"
	CSSCustomProperties = "css-custom-properties"
	CSSPositionSticky   = "css-position-sticky"
	JSOptionalChaining  = "js-optional-chaining"
	JSNullishCoalescing = "js-nullish-coalescing"
	JSImportMaps        = "js-import-maps"
	JSESModules         = "js-es-modules"
)

// defaultDescriptors is the built-in feature table. Only grid and flexbox carry browser data,
// the others are placeholders until real compatibility data is wired in.
var defaultDescriptors = []FeatureDescriptor{
	{
		ID:     CSSGrid,
		Name:   "CSS Grid Layout",
		Status: StatusBaseline,
		Since:  "2017",
		Browsers: map[string]string{
			"chrome":  "57",
			"firefox": "52",
			"safari":  "10.1",
			"edge":    "16",
		},
	},
	{
		ID:     Flexbox,
		Name:   "CSS Flexible Box Layout",
		Status: StatusBaseline,
		Since:  "2012",
		Browsers: map[string]string{
			"chrome":  "29",
			"firefox": "28",
			"safari":  "9",
			"edge":    "12",
		},
	},
	placeholder(CSSContainerQueries, "CSS Container Queries"),
	placeholder(CSSHasPseudo, "CSS :has() Pseudo-class"),
	placeholder(CSSCustomProperties, "CSS Custom Properties (Variables)"),
	placeholder(CSSPositionSticky, "CSS position: sticky"),
	placeholder(JSOptionalChaining, "JS Optional Chaining (?.)"),
	placeholder(JSNullishCoalescing, "JS Nullish Coalescing (??)"),
	placeholder(JSImportMaps, "JS Import Maps"),
	placeholder(JSESModules, "JS ES Modules"),
}

func placeholder(id, name string) FeatureDescriptor {
	return FeatureDescriptor{
		ID:       id,
		Name:     name,
		Status:   StatusUnknown,
		Since:    SinceUnspecified,
		Browsers: map[string]string{},
	}
}

// Default returns a freshly built copy of the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultDescriptors...)
	if err != nil {
		// the table above is static; failing here means it was edited incorrectly
		panic(err)
	}
	return c
}
