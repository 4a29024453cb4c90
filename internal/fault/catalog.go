package fault

// Style tags a trigger for presentation only.
type Style string

const (
	StyleDanger  Style = "danger"
	StyleWarning Style = "warning"
	StyleInfo    Style = "info"
)

// Kind identifies the effect a trigger produces.
type Kind string

const (
	KindPanic         Kind = "panic"
	KindDeferredPanic Kind = "deferred-panic"
	KindRejection     Kind = "rejection"
	KindOverflow      Kind = "overflow"
	KindParse         Kind = "parse"
	KindNetwork       Kind = "network"
	KindGrowth        Kind = "growth"
	KindMessage       Kind = "message"
	KindBreadcrumbs   Kind = "breadcrumbs"
	KindBusiness      Kind = "business"
)

// Trigger is one zero-argument demo action. Triggers are stateless between
// invocations; each belongs to exactly one view's catalog.
type Trigger struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Style Style  `json:"style"`
	Kind  Kind   `json:"kind"`
}

// HomeCatalog is the full trigger set shown on the home view.
func HomeCatalog() []Trigger {
	return []Trigger{
		{Slug: "panic", Title: "Synchronous panic", Style: StyleDanger, Kind: KindPanic},
		{Slug: "deferred-panic", Title: "Deferred panic", Style: StyleDanger, Kind: KindDeferredPanic},
		{Slug: "rejection", Title: "Unhandled rejection", Style: StyleWarning, Kind: KindRejection},
		{Slug: "overflow", Title: "Recursive overflow", Style: StyleDanger, Kind: KindOverflow},
		{Slug: "parse", Title: "Malformed JSON parse", Style: StyleWarning, Kind: KindParse},
		{Slug: "network", Title: "Unreachable resource", Style: StyleWarning, Kind: KindNetwork},
		{Slug: "growth", Title: "Bounded memory growth", Style: StyleDanger, Kind: KindGrowth},
		{Slug: "message", Title: "Direct report", Style: StyleInfo, Kind: KindMessage},
		{Slug: "breadcrumbs", Title: "Breadcrumb trail + deferred panic", Style: StyleInfo, Kind: KindBreadcrumbs},
		{Slug: "business", Title: "Custom business error", Style: StyleDanger, Kind: KindBusiness},
	}
}

// AboutCatalog is the reduced set shown on the about view.
func AboutCatalog() []Trigger {
	return []Trigger{
		{Slug: "panic", Title: "Synchronous panic", Style: StyleDanger, Kind: KindPanic},
		{Slug: "rejection", Title: "Unhandled rejection", Style: StyleWarning, Kind: KindRejection},
		{Slug: "message", Title: "Direct report", Style: StyleInfo, Kind: KindMessage},
		{Slug: "business", Title: "Custom business error", Style: StyleDanger, Kind: KindBusiness},
	}
}

// Find looks a trigger up by slug within one catalog.
func Find(catalog []Trigger, slug string) (Trigger, bool) {
	for _, t := range catalog {
		if t.Slug == slug {
			return t, true
		}
	}
	return Trigger{}, false
}
