package console

// SizeClass declares how many grid columns a widget spans.
type SizeClass string

// Known size classes. Anything else falls back to the default span.
const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
	SizeXLarge SizeClass = "xlarge"
)

// GridColumns is the fixed width of the dashboard grid.
const GridColumns = 12

// Span maps the size class to its column span: small 3, medium 6, large 9,
// xlarge 12, everything else 4.
func (s SizeClass) Span() int {
	switch s {
	case SizeSmall:
		return 3
	case SizeMedium:
		return 6
	case SizeLarge:
		return 9
	case SizeXLarge:
		return 12
	default:
		return 4
	}
}

// Widget is a single dashboard panel bound to one backend module's data.
// ID is required and explicit; there is no derived-identity fallback. Kind
// references a registered WidgetDefinition and selects the data provider.
type Widget struct {
	ID     string         `json:"id" yaml:"id"`
	Kind   string         `json:"kind" yaml:"kind"`
	Title  string         `json:"title" yaml:"title"`
	Module string         `json:"module,omitempty" yaml:"module,omitempty"`
	Size   SizeClass      `json:"size,omitempty" yaml:"size,omitempty"`
	Config map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// WidgetDefinition describes a widget kind: display metadata plus the JSON
// schema its per-widget configuration must satisfy.
type WidgetDefinition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
	DefaultSize SizeClass      `json:"default_size,omitempty" yaml:"default_size,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// LayoutEntry places one widget on the grid. Row starts at 1, Col is 1..12.
type LayoutEntry struct {
	WidgetID string `json:"widget_id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

// GridLayout assigns a position to every widget on one dashboard.
type GridLayout map[string]LayoutEntry

// Clone returns an independent copy.
func (l GridLayout) Clone() GridLayout {
	if l == nil {
		return nil
	}
	out := make(GridLayout, len(l))
	for id, entry := range l {
		out[id] = entry
	}
	return out
}

// HiddenSet flags widgets excluded from grid rendering.
type HiddenSet map[string]bool

// Clone returns an independent copy.
func (h HiddenSet) Clone() HiddenSet {
	if h == nil {
		return nil
	}
	out := make(HiddenSet, len(h))
	for id, hidden := range h {
		out[id] = hidden
	}
	return out
}

// Dashboard is a named collection of widgets with its own persisted layout.
type Dashboard struct {
	ID      string   `json:"id" yaml:"id"`
	Title   string   `json:"title" yaml:"title"`
	Widgets []Widget `json:"widgets" yaml:"widgets"`
}
