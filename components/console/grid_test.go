package console

import (
	"reflect"
	"testing"
)

func TestSpanPerSizeClass(t *testing.T) {
	cases := map[SizeClass]int{
		SizeSmall:       3,
		SizeMedium:      6,
		SizeLarge:       9,
		SizeXLarge:      12,
		SizeClass(""):   4,
		SizeClass("xx"): 4,
	}
	for size, want := range cases {
		if got := size.Span(); got != want {
			t.Fatalf("span for %q: got %d want %d", size, got, want)
		}
	}
}

func TestGenerateDefaultLayoutFirstFit(t *testing.T) {
	widgets := []Widget{
		{ID: "A", Size: SizeMedium}, // cols 1-6
		{ID: "B", Size: SizeSmall},  // cols 7-9
		{ID: "C", Size: SizeLarge},  // 9 cols do not fit at col 10, wraps
	}
	layout := GenerateDefaultLayout(widgets)
	want := GridLayout{
		"A": {WidgetID: "A", Row: 1, Col: 1},
		"B": {WidgetID: "B", Row: 1, Col: 7},
		"C": {WidgetID: "C", Row: 2, Col: 1},
	}
	if !reflect.DeepEqual(layout, want) {
		t.Fatalf("unexpected layout: %#v", layout)
	}
}

func TestGenerateDefaultLayoutWrapsOnExactFill(t *testing.T) {
	widgets := []Widget{
		{ID: "A", Size: SizeXLarge}, // fills row 1 exactly, cursor wraps
		{ID: "B", Size: SizeSmall},
	}
	layout := GenerateDefaultLayout(widgets)
	if layout["B"].Row != 2 || layout["B"].Col != 1 {
		t.Fatalf("expected B on fresh row, got %#v", layout["B"])
	}
}

func TestGenerateDefaultLayoutNoEntryPastLastColumn(t *testing.T) {
	widgets := []Widget{
		{ID: "a", Size: SizeSmall},
		{ID: "b"},
		{ID: "c", Size: SizeMedium},
		{ID: "d", Size: SizeLarge},
		{ID: "e", Size: SizeXLarge},
		{ID: "f"},
		{ID: "g", Size: SizeSmall},
	}
	layout := GenerateDefaultLayout(widgets)
	if len(layout) != len(widgets) {
		t.Fatalf("expected entry per widget, got %d", len(layout))
	}
	for _, widget := range widgets {
		entry := layout[widget.ID]
		if entry.Row < 1 || entry.Col < 1 {
			t.Fatalf("invalid placement for %s: %#v", widget.ID, entry)
		}
		if end := entry.Col + widget.Size.Span() - 1; end > GridColumns {
			t.Fatalf("widget %s overflows grid: ends at %d", widget.ID, end)
		}
	}
}

func TestGenerateDefaultLayoutDeterministic(t *testing.T) {
	widgets := []Widget{
		{ID: "A", Size: SizeMedium},
		{ID: "B", Size: SizeSmall},
		{ID: "C", Size: SizeLarge},
	}
	first := GenerateDefaultLayout(widgets)
	for i := 0; i < 10; i++ {
		if next := GenerateDefaultLayout(widgets); !reflect.DeepEqual(first, next) {
			t.Fatalf("layout not deterministic: %#v vs %#v", first, next)
		}
	}
}

func TestGenerateDefaultLayoutOrderDependent(t *testing.T) {
	forward := GenerateDefaultLayout([]Widget{{ID: "A", Size: SizeMedium}, {ID: "B", Size: SizeSmall}})
	reversed := GenerateDefaultLayout([]Widget{{ID: "B", Size: SizeSmall}, {ID: "A", Size: SizeMedium}})
	if reflect.DeepEqual(forward, reversed) {
		t.Fatalf("expected order-dependent packing")
	}
}

func TestMergeLayoutsSavedWinsWhenValid(t *testing.T) {
	generated := GenerateDefaultLayout([]Widget{{ID: "A", Size: SizeMedium}, {ID: "B", Size: SizeSmall}})
	saved := GridLayout{"A": {WidgetID: "A", Row: 2, Col: 1}}
	merged := MergeLayouts(generated, saved)
	if merged["A"].Row != 2 || merged["A"].Col != 1 {
		t.Fatalf("expected saved position for A, got %#v", merged["A"])
	}
	if merged["B"] != generated["B"] {
		t.Fatalf("expected generated default for B, got %#v", merged["B"])
	}
}

func TestMergeLayoutsDropsOrphansAndZeroEntries(t *testing.T) {
	generated := GenerateDefaultLayout([]Widget{{ID: "A"}})
	saved := GridLayout{
		"gone": {WidgetID: "gone", Row: 1, Col: 1},
		"A":    {WidgetID: "A", Row: 0, Col: 4},
	}
	merged := MergeLayouts(generated, saved)
	if _, ok := merged["gone"]; ok {
		t.Fatalf("expected orphan entry dropped")
	}
	if merged["A"] != generated["A"] {
		t.Fatalf("expected zero-row saved entry ignored, got %#v", merged["A"])
	}
	if len(merged) != 1 {
		t.Fatalf("expected single entry, got %#v", merged)
	}
}
