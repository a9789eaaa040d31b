package console

// GenerateDefaultLayout packs widgets into the 12-column grid with
// first-fit-by-row placement: widgets are walked in order behind a (row, col)
// cursor; a widget whose span would overflow column 12 wraps to the next row,
// and a cursor landing exactly past the last column also wraps. The result is
// deterministic and order-dependent; no rebalancing is attempted.
func GenerateDefaultLayout(widgets []Widget) GridLayout {
	layout := make(GridLayout, len(widgets))
	row, col := 1, 1
	for _, widget := range widgets {
		span := widget.Size.Span()
		if col+span-1 > GridColumns {
			row++
			col = 1
		}
		layout[widget.ID] = LayoutEntry{WidgetID: widget.ID, Row: row, Col: col}
		col += span
		if col > GridColumns {
			row++
			col = 1
		}
	}
	return layout
}

// MergeLayouts overlays saved positions onto the generated default. A saved
// entry wins only when its widget still exists in the generated layout and
// both row and col are set; saved-only keys are dropped so stale records for
// removed widgets never leak into the grid.
func MergeLayouts(generated, saved GridLayout) GridLayout {
	merged := generated.Clone()
	if merged == nil {
		merged = GridLayout{}
	}
	for id, entry := range saved {
		if _, exists := merged[id]; !exists {
			continue
		}
		if entry.Row <= 0 || entry.Col <= 0 {
			continue
		}
		entry.WidgetID = id
		merged[id] = entry
	}
	return merged
}
