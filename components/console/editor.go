package console

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	errNotEditing    = errors.New("console: no edit session in progress")
	errUnknownWidget = errors.New("console: unknown widget id")
)

// EditorOptions configures a LayoutEditor.
type EditorOptions struct {
	Store     LayoutStore
	Telemetry Telemetry
}

type editSnapshot struct {
	layout GridLayout
	hidden HiddenSet
}

// LayoutEditor owns the layout state of one dashboard: the merged grid
// placement, the hidden-set, and the edit session over both. All mutations
// outside the initial merge happen inside an edit session.
//
// Session transitions: BeginEdit snapshots (layout, hidden); Save persists
// both records and discards the snapshot; Cancel restores the snapshot
// verbatim; ResetToDefault regenerates the packed default and clears
// customization (a deliberate departure from the console this replaces, where
// reset merely restored the pre-edit snapshot like cancel did).
type LayoutEditor struct {
	dashboardID string
	store       LayoutStore
	telemetry   Telemetry

	mu       sync.Mutex
	widgets  []Widget
	layout   GridLayout
	hidden   HiddenSet
	editing  bool
	snapshot editSnapshot
	dragID   string
}

// NewLayoutEditor loads any saved customization for the dashboard and merges
// it over the generated default. A corrupt or unreadable record is logged and
// treated as absent.
func NewLayoutEditor(dashboard Dashboard, opts EditorOptions) *LayoutEditor {
	editor := &LayoutEditor{
		dashboardID: dashboard.ID,
		store:       opts.Store,
		telemetry:   normalizeTelemetry(opts.Telemetry),
		widgets:     append([]Widget(nil), dashboard.Widgets...),
	}
	editor.layout, editor.hidden = editor.loadMerged()
	return editor
}

func (e *LayoutEditor) loadMerged() (GridLayout, HiddenSet) {
	generated := GenerateDefaultLayout(e.widgets)
	saved := GridLayout{}
	hidden := HiddenSet{}
	if e.store != nil {
		var err error
		if saved, err = e.store.LoadLayout(e.dashboardID); err != nil && !errors.Is(err, ErrNoRecord) {
			e.record("console.layout.load_error", map[string]any{
				"dashboard": e.dashboardID,
				"error":     err.Error(),
			})
			saved = GridLayout{}
		}
		if hidden, err = e.store.LoadHidden(e.dashboardID); err != nil {
			if !errors.Is(err, ErrNoRecord) {
				e.record("console.layout.load_error", map[string]any{
					"dashboard": e.dashboardID,
					"error":     err.Error(),
				})
			}
			hidden = HiddenSet{}
		}
	}
	if hidden == nil {
		hidden = HiddenSet{}
	}
	return MergeLayouts(generated, saved), hidden
}

// DashboardID returns the dashboard this editor manages.
func (e *LayoutEditor) DashboardID() string {
	return e.dashboardID
}

// Layout returns a snapshot of the current grid placement.
func (e *LayoutEditor) Layout() GridLayout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout.Clone()
}

// Hidden returns a snapshot of the hidden-set.
func (e *LayoutEditor) Hidden() HiddenSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hidden.Clone()
}

// VisibleWidgets returns widgets eligible for grid rendering. Hidden widgets
// are excluded in both viewing and editing modes.
func (e *LayoutEditor) VisibleWidgets() []Widget {
	e.mu.Lock()
	defer e.mu.Unlock()
	visible := make([]Widget, 0, len(e.widgets))
	for _, widget := range e.widgets {
		if !e.hidden[widget.ID] {
			visible = append(visible, widget)
		}
	}
	return visible
}

// HiddenWidgets returns widgets surfaced in the edit mode hidden panel.
func (e *LayoutEditor) HiddenWidgets() []Widget {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []Widget
	for _, widget := range e.widgets {
		if e.hidden[widget.ID] {
			out = append(out, widget)
		}
	}
	return out
}

// IsEditing reports whether an edit session is open.
func (e *LayoutEditor) IsEditing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editing
}

// BeginEdit opens an edit session, snapshotting the current state as the
// cancel restore point. Re-entering an open session is a no-op.
func (e *LayoutEditor) BeginEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editing {
		return
	}
	e.editing = true
	e.snapshot = editSnapshot{layout: e.layout.Clone(), hidden: e.hidden.Clone()}
}

// DragStart records the widget being dragged.
func (e *LayoutEditor) DragStart(widgetID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return errNotEditing
	}
	if _, ok := e.layout[widgetID]; !ok {
		return fmt.Errorf("%w: %s", errUnknownWidget, widgetID)
	}
	e.dragID = widgetID
	return nil
}

// Dragging returns the widget id currently being dragged, if any.
func (e *LayoutEditor) Dragging() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dragID
}

// Drop places the dragged widget at the target cell and clears the drag
// state. Coordinates are clamped into the grid.
func (e *LayoutEditor) Drop(row, col int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return errNotEditing
	}
	if e.dragID == "" {
		return errors.New("console: drop without an active drag")
	}
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	} else if col > GridColumns {
		col = GridColumns
	}
	e.layout[e.dragID] = LayoutEntry{WidgetID: e.dragID, Row: row, Col: col}
	e.dragID = ""
	return nil
}

// DragEnd clears the drag state unconditionally; it covers drops that land
// outside a valid target.
func (e *LayoutEditor) DragEnd() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dragID = ""
}

// ToggleVisibility flips the hidden flag for a widget.
func (e *LayoutEditor) ToggleVisibility(widgetID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return errNotEditing
	}
	if _, ok := e.layout[widgetID]; !ok {
		return fmt.Errorf("%w: %s", errUnknownWidget, widgetID)
	}
	e.hidden[widgetID] = !e.hidden[widgetID]
	return nil
}

// Save persists the current layout and hidden-set, ends the edit session, and
// discards the snapshot. A store failure does not roll the in-memory state
// back; the error is returned so callers can surface it.
func (e *LayoutEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	if !e.editing {
		e.mu.Unlock()
		return errNotEditing
	}
	e.editing = false
	e.dragID = ""
	e.snapshot = editSnapshot{}
	layout := e.layout.Clone()
	hidden := e.hidden.Clone()
	e.mu.Unlock()

	e.telemetry.Record(ctx, "console.layout.save", map[string]any{
		"dashboard": e.dashboardID,
		"widgets":   len(layout),
	})
	if e.store == nil {
		return nil
	}
	var saveErr error
	if err := e.store.SaveLayout(e.dashboardID, layout); err != nil {
		saveErr = err
	}
	if err := e.store.SaveHidden(e.dashboardID, hidden); err != nil && saveErr == nil {
		saveErr = err
	}
	if saveErr != nil {
		e.telemetry.Record(ctx, "console.layout.save_error", map[string]any{
			"dashboard": e.dashboardID,
			"error":     saveErr.Error(),
		})
	}
	return saveErr
}

// Cancel restores the pre-edit snapshot verbatim and ends the session.
func (e *LayoutEditor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return
	}
	e.layout = e.snapshot.layout
	e.hidden = e.snapshot.hidden
	e.snapshot = editSnapshot{}
	e.editing = false
	e.dragID = ""
}

// ResetToDefault discards all customization inside the session: the layout is
// regenerated from scratch and every widget becomes visible. The session
// stays open so the reset can still be cancelled.
func (e *LayoutEditor) ResetToDefault() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return errNotEditing
	}
	e.layout = GenerateDefaultLayout(e.widgets)
	e.hidden = HiddenSet{}
	e.dragID = ""
	return nil
}

func (e *LayoutEditor) record(event string, payload map[string]any) {
	e.telemetry.Record(context.Background(), event, payload)
}
