package console

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-console/pkg/apiclient"
)

var (
	errMissingAPI       = errors.New("console: backend API client not configured")
	errUnknownDashboard = errors.New("console: unknown dashboard")
)

// Options configures the console Service. Collaborators are provided via
// interfaces so applications can swap implementations without importing
// internal packages.
type Options struct {
	API        BackendAPI
	Session    *SessionManager
	Layouts    LayoutStore
	Registry   *Registry
	Validator  ConfigValidator
	Telemetry  Telemetry
	Hub        *BroadcastHub
	Feed       ActivityFeed
	Dashboards []Dashboard
}

// Service orchestrates the console pages on top of the backend API.
type Service struct {
	opts Options

	mu      sync.Mutex
	editors map[string]*LayoutEditor
	boards  []Dashboard
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) (*Service, error) {
	if opts.API == nil {
		return nil, errMissingAPI
	}
	if opts.Layouts == nil {
		opts.Layouts = NewInMemoryLayoutStore()
	}
	if opts.Feed == nil {
		opts.Feed = NewAuditActivityFeed(opts.API)
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	registerBuiltinProviders(opts.Registry, opts.API, opts.Feed)
	if opts.Validator == nil {
		opts.Validator = NewSchemaValidator()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Hub == nil {
		opts.Hub = NewBroadcastHub()
	}
	boards := opts.Dashboards
	if len(boards) == 0 {
		boards = DefaultDashboards()
	}
	return &Service{
		opts:    opts,
		editors: make(map[string]*LayoutEditor),
		boards:  boards,
	}, nil
}

// Session exposes the session manager for transports.
func (s *Service) Session() *SessionManager {
	return s.opts.Session
}

// Hub exposes the broadcast hub for transports.
func (s *Service) Hub() *BroadcastHub {
	return s.opts.Hub
}

// Dashboards lists the configured dashboards.
func (s *Service) Dashboards() []Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Dashboard(nil), s.boards...)
}

// Dashboard returns one dashboard by id.
func (s *Service) Dashboard(id string) (Dashboard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, board := range s.boards {
		if board.ID == id {
			return board, true
		}
	}
	return Dashboard{}, false
}

// Editor returns (and lazily constructs) the layout editor for a dashboard.
// The editor carries the merged layout state across page renders.
func (s *Service) Editor(dashboardID string) (*LayoutEditor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if editor, ok := s.editors[dashboardID]; ok {
		return editor, nil
	}
	for _, board := range s.boards {
		if board.ID == dashboardID {
			editor := NewLayoutEditor(board, EditorOptions{
				Store:     s.opts.Layouts,
				Telemetry: s.opts.Telemetry,
			})
			s.editors[dashboardID] = editor
			return editor, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", errUnknownDashboard, dashboardID)
}

// WidgetCell is one positioned widget with its fetched data.
type WidgetCell struct {
	Widget Widget
	Entry  LayoutEntry
	Span   int
	Data   WidgetData
	Err    string
}

// OverviewPage is the view model for one dashboard render.
type OverviewPage struct {
	Dashboard Dashboard
	Cells     []WidgetCell
	Hidden    []Widget
	Editing   bool
}

// Overview resolves the dashboard layout and fetches every visible widget's
// data. Provider failures degrade to per-cell errors instead of failing the
// page.
func (s *Service) Overview(ctx context.Context, dashboardID string) (OverviewPage, error) {
	editor, err := s.Editor(dashboardID)
	if err != nil {
		return OverviewPage{}, err
	}
	board, _ := s.Dashboard(dashboardID)
	layout := editor.Layout()
	var user apiclient.User
	if s.opts.Session != nil {
		user = s.opts.Session.Snapshot().User
	}

	visible := editor.VisibleWidgets()
	cells := make([]WidgetCell, 0, len(visible))
	for _, widget := range visible {
		cell := WidgetCell{
			Widget: widget,
			Entry:  layout[widget.ID],
			Span:   widget.Size.Span(),
		}
		cell.Data, cell.Err = s.fetchWidgetData(ctx, WidgetContext{
			Widget:      widget,
			DashboardID: dashboardID,
			User:        user,
		})
		cells = append(cells, cell)
	}
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].Entry.Row != cells[j].Entry.Row {
			return cells[i].Entry.Row < cells[j].Entry.Row
		}
		return cells[i].Entry.Col < cells[j].Entry.Col
	})

	s.record(ctx, "console.page.overview", map[string]any{"dashboard": dashboardID})
	return OverviewPage{
		Dashboard: board,
		Cells:     cells,
		Hidden:    editor.HiddenWidgets(),
		Editing:   editor.IsEditing(),
	}, nil
}

func (s *Service) fetchWidgetData(ctx context.Context, meta WidgetContext) (WidgetData, string) {
	def, ok := s.opts.Registry.Definition(meta.Widget.Kind)
	if !ok {
		return nil, fmt.Sprintf("unknown widget kind %q", meta.Widget.Kind)
	}
	if err := s.opts.Validator.Validate(def, meta.Widget.Config); err != nil {
		return nil, err.Error()
	}
	provider, ok := s.opts.Registry.Provider(meta.Widget.Kind)
	if !ok {
		return WidgetData{}, ""
	}
	data, err := provider.Fetch(ctx, meta)
	if err != nil {
		s.record(ctx, "console.widget.provider_error", map[string]any{
			"widget": meta.Widget.ID,
			"error":  err.Error(),
		})
		return nil, err.Error()
	}
	return data, ""
}

// SaveLayout applies a browser-submitted layout edit in one shot: position
// overrides plus the full hidden-set, persisted under the dashboard keys.
func (s *Service) SaveLayout(ctx context.Context, dashboardID string, layout GridLayout, hidden []string) error {
	editor, err := s.Editor(dashboardID)
	if err != nil {
		return err
	}
	editor.BeginEdit()
	for id, entry := range layout {
		if err := editor.DragStart(id); err != nil {
			editor.Cancel()
			return err
		}
		if err := editor.Drop(entry.Row, entry.Col); err != nil {
			editor.Cancel()
			return err
		}
	}
	wantHidden := make(map[string]bool, len(hidden))
	for _, id := range hidden {
		wantHidden[id] = true
	}
	for id, isHidden := range editor.Hidden() {
		if isHidden && !wantHidden[id] {
			if err := editor.ToggleVisibility(id); err != nil {
				editor.Cancel()
				return err
			}
		}
	}
	for id := range wantHidden {
		if !editor.Hidden()[id] {
			if err := editor.ToggleVisibility(id); err != nil {
				editor.Cancel()
				return err
			}
		}
	}
	if err := editor.Save(ctx); err != nil {
		return err
	}
	s.notify(ctx, "layout.saved", map[string]any{"dashboard": dashboardID})
	return nil
}

// ResetLayout discards all customization for a dashboard.
func (s *Service) ResetLayout(ctx context.Context, dashboardID string) error {
	editor, err := s.Editor(dashboardID)
	if err != nil {
		return err
	}
	editor.BeginEdit()
	if err := editor.ResetToDefault(); err != nil {
		editor.Cancel()
		return err
	}
	if err := editor.Save(ctx); err != nil {
		return err
	}
	s.notify(ctx, "layout.reset", map[string]any{"dashboard": dashboardID})
	return nil
}

// TimelinePage is the view model for the activity timeline.
type TimelinePage struct {
	Entries []TimelineEntry
	Stats   apiclient.AuditStats
}

// Timeline loads the activity page.
func (s *Service) Timeline(ctx context.Context, limit int) (TimelinePage, error) {
	if limit <= 0 {
		limit = 50
	}
	entries, err := s.opts.Feed.Recent(ctx, limit)
	if err != nil {
		return TimelinePage{}, err
	}
	stats, err := s.opts.API.GetAuditStats(ctx)
	if err != nil {
		return TimelinePage{}, err
	}
	s.record(ctx, "console.page.timeline", map[string]any{"entries": len(entries)})
	return TimelinePage{Entries: entries, Stats: stats}, nil
}

// SettingsPage is the view model for module/tool enablement.
type SettingsPage struct {
	Modules []apiclient.Module
}

// Settings loads the module settings page.
func (s *Service) Settings(ctx context.Context) (SettingsPage, error) {
	modules, err := s.opts.API.ListModules(ctx)
	if err != nil {
		return SettingsPage{}, err
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })
	return SettingsPage{Modules: modules}, nil
}

// SetModuleEnabled toggles a module.
func (s *Service) SetModuleEnabled(ctx context.Context, moduleID string, enabled bool) error {
	if moduleID == "" {
		return errors.New("console: module id is required")
	}
	var err error
	if enabled {
		err = s.opts.API.EnableModule(ctx, moduleID)
	} else {
		err = s.opts.API.DisableModule(ctx, moduleID)
	}
	if err != nil {
		return err
	}
	s.record(ctx, "console.module.toggle", map[string]any{"module": moduleID, "enabled": enabled})
	s.notify(ctx, "module.toggled", map[string]any{"module": moduleID, "enabled": enabled})
	return nil
}

// SetToolEnabled toggles one tool of a module.
func (s *Service) SetToolEnabled(ctx context.Context, moduleID, tool string, enabled bool) error {
	if moduleID == "" || tool == "" {
		return errors.New("console: module id and tool name are required")
	}
	var err error
	if enabled {
		err = s.opts.API.EnableTool(ctx, moduleID, tool)
	} else {
		err = s.opts.API.DisableTool(ctx, moduleID, tool)
	}
	if err != nil {
		return err
	}
	s.record(ctx, "console.tool.toggle", map[string]any{"module": moduleID, "tool": tool, "enabled": enabled})
	s.notify(ctx, "tool.toggled", map[string]any{"module": moduleID, "tool": tool, "enabled": enabled})
	return nil
}

// ExecuteTool invokes one tool through the generic execute endpoint.
func (s *Service) ExecuteTool(ctx context.Context, req apiclient.ExecuteRequest) (apiclient.ExecuteResult, error) {
	if req.Tool == "" {
		return apiclient.ExecuteResult{}, errors.New("console: tool name is required")
	}
	result, err := s.opts.API.Execute(ctx, req)
	if err != nil {
		return apiclient.ExecuteResult{}, err
	}
	s.record(ctx, "console.tool.execute", map[string]any{"tool": req.Tool, "is_error": result.IsError})
	return result, nil
}

// ContentPage is the view model for content pack management.
type ContentPage struct {
	Loaded    []apiclient.ContentPack
	Available []apiclient.ContentPack
}

// Content loads the content pack page.
func (s *Service) Content(ctx context.Context) (ContentPage, error) {
	loaded, err := s.opts.API.ListContentPacks(ctx)
	if err != nil {
		return ContentPage{}, err
	}
	available, err := s.opts.API.ListAvailablePacks(ctx)
	if err != nil {
		return ContentPage{}, err
	}
	return ContentPage{Loaded: loaded, Available: available}, nil
}

// LoadPack loads a content pack.
func (s *Service) LoadPack(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("console: pack name is required")
	}
	if err := s.opts.API.LoadContentPack(ctx, name); err != nil {
		return err
	}
	s.record(ctx, "console.pack.load", map[string]any{"pack": name})
	s.notify(ctx, "pack.loaded", map[string]any{"pack": name})
	return nil
}

// UnloadPack unloads a content pack.
func (s *Service) UnloadPack(ctx context.Context, name string) error {
	if name == "" {
		return errors.New("console: pack name is required")
	}
	if err := s.opts.API.UnloadContentPack(ctx, name); err != nil {
		return err
	}
	s.record(ctx, "console.pack.unload", map[string]any{"pack": name})
	s.notify(ctx, "pack.unloaded", map[string]any{"pack": name})
	return nil
}

// ClearPacks unloads every loaded pack.
func (s *Service) ClearPacks(ctx context.Context) error {
	if err := s.opts.API.ClearContentPacks(ctx); err != nil {
		return err
	}
	s.record(ctx, "console.pack.clear", nil)
	s.notify(ctx, "pack.cleared", nil)
	return nil
}

// ExportPack downloads a pack archive.
func (s *Service) ExportPack(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("console: pack name is required")
	}
	data, err := s.opts.API.ExportContentPack(ctx, name)
	if err != nil {
		return nil, err
	}
	s.record(ctx, "console.pack.export", map[string]any{"pack": name, "bytes": len(data)})
	return data, nil
}

// UsersPage is the view model for user/group administration.
type UsersPage struct {
	Users  []apiclient.User
	Groups []apiclient.Group
}

// Users loads the administration page.
func (s *Service) Users(ctx context.Context) (UsersPage, error) {
	users, err := s.opts.API.ListUsers(ctx)
	if err != nil {
		return UsersPage{}, err
	}
	groups, err := s.opts.API.ListGroups(ctx)
	if err != nil {
		return UsersPage{}, err
	}
	return UsersPage{Users: users, Groups: groups}, nil
}

// CreateUser creates an account.
func (s *Service) CreateUser(ctx context.Context, input apiclient.CreateUserInput) (apiclient.User, error) {
	if input.Username == "" {
		return apiclient.User{}, errors.New("console: username is required")
	}
	if input.Password == "" {
		return apiclient.User{}, errors.New("console: password is required")
	}
	user, err := s.opts.API.CreateUser(ctx, input)
	if err != nil {
		return apiclient.User{}, err
	}
	s.record(ctx, "console.user.create", map[string]any{"user": user.Username})
	s.notify(ctx, "user.created", map[string]any{"user": user.Username})
	return user, nil
}

// DeleteUser removes an account.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("console: user id is required")
	}
	if err := s.opts.API.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "console.user.delete", map[string]any{"user": id})
	s.notify(ctx, "user.deleted", map[string]any{"user": id})
	return nil
}

// CreateGroup creates a permission group.
func (s *Service) CreateGroup(ctx context.Context, input apiclient.GroupInput) (apiclient.Group, error) {
	if input.Name == "" {
		return apiclient.Group{}, errors.New("console: group name is required")
	}
	group, err := s.opts.API.CreateGroup(ctx, input)
	if err != nil {
		return apiclient.Group{}, err
	}
	s.record(ctx, "console.group.create", map[string]any{"group": group.Name})
	return group, nil
}

// DeleteGroup removes a permission group.
func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("console: group id is required")
	}
	if err := s.opts.API.DeleteGroup(ctx, id); err != nil {
		return err
	}
	s.record(ctx, "console.group.delete", map[string]any{"group": id})
	return nil
}

func (s *Service) record(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) notify(ctx context.Context, eventType string, payload map[string]any) {
	s.opts.Hub.notify(ctx, eventType, payload)
}
