package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	console "github.com/goliatone/go-console/components/console"
	"github.com/goliatone/go-console/components/console/commands"
	"github.com/goliatone/go-console/components/console/queries"
	"github.com/goliatone/go-console/pkg/apiclient"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(ctx context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

type stubQuerier[T any, R any] struct {
	last   T
	result R
	err    error
}

func (s *stubQuerier[T, R]) Query(ctx context.Context, msg T) (R, error) {
	s.last = msg
	return s.result, s.err
}

func TestHandleSaveLayout(t *testing.T) {
	save := &stubCommander[commands.SaveLayoutInput]{}
	api := &Handlers{SaveLayout: save}
	payload := commands.SaveLayoutInput{
		Layout: console.GridLayout{"w1": {WidgetID: "w1", Row: 1, Col: 1}},
		Hidden: []string{"w2"},
	}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPut, "/dashboards/state/layout", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleSaveLayout(rec, req, "state")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if save.last.DashboardID != "state" {
		t.Fatalf("expected dashboard id from path, got %q", save.last.DashboardID)
	}
	if len(save.last.Hidden) != 1 {
		t.Fatalf("expected hidden set propagation")
	}
}

func TestHandleResetLayout(t *testing.T) {
	reset := &stubCommander[commands.ResetLayoutInput]{}
	api := &Handlers{ResetLayout: reset}
	req := httptest.NewRequest(http.MethodPost, "/dashboards/state/layout/reset", nil)
	rec := httptest.NewRecorder()
	api.HandleResetLayout(rec, req, "state")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if reset.last.DashboardID != "state" {
		t.Fatalf("expected dashboard id propagation")
	}
}

func TestHandleToggleModule(t *testing.T) {
	toggle := &stubCommander[commands.ToggleModuleInput]{}
	api := &Handlers{ToggleModule: toggle}
	req := httptest.NewRequest(http.MethodPost, "/modules/workflow", bytes.NewReader([]byte(`{"enabled":true}`)))
	rec := httptest.NewRecorder()
	api.HandleToggleModule(rec, req, "workflow")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !toggle.last.Enabled || toggle.last.ModuleID != "workflow" {
		t.Fatalf("expected toggle payload propagation, got %+v", toggle.last)
	}
}

func TestHandleToggleToolRejectsBadJSON(t *testing.T) {
	toggle := &stubCommander[commands.ToggleToolInput]{}
	api := &Handlers{ToggleTool: toggle}
	req := httptest.NewRequest(http.MethodPost, "/modules/workflow/tools/run", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	api.HandleToggleTool(rec, req, "workflow", "run")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if toggle.calls != 0 {
		t.Fatalf("expected command not to execute")
	}
}

func TestHandlePackEndpoints(t *testing.T) {
	load := &stubCommander[commands.LoadPackInput]{}
	unload := &stubCommander[commands.UnloadPackInput]{}
	clearCmd := &stubCommander[commands.ClearPacksInput]{}
	api := &Handlers{LoadPack: load, UnloadPack: unload, ClearPacks: clearCmd}

	rec := httptest.NewRecorder()
	api.HandleLoadPack(rec, httptest.NewRequest(http.MethodPost, "/content-packs/demo/load", nil), "demo")
	if rec.Code != http.StatusOK || load.last.Name != "demo" {
		t.Fatalf("expected load to execute with pack name")
	}

	rec = httptest.NewRecorder()
	api.HandleUnloadPack(rec, httptest.NewRequest(http.MethodPost, "/content-packs/demo/unload", nil), "demo")
	if rec.Code != http.StatusOK || unload.last.Name != "demo" {
		t.Fatalf("expected unload to execute with pack name")
	}

	rec = httptest.NewRecorder()
	api.HandleClearPacks(rec, httptest.NewRequest(http.MethodPost, "/content-packs/clear", nil))
	if rec.Code != http.StatusNoContent || clearCmd.calls != 1 {
		t.Fatalf("expected clear to execute")
	}
}

func TestHandleCreateUser(t *testing.T) {
	create := &stubCommander[apiclient.CreateUserInput]{}
	api := &Handlers{CreateUser: create}
	buf, _ := json.Marshal(apiclient.CreateUserInput{Username: "ada", Password: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleCreateUser(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if create.last.Username != "ada" {
		t.Fatalf("expected payload propagation")
	}
}

func TestHandleOverview(t *testing.T) {
	overview := &stubQuerier[queries.OverviewRequest, console.OverviewPage]{
		result: console.OverviewPage{Dashboard: console.Dashboard{ID: "state"}},
	}
	api := &Handlers{Overview: overview}
	req := httptest.NewRequest(http.MethodGet, "/dashboards/state", nil)
	rec := httptest.NewRecorder()
	api.HandleOverview(rec, req, "state")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page console.OverviewPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Dashboard.ID != "state" {
		t.Fatalf("expected dashboard in response, got %q", page.Dashboard.ID)
	}
}

func TestHandleTimelineParsesLimit(t *testing.T) {
	timeline := &stubQuerier[queries.TimelineRequest, console.TimelinePage]{}
	api := &Handlers{Timeline: timeline}
	req := httptest.NewRequest(http.MethodGet, "/activity?limit=25", nil)
	rec := httptest.NewRecorder()
	api.HandleTimeline(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if timeline.last.Limit != 25 {
		t.Fatalf("expected limit 25, got %d", timeline.last.Limit)
	}
}

func TestHandleExecute(t *testing.T) {
	execute := &stubQuerier[apiclient.ExecuteRequest, apiclient.ExecuteResult]{
		result: apiclient.ExecuteResult{Output: "done"},
	}
	api := &Handlers{Execute: execute}
	buf, _ := json.Marshal(apiclient.ExecuteRequest{Tool: "workflow.run"})
	req := httptest.NewRequest(http.MethodPost, "/execute", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleExecute(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if execute.last.Tool != "workflow.run" {
		t.Fatalf("expected tool propagation")
	}
}
