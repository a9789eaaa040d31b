package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	gocommand "github.com/goliatone/go-command"
	console "github.com/goliatone/go-console/components/console"
	"github.com/goliatone/go-console/components/console/commands"
	"github.com/goliatone/go-console/components/console/queries"
	"github.com/goliatone/go-console/pkg/apiclient"
)

// Handlers exposes JSON endpoints backed by shared commands and queries.
type Handlers struct {
	SaveLayout   gocommand.Commander[commands.SaveLayoutInput]
	ResetLayout  gocommand.Commander[commands.ResetLayoutInput]
	ToggleModule gocommand.Commander[commands.ToggleModuleInput]
	ToggleTool   gocommand.Commander[commands.ToggleToolInput]
	LoadPack     gocommand.Commander[commands.LoadPackInput]
	UnloadPack   gocommand.Commander[commands.UnloadPackInput]
	ClearPacks   gocommand.Commander[commands.ClearPacksInput]
	CreateUser   gocommand.Commander[apiclient.CreateUserInput]
	DeleteUser   gocommand.Commander[commands.DeleteUserInput]
	Overview     gocommand.Querier[queries.OverviewRequest, console.OverviewPage]
	Timeline     gocommand.Querier[queries.TimelineRequest, console.TimelinePage]
	Execute      gocommand.Querier[apiclient.ExecuteRequest, apiclient.ExecuteResult]
}

func (h *Handlers) HandleSaveLayout(w http.ResponseWriter, r *http.Request, dashboardID string) {
	var payload commands.SaveLayoutInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	payload.DashboardID = dashboardID
	if err := h.SaveLayout.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleResetLayout(w http.ResponseWriter, r *http.Request, dashboardID string) {
	input := commands.ResetLayoutInput{DashboardID: dashboardID}
	if err := h.ResetLayout.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleToggleModule(w http.ResponseWriter, r *http.Request, moduleID string) {
	var payload struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input := commands.ToggleModuleInput{ModuleID: moduleID, Enabled: payload.Enabled}
	if err := h.ToggleModule.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleToggleTool(w http.ResponseWriter, r *http.Request, moduleID, tool string) {
	var payload struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input := commands.ToggleToolInput{ModuleID: moduleID, Tool: tool, Enabled: payload.Enabled}
	if err := h.ToggleTool.Execute(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleLoadPack(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.LoadPack.Execute(r.Context(), commands.LoadPackInput{Name: name}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleUnloadPack(w http.ResponseWriter, r *http.Request, name string) {
	if err := h.UnloadPack.Execute(r.Context(), commands.UnloadPackInput{Name: name}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) HandleClearPacks(w http.ResponseWriter, r *http.Request) {
	if err := h.ClearPacks.Execute(r.Context(), commands.ClearPacksInput{}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var payload apiclient.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.CreateUser.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) HandleDeleteUser(w http.ResponseWriter, r *http.Request, userID string) {
	if err := h.DeleteUser.Execute(r.Context(), commands.DeleteUserInput{UserID: userID}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleOverview(w http.ResponseWriter, r *http.Request, dashboardID string) {
	page, err := h.Overview.Query(r.Context(), queries.OverviewRequest{DashboardID: dashboardID})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, page)
}

func (h *Handlers) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	page, err := h.Timeline.Query(r.Context(), queries.TimelineRequest{Limit: queryLimit(r)})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, page)
}

func (h *Handlers) HandleExecute(w http.ResponseWriter, r *http.Request) {
	var payload apiclient.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	result, err := h.Execute.Query(r.Context(), payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
