package apiclient

import "time"

// User is the backend account record.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role,omitempty"`
	Groups    []string  `json:"groups,omitempty"`
	Disabled  bool      `json:"disabled,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// CreateUserInput creates a new account.
type CreateUserInput struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Email    string   `json:"email,omitempty"`
	FullName string   `json:"full_name,omitempty"`
	Role     string   `json:"role,omitempty"`
	Groups   []string `json:"groups,omitempty"`
}

// UpdateUserInput patches mutable account fields.
type UpdateUserInput struct {
	Email    *string  `json:"email,omitempty"`
	FullName *string  `json:"full_name,omitempty"`
	Role     *string  `json:"role,omitempty"`
	Groups   []string `json:"groups,omitempty"`
	Disabled *bool    `json:"disabled,omitempty"`
	Password *string  `json:"password,omitempty"`
}

// Group is a backend permission group.
type Group struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// GroupInput creates or updates a group.
type GroupInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// Module is a backend capability that can be toggled on or off.
type Module struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Enabled     bool           `json:"enabled"`
	Tools       []Tool         `json:"tools,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
}

// Tool is an individually toggleable function of a module.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// ContentPack is a bundle of preset data the backend can load or unload.
// It is opaque to the console beyond the metadata listed here.
type ContentPack struct {
	Name        string    `json:"name"`
	Version     string    `json:"version,omitempty"`
	Description string    `json:"description,omitempty"`
	Author      string    `json:"author,omitempty"`
	Loaded      bool      `json:"loaded"`
	LoadedAt    time.Time `json:"loaded_at,omitzero"`
}

// AuditEntry is one activity timeline record.
type AuditEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Category  string         `json:"category,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// AuditQuery filters timeline listings.
type AuditQuery struct {
	Limit    int
	Offset   int
	Category string
	Actor    string
}

// AuditStats aggregates activity counts per category.
type AuditStats struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
}

// TokenResponse is returned by the login endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// UILayout is the server-declared dashboard/widget arrangement.
type UILayout struct {
	Dashboards []UIDashboard `json:"dashboards"`
}

// UIDashboard names one dashboard and its widget bindings.
type UIDashboard struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Widgets []UIWidget `json:"widgets"`
}

// UIWidget binds a widget to a module data source with a declared size class.
type UIWidget struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Module string         `json:"module,omitempty"`
	Size   string         `json:"size,omitempty"`
	Config map[string]any `json:"config,omitempty"`
}

// ExecuteRequest invokes one tool through the generic execute endpoint.
type ExecuteRequest struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// ExecuteResult carries the opaque tool response.
type ExecuteResult struct {
	Output  any    `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
	IsError bool   `json:"is_error,omitempty"`
}

// HealthStatus reports backend liveness.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
