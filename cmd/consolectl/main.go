package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	console "github.com/goliatone/go-console/components/console"
	"github.com/goliatone/go-console/pkg/apiclient"
)

type cli struct {
	BaseURL   string `default:"http://localhost:8000" env:"CONSOLE_API_URL" help:"Backend base URL."`
	TokenFile string `default:"~/.console-token" env:"CONSOLE_TOKEN_FILE" type:"path" help:"Path of the stored auth token."`

	Login   loginCmd   `cmd:"" help:"Authenticate against the backend and store the token."`
	Logout  logoutCmd  `cmd:"" help:"Discard the stored auth token."`
	Status  statusCmd  `cmd:"" help:"Check backend health."`
	Modules modulesCmd `cmd:"" help:"List and toggle backend modules."`
	Packs   packsCmd   `cmd:"" help:"Manage content packs."`
	Users   usersCmd   `cmd:"" help:"Administer user accounts."`
	Tail    tailCmd    `cmd:"" help:"Print recent activity entries."`
	Export  exportCmd  `cmd:"" name:"export-dashboards" help:"Write the default dashboards as a YAML manifest."`
}

type runContext struct {
	client *apiclient.Client
	tokens *console.FileTokenStore
}

func main() {
	var root cli
	ctx := kong.Parse(&root,
		kong.Description("Operator tooling for go-console backends."),
		kong.UsageOnError(),
	)

	tokens, err := console.NewFileTokenStore(root.TokenFile)
	ctx.FatalIfErrorf(err)
	client, err := apiclient.New(apiclient.Config{
		BaseURL: root.BaseURL,
		Tokens:  tokens,
	})
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&runContext{client: client, tokens: tokens})
	ctx.FatalIfErrorf(err)
}

type loginCmd struct {
	Username string `required:"" help:"Account username."`
	Password string `required:"" env:"CONSOLE_PASSWORD" help:"Account password."`
}

func (cmd *loginCmd) Run(rc *runContext) error {
	token, err := rc.client.Login(context.Background(), cmd.Username, cmd.Password)
	if err != nil {
		return fmt.Errorf("consolectl: login: %w", err)
	}
	if err := rc.tokens.Set(token.AccessToken); err != nil {
		return fmt.Errorf("consolectl: store token: %w", err)
	}
	fmt.Println("authenticated")
	return nil
}

type logoutCmd struct{}

func (cmd *logoutCmd) Run(rc *runContext) error {
	if err := rc.tokens.Clear(); err != nil {
		return fmt.Errorf("consolectl: clear token: %w", err)
	}
	fmt.Println("signed out")
	return nil
}

type statusCmd struct{}

func (cmd *statusCmd) Run(rc *runContext) error {
	health, err := rc.client.Health(context.Background())
	if err != nil {
		return fmt.Errorf("consolectl: health: %w", err)
	}
	fmt.Printf("status: %s\n", health.Status)
	if health.Version != "" {
		fmt.Printf("version: %s\n", health.Version)
	}
	return nil
}

type modulesCmd struct {
	List    modulesListCmd   `cmd:"" default:"1" help:"List modules and their tools."`
	Enable  moduleToggleCmd  `cmd:"" help:"Enable a module."`
	Disable moduleToggleCmd  `cmd:"" help:"Disable a module."`
	Tool    moduleToolToggle `cmd:"" help:"Toggle one tool of a module."`
}

type modulesListCmd struct{}

func (cmd *modulesListCmd) Run(rc *runContext) error {
	modules, err := rc.client.ListModules(context.Background())
	if err != nil {
		return fmt.Errorf("consolectl: list modules: %w", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODULE\tENABLED\tTOOLS")
	for _, module := range modules {
		fmt.Fprintf(w, "%s\t%t\t%d\n", module.ID, module.Enabled, len(module.Tools))
	}
	return w.Flush()
}

type moduleToggleCmd struct {
	ID string `arg:"" help:"Module id."`
}

func (cmd *moduleToggleCmd) Run(rc *runContext, kctx *kong.Context) error {
	ctx := context.Background()
	var err error
	if kctx.Command() == "modules enable <id>" {
		err = rc.client.EnableModule(ctx, cmd.ID)
	} else {
		err = rc.client.DisableModule(ctx, cmd.ID)
	}
	if err != nil {
		return fmt.Errorf("consolectl: toggle module %s: %w", cmd.ID, err)
	}
	fmt.Printf("module %s updated\n", cmd.ID)
	return nil
}

type moduleToolToggle struct {
	ID      string `arg:"" help:"Module id."`
	Tool    string `arg:"" help:"Tool name."`
	Disable bool   `help:"Disable instead of enable."`
}

func (cmd *moduleToolToggle) Run(rc *runContext) error {
	ctx := context.Background()
	var err error
	if cmd.Disable {
		err = rc.client.DisableTool(ctx, cmd.ID, cmd.Tool)
	} else {
		err = rc.client.EnableTool(ctx, cmd.ID, cmd.Tool)
	}
	if err != nil {
		return fmt.Errorf("consolectl: toggle tool %s/%s: %w", cmd.ID, cmd.Tool, err)
	}
	fmt.Printf("tool %s/%s updated\n", cmd.ID, cmd.Tool)
	return nil
}

type packsCmd struct {
	List   packsListCmd   `cmd:"" default:"1" help:"List loaded and available packs."`
	Load   packNameCmd    `cmd:"" help:"Load a pack."`
	Unload packNameCmd    `cmd:"" help:"Unload a pack."`
	Clear  packsClearCmd  `cmd:"" help:"Unload every pack."`
	Export packsExportCmd `cmd:"" help:"Download a pack archive."`
}

type packsListCmd struct{}

func (cmd *packsListCmd) Run(rc *runContext) error {
	ctx := context.Background()
	loaded, err := rc.client.ListContentPacks(ctx)
	if err != nil {
		return fmt.Errorf("consolectl: list packs: %w", err)
	}
	available, err := rc.client.ListAvailablePacks(ctx)
	if err != nil {
		return fmt.Errorf("consolectl: list available packs: %w", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PACK\tVERSION\tSTATE")
	for _, pack := range loaded {
		fmt.Fprintf(w, "%s\t%s\tloaded\n", pack.Name, pack.Version)
	}
	for _, pack := range available {
		fmt.Fprintf(w, "%s\t%s\tavailable\n", pack.Name, pack.Version)
	}
	return w.Flush()
}

type packNameCmd struct {
	Name string `arg:"" help:"Pack name."`
}

func (cmd *packNameCmd) Run(rc *runContext, kctx *kong.Context) error {
	ctx := context.Background()
	var err error
	if kctx.Command() == "packs load <name>" {
		err = rc.client.LoadContentPack(ctx, cmd.Name)
	} else {
		err = rc.client.UnloadContentPack(ctx, cmd.Name)
	}
	if err != nil {
		return fmt.Errorf("consolectl: pack %s: %w", cmd.Name, err)
	}
	fmt.Printf("pack %s updated\n", cmd.Name)
	return nil
}

type packsClearCmd struct{}

func (cmd *packsClearCmd) Run(rc *runContext) error {
	if err := rc.client.ClearContentPacks(context.Background()); err != nil {
		return fmt.Errorf("consolectl: clear packs: %w", err)
	}
	fmt.Println("all packs unloaded")
	return nil
}

type packsExportCmd struct {
	Name string `arg:"" help:"Pack name."`
	Out  string `type:"path" help:"Output path (defaults to <pack_name>.json in the working directory)."`
}

func (cmd *packsExportCmd) Run(rc *runContext) error {
	data, err := rc.client.ExportContentPack(context.Background(), cmd.Name)
	if err != nil {
		return fmt.Errorf("consolectl: export pack %s: %w", cmd.Name, err)
	}
	out := cmd.Out
	if out == "" {
		out = strcase.ToSnake(cmd.Name) + ".json"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("consolectl: write %s: %w", out, err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", out, len(data))
	return nil
}

type usersCmd struct {
	List   usersListCmd   `cmd:"" default:"1" help:"List accounts."`
	Create usersCreateCmd `cmd:"" help:"Create an account."`
	Delete usersDeleteCmd `cmd:"" help:"Delete an account."`
}

type usersListCmd struct{}

func (cmd *usersListCmd) Run(rc *runContext) error {
	users, err := rc.client.ListUsers(context.Background())
	if err != nil {
		return fmt.Errorf("consolectl: list users: %w", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE")
	for _, user := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", user.ID, user.Username, user.Email, user.Role)
	}
	return w.Flush()
}

type usersCreateCmd struct {
	Username string   `arg:"" help:"New account username."`
	Password string   `required:"" env:"CONSOLE_NEW_PASSWORD" help:"New account password."`
	Email    string   `help:"Account email."`
	Role     string   `help:"Account role."`
	Group    []string `help:"Groups to assign (repeatable)."`
}

func (cmd *usersCreateCmd) Run(rc *runContext) error {
	user, err := rc.client.CreateUser(context.Background(), apiclient.CreateUserInput{
		Username: cmd.Username,
		Password: cmd.Password,
		Email:    cmd.Email,
		Role:     cmd.Role,
		Groups:   cmd.Group,
	})
	if err != nil {
		return fmt.Errorf("consolectl: create user %s: %w", cmd.Username, err)
	}
	fmt.Printf("created %s (%s)\n", user.Username, user.ID)
	return nil
}

type usersDeleteCmd struct {
	ID string `arg:"" help:"Account id."`
}

func (cmd *usersDeleteCmd) Run(rc *runContext) error {
	if err := rc.client.DeleteUser(context.Background(), cmd.ID); err != nil {
		return fmt.Errorf("consolectl: delete user %s: %w", cmd.ID, err)
	}
	fmt.Printf("deleted %s\n", cmd.ID)
	return nil
}

type tailCmd struct {
	Limit    int    `default:"20" help:"Number of entries to print."`
	Category string `help:"Filter by category."`
}

func (cmd *tailCmd) Run(rc *runContext) error {
	entries, err := rc.client.ListAuditLogs(context.Background(), apiclient.AuditQuery{
		Limit:    cmd.Limit,
		Category: cmd.Category,
	})
	if err != nil {
		return fmt.Errorf("consolectl: list activity: %w", err)
	}
	for _, entry := range entries {
		fmt.Printf("%s  %-10s %s %s\n",
			entry.Timestamp.Format(time.RFC3339), entry.Category, entry.Actor, entry.Action)
	}
	return nil
}

type exportCmd struct {
	Out string `default:"console-manifest.yaml" type:"path" help:"Manifest output path."`
}

func (cmd *exportCmd) Run(_ *runContext) error {
	doc := console.ConsoleManifest{
		Version:    console.ManifestVersion,
		Name:       "default",
		Dashboards: console.DefaultDashboards(),
	}
	if err := os.MkdirAll(filepath.Dir(cmd.Out), 0o755); err != nil {
		return fmt.Errorf("consolectl: mkdir %s: %w", filepath.Dir(cmd.Out), err)
	}
	file, err := os.Create(cmd.Out)
	if err != nil {
		return fmt.Errorf("consolectl: create %s: %w", cmd.Out, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("consolectl: write manifest: %w", err)
	}
	fmt.Printf("wrote %s\n", cmd.Out)
	return nil
}
