package console

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// ConsoleManifest declares dashboards and extra widget kinds in YAML so
// deployments can reshape the console without code changes.
type ConsoleManifest struct {
	Version    string             `json:"version" yaml:"version"`
	Name       string             `json:"name,omitempty" yaml:"name,omitempty"`
	Dashboards []Dashboard        `json:"dashboards,omitempty" yaml:"dashboards,omitempty"`
	Widgets    []WidgetDefinition `json:"widgets,omitempty" yaml:"widgets,omitempty"`
	Source     string             `json:"-" yaml:"-"`
}

// ReadManifest decodes a manifest file.
func ReadManifest(path string) (*ConsoleManifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("console: open manifest %s: %w", path, err)
	}
	defer file.Close()
	doc, err := DecodeManifest(file)
	if err != nil {
		return nil, fmt.Errorf("console: manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest parses manifest YAML from a reader.
func DecodeManifest(r io.Reader) (*ConsoleManifest, error) {
	var doc ConsoleManifest
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	if doc.Version != manifestVersionV1 {
		return nil, fmt.Errorf("unsupported manifest version %q", doc.Version)
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (doc *ConsoleManifest) validate() error {
	seen := map[string]bool{}
	for _, dashboard := range doc.Dashboards {
		if dashboard.ID == "" {
			return fmt.Errorf("dashboard id is required")
		}
		if seen[dashboard.ID] {
			return fmt.Errorf("duplicate dashboard id %q", dashboard.ID)
		}
		seen[dashboard.ID] = true
		widgetIDs := map[string]bool{}
		for _, widget := range dashboard.Widgets {
			if widget.ID == "" {
				return fmt.Errorf("dashboard %s: widget id is required", dashboard.ID)
			}
			if widget.Kind == "" {
				return fmt.Errorf("dashboard %s: widget %s needs a kind", dashboard.ID, widget.ID)
			}
			if widgetIDs[widget.ID] {
				return fmt.Errorf("dashboard %s: duplicate widget id %q", dashboard.ID, widget.ID)
			}
			widgetIDs[widget.ID] = true
		}
	}
	for _, def := range doc.Widgets {
		if def.Code == "" {
			return fmt.Errorf("widget definition code is required")
		}
	}
	return nil
}

// LoadManifestFile reads a manifest and registers its widget kinds against
// the registry, returning the document for dashboard wiring.
func (r *Registry) LoadManifestFile(path string) (*ConsoleManifest, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	for _, def := range doc.Widgets {
		if err := r.RegisterDefinition(def); err != nil {
			return nil, fmt.Errorf("console: register widget %s from %s: %w", def.Code, doc.Source, err)
		}
	}
	return doc, nil
}
