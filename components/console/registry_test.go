package console

import (
	"context"
	"testing"
)

func TestNewRegistryPreloadsBuiltinKinds(t *testing.T) {
	reg := NewRegistry()
	for _, def := range DefaultWidgetDefinitions() {
		if _, ok := reg.Definition(def.Code); !ok {
			t.Fatalf("expected built-in kind %s to be registered", def.Code)
		}
	}
}

func TestRegisterProviderRequiresDefinition(t *testing.T) {
	reg := NewRegistry()
	provider := ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return WidgetData{}, nil
	})
	if err := reg.RegisterProvider("demo.widget.unknown", provider); err == nil {
		t.Fatalf("expected error registering provider for unknown kind")
	}
	def := WidgetDefinition{Code: "demo.widget.known", Name: "Known"}
	if err := reg.RegisterDefinition(def); err != nil {
		t.Fatalf("register definition: %v", err)
	}
	if err := reg.RegisterProvider(def.Code, provider); err != nil {
		t.Fatalf("register provider: %v", err)
	}
	if _, ok := reg.Provider(def.Code); !ok {
		t.Fatalf("expected provider lookup to succeed")
	}
}

func TestRegisterDefinitionRequiresCode(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterDefinition(WidgetDefinition{}); err == nil {
		t.Fatalf("expected error for definition without code")
	}
}

func TestWidgetHooksApplyToNewRegistries(t *testing.T) {
	RegisterWidgetHook(func(reg *Registry) error {
		return reg.RegisterDefinition(WidgetDefinition{
			Code: "demo.widget.hooked",
			Name: "Hooked",
		})
	})
	reg := NewRegistry()
	if _, ok := reg.Definition("demo.widget.hooked"); !ok {
		t.Fatalf("expected hook-registered kind to exist")
	}
}
