package commands

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"propertydesk/config"
)

func runConfigInit(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewConfigCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"init"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runConfigInit(t)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote propertydesk.yml") {
		t.Errorf("unexpected output %q", out)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *config.Default() {
		t.Errorf("loaded %+v, want defaults", cfg)
	}
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.WriteFile("propertydesk.yml", []byte("currency_symbol: \"€\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := runConfigInit(t); err == nil {
		t.Fatal("expected init to refuse an existing file")
	}

	if _, err := runConfigInit(t, "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CurrencySymbol != "$" {
		t.Errorf("CurrencySymbol = %q, want $", cfg.CurrencySymbol)
	}
}
