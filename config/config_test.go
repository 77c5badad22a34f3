package config_test

import (
	"strings"
	"testing"

	"github.com/miniql/miniql/config"
)

func TestDefaultBTreeOrder(t *testing.T) {
	cfg := config.Default()
	if cfg.Engine.BTreeOrder != 32 {
		t.Fatalf("expected default order 32, got %d", cfg.Engine.BTreeOrder)
	}
}

func TestParseOverridesDefault(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader(`
[engine]
btree_order = 64
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.BTreeOrder != 64 {
		t.Fatalf("expected order 64, got %d", cfg.Engine.BTreeOrder)
	}
}

func TestParseClampsOrderToMinimum(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader(`
[engine]
btree_order = 1
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.BTreeOrder != 3 {
		t.Fatalf("expected order clamped to 3, got %d", cfg.Engine.BTreeOrder)
	}
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader(``))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.BTreeOrder != 32 {
		t.Fatalf("expected default order when file is empty, got %d", cfg.Engine.BTreeOrder)
	}
}
