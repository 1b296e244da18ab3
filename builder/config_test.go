// Package builder contains unit tests for the configuration primitives
// (builderConfig and Option) to ensure correct application and override behavior.
package builder

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/Kreijstal/circuijts/components"
	"github.com/Kreijstal/circuijts/netkey"
	"github.com/Kreijstal/circuijts/netreg"
)

// TestDefaults verifies that an option-less config uses the embedded catalog,
// a non-nil silent logger and no registry options.
func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := newBuilderConfig()
	if cfg.db != components.Default() {
		t.Errorf("default db: expected the embedded catalog")
	}
	if cfg.logger == nil {
		t.Fatalf("default logger: expected non-nil")
	}
	if cfg.logger.Enabled(t.Context(), slog.LevelError) {
		t.Errorf("default logger: expected every level disabled")
	}
	if len(cfg.regOpts) != 0 {
		t.Errorf("default regOpts: expected none, got %d", len(cfg.regOpts))
	}
}

// TestLoggerOption verifies that WithLogger overrides, and that nil is a no-op.
func TestLoggerOption(t *testing.T) {
	t.Parallel()

	// 1. A real logger replaces the default.
	l := slog.New(slog.DiscardHandler)
	if got := newBuilderConfig(WithLogger(l)).logger; got != l {
		t.Errorf("WithLogger: expected the given logger")
	}

	// 2. WithLogger(nil) after a real logger keeps the real one.
	if got := newBuilderConfig(WithLogger(l), WithLogger(nil)).logger; got != l {
		t.Errorf("WithLogger(nil): expected previous logger to stay")
	}
}

// TestRegistryOptions verifies that registry options accumulate in order.
func TestRegistryOptions(t *testing.T) {
	t.Parallel()

	cfg := newBuilderConfig(
		WithRegistryOptions(netreg.WithPreferredRails("GND", "VSS")),
		WithRegistryOptions(netreg.WithRailPriority("VSS", "GND")),
	)
	if len(cfg.regOpts) != 2 {
		t.Fatalf("regOpts: expected 2, got %d", len(cfg.regOpts))
	}

	r := netreg.New(cfg.regOpts...)
	r.Union(netkey.Named("GND"), netkey.Named("VSS"))
	if got := r.Find(netkey.Named("GND")).Name(); got != "VSS" {
		t.Errorf("rail priority: expected VSS to win, got %s", got)
	}
}

// TestComponentDBOption verifies that a custom catalog replaces the default.
func TestComponentDBOption(t *testing.T) {
	t.Parallel()

	cat, err := components.Load(strings.NewReader("components:\n  - type: X\n    arity: 2\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := newBuilderConfig(WithComponentDB(cat))
	if _, ok := cfg.db.Arity("X"); !ok {
		t.Errorf("WithComponentDB: expected type X to be known")
	}
	if _, ok := cfg.db.Arity("R"); ok {
		t.Errorf("WithComponentDB: expected default types to be gone")
	}
}
