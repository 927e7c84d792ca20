package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Paintersrp/noteplan/internal/backend/boltstore"
	"github.com/Paintersrp/noteplan/internal/backend/filestore"
	"github.com/Paintersrp/noteplan/internal/config"
)

func loadConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	v := viper.New()
	v.Set("backend.driver", driver)
	cfg, err := config.Load(t.TempDir(), v)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	return cfg
}

func TestOpenBackendByDriver(t *testing.T) {
	ctx := context.Background()

	fileCfg := loadConfig(t, "file")
	b, err := OpenBackend(ctx, fileCfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenBackend(file) returned error: %v", err)
	}
	if _, ok := b.(*filestore.Store); !ok {
		t.Fatalf("expected a file store, got %T", b)
	}
	_ = b.Close()

	boltCfg := loadConfig(t, "bolt")
	b, err = OpenBackend(ctx, boltCfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenBackend(bolt) returned error: %v", err)
	}
	if _, ok := b.(*boltstore.Store); !ok {
		t.Fatalf("expected a bolt store, got %T", b)
	}
	if filepath.Ext(boltCfg.DataPath()) != ".db" {
		t.Fatalf("expected bolt data path to default to a .db file, got %q", boltCfg.DataPath())
	}
	_ = b.Close()
}

func TestOpenBackendRejectsUnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Backend.Driver = "sqlite"

	if _, err := OpenBackend(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected unknown driver to be rejected")
	}
}

func TestCloseIsNilSafe(t *testing.T) {
	var s *State
	if err := s.Close(); err != nil {
		t.Fatalf("expected nil state close to succeed, got %v", err)
	}
	if err := (&State{}).Close(); err != nil {
		t.Fatalf("expected empty state close to succeed, got %v", err)
	}
}

func TestLoadFillsState(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s := &State{}
	if s.Loaded() {
		t.Fatalf("empty state reports loaded")
	}
	if err := s.Load(context.Background(), viper.New()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if !s.Loaded() || s.Watcher == nil {
		t.Fatalf("state not filled: %+v", s)
	}
	if s.Home != home {
		t.Fatalf("home = %q, want %q", s.Home, home)
	}
	if want := filepath.Join(home, ".noteplan", "note_plan_data.json"); s.Config.DataPath() != want {
		t.Fatalf("data path = %q, want %q", s.Config.DataPath(), want)
	}
}

func TestLoadConfigSkipsBackend(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("NOTEPLAN_BACKEND_DRIVER", "postgres")
	t.Setenv("NOTEPLAN_BACKEND_DSN", "postgres://nobody@127.0.0.1:1/none")

	s := &State{}
	if err := s.LoadConfig(viper.New()); err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if s.Config == nil || s.Config.Backend.Driver != "postgres" {
		t.Fatalf("config not loaded: %+v", s.Config)
	}
	if s.Loaded() {
		t.Fatalf("state reports loaded without a backend")
	}
}
