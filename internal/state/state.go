package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Paintersrp/noteplan/internal/backend"
	"github.com/Paintersrp/noteplan/internal/backend/boltstore"
	"github.com/Paintersrp/noteplan/internal/backend/filestore"
	"github.com/Paintersrp/noteplan/internal/backend/pgstore"
	"github.com/Paintersrp/noteplan/internal/config"
	"github.com/Paintersrp/noteplan/internal/constants"
	"github.com/Paintersrp/noteplan/internal/logging"
)

// State carries the long-lived resources shared by every command.
type State struct {
	Config  *config.Config
	Backend backend.Backend
	Logger  zerolog.Logger
	Watcher *DataWatcher
	Home    string

	logCloser io.Closer
}

// NewState loads the config with overrides from v, opens the log file and
// connects the configured backend.
func NewState(ctx context.Context, v *viper.Viper) (*State, error) {
	s := &State{}
	if err := s.Load(ctx, v); err != nil {
		return nil, err
	}
	return s, nil
}

// Load fills an empty State. Commands receive the State before their flags
// are parsed and load it from a pre-run hook.
func (s *State) Load(ctx context.Context, v *viper.Viper) error {
	if err := s.LoadConfig(v); err != nil {
		return err
	}
	cfg, logger := s.Config, s.Logger

	b, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		_ = s.Close()
		return err
	}
	s.Backend = b

	watched := ""
	if cfg.Backend.Driver == constants.DriverFile {
		watched = cfg.DataPath()
	}
	watcher, err := NewDataWatcher(watched)
	if err != nil {
		_ = s.Close()
		return fmt.Errorf("failed to create data watcher: %w", err)
	}
	s.Watcher = watcher

	logger.Debug().
		Str("driver", cfg.Backend.Driver).
		Str("data", cfg.DataPath()).
		Msg("state initialized")

	return nil
}

// LoadConfig fills only the config and the logger, for commands that must
// work while the backend is unreachable.
func (s *State) LoadConfig(v *viper.Viper) error {
	home, err := GetHomeDir()
	if err != nil {
		return err
	}

	cfg, err := config.Load(home, v)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.LogPath(), cfg.Log.Level)
	if err != nil {
		return err
	}

	s.Config = cfg
	s.Logger = logger
	s.Home = home
	s.logCloser = closer
	return nil
}

// Loaded reports whether Load has completed.
func (s *State) Loaded() bool {
	return s != nil && s.Config != nil && s.Backend != nil
}

// OpenBackend connects the backend named by cfg.Backend.Driver.
func OpenBackend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (backend.Backend, error) {
	switch cfg.Backend.Driver {
	case constants.DriverFile:
		s, err := filestore.Open(cfg.DataPath(), filestore.WithLogger(logging.Component(logger, "filestore")))
		if err != nil {
			return nil, err
		}
		return s, nil
	case constants.DriverBolt:
		s, err := boltstore.Open(cfg.DataPath(), boltstore.WithLogger(logging.Component(logger, "boltstore")))
		if err != nil {
			return nil, err
		}
		return s, nil
	case constants.DriverPostgres:
		s, err := pgstore.Open(ctx, cfg.Backend.DSN, pgstore.WithLogger(logging.Component(logger, "pgstore")))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported backend driver %q", cfg.Backend.Driver)
	}
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return home, nil
}

// Close releases the watcher, the backend and the log file.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Backend != nil {
		if err := s.Backend.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Backend = nil
	}
	if s.logCloser != nil {
		if err := s.logCloser.Close(); err != nil {
			errs = append(errs, err)
		}
		s.logCloser = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
