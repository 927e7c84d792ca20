package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/noteplan/internal/constants"
	"github.com/Paintersrp/noteplan/internal/pathutil"
)

type BackendConfig struct {
	Driver string `yaml:"driver" json:"driver" validate:"oneof=file bolt postgres"`
	Path   string `yaml:"path"   json:"path"`
	DSN    string `yaml:"dsn"    json:"dsn"    validate:"required_if=Driver postgres"`
}

type LogConfig struct {
	File  string `yaml:"file"  json:"file"`
	Level string `yaml:"level" json:"level" validate:"oneof=trace debug info warn error disabled"`
}

type UIConfig struct {
	GlamourStyle  string        `yaml:"glamour_style"  json:"glamour_style"`
	Heartbeat     time.Duration `yaml:"heartbeat"      json:"heartbeat"`
	ConfirmDelete bool          `yaml:"confirm_delete" json:"confirm_delete"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"   json:"bucket"`
	Region   string `yaml:"region"   json:"region"`
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	Prefix   string `yaml:"prefix"   json:"prefix"`
}

type ExportConfig struct {
	S3 S3Config `yaml:"s3" json:"s3"`
}

type Config struct {
	Backend BackendConfig `yaml:"backend" json:"backend"`
	Log     LogConfig     `yaml:"log"     json:"log"`
	UI      UIConfig      `yaml:"ui"      json:"ui"`
	Export  ExportConfig  `yaml:"export"  json:"export"`

	home string `yaml:"-"`
}

// overrides lists the keys that flags and NOTEPLAN_* variables may set.
var overrides = []string{
	"backend.driver",
	"backend.path",
	"backend.dsn",
	"log.file",
	"log.level",
	"ui.glamour_style",
	"ui.heartbeat",
	"export.s3.bucket",
	"export.s3.region",
	"export.s3.endpoint",
}

var validate = validator.New()

func Default() *Config {
	return &Config{
		Backend: BackendConfig{Driver: constants.DriverFile},
		Log:     LogConfig{Level: "info"},
		UI: UIConfig{
			GlamourStyle:  "dracula",
			Heartbeat:     time.Minute,
			ConfirmDelete: true,
		},
	}
}

// Load reads the config file under home, creating it with defaults when
// missing, then applies the .env file, the environment and any flags bound
// to v. A nil v skips flag and environment overrides.
func Load(home string, v *viper.Viper) (*Config, error) {
	if err := EnsureConfigExists(home); err != nil {
		return nil, err
	}

	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.home = home

	if v != nil {
		if err := loadEnvFile(home); err != nil {
			return nil, err
		}
		if err := cfg.applyOverrides(v); err != nil {
			return nil, err
		}
	}

	cfg.ensureDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFile(home string) error {
	path := filepath.Join(home, constants.ConfigDir, constants.EnvFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (cfg *Config) applyOverrides(v *viper.Viper) error {
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range overrides {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	set := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	set("backend.driver", &cfg.Backend.Driver)
	set("backend.path", &cfg.Backend.Path)
	set("backend.dsn", &cfg.Backend.DSN)
	set("log.file", &cfg.Log.File)
	set("log.level", &cfg.Log.Level)
	set("ui.glamour_style", &cfg.UI.GlamourStyle)
	set("export.s3.bucket", &cfg.Export.S3.Bucket)
	set("export.s3.region", &cfg.Export.S3.Region)
	set("export.s3.endpoint", &cfg.Export.S3.Endpoint)
	if v.IsSet("ui.heartbeat") {
		cfg.UI.Heartbeat = v.GetDuration("ui.heartbeat")
	}
	return nil
}

func (cfg *Config) ensureDefaults() {
	cfg.Backend.Driver = strings.ToLower(strings.TrimSpace(cfg.Backend.Driver))
	if cfg.Backend.Driver == "" {
		cfg.Backend.Driver = constants.DriverFile
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.UI.GlamourStyle == "" {
		cfg.UI.GlamourStyle = "dracula"
	}
	if cfg.UI.Heartbeat <= 0 {
		cfg.UI.Heartbeat = time.Minute
	}
}

func (cfg *Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return newConfigError(err)
	}
	return nil
}

// DataPath returns the absolute location of the file or bolt database.
func (cfg *Config) DataPath() string {
	if cfg.Backend.Path != "" {
		return pathutil.ExpandHome(cfg.Backend.Path, cfg.home)
	}
	name := "note_plan_data.json"
	if cfg.Backend.Driver == constants.DriverBolt {
		name = "note_plan_data.db"
	}
	return filepath.Join(cfg.home, constants.ConfigDir, name)
}

// LogPath returns the absolute location of the log file.
func (cfg *Config) LogPath() string {
	if cfg.Log.File != "" {
		return pathutil.ExpandHome(cfg.Log.File, cfg.home)
	}
	return filepath.Join(cfg.home, constants.ConfigDir, constants.LogFile)
}

func (cfg *Config) GetConfigPath() string {
	return GetConfigPath(cfg.home)
}

func (cfg *Config) Save() error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Redacted returns a copy safe to print.
func (cfg *Config) Redacted() Config {
	out := *cfg
	if out.Backend.DSN != "" {
		out.Backend.DSN = "********"
	}
	return out
}
