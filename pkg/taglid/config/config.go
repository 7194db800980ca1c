package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/cognicore/taglid/pkg/taglid/internalerr"
)

// PathEnv names the environment variable holding the config file path.
const PathEnv = "TAGLID_CONFIG"

// Config is the root taglid configuration.
type Config struct {
	Resources  ResourcesConfig  `yaml:"resources"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Dataset    DatasetConfig    `yaml:"dataset"`
	Log        LogConfig        `yaml:"log"`
	Redis      RedisConfig      `yaml:"redis"`
	Store      StoreConfig      `yaml:"store"`
}

// ResourcesConfig locates the lexical resource files.
type ResourcesConfig struct {
	Dir string `yaml:"dir" env:"TAGLID_RESOURCES_DIR" env-default:"resources"`
}

// ClassifierConfig tunes the stage pipeline.
type ClassifierConfig struct {
	MaxEdits            int  `yaml:"max_edits"             env:"TAGLID_MAX_EDITS"             env-default:"2"`
	MaxDepth            int  `yaml:"max_depth"             env:"TAGLID_MAX_DEPTH"             env-default:"3"`
	MinCorrectionLength int  `yaml:"min_correction_length" env:"TAGLID_MIN_CORRECTION_LENGTH" env-default:"3"`
	CapitalizedEntities bool `yaml:"capitalized_entities"  env:"TAGLID_CAPITALIZED_ENTITIES"  env-default:"false"`
	StripMarkup         bool `yaml:"strip_markup"          env:"TAGLID_STRIP_MARKUP"          env-default:"false"`
}

// DatasetConfig controls batch labeling.
type DatasetConfig struct {
	Workers int `yaml:"workers" env:"TAGLID_WORKERS" env-default:"0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"TAGLID_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"TAGLID_LOG_FORMAT" env-default:"text"`
}

// RedisConfig points at the optional custom-word overlay. An empty Addr
// disables it.
type RedisConfig struct {
	Addr      string `yaml:"addr"       env:"TAGLID_REDIS_ADDR"`
	Password  string `yaml:"password"   env:"TAGLID_REDIS_PASSWORD"`
	DB        int    `yaml:"db"         env:"TAGLID_REDIS_DB"         env-default:"0"`
	KeyPrefix string `yaml:"key_prefix" env:"TAGLID_REDIS_KEY_PREFIX" env-default:"taglid:custom_dict"`
}

// StoreConfig selects where dataset runs are recorded. An empty Path keeps
// runs in memory for the lifetime of the process.
type StoreConfig struct {
	Path string `yaml:"path" env:"TAGLID_STORE_PATH"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// An empty path falls back to $TAGLID_CONFIG; with neither set, only ENV
// and defaults are used.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv(PathEnv)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: file %s: %v", internalerr.ErrInvalidConfig, path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", internalerr.ErrInvalidConfig, path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%w: read env: %v", internalerr.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	return &Config{
		Resources:  ResourcesConfig{Dir: "resources"},
		Classifier: ClassifierConfig{MaxEdits: 2, MaxDepth: 3, MinCorrectionLength: 3},
		Log:        LogConfig{Level: "warn", Format: "text"},
		Redis:      RedisConfig{KeyPrefix: "taglid:custom_dict"},
	}
}
