package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"

	"github.com/filegate/filegate/internal/domain"
)

const (
	// FileName is the config file looked up in a directory.
	FileName = ".filegate.yaml"
	// EnvPrefix marks environment overrides; "__" separates nested keys.
	EnvPrefix = "FILEGATE_"
)

var validate = validator.New()

// YAMLLoader implements domain.ConfigLoader with koanf: YAML file first,
// FILEGATE_* environment variables on top.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the configuration. path may be a config file or a directory
// holding .filegate.yaml; "" means the working directory. A missing file in
// a directory yields the defaults, a missing explicit file is an error.
func (l *YAMLLoader) Load(path string) (domain.EngineConfig, error) {
	cfgFile, explicit, err := resolve(path)
	if err != nil {
		return domain.EngineConfig{}, err
	}

	k := koanf.New(".")

	// 1. YAML file
	if _, statErr := os.Stat(cfgFile); statErr == nil {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return domain.EngineConfig{}, fmt.Errorf("parsing %s: %w", filepath.Base(cfgFile), err)
		}
	} else if explicit || !errors.Is(statErr, os.ErrNotExist) {
		return domain.EngineConfig{}, &domain.ResourceError{Op: "read config", Path: cfgFile, Err: statErr}
	}

	// 2. Env overrides: FILEGATE_LOG__LEVEL -> log.level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", "."))
	}), nil); err != nil {
		return domain.EngineConfig{}, fmt.Errorf("loading environment: %w", err)
	}

	// 3. Overlay onto defaults
	cfg := domain.DefaultEngineConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return domain.EngineConfig{}, fmt.Errorf("decoding %s: %w", filepath.Base(cfgFile), err)
	}
	if k.Exists("null_values") {
		cfg.NullValues = nullValues(k.Get("null_values"))
	}

	// 4. Validate
	if err := Check(cfg); err != nil {
		return domain.EngineConfig{}, fmt.Errorf("invalid %s: %w", filepath.Base(cfgFile), err)
	}
	return cfg, nil
}

// Check validates cfg's struct tags, then its semantic constraints. Callers
// that change a loaded config (command-line flags) check it again.
func Check(cfg domain.EngineConfig) error {
	if err := validate.Struct(&cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func resolve(path string) (cfgFile string, explicit bool, err error) {
	if path == "" {
		return FileName, false, nil
	}
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return filepath.Join(path, FileName), false, nil
	}
	return path, true, nil
}

// nullValues replaces rather than merges: decoding onto the default slice
// would keep trailing defaults. Env values arrive as one comma-separated
// string.
func nullValues(v any) []string {
	switch t := v.(type) {
	case string:
		return strings.Split(t, ",")
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			if x == nil {
				out = append(out, "")
				continue
			}
			out = append(out, fmt.Sprint(x))
		}
		return out
	case []string:
		return t
	}
	return nil
}
