package imvector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config controls process-wide behaviour of the views.
type Config struct {
	// BoundsCheck makes At and Set panic on indices outside [0, Size).
	BoundsCheck bool `env:"IMVECTOR_BOUNDS_CHECK:-true"`
	// StrictLayout makes NewVector reject element types that only exist
	// inside the Go runtime.
	StrictLayout bool `env:"IMVECTOR_STRICT_LAYOUT:-false"`
	// LogLevel installs a production zap logger at that level. Empty keeps
	// the current logger.
	LogLevel string `env:"IMVECTOR_LOG_LEVEL"`
}

var (
	uncheckedBounds atomic.Bool
	strictLayout    atomic.Bool
)

func DefaultConfig() Config {
	return Config{BoundsCheck: true}
}

// LoadConfig reads the given dotenv files, skipping missing ones, and fills a
// Config from them. Process environment variables take precedence.
func LoadConfig(paths ...string) (Config, error) {
	vars := make(map[string]string)

	for _, path := range paths {
		read, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("could not load %s: %w", path, err)
		}

		for k, v := range read {
			vars[k] = v
		}
	}

	var cfg Config
	err := fillEnv(&cfg, func(name string) (string, bool) {
		if v, ok := os.LookupEnv(name); ok {
			return v, true
		}
		v, ok := vars[name]
		return v, ok
	})

	return cfg, err
}

// Configure applies cfg to the whole process.
func Configure(cfg Config) error {
	if cfg.LogLevel != "" {
		level, err := zap.ParseAtomicLevel(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("imvector: log level: %w", err)
		}

		zcfg := zap.NewProductionConfig()
		zcfg.Level = level
		l, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("imvector: logger: %w", err)
		}
		SetLogger(l.Named("imvector"))
	}

	uncheckedBounds.Store(!cfg.BoundsCheck)
	strictLayout.Store(cfg.StrictLayout)

	Logger().Info("configured",
		zap.Bool("bounds_check", cfg.BoundsCheck),
		zap.Bool("strict_layout", cfg.StrictLayout),
	)

	return nil
}

// CurrentConfig returns the settings in effect. LogLevel is left empty.
func CurrentConfig() Config {
	return Config{
		BoundsCheck:  !uncheckedBounds.Load(),
		StrictLayout: strictLayout.Load(),
	}
}
