package magickit

import (
	"os"
	"time"

	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Path to a magic rule file or directory; empty uses the built-in rules
	MagicPath string `env:"MAGICKIT_MAGIC_PATH"`

	// Glob pattern selecting rule files when MagicPath is a directory
	FilePattern string `env:"MAGICKIT_FILE_PATTERN,default:*"`

	// Number of leading bytes examined per file
	ReadSize int `env:"MAGICKIT_READ_SIZE,default:2048"`

	// Compiled rule-set caching
	CacheEnabled    bool `env:"MAGICKIT_CACHE_ENABLED,default:false"`
	CacheTTLSeconds int  `env:"MAGICKIT_CACHE_TTL_SECONDS,default:0"`

	// Order top-level rules by declared strength instead of declaration order
	StrengthOrdering bool `env:"MAGICKIT_STRENGTH_ORDERING,default:false"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewFromConfig creates a detector from a Config, typically obtained from
// the environment via GetConfig.
func NewFromConfig(cfg *Config) (*Detector, error) {
	opts := []Option{
		WithReadSize(cfg.ReadSize),
		WithFilePattern(cfg.FilePattern),
		WithStrengthOrdering(cfg.StrengthOrdering),
	}
	if cfg.CacheEnabled {
		opts = append(opts,
			WithCache(NewMemoryCache()),
			WithCacheTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
		)
	}

	if cfg.MagicPath == "" {
		return New(opts...), nil
	}
	info, err := os.Stat(cfg.MagicPath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return NewFromDirectory(cfg.MagicPath, opts...)
	}
	return NewFromFile(cfg.MagicPath, opts...)
}
