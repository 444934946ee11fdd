// Package config gathers runtime settings from defaults, an optional .env
// file, the process environment and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Garsondee/Cell-Touch/internal/game"
)

// Environment keys.
const (
	EnvTickMs          = "TOUCH_TICK_MS"
	EnvSeed            = "TOUCH_SEED"
	EnvTitleImage      = "TOUCH_TITLE_IMAGE"
	EnvBackgroundImage = "TOUCH_BACKGROUND_IMAGE"
	EnvWindowScale     = "TOUCH_WINDOW_SCALE"
	EnvVerbose         = "TOUCH_VERBOSE"
	EnvFile            = "TOUCH_ENV_FILE"
)

// DefaultEnvFile is read when Load is given an empty path and TOUCH_ENV_FILE
// is unset.
const DefaultEnvFile = ".env"

// Config holds the game settings after defaults, env file, environment and
// flags have been applied.
type Config struct {
	TickInterval    time.Duration
	Seed            int64 // 0 seeds from the clock
	TitleImage      string
	BackgroundImage string
	WindowScale     int
	Verbose         bool
}

// Default returns the settings the game ships with.
func Default() Config {
	return Config{
		TickInterval: game.TickInterval,
		WindowScale:  1,
	}
}

// Load starts from Default, overlays the .env file at path (a missing file
// is fine) and then the process environment.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvFile)
	}
	if path == "" {
		path = DefaultEnvFile
	}
	cfg := Default()

	fileEnv, err := godotenv.Read(path)
	switch {
	case err == nil:
		log.Printf("[Config] loaded %s", path)
	case errors.Is(err, fs.ErrNotExist):
		fileEnv = nil
	default:
		return cfg, fmt.Errorf("read env file %s: %w", path, err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}
	if err := cfg.apply(lookup); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTickMs); ok {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return fmt.Errorf("%s: want a positive integer, got %q", EnvTickMs, v)
		}
		c.TickInterval = time.Duration(ms) * time.Millisecond
	}
	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	if v, ok := lookup(EnvTitleImage); ok {
		c.TitleImage = v
	}
	if v, ok := lookup(EnvBackgroundImage); ok {
		c.BackgroundImage = v
	}
	if v, ok := lookup(EnvWindowScale); ok {
		scale, err := strconv.Atoi(v)
		if err != nil || scale < 1 {
			return fmt.Errorf("%s: want an integer >= 1, got %q", EnvWindowScale, v)
		}
		c.WindowScale = scale
	}
	if v, ok := lookup(EnvVerbose); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		c.Verbose = b
	}
	return nil
}

// BindFlags registers flags that override the loaded values. Call it after
// Load and before flags.Parse.
func (c *Config) BindFlags(flags *flag.FlagSet) {
	flags.DurationVar(&c.TickInterval, "tick", c.TickInterval, "tick interval")
	flags.Int64Var(&c.Seed, "seed", c.Seed, "target placement seed (0 = time based)")
	flags.StringVar(&c.TitleImage, "title-image", c.TitleImage, "title screen image (empty = generated)")
	flags.StringVar(&c.BackgroundImage, "background-image", c.BackgroundImage, "background image (empty = generated)")
	flags.IntVar(&c.WindowScale, "scale", c.WindowScale, "window scale factor")
	flags.BoolVar(&c.Verbose, "verbose", c.Verbose, "log every controller event")
}

// SeedOrNow returns Seed, or the current time when Seed is zero.
func (c Config) SeedOrNow() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
