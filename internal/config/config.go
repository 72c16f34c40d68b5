package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"ataxx_go/internal/game"
)

const (
	ConfigDebug           = "debug"
	ConfigLogJSON         = "log-json"
	ConfigSearchDepth     = "search-depth"
	ConfigSeed            = "seed"
	ConfigShuffleRoot     = "shuffle-root"
	ConfigHTTPAddr        = "http-addr"
	ConfigSelfplayGames   = "selfplay-games"
	ConfigSelfplayWorkers = "selfplay-workers"
	ConfigSelfplayOpening = "selfplay-openings"
	ConfigSelfplayOut     = "selfplay-out"
	ConfigHistoryFile     = "history-file"
	ConfigFile            = "config"
)

// ErrBadSetting is wrapped by Load when a value is out of range.
var ErrBadSetting = errors.New("bad setting")

// Config holds every tunable for the ataxx binaries. Values come from flags,
// then ATAXX_* environment variables, then an optional config file, then
// the defaults below.
type Config struct {
	*viper.Viper
}

func defaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigLogJSON, false)
	v.SetDefault(ConfigSearchDepth, 4)
	v.SetDefault(ConfigSeed, 0)
	v.SetDefault(ConfigShuffleRoot, false)
	v.SetDefault(ConfigHTTPAddr, ":8080")
	v.SetDefault(ConfigSelfplayGames, 100)
	v.SetDefault(ConfigSelfplayWorkers, 0)
	v.SetDefault(ConfigSelfplayOpening, 2)
	v.SetDefault(ConfigSelfplayOut, "selfplay.csv")
	v.SetDefault(ConfigHistoryFile, "/tmp/ataxx_history.tmp")
}

// DefaultConfig returns a Config holding only the defaults.
func DefaultConfig() *Config {
	v := viper.New()
	defaults(v)
	return &Config{v}
}

// Load parses args (without the program name) and merges them with the
// environment and the config file named by --config, if any.
func Load(name string, args []string) (*Config, error) {
	v := viper.New()
	defaults(v)

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Bool(ConfigLogJSON, false, "log as JSON instead of console text")
	fs.Int(ConfigSearchDepth, 4, "AI search depth in plies")
	fs.Int64(ConfigSeed, 0, "seed for the AI's random generator")
	fs.Bool(ConfigShuffleRoot, false, "shuffle root moves before searching")
	fs.String(ConfigHTTPAddr, ":8080", "address for the HTTP server")
	fs.Int(ConfigSelfplayGames, 100, "number of self-play games")
	fs.Int(ConfigSelfplayWorkers, 0, "self-play workers; 0 means one per CPU")
	fs.Int(ConfigSelfplayOpening, 2, "random plies played before each self-play search")
	fs.String(ConfigSelfplayOut, "selfplay.csv", "self-play CSV, appended to and resumed from")
	fs.String(ConfigHistoryFile, "/tmp/ataxx_history.tmp", "readline history file")
	fs.String(ConfigFile, "", "optional config file (yaml, toml or json)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	v.SetEnvPrefix("ATAXX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString(ConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
	}

	cfg := &Config{v}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.SearchDepth() < 1 {
		return fmt.Errorf("%w: %s must be at least 1", ErrBadSetting, ConfigSearchDepth)
	}
	if c.SearchDepth() > game.MaxDepth {
		return fmt.Errorf("%w: %s must be at most %d", ErrBadSetting, ConfigSearchDepth, game.MaxDepth)
	}
	if c.GetInt(ConfigSelfplayGames) < 0 {
		return fmt.Errorf("%w: %s is negative", ErrBadSetting, ConfigSelfplayGames)
	}
	if c.GetInt(ConfigSelfplayWorkers) < 0 {
		return fmt.Errorf("%w: %s is negative", ErrBadSetting, ConfigSelfplayWorkers)
	}
	if c.GetInt(ConfigSelfplayOpening) < 0 {
		return fmt.Errorf("%w: %s is negative", ErrBadSetting, ConfigSelfplayOpening)
	}
	return nil
}

func (c *Config) SearchDepth() int { return c.GetInt(ConfigSearchDepth) }
func (c *Config) Seed() int64      { return c.GetInt64(ConfigSeed) }
func (c *Config) ShuffleRoot() bool {
	return c.GetBool(ConfigShuffleRoot)
}
func (c *Config) HTTPAddr() string { return c.GetString(ConfigHTTPAddr) }

// SanitizedSettings is for logging at startup.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

// SetupLogging installs the global zerolog logger: a console writer on
// stderr, or plain JSON when log-json is set.
func (c *Config) SetupLogging() zerolog.Logger {
	return c.setupLogging(os.Stderr)
}

func (c *Config) setupLogging(w io.Writer) zerolog.Logger {
	out := w
	if !c.GetBool(ConfigLogJSON) {
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		cw.FormatLevel = func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		}
		cw.FormatMessage = func(i interface{}) string {
			return fmt.Sprintf("%s", i)
		}
		cw.FormatFieldName = func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		}
		out = cw
	}

	level := zerolog.InfoLevel
	if c.GetBool(ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("debug logging is on")
	return logger
}
