package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nnaakkaaii/expectimax2048/internal/domain"
	"github.com/nnaakkaaii/expectimax2048/internal/usecase"
)

// 環境変数は EXP2048_DEPTH のように指定する
const envPrefix = "EXP2048"

var ErrInvalidConfig = errors.New("invalid config")

// Config は全コマンド共通の設定
type Config struct {
	Algorithm        string
	Depth            string
	Target           int
	Unbounded        bool
	Seed             uint64
	Delay            time.Duration
	Parallel         bool
	Workers          int
	PreSpawnFallback bool
	Quiet            bool
	Debug            bool
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("algorithm", "weight", "move selection: weight, sum or random")
	fs.String("depth", "smart", "search depth: smart or a fixed number")
	fs.Int("target", usecase.DefaultTargetTile, "stop when this tile is reached")
	fs.Bool("unbounded", false, "keep playing until no move is left")
	fs.Uint64("seed", 0, "seed for a reproducible game (0 draws from entropy)")
	fs.Duration("delay", 0, "delay between moves")
	fs.Bool("parallel", false, "search top-level moves concurrently")
	fs.Int("workers", 0, "parallel search workers (0 uses every CPU)")
	fs.Bool("pre-spawn-fallback", false, "score the pre-spawn board when a spawn leaves no move")
	fs.Bool("quiet", false, "print only the final summary")
	fs.Bool("debug", false, "enable debug logging")
	fs.String("config", "", "config file (yaml, toml or json)")
	return fs
}

// Load はフラグ、環境変数、設定ファイルの順に優先して設定を読み込む
func Load(name string, args []string) (*Config, error) {
	fs := newFlagSet(name)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Algorithm:        v.GetString("algorithm"),
		Depth:            v.GetString("depth"),
		Target:           v.GetInt("target"),
		Unbounded:        v.GetBool("unbounded"),
		Seed:             v.GetUint64("seed"),
		Delay:            v.GetDuration("delay"),
		Parallel:         v.GetBool("parallel"),
		Workers:          v.GetInt("workers"),
		PreSpawnFallback: v.GetBool("pre-spawn-fallback"),
		Quiet:            v.GetBool("quiet"),
		Debug:            v.GetBool("debug"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値の整合性を確認する
func (c *Config) Validate() error {
	if _, err := usecase.ParseAlgorithm(c.Algorithm); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := domain.ParseDepth(c.Depth); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !c.Unbounded && !isTile(c.Target) {
		return fmt.Errorf("%w: target %d is not a tile value", ErrInvalidConfig, c.Target)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if c.Delay < 0 {
		return fmt.Errorf("%w: delay must not be negative", ErrInvalidConfig)
	}
	return nil
}

func isTile(v int) bool {
	return v >= 2 && v <= 1<<domain.MaxExponent && v&(v-1) == 0
}

// PlayerConfig はPlayerの設定に変換する
// Validate済みであることを前提とする
func (c *Config) PlayerConfig() usecase.PlayerConfig {
	algorithm, _ := usecase.ParseAlgorithm(c.Algorithm)
	depth, err := domain.ParseDepth(c.Depth)
	if err != nil {
		depth = domain.SmartDepth{}
	}
	return usecase.PlayerConfig{
		Algorithm:        algorithm,
		Depth:            depth,
		Parallel:         c.Parallel,
		Workers:          c.Workers,
		PreSpawnFallback: c.PreSpawnFallback,
	}
}

// AutoPlayConfig は自動プレイの設定に変換する
func (c *Config) AutoPlayConfig() usecase.AutoPlayConfig {
	target := c.Target
	if c.Unbounded {
		target = 0
	}
	return usecase.AutoPlayConfig{
		Player:     c.PlayerConfig(),
		TargetTile: target,
		Delay:      c.Delay,
		Verbose:    !c.Quiet,
	}
}

// SetupLogging はコンソール出力のロガーを設定する
func SetupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
	log.Debug().Msg("debug logging is on")
}
