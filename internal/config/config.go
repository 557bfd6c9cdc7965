package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/go-subword-vocab/internal/corpus"
	"github.com/example/go-subword-vocab/internal/tokenizer"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// VOCABTRAIN_BPE_MAX_MERGES.
const EnvPrefix = "VOCABTRAIN"

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

type Config struct {
	Corpus   CorpusConfig `mapstructure:"corpus"`
	Split    SplitConfig  `mapstructure:"split"`
	BPE      BPEConfig    `mapstructure:"bpe"`
	Output   OutputConfig `mapstructure:"output"`
	LogLevel string       `mapstructure:"log_level"`
}

type CorpusConfig struct {
	Files       []string `mapstructure:"files"`
	Languages   []string `mapstructure:"languages"`
	Concurrency int      `mapstructure:"concurrency"`
}

type SplitConfig struct {
	Seed       uint64  `mapstructure:"seed"`
	TrainRatio float64 `mapstructure:"train_ratio"`
	ValRatio   float64 `mapstructure:"val_ratio"`
}

type BPEConfig struct {
	MaxMerges int `mapstructure:"max_merges"`
	Shards    int `mapstructure:"shards"`
}

type OutputConfig struct {
	Format    string `mapstructure:"format"`
	TopTokens int    `mapstructure:"top_tokens"`
	Merges    int    `mapstructure:"merges"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	split := corpus.DefaultSplitOptions()

	return Config{
		Corpus: CorpusConfig{
			Files:       nil,
			Languages:   []string{"en", "ru"},
			Concurrency: 2,
		},
		Split: SplitConfig{
			Seed:       split.Seed,
			TrainRatio: split.TrainRatio,
			ValRatio:   split.ValRatio,
		},
		BPE: BPEConfig{
			MaxMerges: 500,
			Shards:    1,
		},
		Output: OutputConfig{
			Format:    FormatTable,
			TopTokens: 10,
			Merges:    0,
		},
		LogLevel: "info",
	}
}

// flagKeys maps each command line flag to the config key it overrides.
var flagKeys = map[string]string{
	"corpus-files":       "corpus.files",
	"languages":          "corpus.languages",
	"corpus-concurrency": "corpus.concurrency",
	"seed":               "split.seed",
	"train-ratio":        "split.train_ratio",
	"val-ratio":          "split.val_ratio",
	"max-merges":         "bpe.max_merges",
	"shards":             "bpe.shards",
	"format":             "output.format",
	"top-tokens":         "output.top_tokens",
	"show-merges":        "output.merges",
	"log-level":          "log_level",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.StringSlice("corpus-files", defaults.Corpus.Files, "JSONL corpus files (positional arguments of train take precedence)")
	fs.StringSlice("languages", defaults.Corpus.Languages, "Language of each corpus file, in order (en|latin|ru|cyrillic)")
	fs.Int("corpus-concurrency", defaults.Corpus.Concurrency, "Max corpora processed at once")
	fs.Uint64("seed", defaults.Split.Seed, "Random seed for the train/val/test shuffle")
	fs.Float64("train-ratio", defaults.Split.TrainRatio, "Share of lines in the training partition")
	fs.Float64("val-ratio", defaults.Split.ValRatio, "Share of lines in the validation partition")
	fs.Int("max-merges", defaults.BPE.MaxMerges, "BPE merge budget per corpus")
	fs.Int("shards", defaults.BPE.Shards, "Goroutines used for BPE pair counting on long streams")
	fs.String("format", defaults.Output.Format, "Report format: table|json")
	fs.Int("top-tokens", defaults.Output.TopTokens, "Most frequent regex tokens to report per corpus")
	fs.Int("show-merges", defaults.Output.Merges, "Earliest merge rules to list per corpus")
	fs.String("log-level", defaults.LogLevel, "Log level: debug|info|warn|error")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("vocabtrain")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("corpus.files", c.Corpus.Files)
	v.SetDefault("corpus.languages", c.Corpus.Languages)
	v.SetDefault("corpus.concurrency", c.Corpus.Concurrency)
	v.SetDefault("split.seed", c.Split.Seed)
	v.SetDefault("split.train_ratio", c.Split.TrainRatio)
	v.SetDefault("split.val_ratio", c.Split.ValRatio)
	v.SetDefault("bpe.max_merges", c.BPE.MaxMerges)
	v.SetDefault("bpe.shards", c.BPE.Shards)
	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("output.top_tokens", c.Output.TopTokens)
	v.SetDefault("output.merges", c.Output.Merges)
	v.SetDefault("log_level", c.LogLevel)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// SplitOptions returns the partitioner settings.
func (c Config) SplitOptions() corpus.SplitOptions {
	return corpus.SplitOptions{
		Seed:       c.Split.Seed,
		TrainRatio: c.Split.TrainRatio,
		ValRatio:   c.Split.ValRatio,
	}
}

// Validate checks every setting that would otherwise fail deep inside a run.
func (c Config) Validate() error {
	var errs []error

	if c.BPE.MaxMerges < 0 {
		errs = append(errs, fmt.Errorf("bpe.max_merges must not be negative, got %d", c.BPE.MaxMerges))
	}
	if c.BPE.Shards < 0 {
		errs = append(errs, fmt.Errorf("bpe.shards must not be negative, got %d", c.BPE.Shards))
	}
	if c.Corpus.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("corpus.concurrency must be at least 1, got %d", c.Corpus.Concurrency))
	}
	if c.Output.TopTokens < 0 || c.Output.Merges < 0 {
		errs = append(errs, fmt.Errorf("output.top_tokens and output.merges must not be negative"))
	}
	if err := c.SplitOptions().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := NormalizeFormat(c.Output.Format); err != nil {
		errs = append(errs, err)
	}
	for _, l := range c.Corpus.Languages {
		if _, err := tokenizer.ParseLanguage(l); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func NormalizeFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	if format == "" {
		format = FormatTable
	}
	switch format {
	case FormatTable, FormatJSON:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected %s|%s)", raw, FormatTable, FormatJSON)
	}
}

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}
