package model

import "time"

// Config holds every tunable setting. It is filled from defaults, the config
// file, RECLASIFICA_* environment variables and CLI flags, in increasing order
// of priority.
type Config struct {
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Loader LoaderConfig `yaml:"loader" mapstructure:"loader"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	LLM    LLMConfig    `yaml:"llm" mapstructure:"llm"`
}

// LogConfig controls the diagnostic logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console, json
}

// LoaderConfig controls source discovery
type LoaderConfig struct {
	IgnoreFile string `yaml:"ignore_file" mapstructure:"ignore_file"` // gitignore-style file at the source root
}

// OutputConfig controls how results are written
type OutputConfig struct {
	Clean   bool `yaml:"clean" mapstructure:"clean"`     // remove the destination before writing
	Indent  int  `yaml:"indent" mapstructure:"indent"`   // JSON indent width
	Verbose bool `yaml:"verbose" mapstructure:"verbose"` // per-file console output
}

// CacheConfig controls classification memoization
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// LLMConfig controls the optional review advisor
type LLMConfig struct {
	Provider          string  `yaml:"provider" mapstructure:"provider"` // "" (disabled), openai or ollama
	Model             string  `yaml:"model" mapstructure:"model"`
	BaseURL           string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Proxy             string  `yaml:"proxy,omitempty" mapstructure:"proxy"` // empty uses HTTP_PROXY/HTTPS_PROXY
	APIKey            string  `yaml:"-" mapstructure:"api_key"`
	Timeout           int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens         int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Loader: LoaderConfig{
			IgnoreFile: ".reclasificaignore",
		},
		Output: OutputConfig{
			Clean:  true,
			Indent: 2,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		LLM: LLMConfig{
			Provider:          "",
			Model:             "gpt-4o-mini",
			Timeout:           30,
			MaxTokens:         50,
			RequestsPerSecond: 2,
			Burst:             1,
		},
	}
}
