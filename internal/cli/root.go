package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/reclasifica/internal/logging"
	"github.com/ppiankov/reclasifica/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X ...cli.version=..."
var version = "v0.1.0"

var (
	cfgFile string
	verbose bool

	// cfg and logger are set by PersistentPreRunE before any command runs
	cfg    = model.DefaultConfig()
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "reclasifica <origen> <destino>",
	Short: "Reclasifica - Conflict-of-interest declaration converter",
	Long: `Reclasifica converts conflict-of-interest declarations into the normalized
participation-in-procedures schemas and sorts them by procedure type.

Every *.json file under <origen> is read (arrays contribute each element).
Records are mapped onto the schema of their procedure type, classified by
keyword and written to <destino>/<categoria>/<archivo>.json together with a
_resumen_procesamiento.json summary.

Records declaring more than one procedure type are not classified. They go to
revisar_casos_sin_tipoProcedimiento_definido/ for manual review.

Example:
  reclasifica ./datos_originales ./datos_convertidos
  reclasifica ./origen ./destino --no-clean --verbose
  reclasifica ./origen ./destino --llm --llm-model gpt-4o-mini`,
	Args:          cobra.ExactArgs(2),
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded

		logger, err = logging.New(cfg.Log, verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runConvert,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Reclasifica.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "reclasifica %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.reclasifica/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Conversion flags
	rootCmd.Flags().Bool("no-clean", false, "keep existing destination content instead of removing it")
	rootCmd.Flags().Bool("no-cache", false, "disable classification memoization")
	rootCmd.Flags().String("ignore-file", ".reclasificaignore", "gitignore-style exclusion file at the source root (empty disables)")
	rootCmd.Flags().Int("indent", 2, "JSON indent width")

	// LLM flags
	rootCmd.Flags().Bool("llm", false, "suggest a procedure type for records sent to review")
	rootCmd.Flags().String("llm-provider", "openai", "LLM provider (openai, ollama)")
	rootCmd.Flags().String("llm-model", "gpt-4o-mini", "LLM model name")

	// Bind flags to viper
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("loader.ignore_file", rootCmd.Flags().Lookup("ignore-file"))
	_ = viper.BindPFlag("output.indent", rootCmd.Flags().Lookup("indent"))
	_ = viper.BindPFlag("llm.model", rootCmd.Flags().Lookup("llm-model"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.reclasifica")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match RECLASIFICA_* (log.level -> RECLASIFICA_LOG_LEVEL)
	viper.SetEnvPrefix("RECLASIFICA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper(), model.DefaultConfig())

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so environment variables are seen by Unmarshal
func setDefaults(v *viper.Viper, d *model.Config) {
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("loader.ignore_file", d.Loader.IgnoreFile)
	v.SetDefault("output.clean", d.Output.Clean)
	v.SetDefault("output.indent", d.Output.Indent)
	v.SetDefault("output.verbose", d.Output.Verbose)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.model", d.LLM.Model)
	v.SetDefault("llm.base_url", d.LLM.BaseURL)
	v.SetDefault("llm.proxy", d.LLM.Proxy)
	v.SetDefault("llm.api_key", d.LLM.APIKey)
	v.SetDefault("llm.timeout", d.LLM.Timeout)
	v.SetDefault("llm.max_tokens", d.LLM.MaxTokens)
	v.SetDefault("llm.requests_per_second", d.LLM.RequestsPerSecond)
	v.SetDefault("llm.burst", d.LLM.Burst)
}

// loadConfig merges defaults, config file, environment and the flags that
// have no direct viper key
func loadConfig(cmd *cobra.Command) (*model.Config, error) {
	loaded := model.DefaultConfig()
	if err := viper.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	flags := cmd.Flags()
	if noClean, err := flags.GetBool("no-clean"); err == nil && noClean {
		loaded.Output.Clean = false
	}
	if noCache, err := flags.GetBool("no-cache"); err == nil && noCache {
		loaded.Cache.Enabled = false
	}
	if flags.Lookup("llm") != nil {
		enabled, _ := flags.GetBool("llm")
		provider, _ := flags.GetString("llm-provider")
		if enabled || flags.Changed("llm-provider") {
			loaded.LLM.Provider = provider
		}
	}
	loaded.Output.Verbose = loaded.Output.Verbose || verbose

	return loaded, nil
}
