package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pyclip/constants/lipgloss"
)

// Config represents the structure of the configuration file
type Config struct {
	Version   string   `mapstructure:"version"`
	Theme     string   `mapstructure:"theme"`
	Depth     int      `mapstructure:"depth"`
	MaxChars  int      `mapstructure:"max_chars"`
	MaxTokens int      `mapstructure:"max_tokens"`
	NoComment bool     `mapstructure:"no_comment"`
	Encoding  string   `mapstructure:"encoding"`
	Excludes  []string `mapstructure:"excludes"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:   "1.0.0",
	Theme:     "dracula",
	Depth:     999,
	MaxChars:  15000,
	MaxTokens: 2700,
	NoComment: false,
	Encoding:  "cl100k_base",
	Excludes:  nil,
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("pyclip-config")
		viper.AddConfigPath(cwd)

		// Support both JSON and YAML formats
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			// If both fail, continue with defaults
			_ = viper.ReadInConfig()
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// Validate rejects configurations that must never start a traversal. This is
// the only fatal error class: everything later in the run degrades to
// warnings.
func (c *Config) Validate() error {
	if c.Depth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", c.Depth)
	}
	if c.MaxChars <= 0 {
		return fmt.Errorf("max_chars must be positive, got %d", c.MaxChars)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Encoding == "" {
		return fmt.Errorf("encoding must not be empty")
	}
	return nil
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("depth", DefaultConfig.Depth)
	viper.SetDefault("max_chars", DefaultConfig.MaxChars)
	viper.SetDefault("max_tokens", DefaultConfig.MaxTokens)
	viper.SetDefault("no_comment", DefaultConfig.NoComment)
	viper.SetDefault("encoding", DefaultConfig.Encoding)
	viper.SetDefault("excludes", DefaultConfig.Excludes)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("theme", "PYCLIP_THEME")
	_ = viper.BindEnv("depth", "PYCLIP_DEPTH")
	_ = viper.BindEnv("max_chars", "PYCLIP_MAX_CHARS")
	_ = viper.BindEnv("max_tokens", "PYCLIP_MAX_TOKENS")
	_ = viper.BindEnv("no_comment", "PYCLIP_NO_COMMENT")
	_ = viper.BindEnv("encoding", "PYCLIP_ENCODING")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("depth", rootCmd.PersistentFlags().Lookup("depth"))
	_ = viper.BindPFlag("max_chars", rootCmd.PersistentFlags().Lookup("max-chars"))
	_ = viper.BindPFlag("max_tokens", rootCmd.PersistentFlags().Lookup("max-tokens"))
	_ = viper.BindPFlag("no_comment", rootCmd.PersistentFlags().Lookup("no-comment"))
	_ = viper.BindPFlag("encoding", rootCmd.PersistentFlags().Lookup("encoding"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set the syntax highlighting theme for chunk previews. (e.g., 'dracula', 'light', 'dark')")
	rootCmd.PersistentFlags().IntP("depth", "d", DefaultConfig.Depth, "Depth of the dependency analysis, counted in hops from the seed files.")
	rootCmd.PersistentFlags().Int("max-chars", DefaultConfig.MaxChars, "Maximum number of characters per chunk.")
	rootCmd.PersistentFlags().Int("max-tokens", DefaultConfig.MaxTokens, "Maximum number of tokens per chunk.")
	rootCmd.PersistentFlags().BoolP("no-comment", "n", DefaultConfig.NoComment, "Omit documentation comments from the collected code.")
	rootCmd.PersistentFlags().String("encoding", DefaultConfig.Encoding, "The tiktoken encoding used for token counting.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}
