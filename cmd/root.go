package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pyclip/config"
	"pyclip/constants/lipgloss"
	"pyclip/token_management"
	tokenmanagement_contracts "pyclip/token_management/contracts"
	"pyclip/tokenizer"
)

// RootDependencies holds the dependencies built once per invocation and
// shared by the subcommands.
type RootDependencies struct {
	Config          *config.Config
	Cwd             string
	Tokenizer       *tokenizer.Tokenizer
	TokenManagement tokenmanagement_contracts.ITokenManagement
}

// rootCmd: pyclip
var rootCmd = &cobra.Command{
	Use:   "pyclip",
	Short: "Collect the transitive imports of Python files and copy them as size-bounded chunks.",
	Long: `pyclip statically analyzes the import statements of one or more Python entry
files, resolves their transitive dependency set inside the project root, and
serializes the resolved files into chunks bounded by character and token
budgets, ready to paste into a consumer with a fixed input-size limit.`,
	Run: func(cmd *cobra.Command, args []string) {
		if version, _ := cmd.Flags().GetBool("version"); version {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	config.InitFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}

// handleRootCommand loads the configuration, validates it, and builds the
// shared dependencies. Invalid configuration aborts before any traversal
// starts.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		os.Exit(1)
	}

	cfg := config.LoadConfigs(cmd.Root(), cwd)

	if err := cfg.Validate(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Invalid configuration: %v", err)))
		os.Exit(1)
	}

	counter, err := tokenizer.NewTokenizer(cfg.Encoding)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	return &RootDependencies{
		Config:          cfg,
		Cwd:             cwd,
		Tokenizer:       counter,
		TokenManagement: token_management.NewTokenManager(),
	}
}
