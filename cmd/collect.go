package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pyclip/chunker"
	"pyclip/collector"
	"pyclip/constants/lipgloss"
	"pyclip/utils"
)

// collectCmd: pyclip collect
var collectCmd = &cobra.Command{
	Use:   "collect <module-path>...",
	Short: "Resolve the import closure of the given entry files and transfer it chunk by chunk.",
	Long: `The 'collect' subcommand resolves the transitive dependency set of one or
more Python entry files, serializes the resolved files into size-bounded
chunks, and copies each chunk to the clipboard in turn, pausing for
acknowledgment between chunks.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleCollectCommand(rootDependencies, cmd, args)
	},
}

func init() {
	collectCmd.Flags().StringArrayP("exclude", "e", nil, "Path of a file to exclude from the analysis, repeatable.")
	collectCmd.Flags().Bool("stdout", false, "Print chunks to stdout instead of copying them to the clipboard.")
	collectCmd.Flags().Bool("preview", false, "Render a syntax-highlighted preview of each chunk.")

	rootCmd.AddCommand(collectCmd)
}

func handleCollectCommand(rootDependencies *RootDependencies, cmd *cobra.Command, args []string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	excludes, _ := cmd.Flags().GetStringArray("exclude")
	excludes = append(excludes, rootDependencies.Config.Excludes...)
	toStdout, _ := cmd.Flags().GetBool("stdout")
	preview, _ := cmd.Flags().GetBool("preview")

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithRemoveWhenDone(true)

	spinnerScan, _ := spinner.Start("Scanning project files...")

	catalog := collector.NewPathCatalog(rootDependencies.Cwd)
	allPaths, err := catalog.Enumerate()
	if err != nil {
		spinnerScan.Stop()
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error scanning project files: %v", err)))
		os.Exit(1)
	}
	candidates := collector.Exclude(allPaths, excludes)

	spinnerScan.Stop()

	spinnerWalk, _ := spinner.Start("Resolving dependencies...")

	walker := collector.NewDependencyWalker(rootDependencies.Cwd)
	resolved := walker.Walk(args, candidates, rootDependencies.Config.Depth)

	spinnerWalk.Stop()

	if len(resolved) == 0 {
		fmt.Println(lipgloss.Yellow.Render("No files resolved. Check that the module paths exist below the current directory."))
		return
	}

	contentChunker := chunker.NewContentChunker(
		rootDependencies.Cwd,
		rootDependencies.Config.MaxChars,
		rootDependencies.Config.MaxTokens,
		rootDependencies.Config.NoComment,
		rootDependencies.Tokenizer.Count,
	)
	chunks := contentChunker.Chunk(resolved)

	for _, c := range chunks {
		rootDependencies.TokenManagement.AddChunk(c.Chars, c.Tokens)
	}

	fmt.Println(lipgloss.Info.Render("== Result =="))
	rootDependencies.TokenManagement.DisplayUsage(rootDependencies.Config.MaxChars, rootDependencies.Config.MaxTokens)

	reader := bufio.NewReader(os.Stdin)

	for i, c := range chunks {
		select {
		case <-ctx.Done():
			fmt.Println(lipgloss.Yellow.Render("\nExiting..."))
			return
		default:
		}

		if preview {
			if err := utils.RenderChunkPreview(ctx, c.Content, rootDependencies.Config.Theme); err != nil {
				if err == context.Canceled {
					return
				}
				fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
			}
		}

		if toStdout {
			fmt.Print(c.Content)
		} else {
			if err := utils.CopyToClipboard(c.Content); err != nil {
				fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
				os.Exit(1)
			}
			fmt.Println(lipgloss.Green.Render(fmt.Sprintf("\nChunk %d of %d copied to clipboard.", i+1, len(chunks))))
		}

		fmt.Println(lipgloss.Gray.Render(fmt.Sprintf("  (%d chars, %d tokens)", c.Chars, c.Tokens)))

		if c.Oversize {
			pterm.Warning.Printfln("Chunk %d exceeds the configured budgets: a single line is larger than one chunk.", i+1)
		}

		if !toStdout && i+1 < len(chunks) {
			if err := utils.PausePrompt(ctx, reader); err != nil {
				if err == context.Canceled {
					fmt.Println(lipgloss.Yellow.Render("Exiting..."))
					return
				}
				fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
				return
			}
		}
	}
}
