package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/sketchlab/internal/config"
	"github.com/zhubert/sketchlab/internal/logger"
)

var (
	skipConfirm bool
	resetConfig bool
)

// Overridden in tests
var (
	findLogs  = logger.LogFiles
	clearLogs = logger.ClearLogs
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove log files and optionally saved settings",
	Long: `Removes sketchlab's log files from /tmp. With --config, the saved
settings in ~/.sketchlab/config.json are removed as well.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cleanCmd.Flags().BoolVar(&resetConfig, "config", false, "Also remove saved settings")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	configPath := ""
	if resetConfig {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		configPath = cfg.Path()
	}
	return runCleanWithReader(os.Stdin, cmd.OutOrStdout(), configPath)
}

// runCleanWithReader allows injecting a reader for testing. configPath is
// removed too when non-empty.
func runCleanWithReader(input io.Reader, out io.Writer, configPath string) error {
	logs, err := findLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error listing logs: %v\n", err)
	}

	hasConfig := false
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			hasConfig = true
		}
	}

	// Check if there's anything to clean
	if len(logs) == 0 && !hasConfig {
		fmt.Fprintln(out, "Nothing to clean.")
		return nil
	}

	// Print summary of what will be cleaned
	fmt.Fprintln(out, "This will clean:")
	if len(logs) > 0 {
		fmt.Fprintf(out, "  - %d log file(s)\n", len(logs))
		for _, path := range logs {
			fmt.Fprintf(out, "      %s\n", path)
		}
	}
	if hasConfig {
		fmt.Fprintf(out, "  - Saved settings in %s\n", configPath)
	}

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	logsCleared, err := clearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	configCleared := false
	if hasConfig {
		if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("error removing config: %w", err)
		}
		configCleared = true
	}

	// Print results
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	if logsCleared > 0 {
		fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	}
	if configCleared {
		fmt.Fprintln(out, "  - Saved settings removed")
	}
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
