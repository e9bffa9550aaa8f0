package cmd

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/sketchlab/internal/app"
	"github.com/zhubert/sketchlab/internal/config"
	"github.com/zhubert/sketchlab/internal/logger"
)

var (
	debugMode             bool
	quietMode             bool
	endpointFlag          string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "sketchlab",
	Short: "Turn sketches into images from the terminal",
	Long: `sketchlab is a TUI for sending a sketch to an image generation service.
Pick or paste a sketch, generate, and browse every result of the session in
a gallery. Originals and generated images can be downloaded from either view.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "Generation endpoint for this run (not saved)")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("sketchlab %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("sketchlab %s\n", version)
}

// loadConfig loads the saved config and applies the --endpoint override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if err := applyEndpointFlag(cfg, endpointFlag); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEndpointFlag(cfg *config.Config, endpoint string) error {
	if endpoint == "" {
		return nil
	}
	if err := config.ValidateEndpoint(endpoint); err != nil {
		return fmt.Errorf("invalid --endpoint: %w", err)
	}
	cfg.OverrideEndpoint(endpoint)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	// Create and run the app
	m := app.New(cfg, version)
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
