package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/zhubert/sketchlab/internal/config"
	"github.com/zhubert/sketchlab/internal/download"
	"github.com/zhubert/sketchlab/internal/generation"
	"github.com/zhubert/sketchlab/internal/imageref"
	"github.com/zhubert/sketchlab/internal/logger"
	"github.com/zhubert/sketchlab/internal/sketch"
	"github.com/zhubert/sketchlab/internal/studio"
)

var saveResult bool

var generateCmd = &cobra.Command{
	Use:   "generate <sketch>",
	Short: "Submit one sketch without the TUI",
	Long: `Uploads a sketch to the generation endpoint and prints the generated
image reference. With --save, the original and generated images are written
to the download directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&saveResult, "save", false, "Save the original and generated images to the download directory")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return generateOnce(ctx, cfg, args[0], saveResult, cmd.OutOrStdout())
}

// generateOnce runs a single submission through an orchestrator, the same
// path the TUI takes.
func generateOnce(ctx context.Context, cfg *config.Config, path string, save bool, out io.Writer) error {
	up, err := sketch.Load(path)
	if err != nil {
		return err
	}

	client := generation.NewClient(cfg.GetEndpointURL(), generation.WithTimeout(cfg.GetRequestTimeout()))
	refs := imageref.NewStore()
	orch := studio.NewOrchestrator(client, refs)
	defer orch.Close()

	fmt.Fprintf(out, "Generating from %s via %s...\n", up.Name, client.Endpoint())
	tr, err := orch.Submit(ctx, up)
	if err != nil {
		return err
	}
	if tr == studio.Failed {
		f := orch.Session().Failure()
		return fmt.Errorf("%s: %w", f.Message(), f.Err)
	}

	result := orch.Session().Current()
	fmt.Fprintf(out, "Generated at %s\n", result.TimestampISO())
	fmt.Fprintln(out, result.GeneratedRef)

	if !save {
		return nil
	}
	saver := download.NewSaver(cfg.GetDownloadDir(), refs, client)
	original, generated := download.ResultNames()
	paths, err := saver.SaveBoth(ctx, *result, original, generated)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(out, "Saved %s\n", p)
	}
	return nil
}
