package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terraincognita07/paycharts/internal/config"
	"github.com/terraincognita07/paycharts/internal/models"
)

// NewRootCommand wires every paycharts subcommand. Settings are resolved per
// invocation so environment changes apply to the next run.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "paycharts",
		Short: "Render payments dashboard charts",
		Long: `paycharts renders bar, line and pie charts for payments dashboards as
HTML fragments, mounts them into host documents and exports static PNGs.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCommand(),
		newRenderCommand(),
		newAutoRenderCommand(),
		newExportCommand(),
	)
	return root
}

func resolveSettings() (*config.Settings, error) {
	settings, err := config.Resolve()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return settings, nil
}

// readChartOptions loads JSON options from path; "-" reads stdin and an empty
// path means defaults only.
func readChartOptions(cmd *cobra.Command, path string) (models.ChartOptions, error) {
	options := models.ChartOptions{}
	if strings.TrimSpace(path) == "" {
		return options, nil
	}

	payload, err := readInput(cmd, path)
	if err != nil {
		return options, err
	}
	if err := json.Unmarshal(payload, &options); err != nil {
		return options, fmt.Errorf("invalid chart options in %s: %w", path, err)
	}
	return options, nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		payload, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return payload, nil
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return payload, nil
}

// writeOutput writes to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, payload []byte) error {
	if strings.TrimSpace(path) == "" {
		_, err := cmd.OutOrStdout().Write(payload)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
