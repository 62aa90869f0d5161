package cli

import (
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terraincognita07/paycharts/internal/export"
	"github.com/terraincognita07/paycharts/internal/models"
)

type exportFlags struct {
	input  string
	output string
	width  int
	page   int
}

func newExportCommand() *cobra.Command {
	flags := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export <bar|line|pie>",
		Short: "Export one chart as a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "Chart options JSON file, - for stdin (default: sample data)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output PNG path (default: stdout)")
	cmd.Flags().IntVar(&flags.width, "width", 0, "Image width in pixels (default: configured width)")
	cmd.Flags().IntVar(&flags.page, "page", 0, "Zero-based page for paginated charts")
	return cmd
}

func runExport(cmd *cobra.Command, rawKind string, flags *exportFlags) error {
	kind, err := models.ParseChartKind(rawKind)
	if err != nil {
		return err
	}
	settings, err := resolveSettings()
	if err != nil {
		return err
	}
	options, err := readChartOptions(cmd, flags.input)
	if err != nil {
		return err
	}

	if strings.TrimSpace(flags.output) == "" && writesToTerminal(cmd) {
		return errors.New("refusing to write PNG data to a terminal; use --output")
	}

	width := flags.width
	if width <= 0 {
		width = settings.ViewportWidth
	}
	var image bytes.Buffer
	err = export.NewExporter(settings.Renderer()).WritePNG(&image, export.Request{
		Kind:    kind,
		Options: options,
		Width:   width,
		Page:    flags.page,
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd, flags.output, image.Bytes())
}

func writesToTerminal(cmd *cobra.Command) bool {
	file, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTerminal(file)
}
