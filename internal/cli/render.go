package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terraincognita07/paycharts/internal/charts"
	"github.com/terraincognita07/paycharts/internal/models"
)

type renderFlags struct {
	input  string
	output string
	width  int
	page   int
	asJSON bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render <bar|line|pie>",
		Short: "Render one chart as an HTML fragment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "Chart options JSON file, - for stdin (default: sample data)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&flags.width, "width", 0, "Viewport width in pixels (default: configured width)")
	cmd.Flags().IntVar(&flags.page, "page", 0, "Zero-based page for paginated charts")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Emit the node tree as JSON instead of HTML")
	return cmd
}

func runRender(cmd *cobra.Command, rawKind string, flags *renderFlags) error {
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

	width := flags.width
	if width <= 0 {
		width = settings.ViewportWidth
	}
	node, err := settings.Renderer().Render(kind, options, charts.View{Width: width, Page: flags.page})
	if err != nil {
		return fmt.Errorf("render %s chart: %w", kind, err)
	}

	if flags.asJSON {
		payload, err := json.MarshalIndent(node, "", "  ")
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		return writeOutput(cmd, flags.output, append(payload, '\n'))
	}

	markup, err := charts.HTMLString(node)
	if err != nil {
		return err
	}
	return writeOutput(cmd, flags.output, []byte(markup+"\n"))
}
