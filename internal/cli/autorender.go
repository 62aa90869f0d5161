package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terraincognita07/paycharts/internal/host"
)

type autoRenderFlags struct {
	output string
	width  int
	strict bool
}

func newAutoRenderCommand() *cobra.Command {
	flags := &autoRenderFlags{}
	cmd := &cobra.Command{
		Use:   "autorender <document.html>",
		Short: "Mount charts into every flagged container of an HTML document",
		Long: `autorender scans the document for data-payments-bar-chart,
data-payments-line-chart and data-payments-pie-chart containers, reads their
data-* options and mounts a chart into each one. Use - to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAutoRender(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&flags.width, "width", 0, "Viewport width in pixels (default: configured width)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Exit with an error when any container fails")
	return cmd
}

func runAutoRender(cmd *cobra.Command, path string, flags *autoRenderFlags) error {
	settings, err := resolveSettings()
	if err != nil {
		return err
	}
	payload, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	document, err := host.Parse(bytes.NewReader(payload))
	if err != nil {
		return err
	}

	width := flags.width
	if width <= 0 {
		width = settings.ViewportWidth
	}
	bridge, err := settings.Registry(settings.Renderer(), width)
	if err != nil {
		return err
	}

	result := bridge.AutoRender(document)
	markup, err := document.String()
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, flags.output, []byte(markup)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "rendered %d charts, %d failed\n", len(result.Rendered), len(result.Errors))
	for _, failure := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", failure)
	}
	if flags.strict && len(result.Errors) > 0 {
		return fmt.Errorf("%d chart containers failed", len(result.Errors))
	}
	return nil
}
