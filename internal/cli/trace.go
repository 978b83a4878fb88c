package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// traceCommand creates the trace command, which prints the recorded
// drawing operations of one layout pass.
func (c *CLI) traceCommand() *cobra.Command {
	var (
		width, height float64
		flat          bool
	)

	cmd := &cobra.Command{
		Use:   "trace [scene]",
		Short: "Print the recorded drawing operations as JSON",
		Long: `Trace lays out a scene and prints the recorded drawing operations.

By default the raw trace is printed, including save/restore, translate and
colour operations. With --flat each shape is resolved to absolute surface
coordinates and its effective colour.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			res, err := c.layoutScene(ctx, args[0], width, height)
			if err != nil {
				return err
			}
			c.Logger.Debugf("Recorded %d operations", res.Trace.Len())

			var data []byte
			if flat {
				data, err = json.MarshalIndent(res.Trace.Flatten(), "", "  ")
			} else {
				data, err = res.Trace.MarshalIndent()
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "surface width")
	cmd.Flags().Float64Var(&height, "height", 0, "surface height")
	cmd.Flags().BoolVar(&flat, "flat", false, "resolve shapes to absolute coordinates")

	return cmd
}
