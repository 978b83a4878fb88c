package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/geometry"
	"github.com/matzehuels/viewstack/pkg/pipeline"
	"github.com/matzehuels/viewstack/pkg/render"
	"github.com/matzehuels/viewstack/pkg/scene"
	"github.com/matzehuels/viewstack/pkg/view"
)

// layoutResult is one scene laid out against a resolved surface size.
type layoutResult struct {
	Doc      *scene.Document `json:"-"`
	Root     view.View       `json:"-"`
	Nodes    int             `json:"nodes"`
	Size     geometry.Size   `json:"size"`
	Measured geometry.Size   `json:"measured"`
	Trace    *canvas.Trace   `json:"-"`
}

// layoutScene loads input, resolves its surface size and records a layout
// pass without encoding it.
func (c *CLI) layoutScene(ctx context.Context, input string, width, height float64) (*layoutResult, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	doc, err := scene.Load(input)
	if err != nil {
		return nil, err
	}

	opts := pipelineOptions(cfg, width, height)
	opts.ApplyDocument(doc)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	root, nodes, err := pipeline.Build(ctx, doc)
	if err != nil {
		return nil, err
	}
	size := opts.Size()
	trace, measured, err := render.Record(root, size)
	if err != nil {
		return nil, err
	}
	return &layoutResult{Doc: doc, Root: root, Nodes: nodes, Size: size, Measured: measured, Trace: trace}, nil
}

// measureCommand creates the measure command.
func (c *CLI) measureCommand() *cobra.Command {
	var (
		width, height float64
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "measure [scene]",
		Short: "Report the measured size and every drawn shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			res, err := c.layoutScene(ctx, args[0], width, height)
			if err != nil {
				return err
			}
			if asJSON {
				return writeMeasureJSON(cmd.OutOrStdout(), res)
			}
			printMeasure(cmd.OutOrStdout(), args[0], res)
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "surface width")
	cmd.Flags().Float64Var(&height, "height", 0, "surface height")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

type measureJSON struct {
	*layoutResult
	Drawings []canvas.Drawing `json:"drawings"`
}

func writeMeasureJSON(w io.Writer, res *layoutResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(measureJSON{layoutResult: res, Drawings: res.Trace.Flatten()})
}

func printMeasure(w io.Writer, input string, res *layoutResult) {
	out := newReport(w)
	out.field("Scene", docName(res.Doc, input))
	out.field("Surface", res.Size.String())
	out.field("Measured", StyleNumber.Render(res.Measured.String()))
	out.field("Nodes", strconv.Itoa(res.Nodes))
	fmt.Fprintln(w)
	fmt.Fprintln(w, drawingTable(res.Trace.Flatten()))
}

// drawingTable renders flattened drawings as a bordered table.
func drawingTable(drawings []canvas.Drawing) string {
	rows := make([][]string, len(drawings))
	for i, d := range drawings {
		detail := d.Text
		if d.Kind == canvas.OpStrokeRect {
			detail = "width " + num(d.LineWidth)
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			string(d.Kind),
			num(d.Rect.Origin.X),
			num(d.Rect.Origin.Y),
			num(d.Rect.Size.Width),
			num(d.Rect.Size.Height),
			d.Color,
			detail,
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Op", "X", "Y", "W", "H", "Color", "Detail").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 6 && row < len(drawings) {
				return lipgloss.NewStyle().Foreground(lipgloss.Color(drawings[row].Color))
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
