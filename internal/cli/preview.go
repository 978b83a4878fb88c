package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/viewstack/pkg/canvas"
	"github.com/matzehuels/viewstack/pkg/geometry"
	"github.com/matzehuels/viewstack/pkg/render"
	"github.com/matzehuels/viewstack/pkg/view"
)

// previewSteps are the resize increments cycled with +/-.
var previewSteps = []float64{1, 10, 50}

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var width, height float64

	cmd := &cobra.Command{
		Use:   "preview [scene]",
		Short: "Interactively resize a scene in the terminal",
		Long: `Preview draws a scene as terminal cells and re-runs layout as the surface
is resized with the arrow keys, showing how the measured size responds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			res, err := c.layoutScene(ctx, args[0], width, height)
			if err != nil {
				return err
			}
			m := newPreviewModel(docName(res.Doc, args[0]), res.Root, res.Size)
			_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "initial surface width")
	cmd.Flags().Float64Var(&height, "height", 0, "initial surface height")

	return cmd
}

// previewModel is the bubbletea model for the preview command.
type previewModel struct {
	name string
	root view.View
	size geometry.Size
	step int

	cols, rows int

	measured geometry.Size
	drawings []canvas.Drawing
	err      error
}

func newPreviewModel(name string, root view.View, size geometry.Size) previewModel {
	m := previewModel{name: name, root: root, size: size, step: 1, cols: 64, rows: 20}
	return m.relayout()
}

func (m previewModel) relayout() previewModel {
	trace, measured, err := render.Record(m.root, m.size)
	m.err = err
	if err != nil {
		m.drawings = nil
		return m
	}
	m.measured = measured
	m.drawings = trace.Flatten()
	return m
}

func (m previewModel) resize(dw, dh float64) previewModel {
	step := previewSteps[m.step]
	m.size.Width = max(1, m.size.Width+dw*step)
	m.size.Height = max(1, m.size.Height+dh*step)
	return m.relayout()
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			return m.resize(-1, 0), nil
		case "right", "l":
			return m.resize(1, 0), nil
		case "up", "k":
			return m.resize(0, -1), nil
		case "down", "j":
			return m.resize(0, 1), nil
		case "+":
			m.step = min(m.step+1, len(previewSteps)-1)
		case "-":
			m.step = max(m.step-1, 0)
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-2, 8)
		m.rows = max(msg.Height-7, 4)
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Preview " + m.name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("←/→ width  ↑/↓ height  +/- step (%g)  q quit", previewSteps[m.step])))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("surface %s  measured %s  shapes %d\n",
		StyleValue.Render(m.size.String()),
		StyleNumber.Render(m.measured.String()),
		len(m.drawings)))
	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(rasterize(m.drawings, m.size, m.cols, m.rows))
	return b.String()
}

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

type cell struct {
	r     rune
	color string
}

// rasterize draws shapes into a cols×rows character grid scaled from size.
func rasterize(drawings []canvas.Drawing, size geometry.Size, cols, rows int) string {
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x] = cell{r: '·'}
		}
	}
	sx := float64(cols) / size.Width
	sy := float64(rows) / size.Height

	for _, d := range drawings {
		x0 := int(d.Rect.Origin.X * sx)
		y0 := int(d.Rect.Origin.Y * sy)
		x1 := int((d.Rect.Origin.X + d.Rect.Size.Width) * sx)
		y1 := int((d.Rect.Origin.Y + d.Rect.Size.Height) * sy)
		set := func(x, y int, r rune) {
			if x >= 0 && x < cols && y >= 0 && y < rows {
				grid[y][x] = cell{r: r, color: d.Color}
			}
		}

		switch d.Kind {
		case canvas.OpFillRect:
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					set(x, y, '█')
				}
			}
		case canvas.OpFillEllipse:
			cx, cy := float64(x0+x1)/2, float64(y0+y1)/2
			rx, ry := float64(x1-x0)/2, float64(y1-y0)/2
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					dx := (float64(x) + 0.5 - cx) / rx
					dy := (float64(y) + 0.5 - cy) / ry
					if dx*dx+dy*dy <= 1 {
						set(x, y, '●')
					}
				}
			}
		case canvas.OpStrokeRect:
			for x := x0; x < max(x1, x0+1); x++ {
				set(x, y0, '─')
				set(x, max(y1-1, y0), '─')
			}
			for y := y0; y < max(y1, y0+1); y++ {
				set(x0, y, '│')
				set(max(x1-1, x0), y, '│')
			}
		case canvas.OpText:
			for i, r := range []rune(d.Text) {
				set(x0+i, y0, r)
			}
		}
	}

	var b strings.Builder
	for _, row := range grid {
		for _, c := range row {
			if c.color == "" {
				b.WriteString(listDimStyle.Render(string(c.r)))
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.color)).Render(string(c.r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
