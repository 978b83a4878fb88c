package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/viewstack/pkg/errors"
	"github.com/matzehuels/viewstack/pkg/pipeline"
	"github.com/matzehuels/viewstack/pkg/scene"
	"github.com/matzehuels/viewstack/pkg/view"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	format   string // "" for a text outline, else a nodelink format
	output   string // output file, stdout when empty
	detailed bool   // annotate nodes with kind and depth
	noCache  bool
}

// treeCommand creates the tree command.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree [scene]",
		Short: "Show or draw the view tree a scene builds",
		Long: `Tree prints the view tree a scene builds as an indented outline.

With --format it instead draws the tree as a Graphviz node-link diagram
(dot, svg, png or pdf). Composite views are drawn dashed.`,
		Example: `  viewstack tree card.toml
  viewstack tree card.toml -f svg -o card_tree.svg --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runTree(ctx, cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "diagram format: "+strings.Join(pipeline.TreeFormats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node kind and depth")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, stdout io.Writer, input string, opts treeOpts) error {
	doc, err := scene.Load(input)
	if err != nil {
		return err
	}

	if opts.format == "" {
		root, _, err := pipeline.Build(ctx, doc)
		if err != nil {
			return err
		}
		var node *view.Node
		if err := view.Catch(func() { node = view.Inspect(root) }); err != nil {
			return errors.Wrap(errors.ErrCodeProtocol, err, "inspect")
		}
		_, err = io.WriteString(stdout, outline(node, opts.detailed))
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	data, cached, err := runner.Tree(ctx, doc, opts.format, opts.detailed)
	if err != nil {
		return err
	}
	if opts.output == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := writeFile(opts.output, data); err != nil {
		return err
	}
	out := newReport(stdout)
	out.success("Drew view tree of %s", docName(doc, input))
	out.file(opts.output)
	out.stats(0, "", cached)
	return nil
}

// outline formats an inspected tree with box-drawing guides.
func outline(root *view.Node, detailed bool) string {
	var b strings.Builder
	var walk func(n *view.Node, prefix string, last, top bool)
	walk = func(n *view.Node, prefix string, last, top bool) {
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		if top {
			branch, next = "", ""
		}
		label := n.Label
		if n.Primitive {
			label = StyleHighlight.Render(label)
		}
		b.WriteString(prefix + branch + label)
		if detailed {
			kind := "composite"
			if n.Primitive {
				kind = "primitive"
			}
			b.WriteString(StyleDim.Render(fmt.Sprintf("  (%s, %d children)", kind, len(n.Children))))
		}
		b.WriteByte('\n')
		for i, child := range n.Children {
			walk(child, prefix+next, i == len(n.Children)-1, false)
		}
	}
	walk(root, "", true, true)
	return b.String()
}
