package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
)

type probeOpts struct {
	box        string
	at         string
	target     string
	sameFrame  bool
	noSplit    bool
	noTitleBar bool
	titleBar   float64
	rules      bool
}

// probeCommand resolves one pointer position against one frame and prints
// the zone. It is the command-line face of the dock resolver.
func (c *CLI) probeCommand() *cobra.Command {
	var opts probeOpts

	cmd := &cobra.Command{
		Use:   "probe --box x,y,w,h --at x,y",
		Short: "Resolve the dock zone under a pointer",
		Example: `  dockyard probe --box 0,0,400,200 --at 200,5
  dockyard probe --box 0,0,400,200 --at 20,100 --rules`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runProbe(&opts)
		},
	}

	cmd.Flags().StringVar(&opts.box, "box", "", "target frame as x,y,w,h")
	cmd.Flags().StringVar(&opts.at, "at", "", "pointer position as x,y")
	cmd.Flags().StringVar(&opts.target, "target", "frame", "target frame id")
	cmd.Flags().BoolVar(&opts.sameFrame, "same-frame", false, "the drag started in the target frame")
	cmd.Flags().BoolVar(&opts.noSplit, "no-split", false, "the target cannot be split")
	cmd.Flags().BoolVar(&opts.noTitleBar, "no-title-bar", false, "the target has no tab strip")
	cmd.Flags().Float64Var(&opts.titleBar, "title-bar-height", 0, "tab strip height (default from config)")
	cmd.Flags().BoolVar(&opts.rules, "rules", false, "list the rules evaluated for the target")
	_ = cmd.MarkFlagRequired("box")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func (c *CLI) runProbe(opts *probeOpts) error {
	b, err := parseFloats(opts.box, 4, "box")
	if err != nil {
		return err
	}
	p, err := parseFloats(opts.at, 2, "at")
	if err != nil {
		return err
	}

	height := opts.titleBar
	if height <= 0 {
		height = c.Config.Dock.TitleBarHeight
	}
	r := dock.NewResolver(height)
	target := dock.Target{ID: opts.target, Box: geom.R(b[0], b[1], b[2], b[3])}
	pointer := geom.Pt(p[0], p[1])
	canSplit, hasTitle := !opts.noSplit, !opts.noTitleBar

	if opts.rules {
		fmt.Fprintln(stdout, rulesTable(r.Rules(target.Box, opts.sameFrame, canSplit, hasTitle), pointer, target.Box))
	}

	a, ok := r.Resolve(pointer, opts.sameFrame, canSplit, target, hasTitle)
	if !ok {
		printInfo("No zone at %s", pointer)
		return nil
	}
	printKeyValue("zone", styleAnchor.Render(a.Zone.String()))
	printKeyValue("anchor", a.Rect().String())
	printKeyValue("target", a.Target)
	if a.Self {
		printKeyValue("self", "reorder within frame")
	}
	return nil
}

// rulesTable renders the rule list with the first matching rule marked.
func rulesTable(rules []dock.Rule, p geom.Point, box geom.Rect) string {
	matched := -1
	rows := make([][]string, len(rules))
	for i, rule := range rules {
		hit := ""
		if matched < 0 && rule.Match(p, box) {
			matched, hit = i, iconSuccess
		}
		rows[i] = []string{strconv.Itoa(i + 1), rule.Name, rule.Zone.String(), rule.Rect(box).String(), hit}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers("#", "RULE", "ZONE", "PREVIEW", "HIT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == matched {
				return styleAnchor.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String()
}

// parseFloats splits a comma-separated list of exactly n numbers.
func parseFloats(s string, n int, flag string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--%s wants %d comma-separated numbers, got %q", flag, n, s)
	}
	out := make([]float64, n)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "--%s: bad number %q", flag, part)
		}
		out[i] = v
	}
	return out, nil
}
