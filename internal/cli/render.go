package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"vizd/internal/models"
	"vizd/internal/tui"
	"vizd/internal/visualizer"
)

type renderFlags struct {
	steps    string
	nodes    string
	dims     string
	step     int
	artifact string
	noGrid   bool
}

func newRenderCmd(e *env) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:     "render <model>",
		Short:   "Draw one step of a model's step files in the terminal",
		Example: "  vizctl render ballcell --steps runs/balls --nodes 2,1 --dims 40,40 --step 10\n  vizctl render spiral --artifact artifacts/spiral/spiral.3.so --steps runs/spiral --nodes 1,1 --dims 20,20",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(e, cmd.OutOrStdout(), args[0], f)
		},
	}
	cmd.Flags().StringVar(&f.steps, "steps", "", "Step file base path; node n reads <base>_<n>.txt")
	cmd.Flags().StringVar(&f.nodes, "nodes", "1,1", "Node layout as X,Y")
	cmd.Flags().StringVar(&f.dims, "dims", "", "Matrix dimensions as X,Y")
	cmd.Flags().IntVar(&f.step, "step", -1, "Step to draw (defaults to the first available)")
	cmd.Flags().StringVar(&f.artifact, "artifact", "", "Compiled module providing the model")
	cmd.Flags().BoolVar(&f.noGrid, "no-grid", false, "Hide node boundaries")
	_ = cmd.MarkFlagRequired("steps")
	_ = cmd.MarkFlagRequired("dims")
	return cmd
}

func runRender(e *env, out io.Writer, name string, f renderFlags) error {
	nx, ny, err := parsePair(f.nodes)
	if err != nil {
		return fmt.Errorf("--nodes: %w", err)
	}
	dx, dy, err := parsePair(f.dims)
	if err != nil {
		return fmt.Errorf("--dims: %w", err)
	}

	reg := visualizer.NewRegistry()
	if err := models.RegisterBuiltins(reg); err != nil {
		return err
	}
	if f.artifact != "" {
		mod, err := fnOpenModule(f.artifact, &e.log)
		if err != nil {
			return err
		}
		defer func() { _ = mod.Unload() }()
		if err := reg.Register(name, mod.Bind(name)); err != nil {
			return err
		}
	}
	v, err := reg.Create(name)
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	v.InitMatrix(dx, dy)
	v.PrepareStage(nx, ny)
	if err := v.ReadStepsOffsets(nx, ny, f.steps); err != nil {
		return err
	}
	step := visualizer.StepIndex(f.step)
	if f.step < 0 {
		steps := v.AvailableSteps()
		if len(steps) == 0 {
			return fmt.Errorf("no step present in every node file of %s", f.steps)
		}
		step = steps[0]
	}
	lines, err := v.LoadStepState(step)
	if err != nil {
		return err
	}
	settings := visualizer.DefaultDrawSettings()
	settings.ShowGrid = !f.noGrid
	g := visualizer.NewGrid()
	v.Draw(dx, dy, g, g, settings)
	if f.noGrid {
		lines = nil
	}
	fmt.Fprintf(out, "%s step %d (%dx%d)\n", v.ModelName(), step, dx, dy)
	_, err = io.WriteString(out, tui.RenderGrid(g, lines))
	return err
}

func parsePair(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("expected X,Y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, err
	}
	if x <= 0 || y <= 0 {
		return 0, 0, fmt.Errorf("dimensions must be positive, got %q", s)
	}
	return x, y, nil
}
