package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"vizd/internal/build"
	"vizd/internal/catalog"
	"vizd/internal/manager"
	"vizd/internal/tui"
	"vizd/internal/visualizer"
)

type compileFlags struct {
	output   string
	standard string
	includes []string
	flags    []string
	useTUI   bool
	load     bool
}

func newCompileCmd(e *env) *cobra.Command {
	var f compileFlags
	cmd := &cobra.Command{
		Use:     "compile <source>",
		Short:   "Compile a model source module into a shared library",
		Example: "  vizctl compile plugins/spiral.cpp\n  vizctl compile spiral.cpp -o /tmp/spiral.so --std c++20 -I third_party --flag -O2 --load",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), e, cmd.OutOrStdout(), args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output artifact (defaults to <stem>."+manager.ArtifactExt()+" next to the source)")
	cmd.Flags().StringVar(&f.standard, "std", "", "Language standard override (c++14, c++17, c++20, c++23)")
	cmd.Flags().StringArrayVarP(&f.includes, "include", "I", nil, "Extra include directory (repeatable)")
	cmd.Flags().StringArrayVar(&f.flags, "flag", nil, "Extra compiler flag (repeatable)")
	cmd.Flags().BoolVar(&f.useTUI, "tui", false, "Show an interactive progress view")
	cmd.Flags().BoolVar(&f.load, "load", false, "Load the artifact and instantiate the model after compiling")
	return cmd
}

func runCompile(ctx context.Context, e *env, out io.Writer, source string, f compileFlags) error {
	output := f.output
	if output == "" {
		output = filepath.Join(filepath.Dir(source), catalog.NameOf(source)+"."+manager.ArtifactExt())
	}
	req := build.Request{
		SourceFile:        source,
		OutputFile:        output,
		StandardOverride:  f.standard,
		ExtraIncludePaths: f.includes,
		ExtraFlags:        f.flags,
	}
	if req.StandardOverride == "" {
		req.StandardOverride = e.cfg.Standard
	}
	tc := fnToolchain(e.cfg, &e.log)
	job := func(ctx context.Context, progress build.ProgressFunc) build.Result {
		return fnCompile(ctx, e.cfg, tc, &e.log, req, progress)
	}

	var res build.Result
	if f.useTUI {
		var err error
		res, err = tui.RunCompile(ctx, "vizctl compile "+filepath.Base(source), job)
		if err != nil {
			return err
		}
	} else {
		res = job(ctx, func(p build.Progress) { fmt.Fprintln(out, p.Message) })
	}
	if !res.Success {
		if res.Stderr != "" && !f.useTUI {
			fmt.Fprintln(out, res.Stderr)
		}
		return fmt.Errorf("compile %s: %w", source, res.Err)
	}
	fmt.Fprintf(out, "artifact: %s\n", res.OutputFile)
	if !f.load {
		return nil
	}
	return verifyLoad(e, out, catalog.NameOf(source), res.OutputFile)
}

// verifyLoad maps the artifact, creates one instance and unmaps it again.
func verifyLoad(e *env, out io.Writer, name, path string) error {
	mod, err := fnOpenModule(path, &e.log)
	if err != nil {
		return err
	}
	inst := mod.NewInstance()
	if err := inst.Err(); err != nil {
		_ = mod.Unload()
		return fmt.Errorf("instantiate %s: %w", name, err)
	}
	v := visualizer.NewAdapter(name, inst)
	fmt.Fprintf(out, "loaded: %s (model %s)\n", mod.Path(), v.ModelName())
	if err := v.Close(); err != nil {
		return err
	}
	return mod.Unload()
}
