package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"vizd/internal/app"
	"vizd/internal/build"
	"vizd/internal/config"
	"vizd/internal/plugin"
	"vizd/internal/toolchain"
)

// Options are the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	LogLevel   string
}

// Indirections replaced by tests.
var (
	fnResolveConfig = func(path string) (config.Config, error) { return config.Resolve(path, os.LookupEnv) }
	fnToolchain     = func(cfg config.Config, log *zerolog.Logger) toolchain.Source { return app.Toolchain(cfg, log) }
	fnCompile       = func(ctx context.Context, cfg config.Config, tc toolchain.Source, log *zerolog.Logger, req build.Request, progress build.ProgressFunc) build.Result {
		return app.Builder(cfg, tc, log).Compile(ctx, req, progress)
	}
	fnOpenModule = func(path string, log *zerolog.Logger) (*plugin.Module, error) {
		return plugin.NewLoader(plugin.Config{Logger: log}).Open(path)
	}
)

// env carries what every command needs after the persistent flags are parsed.
type env struct {
	cfg config.Config
	log zerolog.Logger
}

// Execute runs vizctl with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCmd(&Options{})
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln("Error:", err)
		return 1
	}
	return 0
}

// NewRootCmd constructs the command tree bound to opts.
func NewRootCmd(opts *Options) *cobra.Command {
	e := &env{log: zerolog.Nop()}
	root := &cobra.Command{
		Use:           "vizctl",
		Short:         "Compile, inspect and preview visualization model modules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (.yaml, .yml, .json, .toml, .hcl)")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug|info|warn|error (defaults VIZ_LOG_LEVEL or info)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := fnResolveConfig(opts.ConfigPath)
		if err != nil {
			return err
		}
		if opts.LogLevel != "" {
			cfg.LogLevel = opts.LogLevel
		}
		e.cfg = cfg
		e.log = app.NewLogger(cfg.LogLevel, os.Stderr)
		return nil
	}

	root.AddCommand(
		newCompileCmd(e),
		newModelsCmd(e),
		newToolchainCmd(e),
		newRenderCmd(e),
	)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(cmd.OutOrStdout(), true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error {
		return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	}})
	root.AddCommand(completionCmd)
	return root
}
