package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"vizd/internal/catalog"
	"vizd/internal/models"
)

func newModelsCmd(e *env) *cobra.Command {
	var pluginsDir string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List built-in models and model sources found in the plugins directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := pluginsDir
			if dir == "" {
				dir = e.cfg.PluginsDir
			}
			return listModels(cmd.OutOrStdout(), dir)
		},
	}
	cmd.Flags().StringVar(&pluginsDir, "plugins-dir", "", "Directory to scan (defaults to the configured plugins_dir)")
	return cmd
}

func listModels(out io.Writer, dir string) error {
	srcs, err := catalog.Scan(dir)
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "ORIGIN", "SOURCE")
	for _, name := range models.Names() {
		t.Row(name, "builtin", "")
	}
	for _, s := range srcs {
		t.Row(s.Name, "dynamic", s.Path)
	}
	_, err = fmt.Fprintln(out, t.Render())
	return err
}
