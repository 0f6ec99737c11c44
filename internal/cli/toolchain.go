package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"vizd/internal/toolchain"
)

func newToolchainCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "toolchain",
		Short: "Show the compiler a compile would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := fnToolchain(e.cfg, &e.log).Resolve(cmd.Context(), e.cfg.Compiler)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "compiler: %s\n", d.ExecutablePath)
			fmt.Fprintf(out, "bundled:  %t\n", d.IsBundled)
			if d.HasSysroot() {
				fmt.Fprintf(out, "sysroot:  %s\n", d.SysrootPath)
			}
			fmt.Fprintf(out, "standard: %s\n", toolchain.DetectStandard(e.cfg.Standard))
			return nil
		},
	}
}
