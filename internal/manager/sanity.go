package manager

import (
	"context"

	"vizd/internal/toolchain"
	"vizd/pkg/types"
)

// SanityCheck resolves the toolchain the next compile would use and reports
// it. It does not mutate state and is safe to call at any time.
func (m *Manager) SanityCheck(ctx context.Context) types.ToolchainStatus {
	if m.toolchain == nil {
		return types.ToolchainStatus{Standard: toolchain.DetectStandard(m.standard), Error: "no toolchain source configured"}
	}
	d, err := m.toolchain.Resolve(ctx, m.preferred)
	if err != nil {
		m.setLastError(err)
		m.log.Warn().Err(err).Msg("sanity check: no toolchain")
		return types.ToolchainStatus{Standard: toolchain.DetectStandard(m.standard), Error: err.Error()}
	}
	return *toolchainStatus(d, m.standard)
}
