package manager

import (
	"sort"
	"time"

	"vizd/internal/toolchain"
	"vizd/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	models := m.ListModels()
	m.mu.RLock()
	defer m.mu.RUnlock()
	resp := types.StatusResponse{
		Models:               models,
		InProgress:           make([]string, 0, len(m.compiling)),
		CompilesTotal:        m.stats.compiles,
		CompileFailuresTotal: m.stats.compileFailures,
		LoadsTotal:           m.stats.loads,
		LoadFailuresTotal:    m.stats.loadFailures,
		LastError:            m.lastErr,
		UptimeSeconds:        int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix:       time.Now().Unix(),
	}
	for name := range m.compiling {
		resp.InProgress = append(resp.InProgress, name)
	}
	sort.Strings(resp.InProgress)
	if m.lastToolchain != nil {
		resp.Toolchain = toolchainStatus(*m.lastToolchain, m.standard)
	}
	return resp
}

func toolchainStatus(d toolchain.Descriptor, standard string) *types.ToolchainStatus {
	return &types.ToolchainStatus{
		Compiler: d.ExecutablePath,
		Bundled:  d.IsBundled,
		Sysroot:  d.SysrootPath,
		Standard: toolchain.DetectStandard(standard),
	}
}
