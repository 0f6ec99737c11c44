package manager

import (
	"context"

	"vizd/internal/build"
	"vizd/pkg/types"
)

// CompileRequest runs Compile for a wire request and reports progress as wire
// events. Compile and load failures are described by the response; the error
// is reserved for requests rejected before anything ran.
func (m *Manager) CompileRequest(ctx context.Context, req types.CompileRequest, progress func(types.ProgressEvent)) (types.CompileResponse, error) {
	var fn build.ProgressFunc
	if progress != nil {
		fn = func(p build.Progress) {
			progress(types.ProgressEvent{Type: string(p.Kind), Message: p.Message, Lines: p.Lines})
		}
	}
	d, res, err := m.Compile(ctx, CompileOptions{
		Model:        req.Model,
		Source:       req.Source,
		Standard:     req.Standard,
		IncludePaths: req.IncludePaths,
		Flags:        req.Flags,
		SkipLoad:     req.NoLoad,
	}, fn)
	if IsInvalidRequest(err) || IsCompileInProgress(err) {
		return types.CompileResponse{}, err
	}
	return compileResponse(d, res, err), nil
}

func compileResponse(d ModelDescriptor, res build.Result, err error) types.CompileResponse {
	out := types.CompileResponse{
		Model:      d.Name,
		Success:    err == nil,
		State:      string(d.State),
		ExitCode:   res.ExitCode,
		Command:    res.Command,
		SourceFile: res.SourceFile,
		OutputFile: res.OutputFile,
		Stdout:     res.Stdout,
		Stderr:     res.Stderr,
		DurationMS: res.Duration.Milliseconds(),
	}
	if res.Toolchain.ExecutablePath != "" {
		out.Toolchain = &types.ToolchainStatus{
			Compiler: res.Toolchain.ExecutablePath,
			Bundled:  res.Toolchain.IsBundled,
			Sysroot:  res.Toolchain.SysrootPath,
		}
	}
	if err != nil {
		out.Error = err.Error()
		out.ErrorKind = ErrorKind(err)
	}
	return out
}

// UnloadModel runs Unload and returns the wire view of the resulting state.
func (m *Manager) UnloadModel(name string) (types.UnloadResponse, error) {
	d, err := m.Unload(name)
	if err != nil {
		return types.UnloadResponse{}, err
	}
	return types.UnloadResponse{Model: d.Name, State: string(d.State)}, nil
}
