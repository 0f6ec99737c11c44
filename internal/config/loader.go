package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the daemon and the CLI.
// Zero values mean "unspecified" and are replaced by Defaults in Resolve.
type Config struct {
	Addr                string   `json:"addr" yaml:"addr" toml:"addr" hcl:"addr,optional"`
	PluginsDir          string   `json:"plugins_dir" yaml:"plugins_dir" toml:"plugins_dir" hcl:"plugins_dir,optional"`
	ArtifactsDir        string   `json:"artifacts_dir" yaml:"artifacts_dir" toml:"artifacts_dir" hcl:"artifacts_dir,optional"`
	Compiler            string   `json:"compiler" yaml:"compiler" toml:"compiler" hcl:"compiler,optional"`
	BundledToolchainDir string   `json:"bundled_toolchain_dir" yaml:"bundled_toolchain_dir" toml:"bundled_toolchain_dir" hcl:"bundled_toolchain_dir,optional"`
	ClangVersion        string   `json:"clang_version" yaml:"clang_version" toml:"clang_version" hcl:"clang_version,optional"`
	EngineDir           string   `json:"engine_dir" yaml:"engine_dir" toml:"engine_dir" hcl:"engine_dir,optional"`
	ProjectRoot         string   `json:"project_root" yaml:"project_root" toml:"project_root" hcl:"project_root,optional"`
	LibraryFlags        []string `json:"library_flags" yaml:"library_flags" toml:"library_flags" hcl:"library_flags,optional"`
	Standard            string   `json:"standard" yaml:"standard" toml:"standard" hcl:"standard,optional"`
	ProgressBatch       int      `json:"progress_batch" yaml:"progress_batch" toml:"progress_batch" hcl:"progress_batch,optional"`
	LogLevel            string   `json:"log_level" yaml:"log_level" toml:"log_level" hcl:"log_level,optional"`
	CORSOrigins         []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins" hcl:"cors_origins,optional"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml, .hcl. HCL files may reference
// environment variables as env.NAME.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".hcl":
		if err := hclsimple.Decode(path, b, hclContext(os.Environ()), &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// hclContext exposes environ as the env object.
func hclContext(environ []string) *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !hclIdent(k) {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{"env": env}}
}

func hclIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && (r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return true
}
