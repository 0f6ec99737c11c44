package build

import (
	"os"
	"strconv"
	"strings"
)

// EnvVar is an environment assignment prefixed to a command.
type EnvVar struct {
	Name  string
	Value string
	// Inherit appends the inherited value of Name (if any) after Value,
	// separated by the path list separator.
	Inherit bool
}

// Command is a fully synthesized compiler invocation.
type Command struct {
	Env  []EnvVar
	Path string
	Args []string
}

// String renders the command as a shell-style line, environment prefix first.
func (c Command) String() string {
	var b strings.Builder
	for _, e := range c.Env {
		v := e.Value
		if e.Inherit {
			v += string(os.PathListSeparator) + "$" + e.Name
		}
		b.WriteString(e.Name)
		b.WriteByte('=')
		b.WriteString(strconv.Quote(v))
		b.WriteByte(' ')
	}
	b.WriteString(quoteArg(c.Path))
	for _, a := range c.Args {
		b.WriteByte(' ')
		b.WriteString(quoteArg(a))
	}
	return b.String()
}

// Environ returns base with the command's environment applied. Later entries
// win, matching os/exec semantics for duplicate keys.
func (c Command) Environ(base []string) []string {
	out := append([]string(nil), base...)
	for _, e := range c.Env {
		v := e.Value
		if e.Inherit {
			if prev, ok := lookup(base, e.Name); ok && prev != "" {
				v += string(os.PathListSeparator) + prev
			}
		}
		out = append(out, e.Name+"="+v)
	}
	return out
}

func lookup(env []string, name string) (string, bool) {
	prefix := name + "="
	for i := len(env) - 1; i >= 0; i-- {
		if v, ok := strings.CutPrefix(env[i], prefix); ok {
			return v, true
		}
	}
	return "", false
}

func quoteArg(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " \t\n\"'\\$`;&|<>()*?[]#~") {
		return strconv.Quote(s)
	}
	return s
}
