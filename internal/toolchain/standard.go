package toolchain

import (
	"runtime/debug"
	"strings"
	"sync"
)

// HostStandard is the C++ standard the host's native headers were built with.
// Release builds inject it with -ldflags "-X vizd/internal/toolchain.HostStandard=c++20".
var HostStandard = "c++17"

// KnownStandards lists the standards the synthesizer may emit, oldest first.
var KnownStandards = []string{"c++14", "c++17", "c++20", "c++23"}

var knownYears = []int{2014, 2017, 2020, 2023}

// DetectStandard returns override when set, otherwise the newest known standard
// that does not exceed the host's build configuration.
func DetectStandard(override string) string {
	if s := strings.TrimSpace(override); s != "" {
		return s
	}
	return hostStandard()
}

var hostStandard = sync.OnceValue(func() string {
	if s, ok := standardFromBuildInfo(); ok {
		return clampStandard(s)
	}
	return clampStandard(HostStandard)
})

// standardFromBuildInfo extracts -std= from the CGO_CXXFLAGS recorded in the binary.
func standardFromBuildInfo() (string, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range bi.Settings {
		if s.Key != "CGO_CXXFLAGS" {
			continue
		}
		if std, ok := stdFlag(s.Value); ok {
			return std, true
		}
	}
	return "", false
}

// stdFlag returns the value of the last -std= flag in a flag string.
func stdFlag(flags string) (string, bool) {
	var out string
	for _, f := range strings.Fields(flags) {
		if v, ok := strings.CutPrefix(f, "-std="); ok && v != "" {
			out = v
		}
	}
	return out, out != ""
}

// clampStandard maps any c++NN / gnu++NN spelling onto the newest known
// standard not newer than it. Anything older than the first known standard, or
// unparseable, yields the oldest known one.
func clampStandard(s string) string {
	year, ok := standardYear(s)
	if !ok {
		return KnownStandards[0]
	}
	best := KnownStandards[0]
	for i, y := range knownYears {
		if y <= year {
			best = KnownStandards[i]
		}
	}
	return best
}

func standardYear(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	var v string
	switch {
	case strings.HasPrefix(s, "c++"):
		v = s[len("c++"):]
	case strings.HasPrefix(s, "gnu++"):
		v = s[len("gnu++"):]
	default:
		return 0, false
	}
	switch v {
	case "98", "03":
		return 1998, true
	case "0x", "11":
		return 2011, true
	case "1y", "14":
		return 2014, true
	case "1z", "17":
		return 2017, true
	case "2a", "20":
		return 2020, true
	case "2b", "23":
		return 2023, true
	case "2c", "26":
		return 2026, true
	}
	return 0, false
}
