package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"
	"time"
)

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
	GoVersion = ""
)

// trackedDeps are the modules whose versions Info reports.
var trackedDeps = []string{
	"github.com/rs/zerolog",
	"github.com/spf13/cobra",
	"github.com/spf13/viper",
	"go.opentelemetry.io/otel",
}

// Dependency is a module version resolved from build info.
type Dependency struct {
	Path    string `json:"path" yaml:"path"`
	Version string `json:"version" yaml:"version"`
}

// Info represents version information.
type Info struct {
	Version      string       `json:"version" yaml:"version"`
	GitCommit    string       `json:"git_commit" yaml:"git_commit"`
	GitBranch    string       `json:"git_branch,omitempty" yaml:"git_branch,omitempty"`
	BuildTime    string       `json:"build_time" yaml:"build_time"`
	GoVersion    string       `json:"go_version" yaml:"go_version"`
	Platform     string       `json:"platform" yaml:"platform"`
	BuildDate    time.Time    `json:"build_date" yaml:"build_date"`
	IsRelease    bool         `json:"is_release" yaml:"is_release"`
	IsDirty      bool         `json:"is_dirty" yaml:"is_dirty"`
	Dependencies []Dependency `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// GetVersionInfo returns version information from ldflags, falling back to
// the VCS stamps in the binary's build info.
func GetVersionInfo() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(info, buildInfo)
	}
	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}

	if info.BuildDate.IsZero() {
		info.BuildDate = time.Now().UTC()
		info.BuildTime = info.BuildDate.Format(time.RFC3339)
	}
	return info
}

func applyBuildInfo(info *Info, buildInfo *debug.BuildInfo) {
	if GoVersion == "" {
		info.GoVersion = buildInfo.GoVersion
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if GitCommit == "" {
				info.GitCommit = setting.Value
				if len(info.GitCommit) > 7 {
					info.GitCommit = info.GitCommit[:7]
				}
			}
		case "vcs.modified":
			info.IsDirty = setting.Value == "true"
		case "vcs.time":
			if BuildTime == "" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					info.BuildDate = t
					info.BuildTime = setting.Value
				}
			}
		}
	}
	for _, dep := range buildInfo.Deps {
		if !slices.Contains(trackedDeps, dep.Path) {
			continue
		}
		if dep.Replace != nil {
			dep = dep.Replace
		}
		info.Dependencies = append(info.Dependencies, Dependency{Path: dep.Path, Version: dep.Version})
	}
}

// Short returns the version with the commit suffix, e.g. 1.2.0-abc1234.
func Short() string {
	info := GetVersionInfo()
	if info.GitCommit != "" {
		if info.IsDirty {
			return fmt.Sprintf("%s-%s-dirty", info.Version, info.GitCommit)
		}
		return fmt.Sprintf("%s-%s", info.Version, info.GitCommit)
	}
	return info.Version
}

// Full returns a detailed version string including branch and build date.
func Full() string {
	info := GetVersionInfo()
	parts := []string{info.Version}
	if info.GitCommit != "" {
		parts = append(parts, info.GitCommit)
	}
	if info.GitBranch != "" && info.GitBranch != "main" && info.GitBranch != "master" {
		parts = append(parts, info.GitBranch)
	}
	if info.IsDirty {
		parts = append(parts, "dirty")
	}
	version := strings.Join(parts, "-")
	if !info.BuildDate.IsZero() {
		version += fmt.Sprintf(" (built %s, %s, %s)", info.BuildDate.Format("2006-01-02T15:04:05Z"), info.GoVersion, info.Platform)
	}
	return version
}
