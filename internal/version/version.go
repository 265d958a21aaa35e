// Package version reports build information for folio
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info holds version information for a build
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// Get returns the running binary's version. Values not stamped at link
// time are filled from the module build info when available.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = fromBuildInfo(info, bi)
	}
	return info
}

func fromBuildInfo(info Info, bi *debug.BuildInfo) Info {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Commit == "unknown" && setting.Value != "" {
				info.Commit = setting.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" && setting.Value != "" {
				info.BuildDate = setting.Value
			}
		case "vcs.modified":
			info.Dirty = setting.Value == "true"
		}
	}
	return info
}

// ShortCommit returns the first seven characters of the commit hash
func (v Info) ShortCommit() string {
	if len(v.Commit) > 7 {
		return v.Commit[:7]
	}
	return v.Commit
}

// Short returns a one-word version, e.g. "v1.2.0" or "dev-3f2a9c1".
func (v Info) Short() string {
	if v.Version != "dev" {
		return v.Version
	}
	if v.Commit == "" || v.Commit == "unknown" {
		return "dev"
	}
	short := "dev-" + v.ShortCommit()
	if v.Dirty {
		short += "+dirty"
	}
	return short
}

// Fields returns the info as ordered label/value pairs for display.
func (v Info) Fields() [][2]string {
	return [][2]string{
		{"Version", v.Version},
		{"Commit", v.Commit},
		{"Build Date", v.BuildDate},
		{"Go Version", v.GoVersion},
		{"OS/Arch", v.OS + "/" + v.Arch},
	}
}

func (v Info) String() string {
	var b strings.Builder
	for _, f := range v.Fields() {
		fmt.Fprintf(&b, "%-11s %s\n", f[0]+":", f[1])
	}
	return b.String()
}

// JSON returns the info as indented JSON.
func (v Info) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling version: %w", err)
	}
	return data, nil
}
