// Package sshcmd holds the build metadata of the sshcmd binary
package sshcmd

import (
	"fmt"
	"runtime"
	"strings"
)

const (
	NAME = "sshcmd"

	AuthorName  = "GitLab Inc."
	AuthorEmail = "support@gitlab.com"
)

// Set with -ldflags at build time
var (
	VERSION   = "dev"
	REVISION  = "HEAD"
	BRANCH    = "HEAD"
	BUILT     = "now"
	GOVERSION = runtime.Version()
)

type VersionInfo struct {
	Name         string
	Version      string
	Revision     string
	Branch       string
	GOVersion    string
	BuiltAt      string
	OS           string
	Architecture string
}

func Version() VersionInfo {
	return VersionInfo{
		Name:         NAME,
		Version:      VERSION,
		Revision:     REVISION,
		Branch:       BRANCH,
		GOVersion:    GOVERSION,
		BuiltAt:      BUILT,
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
	}
}

func (v VersionInfo) ShortLine() string {
	return fmt.Sprintf("%s (%s)", v.Version, v.Revision)
}

func (v VersionInfo) Extended() string {
	version := new(strings.Builder)

	_, _ = fmt.Fprintf(version, "Name:         %s\n", v.Name)
	_, _ = fmt.Fprintf(version, "Version:      %s\n", v.Version)
	_, _ = fmt.Fprintf(version, "Git revision: %s\n", v.Revision)
	_, _ = fmt.Fprintf(version, "Git branch:   %s\n", v.Branch)
	_, _ = fmt.Fprintf(version, "GO version:   %s\n", v.GOVersion)
	_, _ = fmt.Fprintf(version, "Built:        %s\n", v.BuiltAt)
	_, _ = fmt.Fprintf(version, "OS/Arch:      %s/%s\n", v.OS, v.Architecture)

	return version.String()
}
