package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/userboard/internal/api"
	"github.com/jackzampolin/userboard/version"
)

// VersionInfo is the build metadata printed by `userboard version`.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Go      string `json:"go" yaml:"go"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

func (v VersionInfo) Text() string {
	return fmt.Sprintf("userboard %s\n  Go:     %s\n  Commit: %s\n  Date:   %s", v.Version, v.Go, v.Commit, v.Date)
}

func currentVersion() VersionInfo {
	return VersionInfo{
		Version: version.GitRelease,
		Go:      version.GoInfo,
		Commit:  version.GitCommit,
		Date:    version.GitCommitDate,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Plain text unless -o was given explicitly.
		if !cmd.Flags().Changed("output") {
			return api.OutputTo(os.Stdout, api.OutputFormatText, currentVersion())
		}
		return api.Output(currentVersion())
	},
}
