package cli

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionVerbose bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long: `Print the samvidhan version. With --details, also print the Go
toolchain, platform and VCS revision the binary was built from.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("samvidhan version %s\n", version)
		if !versionVerbose {
			return
		}
		cmd.Printf("  go:       %s\n", runtime.Version())
		cmd.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		if rev := vcsRevision(); rev != "" {
			cmd.Printf("  commit:   %s\n", rev)
		}
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionVerbose, "details", false, "print build details")
	rootCmd.AddCommand(versionCmd)
}

// vcsRevision returns the short commit the binary was built from, with a
// "-dirty" suffix for modified trees. Empty when unknown.
func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if rev != "" && dirty {
		rev += "-dirty"
	}
	return rev
}
