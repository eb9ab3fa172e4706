package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/andromeda/internal/codes"
	"github.com/Norgate-AV/andromeda/internal/config"
	"github.com/Norgate-AV/andromeda/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "andromeda [variant...]",
	Short: "Android APK output renamer",
	Long: `Assemble Android build variants and rename the packaged APKs after the
application name and version, e.g. "Demo [2.3.1].apk".`,
	RunE:         runBuild,
	SilenceUsage: true,
	Args:         cobra.ArbitraryArgs,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(codes.ExitCode(err))
	}
}

func init() {
	rootCmd.Version = version.FullVersion()
	rootCmd.PersistentFlags().StringP("project", "C", "", "Android project directory (default: nearest .andromeda.yml or the working directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("color", string(config.DefaultColor), "Color output: auto, always or never")
	rootCmd.PersistentFlags().Bool("no-history", false, "Do not record renames in the history database")
	rootCmd.PersistentFlags().Bool("overwrite", false, "Replace an existing file with the renamed APK")
	rootCmd.PersistentFlags().StringArrayP("property", "P", []string{}, "Project property as key=value (repeatable)")
	rootCmd.PersistentFlags().Bool("all-variants", false, "Rename debuggable variants too")
	rootCmd.AddCommand(buildCmd, renameCmd, propCmd, historyCmd)
}
