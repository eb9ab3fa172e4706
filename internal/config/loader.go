package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by viper
const EnvPrefix = "ANDROMEDA"

// Loader handles configuration loading from various sources
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForBuild loads configuration for commands operating on a project.
// Precedence, lowest first: defaults, global config, project file, .env and
// ANDROMEDA_* environment, command flags.
func (l *Loader) LoadForBuild(cmd *cobra.Command, args []string) (*Config, error) {
	l.setupViperDefaults()
	l.bindCommandFlags(cmd)

	l.setupEnv()
	dir := l.projectDir()
	l.loadDotEnv(dir)
	l.loadGlobalConfig()
	l.loadLocalConfig(dir)

	return Load()
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("only_in_release", DefaultOnlyInRelease)
	viper.SetDefault("resource_field_name", DefaultResourceFieldName)
	viper.SetDefault("resource_file_path", DefaultResourceFilePath)
	viper.SetDefault("name_template", DefaultNameTemplate)
	viper.SetDefault("assemble_command", defaultAssembleCommand())
	viper.SetDefault("overwrite", DefaultOverwrite)
	viper.SetDefault("no_history", DefaultNoHistory)
	viper.SetDefault("verbose", DefaultVerbose)
	viper.SetDefault("color", string(DefaultColor))
}

// setupEnv maps ANDROMEDA_<KEY> environment variables onto config keys
func (l *Loader) setupEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// projectDir returns the --project flag value, or the working directory
func (l *Loader) projectDir() string {
	dir := viper.GetString("project_dir")
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "."
		}

		return cwd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}

	return abs
}

// loadDotEnv loads a .env file from the project directory into the environment
func (l *Loader) loadDotEnv(dir string) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err == nil {
		_ = godotenv.Load(path)
	}
}

// loadGlobalConfig loads global configuration from the user config directory
func (l *Loader) loadGlobalConfig() {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		return
	}

	globalDir := filepath.Join(configDir, "andromeda")

	for _, ext := range ConfigExtensions {
		globalPath := filepath.Join(globalDir, "config."+ext)

		if _, err := os.Stat(globalPath); err == nil {
			viper.SetConfigFile(globalPath)

			if err := viper.ReadInConfig(); err == nil {
				break
			}
		}
	}
}

// loadLocalConfig merges the nearest project file over the global config.
// Without an explicit --project the file's directory becomes the project directory.
func (l *Loader) loadLocalConfig(dir string) {
	localPath := FindLocalConfig(dir)
	if localPath == "" {
		viper.SetDefault("project_dir", dir)
		return
	}

	viper.SetConfigFile(localPath)
	_ = viper.MergeInConfig()

	viper.Set("project_file", localPath)
	if viper.GetString("project_dir") == "" {
		viper.Set("project_dir", filepath.Dir(localPath))
	}
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	flags := cmd.Flags()
	_ = viper.BindPFlag("project_dir", flags.Lookup("project"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("color", flags.Lookup("color"))
	_ = viper.BindPFlag("no_history", flags.Lookup("no-history"))
	_ = viper.BindPFlag("overwrite", flags.Lookup("overwrite"))
	_ = viper.BindPFlag("property", flags.Lookup("property"))

	if f := flags.Lookup("all-variants"); f != nil && f.Changed && f.Value.String() == "true" {
		viper.Set("only_in_release", false)
	}
}
