package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// ColorMode controls ANSI color output
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Colors when stdout is a terminal
	ColorAlways ColorMode = "always" // Force colors on
	ColorNever  ColorMode = "never"  // Disable colors
)

// Default configuration values
const (
	DefaultOnlyInRelease     = true
	DefaultResourceFieldName = "app_name"
	DefaultResourceFilePath  = "src/main/res/values/strings.xml"
	DefaultNameTemplate      = "{{.AppName}} [{{.VersionName}}]"
	DefaultAssembleCommand   = "./gradlew"
	DefaultOverwrite         = false
	DefaultNoHistory         = false
	DefaultVerbose           = false
	DefaultColor             = ColorAuto
)

// Holds the configuration options for andromeda
type Config struct {
	// Android project directory
	ProjectDir string

	// Project file (.andromeda.yml) the configuration was read from, if any
	ProjectFile string

	// Rename only non-debuggable variants
	OnlyInRelease bool

	// String resource holding the application name
	ResourceFieldName string

	// Resource document, relative to the project directory
	ResourceFilePath string

	// Go template producing the APK base name
	NameTemplate string

	// Replace an existing file with the renamed APK
	Overwrite bool

	// Command used to assemble a variant, and extra arguments passed before the task name
	AssembleCommand string
	AssembleArgs    []string

	// Project properties given with -P key=value
	Properties map[string]string

	// Do not record renames in the history database
	NoHistory bool

	// Enable verbose output
	Verbose bool

	// Color output mode
	Color ColorMode
}

// Validate normalises paths and rejects unusable values
func (c *Config) Validate() error {
	if c.ProjectDir == "" {
		c.ProjectDir = "."
	}

	abs, err := filepath.Abs(c.ProjectDir)
	if err != nil {
		return fmt.Errorf("invalid project directory: %v", err)
	}

	c.ProjectDir = abs

	if strings.TrimSpace(c.ResourceFieldName) == "" {
		return fmt.Errorf("resource field name must not be empty")
	}

	if strings.TrimSpace(c.ResourceFilePath) == "" {
		return fmt.Errorf("resource file path must not be empty")
	}

	if strings.TrimSpace(c.NameTemplate) == "" {
		return fmt.Errorf("name template must not be empty")
	}

	if strings.TrimSpace(c.AssembleCommand) == "" {
		return fmt.Errorf("assemble command must not be empty")
	}

	switch c.Color {
	case "":
		c.Color = DefaultColor
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode: %s", c.Color)
	}

	return nil
}

// ParseProperties turns key=value pairs into a map
func ParseProperties(pairs []string) (map[string]string, error) {
	props := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)

		if !ok || key == "" {
			return nil, fmt.Errorf("invalid property %q, expected key=value", pair)
		}

		props[key] = value
	}

	return props, nil
}

// Load builds a Config from the global viper instance
func Load() (*Config, error) {
	props, err := ParseProperties(viper.GetStringSlice("property"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ProjectDir:        viper.GetString("project_dir"),
		ProjectFile:       viper.GetString("project_file"),
		OnlyInRelease:     viper.GetBool("only_in_release"),
		ResourceFieldName: viper.GetString("resource_field_name"),
		ResourceFilePath:  viper.GetString("resource_file_path"),
		NameTemplate:      viper.GetString("name_template"),
		Overwrite:         viper.GetBool("overwrite"),
		AssembleCommand:   viper.GetString("assemble_command"),
		AssembleArgs:      viper.GetStringSlice("assemble_args"),
		Properties:        props,
		NoHistory:         viper.GetBool("no_history"),
		Verbose:           viper.GetBool("verbose"),
		Color:             ColorMode(viper.GetString("color")),
	}

	// Apply defaults if not set
	if cfg.ResourceFieldName == "" {
		cfg.ResourceFieldName = DefaultResourceFieldName
	}

	if cfg.ResourceFilePath == "" {
		cfg.ResourceFilePath = DefaultResourceFilePath
	}

	if cfg.NameTemplate == "" {
		cfg.NameTemplate = DefaultNameTemplate
	}

	if cfg.AssembleCommand == "" {
		cfg.AssembleCommand = defaultAssembleCommand()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultAssembleCommand() string {
	if runtime.GOOS == "windows" {
		return "gradlew.bat"
	}

	return DefaultAssembleCommand
}
