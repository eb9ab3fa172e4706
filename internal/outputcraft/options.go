package outputcraft

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const (
	// DefaultResourceFieldName is the string resource holding the app name
	DefaultResourceFieldName = "app_name"

	// DefaultResourceFilePath is the strings file, relative to the project
	DefaultResourceFilePath = "src/main/res/values/strings.xml"

	// DefaultNameTemplate renders the same name as DefaultNaming
	DefaultNameTemplate = "{{.AppName}} [{{.VersionName}}]"

	// Extension is appended to every generated name
	Extension = ".apk"
)

// Naming turns build info into a file name without extension
type Naming func(info BuildInfo) (string, error)

// Options configures the rename pipeline
type Options struct {
	// OnlyInRelease restricts renaming to non-debuggable variants
	OnlyInRelease bool

	// ResourceFieldName is the <string name="..."> to read the app name from
	ResourceFieldName string

	// ResourceFilePath is the resource file, relative to the project directory
	ResourceFilePath string

	// Naming generates the new file name
	Naming Naming

	// Overwrite replaces an existing file at the destination
	Overwrite bool
}

// DefaultOptions returns the out-of-the-box configuration
func DefaultOptions() Options {
	return Options{
		OnlyInRelease:     true,
		ResourceFieldName: DefaultResourceFieldName,
		ResourceFilePath:  DefaultResourceFilePath,
		Naming:            DefaultNaming,
	}
}

func (o Options) withDefaults() Options {
	if o.ResourceFieldName == "" {
		o.ResourceFieldName = DefaultResourceFieldName
	}

	if o.ResourceFilePath == "" {
		o.ResourceFilePath = DefaultResourceFilePath
	}

	if o.Naming == nil {
		o.Naming = DefaultNaming
	}

	return o
}

// DefaultNaming produces "<appName> [<versionName>]"
func DefaultNaming(info BuildInfo) (string, error) {
	return fmt.Sprintf("%s [%s]", info.AppName, info.VersionName), nil
}

// TemplateNaming builds a Naming from a text/template with the sprig
// function map available. Fields of BuildInfo are accessed as {{.AppName}},
// {{.BuildType.Name}} and so on.
func TemplateNaming(text string) (Naming, error) {
	tmpl, err := template.New("name").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid name template: %w", err)
	}

	return func(info BuildInfo) (string, error) {
		var b strings.Builder
		if err := tmpl.Execute(&b, info); err != nil {
			return "", fmt.Errorf("failed to render name template: %w", err)
		}

		return strings.TrimSpace(b.String()), nil
	}, nil
}
