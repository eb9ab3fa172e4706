package project

// Manifest is the `android` section of the project file. It describes what
// the build produces; variant computation itself belongs to the build
// system, so variants are listed explicitly.
type Manifest struct {
	// Default application id (package name)
	ApplicationID string `mapstructure:"application_id"`

	// Default variant description
	Description string `mapstructure:"description"`

	// Default version name and code
	VersionName string `mapstructure:"version_name"`
	VersionCode int    `mapstructure:"version_code"`

	// Build types keyed by name
	BuildTypes map[string]BuildTypeSpec `mapstructure:"build_types"`

	// Variants, defaults to debug and release when empty
	Variants []VariantSpec `mapstructure:"variants"`
}

// BuildTypeSpec configures a build type
type BuildTypeSpec struct {
	Debuggable *bool `mapstructure:"debuggable"`
}

// VariantSpec configures one variant. Empty fields inherit from the manifest.
type VariantSpec struct {
	Name          string       `mapstructure:"name"`
	BuildType     string       `mapstructure:"build_type"`
	Debuggable    *bool        `mapstructure:"debuggable"`
	Flavor        string       `mapstructure:"flavor"`
	DirName       string       `mapstructure:"dir_name"`
	Description   string       `mapstructure:"description"`
	ApplicationID string       `mapstructure:"application_id"`
	VersionName   string       `mapstructure:"version_name"`
	VersionCode   *int         `mapstructure:"version_code"`
	Outputs       []OutputSpec `mapstructure:"outputs"`
}

// OutputSpec is one artifact produced by a variant
type OutputSpec struct {
	Name string `mapstructure:"name"`
	File string `mapstructure:"file"`
}

// BuildType is a resolved build type. Variants sharing a build type share
// the same pointer.
type BuildType struct {
	Name       string
	Debuggable bool
}

// Output is a resolved artifact with an absolute file path
type Output struct {
	Name string
	File string
}

// Variant is a resolved build variant
type Variant struct {
	Name          string
	Description   string
	DirName       string
	FlavorName    string
	ApplicationID string
	VersionName   string
	VersionCode   int
	BuildType     *BuildType
	Outputs       []Output
}

// IsRelease reports whether the variant's build type is not debuggable
func (v Variant) IsRelease() bool {
	return v.BuildType != nil && !v.BuildType.Debuggable
}
