// Package project models the Android project being built: its variants and
// outputs, its project properties, and the task graph the plugin hooks into.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Norgate-AV/andromeda/internal/properties"
	"github.com/Norgate-AV/andromeda/internal/registry"
	"github.com/Norgate-AV/andromeda/internal/tasks"
	"github.com/Norgate-AV/andromeda/internal/utils"
)

const (
	// GradlePropertiesFile holds project properties shared by the team
	GradlePropertiesFile = "gradle.properties"

	// EnvPrefix marks environment variables that define project properties
	EnvPrefix = "ORG_GRADLE_PROJECT_"

	// DefaultOutputDir is where assembled APKs are written, relative to the project
	DefaultOutputDir = "build/outputs/apk"
)

// Project is the build host: it exposes variants, resolves project files and
// properties, and owns the task graph and extension registry.
type Project struct {
	root       string
	manifest   Manifest
	variants   []Variant
	store      *properties.Store
	overrides  map[string]string
	graph      *tasks.Graph
	extensions *registry.Registry
}

// Load reads the android section of manifestPath (which may be empty) and
// builds the project rooted at root.
func Load(root, manifestPath string, store *properties.Store, overrides map[string]string) (*Project, error) {
	var m Manifest

	if manifestPath != "" {
		v := viper.New()
		v.SetConfigFile(manifestPath)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read project file %s: %w", manifestPath, err)
		}

		if err := v.UnmarshalKey("android", &m); err != nil {
			return nil, fmt.Errorf("invalid android section in %s: %w", manifestPath, err)
		}
	}

	return New(root, m, store, overrides)
}

// New builds a project from an already decoded manifest
func New(root string, m Manifest, store *properties.Store, overrides map[string]string) (*Project, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	if store == nil {
		store = properties.NewStore()
	}

	p := &Project{
		root:       abs,
		manifest:   m,
		store:      store,
		overrides:  overrides,
		graph:      tasks.NewGraph(),
		extensions: registry.New(),
	}

	variants, err := p.resolveVariants()
	if err != nil {
		return nil, err
	}

	p.variants = variants

	return p, nil
}

// Root returns the absolute project directory
func (p *Project) Root() string {
	return p.root
}

// Manifest returns the decoded project manifest
func (p *Project) Manifest() Manifest {
	return p.manifest
}

// Variants returns the resolved variants in declaration order
func (p *Project) Variants() []Variant {
	out := make([]Variant, len(p.variants))
	copy(out, p.variants)

	return out
}

// Variant looks up a variant by name
func (p *Project) Variant(name string) (Variant, bool) {
	for _, v := range p.variants {
		if v.Name == name {
			return v, true
		}
	}

	return Variant{}, false
}

// File resolves a path relative to the project directory
func (p *Project) File(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}

	return filepath.Join(p.root, rel)
}

// Store returns the shared property file cache
func (p *Project) Store() *properties.Store {
	return p.store
}

// Tasks returns the project's task graph
func (p *Project) Tasks() *tasks.Graph {
	return p.graph
}

// Extensions returns the project's extension registry
func (p *Project) Extensions() *registry.Registry {
	return p.extensions
}

// RegisterTask adds a task to the project's graph
func (p *Project) RegisterTask(name string, action tasks.Action) error {
	return p.graph.Register(name, action)
}

// HasTask reports whether a task is registered
func (p *Project) HasTask(name string) bool {
	return p.graph.Has(name)
}

// RunAfter makes follower run after task completes successfully
func (p *Project) RunAfter(task, follower string) error {
	return p.graph.RunAfter(task, follower)
}

// FindProperty looks key up among the project properties, in order:
// -P overrides, gradle.properties, ORG_GRADLE_PROJECT_<key>.
func (p *Project) FindProperty(key string) (string, bool, error) {
	if v, ok := p.overrides[key]; ok {
		return v, true, nil
	}

	props, err := p.store.Load(p.File(GradlePropertiesFile))
	if err != nil {
		return "", false, fmt.Errorf("failed to load %s: %w", GradlePropertiesFile, err)
	}

	if v, ok := props.Get(key); ok {
		return v, true, nil
	}

	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		return v, true, nil
	}

	return "", false, nil
}

// Validate checks the fields the rename pipeline relies on
func (p *Project) Validate() error {
	var errs []error

	for _, v := range p.variants {
		if v.ApplicationID == "" {
			errs = append(errs, fmt.Errorf("variant %s: application_id is required", v.Name))
		}

		if v.VersionCode < 0 {
			errs = append(errs, fmt.Errorf("variant %s: version_code must not be negative", v.Name))
		}
	}

	return errors.Join(errs...)
}

func (p *Project) resolveVariants() ([]Variant, error) {
	specs := p.manifest.Variants
	if len(specs) == 0 {
		specs = []VariantSpec{
			{Name: "debug", BuildType: "debug"},
			{Name: "release", BuildType: "release"},
		}
	}

	buildTypes := make(map[string]*BuildType)
	seen := make(map[string]bool)
	variants := make([]Variant, 0, len(specs))

	for i, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, fmt.Errorf("variant %d: name is required", i+1)
		}

		if seen[name] {
			return nil, fmt.Errorf("variant %s declared twice", name)
		}
		seen[name] = true

		btName := spec.BuildType
		if btName == "" {
			btName = buildTypeFromName(name, spec.Flavor)
		}

		bt, ok := buildTypes[btName]
		if !ok {
			bt = &BuildType{Name: btName, Debuggable: btName == "debug"}
			if d := p.manifest.BuildTypes[btName].Debuggable; d != nil {
				bt.Debuggable = *d
			}

			buildTypes[btName] = bt
		}

		if spec.Debuggable != nil && *spec.Debuggable != bt.Debuggable {
			// A per-variant override gets its own build type value
			bt = &BuildType{Name: btName, Debuggable: *spec.Debuggable}
		}

		dirName := spec.DirName
		if dirName == "" {
			dirName = btName
			if spec.Flavor != "" {
				dirName = spec.Flavor + "/" + btName
			}
		}

		v := Variant{
			Name:          name,
			Description:   firstNonEmpty(spec.Description, p.manifest.Description, utils.Capitalize(name)+" build"),
			DirName:       dirName,
			FlavorName:    spec.Flavor,
			ApplicationID: firstNonEmpty(spec.ApplicationID, p.manifest.ApplicationID),
			VersionName:   firstNonEmpty(spec.VersionName, p.manifest.VersionName),
			VersionCode:   p.manifest.VersionCode,
			BuildType:     bt,
		}

		if spec.VersionCode != nil {
			v.VersionCode = *spec.VersionCode
		}

		if len(spec.Outputs) == 0 {
			v.Outputs = []Output{{File: p.File(defaultOutput(dirName, spec.Flavor, btName))}}
		} else {
			for j, o := range spec.Outputs {
				if strings.TrimSpace(o.File) == "" {
					return nil, fmt.Errorf("variant %s: output %d has no file", name, j+1)
				}

				v.Outputs = append(v.Outputs, Output{Name: o.Name, File: p.File(o.File)})
			}
		}

		variants = append(variants, v)
	}

	return variants, nil
}

// buildTypeFromName strips the flavor prefix: "freeRelease" -> "release"
func buildTypeFromName(name, flavor string) string {
	if flavor != "" && strings.HasPrefix(name, flavor) && len(name) > len(flavor) {
		rest := name[len(flavor):]
		return strings.ToLower(rest[:1]) + rest[1:]
	}

	return name
}

func defaultOutput(dirName, flavor, buildType string) string {
	file := "app-" + buildType + ".apk"
	if flavor != "" {
		file = "app-" + flavor + "-" + buildType + ".apk"
	}

	return filepath.Join(DefaultOutputDir, filepath.FromSlash(dirName), file)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
