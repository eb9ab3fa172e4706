// Package outputcraft renames packaged APKs after their variant's assemble
// task, using the application name from a string resource and a naming
// callback.
package outputcraft

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Norgate-AV/andromeda/internal/display"
	"github.com/Norgate-AV/andromeda/internal/history"
	"github.com/Norgate-AV/andromeda/internal/project"
	"github.com/Norgate-AV/andromeda/internal/resource"
	"github.com/Norgate-AV/andromeda/internal/tasks"
	"github.com/Norgate-AV/andromeda/internal/utils"
)

var (
	// ErrDestinationExists is returned when the new name is already taken
	ErrDestinationExists = errors.New("destination already exists")

	// ErrInvalidName is returned when the naming callback produces something
	// that is not a plain file name
	ErrInvalidName = errors.New("invalid file name")
)

// Host is what the pipeline needs from the build tool
type Host interface {
	Variants() []project.Variant
	File(rel string) string
	HasTask(name string) bool
	RegisterTask(name string, action tasks.Action) error
	RunAfter(task, follower string) error
}

// Logger receives diagnostics and the completion notice, rendered with
// the logger's theme
type Logger interface {
	Debug(format string, args ...any)
	Warn(format string, args ...any)
	Lifecycle(block string)
	Theme() *display.Theme
}

// Recorder stores completed renames
type Recorder interface {
	Record(rec history.Record) error
}

// Registration describes one rename task hooked onto an assemble task
type Registration struct {
	Variant string
	Output  string
	Task    string
	After   string
}

// Pipeline wires rename tasks into a host
type Pipeline struct {
	host     Host
	opts     Options
	log      Logger
	recorder Recorder
}

// New creates a pipeline. recorder may be nil.
func New(host Host, opts Options, log Logger, recorder Recorder) *Pipeline {
	return &Pipeline{
		host:     host,
		opts:     opts.withDefaults(),
		log:      log,
		recorder: recorder,
	}
}

// Options returns the effective options
func (p *Pipeline) Options() Options {
	return p.opts
}

// Register adds a rename task for every output of every eligible variant,
// each running after the variant's assemble task. Every assemble task must
// already exist and no rename task may be registered yet; otherwise nothing
// is registered and Register can be called again once that is fixed.
func (p *Pipeline) Register() ([]Registration, error) {
	planned, err := p.plan()
	if err != nil {
		return nil, err
	}

	regs := make([]Registration, 0, len(planned))
	for _, r := range planned {
		v, out := r.variant, r.output

		if err := p.host.RegisterTask(r.Task, func(ctx context.Context) error {
			return p.rename(ctx, r.Task, v, out)
		}); err != nil {
			return regs, fmt.Errorf("failed to register %s: %w", r.Task, err)
		}

		if err := p.host.RunAfter(r.After, r.Task); err != nil {
			return regs, fmt.Errorf("failed to hook %s after %s: %w", r.Task, r.After, err)
		}

		p.log.Debug("Registered %s after %s", r.Task, r.After)
		regs = append(regs, r.Registration)
	}

	return regs, nil
}

type plannedTask struct {
	Registration
	variant project.Variant
	output  project.Output
}

func (p *Pipeline) plan() ([]plannedTask, error) {
	var planned []plannedTask
	seen := make(map[string]bool)

	for _, v := range p.host.Variants() {
		if p.opts.OnlyInRelease && !v.IsRelease() {
			p.log.Debug("Skipping %s: not a release variant", v.Name)
			continue
		}

		after := utils.AssembleTask(v.Name)
		if !p.host.HasTask(after) {
			return nil, fmt.Errorf("%w: %s", tasks.ErrTaskNotFound, after)
		}

		for i, out := range v.Outputs {
			name := utils.RenameTask(v.Name, out.Name, i)
			if seen[name] || p.host.HasTask(name) {
				return nil, fmt.Errorf("%w: %s", tasks.ErrDuplicateTask, name)
			}
			seen[name] = true

			planned = append(planned, plannedTask{
				Registration: Registration{
					Variant: v.Name,
					Output:  out.File,
					Task:    name,
					After:   after,
				},
				variant: v,
				output:  out,
			})
		}
	}

	return planned, nil
}

func (p *Pipeline) rename(ctx context.Context, task string, v project.Variant, out project.Output) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src := out.File
	srcInfo, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.log.Debug("No artifact at %s, nothing to rename", src)
			return nil
		}

		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	if srcInfo.IsDir() {
		return fmt.Errorf("artifact %s is a directory", src)
	}

	appName := p.appName(v)
	info := newBuildInfo(v, appName)

	base, err := p.opts.Naming(info)
	if err != nil {
		return fmt.Errorf("failed to generate name for %s: %w", info.VariantName, err)
	}

	if err := validateName(base); err != nil {
		return err
	}

	dir := filepath.Dir(src)
	name := base + Extension
	dst := filepath.Join(dir, name)

	if dst != src {
		if err := p.checkDestination(srcInfo, dst); err != nil {
			return err
		}

		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("failed to rename %s: %w", src, err)
		}
	}

	p.log.Lifecycle(p.log.Theme().RenameSummary(dir, name))
	p.record(task, v, info, src, dst)

	return nil
}

func (p *Pipeline) appName(v project.Variant) string {
	fallback := "app-" + v.Name

	path := p.host.File(p.opts.ResourceFilePath)
	name, err := resource.Extract(path, p.opts.ResourceFieldName)
	if err != nil {
		p.log.Warn("Could not read %q from %s (%v), using %q", p.opts.ResourceFieldName, path, err, fallback)
		return fallback
	}

	return name
}

// A destination that is the source itself (case-insensitive filesystems)
// does not count as taken.
func (p *Pipeline) checkDestination(srcInfo os.FileInfo, dst string) error {
	dstInfo, err := os.Stat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", dst, err)
	}

	if os.SameFile(srcInfo, dstInfo) {
		return nil
	}

	if dstInfo.IsDir() || !p.opts.Overwrite {
		return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	}

	return nil
}

func (p *Pipeline) record(task string, v project.Variant, info BuildInfo, src, dst string) {
	if p.recorder == nil {
		return
	}

	sum, err := history.Checksum(dst)
	if err != nil {
		p.log.Warn("Failed to checksum %s: %v", dst, err)
	}

	err = p.recorder.Record(history.Record{
		Variant:     v.Name,
		Task:        task,
		From:        src,
		To:          dst,
		AppName:     info.AppName,
		VersionName: info.VersionName,
		VersionCode: info.VersionCode,
		SHA256:      sum,
	})
	if err != nil {
		p.log.Warn("Failed to record rename of %s: %v", src, err)
	}
}

func validateName(base string) error {
	if strings.TrimSpace(base) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}

	if strings.ContainsAny(base, `/\`) || base == "." || base == ".." {
		return fmt.Errorf("%w: %q is not a plain file name", ErrInvalidName, base)
	}

	return nil
}
