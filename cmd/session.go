package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Norgate-AV/andromeda/internal/assemble"
	"github.com/Norgate-AV/andromeda/internal/codes"
	"github.com/Norgate-AV/andromeda/internal/config"
	"github.com/Norgate-AV/andromeda/internal/history"
	"github.com/Norgate-AV/andromeda/internal/logging"
	"github.com/Norgate-AV/andromeda/internal/outputcraft"
	"github.com/Norgate-AV/andromeda/internal/plugin"
	"github.com/Norgate-AV/andromeda/internal/project"
	"github.com/Norgate-AV/andromeda/internal/properties"
)

// newCommandBuilder is replaced in tests
var newCommandBuilder = assemble.NewCommandBuilder

// session is the loaded state shared by the project commands
type session struct {
	cfg     *config.Config
	log     *logging.Logger
	project *project.Project
	history *history.History
	ext     *plugin.Extension
}

// sessionOptions tunes openSession per command
type sessionOptions struct {
	// record renames in the project's history database
	record bool

	// validate the project fields the rename pipeline relies on
	validate bool

	// quiet sends every diagnostic to stderr so stdout carries only results
	quiet bool
}

// openSession loads config and project and applies the plugin
func openSession(cmd *cobra.Command, args []string, opts sessionOptions) (*session, error) {
	// Each invocation starts from a clean configuration
	viper.Reset()

	loader := config.NewLoader()
	cfg, err := loader.LoadForBuild(cmd, args)
	if err != nil {
		return nil, codes.Wrap(codes.ConfigError, fmt.Errorf("failed to load config: %w", err))
	}

	out := cmd.OutOrStdout()
	if opts.quiet {
		out = cmd.ErrOrStderr()
	}

	log := logging.NewLogger(cfg, out, cmd.ErrOrStderr())

	if cfg.ProjectFile != "" {
		log.Debug("Using project file %s", cfg.ProjectFile)
	}

	proj, err := project.Load(cfg.ProjectDir, cfg.ProjectFile, properties.NewStore(), cfg.Properties)
	if err != nil {
		return nil, codes.Wrap(codes.ConfigError, err)
	}

	if opts.validate {
		if err := proj.Validate(); err != nil {
			return nil, codes.Wrap(codes.ConfigError, err)
		}
	}

	s := &session{
		cfg:     cfg,
		log:     log,
		project: proj,
	}

	var recorder outputcraft.Recorder
	if opts.record && !cfg.NoHistory {
		h, err := history.Open(filepath.Join(proj.Root(), history.DefaultDir))
		if err != nil {
			log.Warn("Rename history disabled: %v", err)
		} else {
			s.history = h
			recorder = h
		}
	}

	ext, err := plugin.Apply(proj, log, recorder)
	if err != nil {
		s.Close()
		return nil, codes.Wrap(codes.ConfigError, err)
	}

	s.ext = ext

	return s, nil
}

func (s *session) Close() {
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			s.log.Warn("Failed to close history: %v", err)
		}
	}
}

// selectVariants returns the named variants, or all of them
func (s *session) selectVariants(names []string) ([]project.Variant, error) {
	if len(names) == 0 {
		return s.project.Variants(), nil
	}

	variants := make([]project.Variant, 0, len(names))
	for _, name := range names {
		v, ok := s.project.Variant(name)
		if !ok {
			return nil, codes.Wrap(codes.ConfigError, fmt.Errorf("unknown variant %q", name))
		}

		variants = append(variants, v)
	}

	return variants, nil
}

// configureOutputCraft registers the rename tasks from the loaded config
func (s *session) configureOutputCraft() ([]outputcraft.Registration, error) {
	naming, err := outputcraft.TemplateNaming(s.cfg.NameTemplate)
	if err != nil {
		return nil, codes.Wrap(codes.ConfigError, err)
	}

	regs, err := s.ext.OutputCraft(outputcraft.Options{
		OnlyInRelease:     s.cfg.OnlyInRelease,
		ResourceFieldName: s.cfg.ResourceFieldName,
		ResourceFilePath:  s.cfg.ResourceFilePath,
		Naming:            naming,
		Overwrite:         s.cfg.Overwrite,
	})
	if err != nil {
		return nil, codes.Wrap(codes.ConfigError, err)
	}

	return regs, nil
}
