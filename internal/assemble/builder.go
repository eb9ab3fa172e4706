// Package assemble runs the build tool for a variant's assemble task.
package assemble

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/Norgate-AV/andromeda/internal/codes"
	"github.com/Norgate-AV/andromeda/internal/config"
	"github.com/Norgate-AV/andromeda/internal/tasks"
	"github.com/Norgate-AV/andromeda/internal/utils"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

// ExecFunc creates the command that runs name with args in dir
type ExecFunc func(ctx context.Context, dir, name string, args ...string) Commander

// CommandBuilder handles building assemble commands
type CommandBuilder struct {
	execCommand ExecFunc

	Stdout io.Writer
	Stderr io.Writer
}

// NewCommandBuilder creates a new command builder
func NewCommandBuilder() *CommandBuilder {
	cb := &CommandBuilder{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	cb.execCommand = func(ctx context.Context, dir, name string, args ...string) Commander {
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Dir = dir
		cmd.Stdout = cb.Stdout
		cmd.Stderr = cb.Stderr

		return cmd
	}

	return cb
}

// NewCommandBuilderWith creates a command builder running commands through execCommand
func NewCommandBuilderWith(execCommand ExecFunc) *CommandBuilder {
	cb := NewCommandBuilder()
	cb.execCommand = execCommand

	return cb
}

// BuildCommandArgs builds the arguments for assembling variant: the
// configured extra arguments, one -P per project property, then the task.
func (cb *CommandBuilder) BuildCommandArgs(cfg *config.Config, variant string) ([]string, error) {
	if strings.TrimSpace(variant) == "" {
		return nil, fmt.Errorf("variant name must not be empty")
	}

	var cmdArgs []string
	for _, arg := range cfg.AssembleArgs {
		if arg != "" {
			cmdArgs = append(cmdArgs, arg)
		}
	}

	keys := make([]string, 0, len(cfg.Properties))
	for k := range cfg.Properties {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		cmdArgs = append(cmdArgs, fmt.Sprintf("-P%s=%s", k, cfg.Properties[k]))
	}

	cmdArgs = append(cmdArgs, utils.AssembleTask(variant))

	return cmdArgs, nil
}

// ExecuteCommand runs the build tool in dir
func (cb *CommandBuilder) ExecuteCommand(ctx context.Context, dir, path string, cmdArgs []string) error {
	c := cb.execCommand(ctx, dir, path, cmdArgs...)

	err := c.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return codes.Wrap(codes.AssembleFailed, fmt.Errorf("%s exited with code %d: %w", path, exitErr.ExitCode(), err))
		}

		return codes.Wrap(codes.AssembleFailed, fmt.Errorf("failed to run %s: %w", path, err))
	}

	return nil
}

// Action adapts the assemble command for variant into a task action
func (cb *CommandBuilder) Action(cfg *config.Config, variant string) tasks.Action {
	return func(ctx context.Context) error {
		cmdArgs, err := cb.BuildCommandArgs(cfg, variant)
		if err != nil {
			return err
		}

		return cb.ExecuteCommand(ctx, cfg.ProjectDir, cfg.AssembleCommand, cmdArgs)
	}
}

// DescribeCommand returns verbose build information
func (cb *CommandBuilder) DescribeCommand(cfg *config.Config, variant string, cmdArgs []string) string {
	return fmt.Sprintf("Variant: %s\nProject: %s\nCommand: %s %s",
		variant, cfg.ProjectDir, cfg.AssembleCommand, strings.Join(cmdArgs, " "))
}
