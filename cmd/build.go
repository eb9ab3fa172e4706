package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/andromeda/internal/codes"
	"github.com/Norgate-AV/andromeda/internal/utils"
)

var buildCmd = &cobra.Command{
	Use:   "build [variant...]",
	Short: "Assemble variants and rename their APKs",
	Long: `Run the assemble task of each selected variant (all variants by default).
Release variants have their APK renamed once assembling succeeds.`,
	RunE:         runBuild,
	SilenceUsage: true,
}

func runBuild(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args, sessionOptions{record: true, validate: true})
	if err != nil {
		return err
	}
	defer s.Close()

	variants, err := s.selectVariants(args)
	if err != nil {
		return err
	}

	builder := newCommandBuilder()
	builder.Stdout = cmd.OutOrStdout()
	builder.Stderr = cmd.ErrOrStderr()

	for _, v := range s.project.Variants() {
		if err := s.project.RegisterTask(utils.AssembleTask(v.Name), builder.Action(s.cfg, v.Name)); err != nil {
			return err
		}
	}

	if _, err := s.configureOutputCraft(); err != nil {
		return err
	}

	for _, v := range variants {
		task := utils.AssembleTask(v.Name)
		s.log.Info("Running %s", task)

		if s.log.Verbose() {
			cmdArgs, err := builder.BuildCommandArgs(s.cfg, v.Name)
			if err != nil {
				return err
			}

			s.log.Debug("%s", builder.DescribeCommand(s.cfg, v.Name, cmdArgs))
		}

		if err := s.project.Tasks().Run(cmd.Context(), task); err != nil {
			s.log.Error("%v", err)
			return codes.Wrap(codes.RenameFailed, err)
		}
	}

	s.log.Success("Build completed")

	return nil
}
