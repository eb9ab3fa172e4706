package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/andromeda/internal/codes"
	"github.com/Norgate-AV/andromeda/internal/utils"
)

var renameCmd = &cobra.Command{
	Use:   "rename [variant...]",
	Short: "Rename already assembled APKs",
	Long: `Run the rename tasks of the selected variants (all variants by default)
without assembling first. Variants whose APK is missing are left alone.`,
	RunE:         runRename,
	SilenceUsage: true,
}

func runRename(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args, sessionOptions{record: true, validate: true})
	if err != nil {
		return err
	}
	defer s.Close()

	variants, err := s.selectVariants(args)
	if err != nil {
		return err
	}

	// Artifacts are already built; the assemble tasks only anchor the renames
	for _, v := range s.project.Variants() {
		if err := s.project.RegisterTask(utils.AssembleTask(v.Name), func(context.Context) error { return nil }); err != nil {
			return err
		}
	}

	regs, err := s.configureOutputCraft()
	if err != nil {
		return err
	}

	selected := make(map[string]bool, len(variants))
	for _, v := range variants {
		selected[v.Name] = true
	}

	renamed := 0
	for _, reg := range regs {
		if !selected[reg.Variant] {
			continue
		}

		if err := s.project.Tasks().Run(cmd.Context(), reg.Task); err != nil {
			s.log.Error("%v", err)
			return codes.Wrap(codes.RenameFailed, err)
		}

		renamed++
	}

	if renamed == 0 {
		s.log.Warn("No variant eligible for renaming")
	}

	return nil
}
