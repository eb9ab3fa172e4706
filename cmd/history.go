package cmd

import (
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/andromeda/internal/codes"
	"github.com/Norgate-AV/andromeda/internal/history"
)

var historyCmd = &cobra.Command{
	Use:          "history",
	Short:        "Show or clear the rename history",
	RunE:         runHistory,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

func init() {
	historyCmd.Flags().Bool("clear", false, "Remove all recorded renames")
}

func runHistory(cmd *cobra.Command, args []string) error {
	clearAll, _ := cmd.Flags().GetBool("clear")

	s, err := openSession(cmd, args, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	h, err := history.Open(filepath.Join(s.project.Root(), history.DefaultDir))
	if err != nil {
		return codes.Wrap(codes.HistoryFailed, err)
	}
	defer h.Close()

	if clearAll {
		if err := h.Clear(); err != nil {
			return codes.Wrap(codes.HistoryFailed, err)
		}

		s.log.Success("Rename history cleared")
		return nil
	}

	records, err := h.List()
	if err != nil {
		return codes.Wrap(codes.HistoryFailed, err)
	}

	if len(records) == 0 {
		s.log.Info("No renames recorded")
		return nil
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Timestamp.Local().Format(time.DateTime),
			rec.Variant,
			rec.VersionName,
			filepath.Base(rec.From),
			filepath.Base(rec.To),
			history.ShortChecksum(rec.SHA256),
		})
	}

	s.log.Lifecycle(s.log.Theme().HistoryTable(
		[]string{"TIME", "VARIANT", "VERSION", "FROM", "TO", "SHA256"},
		rows,
	))

	count, size, err := h.Stats()
	if err == nil {
		s.log.Debug("%d records, %d bytes in %s", count, size, h.Path())
	}

	return nil
}
