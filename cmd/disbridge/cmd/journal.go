package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gift-interop/disbridge/internal/journal"
)

var (
	tailCount     int
	journalFormat string
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Read the translated traffic journal",
	Long: `Read the translated traffic journal configured under "journal" and "db"
in the config file. The journal must be enabled.`,
}

var journalTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print the most recent journal entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := openJournal()
		if err != nil {
			return err
		}
		defer j.Close()

		entries, err := j.Recent(tailCount)
		if err != nil {
			return err
		}
		if journalFormat != "text" {
			return printValue(cmd.OutOrStdout(), journalFormat, entries)
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-8s %-12s %-7s %d:%d:%d\n",
				e.Time.Format("2006-01-02T15:04:05.000Z07:00"), e.Direction, e.Kind, e.Dialect,
				e.Site, e.Application, e.Entity)
		}
		return nil
	},
}

var journalTrackCmd = &cobra.Command{
	Use:   "track <site:application:entity>",
	Short: "Print the recorded path of an entity as WKT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		site, app, entity, err := parseEntityID(args[0])
		if err != nil {
			return err
		}
		j, err := openJournal()
		if err != nil {
			return err
		}
		defer j.Close()

		track, err := j.Track(site, app, entity)
		if err != nil {
			return fmt.Errorf("no track for %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), track.AsText())
		return nil
	},
}

func openJournal() (*journal.Journal, error) {
	return journal.Open(settings.Journal, settings.DB, zerolog.Nop())
}

// parseEntityID parses "site:application:entity".
func parseEntityID(s string) (site, app, entity uint16, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid entity id %q, want site:application:entity", s)
	}
	var v [3]uint16
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid entity id %q: %w", s, err)
		}
		v[i] = uint16(n)
	}
	return v[0], v[1], v[2], nil
}

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTailCmd)
	journalCmd.AddCommand(journalTrackCmd)

	journalTailCmd.Flags().IntVarP(&tailCount, "lines", "n", 20, "Number of entries")
	journalTailCmd.Flags().StringVarP(&journalFormat, "format", "f", "text", "Output format (text, json, yaml)")
}
