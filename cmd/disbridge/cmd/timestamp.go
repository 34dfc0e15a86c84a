package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gift-interop/disbridge/internal/distime"
)

var timestampCmd = &cobra.Command{
	Use:   "timestamp [unix-ms]",
	Short: "Show the DIS time encoding of an instant",
	Long: `Show the DIS time encoding of an instant given as UTC milliseconds since
the Unix epoch. Without an argument the current time is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ms := distime.UnixMilli(time.Now())
		if len(args) == 1 {
			v, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || v < 0 {
				return fmt.Errorf("invalid unix milliseconds %q", args[0])
			}
			ms = v
		}

		ts := distime.ToDisTimestamp(ms)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "time:              %s\n", time.UnixMilli(ms).UTC().Format(time.RFC3339Nano))
		fmt.Fprintf(w, "hours since epoch: %d\n", distime.HoursSinceEpoch(ms))
		fmt.Fprintf(w, "ms past hour:      %d\n", distime.MillisSinceHour(ms))
		fmt.Fprintf(w, "time units:        %d\n", distime.ToDisTimeUnits(ms))
		fmt.Fprintf(w, "timestamp:         %d (0x%08x)\n", ts, ts)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timestampCmd)
}
