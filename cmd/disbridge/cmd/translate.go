package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gift-interop/disbridge/internal/stream"
	"github.com/gift-interop/disbridge/internal/translate"
	"github.com/gift-interop/disbridge/pkg/core"
	"github.com/gift-interop/disbridge/pkg/pdu"
)

var (
	translateKind    string
	translateDialect string
	translateFormat  string
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file|-]",
	Short: "Translate one platform event into a PDU record",
	Long: `Translate one platform event into a PDU record.

The event is read as JSON or YAML from the file or stdin. Siman messages are
mapped to the session control PDU they stand for; Load and Restart print nothing.

Examples:
  disbridge encode --kind EntityState --dialect ARES tank.json
  disbridge encode --kind Siman --format yaml - <<< '{"type": 2}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode [file|-]",
	Short: "Translate one PDU record into a platform event",
	Long: `Translate one PDU record into a platform event.

The PDU record is read as JSON or YAML from the file or stdin. Fields that
decode to a default value are listed on stderr.

Examples:
  disbridge decode --kind Detonation det.json
  disbridge decode --kind EntityState --format yaml es.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func dialectFlag() translate.Dialect {
	if translateDialect != "" {
		return translate.ParseDialect(translateDialect)
	}
	return translate.ParseDialect(settings.DIS.Dialect)
}

func runEncode(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd.InOrStdin(), firstArg(args))
	if err != nil {
		return err
	}
	e, err := stream.NewEvent(translateKind)
	if err != nil {
		return err
	}
	if err := decodeInput(data, e); err != nil {
		return err
	}

	var p pdu.PDU
	if s, ok := e.(*core.Siman); ok {
		p, err = translate.SimanToPDU(s, time.Now().UnixMilli())
	} else {
		p, err = translate.ToPDU(e, dialectFlag())
	}
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	return printValue(cmd.OutOrStdout(), translateFormat, p)
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd.InOrStdin(), firstArg(args))
	if err != nil {
		return err
	}
	p, err := stream.NewPDU(translateKind)
	if err != nil {
		return err
	}
	if err := decodeInput(data, p); err != nil {
		return err
	}

	for _, s := range translate.Substitutions(p) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", s.Field, s.Reason)
	}
	e, err := translate.ToEvent(p, dialectFlag())
	if err != nil {
		return err
	}
	return printValue(cmd.OutOrStdout(), translateFormat, e)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)

	for _, c := range []*cobra.Command{encodeCmd, decodeCmd} {
		c.Flags().StringVarP(&translateKind, "kind", "k", "", "Event or PDU kind, e.g. EntityState")
		c.Flags().StringVarP(&translateDialect, "dialect", "d", "", "Dialect: "+dialectNames()+" (defaults to dis.dialect)")
		c.Flags().StringVarP(&translateFormat, "format", "f", "json", "Output format (json, yaml)")
		_ = c.MarkFlagRequired("kind")
	}
}
