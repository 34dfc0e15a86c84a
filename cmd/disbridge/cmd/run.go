package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gift-interop/disbridge/internal/dispatcher"
	"github.com/gift-interop/disbridge/internal/gateway"
	"github.com/gift-interop/disbridge/internal/influx"
	"github.com/gift-interop/disbridge/internal/journal"
	"github.com/gift-interop/disbridge/internal/logging"
	"github.com/gift-interop/disbridge/internal/monitor"
	"github.com/gift-interop/disbridge/internal/stream"
	"github.com/gift-interop/disbridge/internal/translate"
	"github.com/gift-interop/disbridge/pkg/core"
)

const program = "disbridge"

var logToConsole bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Translate a stream of newline delimited JSON messages",
	Long: `Translate a stream of newline delimited JSON messages read from stdin and
write the translations to stdout.

Each input line is {"direction": "pdu"|"event", "kind": ..., "payload": ...}.
PDUs are translated to platform events and events to PDUs. Events may carry
"origin": "domain" to take part in playback loopback.

Example:
  echo '{"direction":"event","kind":"Siman","payload":{"type":1}}' | disbridge run`,
	Args: cobra.NoArgs,
	RunE: runBridge,
}

func runBridge(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionStart := time.Now()
	if err := os.MkdirAll(settings.LogsDir, 0o755); err != nil {
		return err
	}

	var logFile io.Writer
	if !logToConsole {
		f, err := logging.NewRotatingFile(settings.LogsDir, program, sessionStart)
		if err != nil {
			return err
		}
		logFile = f
	}
	var gelfWriter io.Writer
	if settings.Graylog.Enabled {
		gw, err := logging.NewGraylogWriter(settings.Graylog.Address, program)
		if err != nil {
			return err
		}
		gelfWriter = gw
	}

	slogManager := logging.NewSlogManager()
	slogManager.Setup(logFile, settings.LogLevel, gelfWriter)
	defer slogManager.Close()
	log := slogManager.Logger()

	zlogOut := io.Writer(os.Stderr)
	if logFile != nil {
		zlogOut = logFile
	}
	zlog := logging.NewZerolog(zlogOut, settings.LogLevel)

	opts := gateway.Options{
		Dialect: translate.ParseDialect(settings.DIS.Dialect),
		Address: core.SimulationAddress{Site: settings.DIS.SiteID, Application: settings.DIS.ApplicationID},
		Logger:  log,
	}

	var backlog monitor.Backlog
	j, err := journal.Open(settings.Journal, settings.DB, zlog.With().Str("component", "journal").Logger())
	switch {
	case errors.Is(err, journal.ErrDisabled):
	case err != nil:
		return err
	default:
		j.Start(ctx)
		defer func() {
			if err := j.Close(); err != nil {
				log.Error("closing journal", "error", err)
			}
		}()
		opts.Journal = j
		backlog = j
	}

	metrics := influx.NewManager(settings.Influx, zlog.With().Str("component", "influx").Logger(),
		filepath.Join(settings.LogsDir, program+".influx.lp.gz"))
	switch err := metrics.Connect(ctx); {
	case errors.Is(err, influx.ErrDisabled):
	case err != nil:
		return err
	default:
		defer metrics.Close()
		opts.Metrics = metrics
	}

	out := stream.NewWriter(cmd.OutOrStdout())
	opts.Events = out
	opts.PDUs = out

	gw, err := gateway.New(opts)
	if err != nil {
		return err
	}
	d, err := dispatcher.New(logging.NewDispatcherLogger(zlog))
	if err != nil {
		return err
	}
	gw.Register(d)

	mon := monitor.NewService(monitor.Dependencies{
		Stats:      gw,
		Journal:    backlog,
		StatusPath: filepath.Join(settings.LogsDir, program+".status.json"),
		Interval:   5 * time.Second,
		Logger:     log,
	})
	if err := mon.Start(); err != nil {
		return err
	}
	defer mon.Stop()

	log.Info("bridge started", "dialect", gw.Dialect().String(), "routes", len(d.Routes()))
	n, err := stream.Run(ctx, cmd.InOrStdin(), d, log)
	d.Close()
	log.Info("bridge stopped", "messages", n, "entities", gw.Entities(), "substitutions", gw.Substitutions())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&logToConsole, "console", false, "Log to stderr instead of the log file")
}
