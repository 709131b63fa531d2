package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"asterixdecode/internal/asterix"
	"asterixdecode/internal/asterix/cat021"
	"asterixdecode/internal/asterix/cat048"
	"asterixdecode/internal/geo"
	"asterixdecode/internal/logging"
)

// Application wires the decode pipeline, diagnostic logging, and CSV export
// together with signal-driven cancellation.
//
// Grounded on internal/app/application.go's Application (ctx/cancel fields,
// signal.Notify handling, initializeComponents/run/shutdown phases),
// adapted from an RTL-SDR capture loop to a one-shot file decode: there is
// no continuous capture goroutine here, so run() drives DecodeStream to
// completion instead of looping until a shutdown signal arrives.
type Application struct {
	config Config
	logger *logrus.Logger
	diag   *logging.DiagnosticLog
	ctx    context.Context
	cancel context.CancelFunc

	decoders map[int]asterix.CategoryDecoder

	recordsWritten int
	diagnosticsHit int
}

// NewApplication creates a new application instance.
func NewApplication(config Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		decoders: map[int]asterix.CategoryDecoder{
			21: cat021.New(),
			48: cat048.New(),
		},
	}
}

// Start runs the application to completion.
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("Starting asterixdecode")

	if err := app.initializeComponents(); err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}
	defer app.diag.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		app.logger.Info("Received shutdown signal")
		app.cancel()
	}()

	if err := app.run(); err != nil {
		app.logger.WithError(err).Error("Application error")
		return err
	}

	app.logger.WithFields(logrus.Fields{
		"records":     app.recordsWritten,
		"diagnostics": app.diagnosticsHit,
	}).Info("Decode complete")

	return nil
}

func (app *Application) initializeComponents() error {
	var err error
	app.diag, err = logging.NewDiagnosticLog(app.config.LogDir, app.config.LogRotateUTC, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize diagnostic log: %w", err)
	}
	go app.diag.Start(app.ctx)
	return nil
}

func (app *Application) run() error {
	data, err := app.readInput()
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	out := os.Stdout
	if app.config.OutputPath != "" {
		outFile, err := os.Create(app.config.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer outFile.Close()
		out = outFile
	}

	writer, err := NewCSVWriter(out)
	if err != nil {
		return err
	}
	return app.decodeAndWrite(data, writer)
}

func (app *Application) readInput() ([]byte, error) {
	if app.config.InputPath == "" {
		return nil, fmt.Errorf("input path is required")
	}
	return os.ReadFile(app.config.InputPath)
}

func (app *Application) decodeAndWrite(data []byte, writer *CSVWriter) error {
	opts := asterix.Options{
		Strict:               app.config.Strict,
		TransitionAltitudeFt: app.config.TransitionAltitudeFt,
	}
	if app.config.HasStation {
		opts.RadarStation = &geo.Station{
			LatDeg:  app.config.RadarLatDeg,
			LonDeg:  app.config.RadarLonDeg,
			HeightM: app.config.RadarHeightM,
		}
	}
	if app.config.HasQNH {
		qnh := app.config.QNHHPa
		opts.QNH = &qnh
	}

	results, err := asterix.DecodeStream(app.ctx, data, app.decoders, opts)
	if err != nil {
		return err
	}

	for res := range results {
		if res.Diagnostic != nil {
			app.diagnosticsHit++
			app.logger.WithFields(logrus.Fields{
				"kind":   res.Diagnostic.Kind,
				"offset": res.Diagnostic.Offset,
			}).Warn("decode diagnostic")
			if werr := app.diag.Write(*res.Diagnostic); werr != nil {
				app.logger.WithError(werr).Error("failed to persist diagnostic")
			}
			continue
		}
		if res.Record != nil {
			if err := writer.Write(*res.Record); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
			app.recordsWritten++
		}
	}

	return writer.Flush()
}
