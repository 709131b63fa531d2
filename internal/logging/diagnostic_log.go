// Package logging persists decode Diagnostic events to a daily-rotating,
// gzip-on-rotate JSONL file.
//
// Grounded on logrotator.go's LogRotator: same daily-boundary rotation
// scheduler, same gzip-on-close compression of the outgoing file, same
// mutex-guarded current-file handle. Adapted to append one JSON object per
// Diagnostic instead of one BaseStation text line per ADS-B message, since
// the decoder's output stream is Diagnostics, not SBS records.
package logging

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"asterixdecode/internal/asterix"
)

// DiagnosticLog appends decode Diagnostics to a daily log file, rotating at
// date boundaries (UTC dates when useUTC is set, local dates otherwise) and
// gzip-compressing the outgoing file.
type DiagnosticLog struct {
	logDir      string
	useUTC      bool
	logger      *logrus.Logger
	currentFile *os.File
	currentDate string
	mutex       sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
}

// diagnosticEvent is the JSON line shape written for each Diagnostic.
type diagnosticEvent struct {
	Time     time.Time `json:"time"`
	Kind     string    `json:"kind"`
	Offset   int       `json:"offset"`
	Category *int      `json:"category,omitempty"`
	FRN      *int      `json:"frn,omitempty"`
	Detail   string    `json:"detail"`
}

// NewDiagnosticLog creates a DiagnosticLog under logDir, opening today's
// file immediately.
func NewDiagnosticLog(logDir string, useUTC bool, logger *logrus.Logger) (*DiagnosticLog, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	l := &DiagnosticLog{
		logDir: logDir,
		useUTC: useUTC,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	if err := l.rotate(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize diagnostic log: %w", err)
	}

	return l, nil
}

// Start runs the daily rotation scheduler until ctx or the log's own
// context is cancelled.
func (l *DiagnosticLog) Start(ctx context.Context) {
	l.logger.Info("Starting diagnostic log rotator")

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Diagnostic log rotator stopping")
			return
		case <-l.ctx.Done():
			return
		case <-ticker.C:
			l.checkRotation()
		}
	}
}

func (l *DiagnosticLog) checkRotation() {
	currentDate := l.today()

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.currentDate != currentDate {
		l.logger.WithFields(logrus.Fields{"old_date": l.currentDate, "new_date": currentDate}).Info("Rotating diagnostic log")
		if err := l.rotate(); err != nil {
			l.logger.WithError(err).Error("Failed to rotate diagnostic log")
		}
	}
}

func (l *DiagnosticLog) today() string {
	now := time.Now()
	if l.useUTC {
		now = now.UTC()
	}
	return now.Format("2006-01-02")
}

func (l *DiagnosticLog) rotate() error {
	newDate := l.today()

	if l.currentFile != nil {
		oldFile := l.currentFile
		oldDate := l.currentDate
		if err := oldFile.Close(); err != nil {
			l.logger.WithError(err).Error("Failed to close old diagnostic log file")
		}
		go l.compress(oldDate)
	}

	name := fmt.Sprintf("diagnostics_%s.jsonl", newDate)
	path := filepath.Join(l.logDir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create diagnostic log file %s: %w", path, err)
	}

	l.currentFile = file
	l.currentDate = newDate

	l.logger.WithField("file", path).Info("Opened new diagnostic log file")
	return nil
}

func (l *DiagnosticLog) compress(date string) {
	logFile := filepath.Join(l.logDir, fmt.Sprintf("diagnostics_%s.jsonl", date))
	gzipFile := logFile + ".gz"

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		return
	}

	src, err := os.Open(logFile)
	if err != nil {
		l.logger.WithError(err).WithField("file", logFile).Error("Failed to open diagnostic log for compression")
		return
	}
	defer src.Close()

	dst, err := os.Create(gzipFile)
	if err != nil {
		l.logger.WithError(err).WithField("file", gzipFile).Error("Failed to create compressed diagnostic log")
		return
	}
	defer dst.Close()

	gzWriter := gzip.NewWriter(dst)
	gzWriter.Name = filepath.Base(logFile)
	gzWriter.ModTime = time.Now()

	if _, err := io.Copy(gzWriter, src); err != nil {
		l.logger.WithError(err).Error("Failed to compress diagnostic log")
		return
	}
	if err := gzWriter.Close(); err != nil {
		l.logger.WithError(err).Error("Failed to close gzip writer")
		return
	}
	if err := os.Remove(logFile); err != nil {
		l.logger.WithError(err).WithField("file", logFile).Error("Failed to remove original diagnostic log")
		return
	}

	l.logger.WithField("file", gzipFile).Info("Diagnostic log compressed")
}

// Write appends one Diagnostic as a JSON line to the current log file.
func (l *DiagnosticLog) Write(d asterix.Diagnostic) error {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if l.currentFile == nil {
		return fmt.Errorf("no current diagnostic log file")
	}

	now := time.Now()
	if l.useUTC {
		now = now.UTC()
	}

	line, err := json.Marshal(diagnosticEvent{
		Time:     now,
		Kind:     string(d.Kind),
		Offset:   d.Offset,
		Category: d.Category,
		FRN:      d.FRN,
		Detail:   d.Detail,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal diagnostic: %w", err)
	}

	_, err = l.currentFile.Write(append(line, '\n'))
	return err
}

// Close stops rotation and closes the current file.
func (l *DiagnosticLog) Close() error {
	l.logger.Info("Closing diagnostic log")
	l.cancel()

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.currentFile != nil {
		if err := l.currentFile.Close(); err != nil {
			return err
		}
		l.currentFile = nil
	}
	return nil
}

// CurrentLogFile returns the currently active log file path.
func (l *DiagnosticLog) CurrentLogFile() string {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if l.currentDate == "" {
		return ""
	}
	return filepath.Join(l.logDir, fmt.Sprintf("diagnostics_%s.jsonl", l.currentDate))
}
