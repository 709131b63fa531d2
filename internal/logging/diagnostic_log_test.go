package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asterixdecode/internal/asterix"
)

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestNewDiagnosticLog_CreatesDailyFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewDiagnosticLog(dir, false, newTestLogger())
	require.NoError(t, err)
	defer l.Close()

	assert.FileExists(t, l.CurrentLogFile())
	assert.Contains(t, filepath.Base(l.CurrentLogFile()), "diagnostics_")
}

func TestDiagnosticLog_WriteAppendsJSONLine(t *testing.T) {
	dir := t.TempDir()
	l, err := NewDiagnosticLog(dir, true, newTestLogger())
	require.NoError(t, err)
	defer l.Close()

	cat := 48
	err = l.Write(asterix.Diagnostic{Kind: asterix.ErrUnknownFRN, Offset: 10, Category: &cat, Detail: "FRN 22 has no registered codec"})
	require.NoError(t, err)

	f, err := os.Open(l.CurrentLogFile())
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())

	var ev diagnosticEvent
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
	assert.Equal(t, "UNKNOWN_FRN", ev.Kind)
	assert.Equal(t, 10, ev.Offset)
	require.NotNil(t, ev.Category)
	assert.Equal(t, 48, *ev.Category)
	assert.False(t, scanner.Scan())
}

func TestDiagnosticLog_WriteAfterCloseFails(t *testing.T) {
	dir := t.TempDir()
	l, err := NewDiagnosticLog(dir, false, newTestLogger())
	require.NoError(t, err)
	require.NoError(t, l.Close())

	err = l.Write(asterix.Diagnostic{Kind: asterix.ErrTruncated, Detail: "x"})
	assert.Error(t, err)
}
