package reporting_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/delaneyj/chartparty/reporting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCapturesCodes(t *testing.T) {
	rec := reporting.NewRecorder()
	restore := reporting.SetReporter(rec)
	defer restore()

	reporting.Error(reporting.ErrScaleNotSet, nil)
	reporting.Deprecated("SaveAsPNG()", "ExportPNG()")

	assert.Equal(t, []reporting.ErrorCode{reporting.ErrScaleNotSet}, rec.Errors())
	assert.Equal(t, []reporting.WarningCode{reporting.WarnDeprecated}, rec.Warnings())

	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Method SaveAsPNG() is deprecated. Use ExportPNG() instead.", entries[1].Message)
}

func TestDefaultReporterLogsThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	reporting.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer reporting.SetLogger(nil)

	reporting.Error(reporting.ErrContainerNotSet, errors.New("boom"))
	assert.Contains(t, buf.String(), "Error: 1")
	assert.Contains(t, buf.String(), "boom")
}

func TestStrictToggle(t *testing.T) {
	assert.False(t, reporting.Strict())
	reporting.SetStrict(true)
	assert.True(t, reporting.Strict())
	reporting.SetStrict(false)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, `Feature "3d" is not supported.`, reporting.Message(reporting.ErrFeatureNotSupported, "3d"))
	assert.Equal(t, "", reporting.Message(42))
}
