package testutil

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTB captures Log calls and forwards everything else.
type recordingTB struct {
	testing.TB
	lines []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Log(args ...any) {
	r.lines = append(r.lines, fmt.Sprint(args...))
}

func TestNewTestLogger(t *testing.T) {
	rec := &recordingTB{TB: t}
	logger := NewTestLogger(rec)

	logger.Debug("linted file", slog.String("path", "src/App.tsx"), slog.Int("passes", 2))
	logger.WithGroup("lsp").Info("published", slog.Int("count", 1))

	require.Len(t, rec.lines, 2)
	assert.Equal(t, `level=DEBUG msg="linted file" path=src/App.tsx passes=2`, rec.lines[0])
	assert.Equal(t, `level=INFO msg=published lsp.count=1`, rec.lines[1])
}
