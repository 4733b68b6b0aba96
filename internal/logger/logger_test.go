package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesMemoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "arplace.txt")
	l := New(path)
	l.Log("placed Chair")
	l.Logf("removed %s", "Couch")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "] placed Chair"))
	assert.True(t, strings.HasPrefix(lines[1], "["))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
	assert.Contains(t, string(data), "removed Couch")
}

func TestMemoryOnlyLogger(t *testing.T) {
	l := New("")
	l.Log("hello")
	assert.Len(t, l.Lines(), 1)
}

func TestLinesAreCapped(t *testing.T) {
	l := New("")
	for i := 0; i < maxLines+10; i++ {
		l.Logf("line %d", i)
	}
	lines := l.Lines()
	require.Len(t, lines, maxLines)
	assert.True(t, strings.HasSuffix(lines[0], "line 10"))
}

func TestNotificationsExpire(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := New("")
	l.now = func() time.Time { return now }

	l.Notify("Error loading furniture")
	require.Len(t, l.Notifications(), 1)
	assert.Len(t, l.Lines(), 1)

	now = now.Add(NotificationTTL + time.Millisecond)
	assert.Empty(t, l.Notifications())
}

func TestSince(t *testing.T) {
	l := New("")
	l.Log("a")
	lines, seq := l.Since(0)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, seq)

	l.Log("b")
	l.Log("c")
	lines, seq = l.Since(seq)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], "] c"))
	assert.Equal(t, 3, seq)

	lines, _ = l.Since(seq)
	assert.Empty(t, lines)

	for i := 0; i < maxLines+5; i++ {
		l.Log("x")
	}
	lines, seq = l.Since(seq)
	assert.Len(t, lines, maxLines)
	assert.Equal(t, maxLines+8, seq)
}
