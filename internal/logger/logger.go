package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the log file path, relative to the working directory (project root when run via go run ./cmd/arplace).
const DefaultPath = "logs/arplace.txt"

// NotificationTTL is how long a notification stays on screen.
const NotificationTTL = 2 * time.Second

// maxLines caps the in-memory history; the file keeps everything.
const maxLines = 500

// Notification is a short-lived message shown over the scene (e.g. an asset load failure).
type Notification struct {
	Text    string
	Expires time.Time
}

// Logger stores lines of text (status changes, placements, errors) in memory and appends them to a file on disk.
// Notifications are also logged, and additionally kept until they expire so the preview can draw them.
// Safe for concurrent use: asset loads report from their own goroutines.
type Logger struct {
	path string
	now  func() time.Time

	mu            sync.Mutex
	lines         []string
	total         int
	notifications []Notification
}

// New returns a Logger writing to path and ensures its directory exists. An empty path keeps lines in memory only.
func New(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, now: time.Now, lines: make([]string, 0)}
}

// Log appends a line to the logger and appends it to the log file on disk. Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	stamped := "[" + l.now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	l.total++
	if len(l.lines) > maxLines {
		l.lines = l.lines[len(l.lines)-maxLines:]
	}
	l.mu.Unlock()

	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats and logs a line.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Notify logs text and shows it as a notification for NotificationTTL.
func (l *Logger) Notify(text string) {
	l.Log(text)
	l.mu.Lock()
	l.notifications = append(l.notifications, Notification{Text: text, Expires: l.now().Add(NotificationTTL)})
	l.mu.Unlock()
}

// Notifications returns the notifications that have not expired yet, oldest first, and drops the rest.
func (l *Logger) Notifications() []Notification {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	live := l.notifications[:0]
	for _, n := range l.notifications {
		if now.Before(n.Expires) {
			live = append(live, n)
		}
	}
	l.notifications = live
	out := make([]Notification, len(live))
	copy(out, live)
	return out
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Since returns the lines logged after the first seq lines, and the sequence number to pass next
// time. Lines already dropped from memory are skipped.
func (l *Logger) Since(seq int) ([]string, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	start := len(l.lines) - (l.total - seq)
	if start < 0 {
		start = 0
	}
	if start > len(l.lines) {
		start = len(l.lines)
	}
	out := make([]string, len(l.lines)-start)
	copy(out, l.lines[start:])
	return out, l.total
}
