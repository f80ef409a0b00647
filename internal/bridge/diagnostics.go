package bridge

import (
	"fmt"
	"sync"
	"time"

	"ratectl/pkg/logging"
)

// DiagnosticEntry is one line of the bridge's troubleshooting log.
type DiagnosticEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// String renders the entry the way the diagnostic console shows it.
func (e DiagnosticEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.Time.Format("15:04:05"), e.Message)
}

// DiagnosticLog is an append-only record of invocations and outcomes.
type DiagnosticLog struct {
	mu      sync.RWMutex
	entries []DiagnosticEntry
}

// NewDiagnosticLog creates an empty diagnostic log.
func NewDiagnosticLog() *DiagnosticLog {
	return &DiagnosticLog{}
}

// Addf appends a formatted entry and mirrors it to the debug log.
func (l *DiagnosticLog) Addf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logging.Debug("Bridge", "%s", msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, DiagnosticEntry{Time: time.Now(), Message: msg})
}

// Entries returns a copy of all entries.
func (l *DiagnosticLog) Entries() []DiagnosticEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]DiagnosticEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Tail returns a copy of the last n entries. n <= 0 returns everything.
func (l *DiagnosticLog) Tail(n int) []DiagnosticEntry {
	entries := l.Entries()
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}
