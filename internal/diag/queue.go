// Package diag collects diagnostics while the terminal is in raw mode, where
// writing to stderr would corrupt the screen, and replays them once the
// terminal has been restored.
package diag

import (
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Capacity is the maximum number of queued entries.
const Capacity = 64

const overflowWarning = "WARNING: diagnostics queue is full, dropping messages"

// Queue is a logrus logger whose entries are held in memory until Flush.
type Queue struct {
	*logrus.Logger

	mu       sync.Mutex
	entries  [][]byte
	overflow io.Writer
	dropped  int
}

// New returns a queue at warn level. When the queue fills up a single warning
// is written to overflow and further entries are dropped.
func New(overflow io.Writer) *Queue {
	q := &Queue{overflow: overflow}
	logger := logrus.New()
	logger.SetOutput(queueWriter{q})
	logger.SetLevel(logrus.WarnLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableQuote:     true,
	})
	q.Logger = logger
	return q
}

// SetLevelName sets the level from a name such as "debug" or "warn".
func (q *Queue) SetLevelName(name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	q.SetLevel(level)
	return nil
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Dropped returns how many entries were discarded because the queue was full.
func (q *Queue) Dropped() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Flush writes every queued entry to w in order and empties the queue.
func (q *Queue) Flush(w io.Writer) error {
	q.mu.Lock()
	entries := q.entries
	dropped := q.dropped
	q.entries = nil
	q.dropped = 0
	q.mu.Unlock()

	for _, entry := range entries {
		if _, err := w.Write(entry); err != nil {
			return err
		}
	}
	if dropped > 0 {
		if _, err := fmt.Fprintf(w, "(%d diagnostics dropped)\n", dropped); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queue) push(p []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) >= Capacity {
		if q.dropped == 0 && q.overflow != nil {
			_, _ = fmt.Fprintln(q.overflow, overflowWarning)
		}
		q.dropped++
		return
	}
	q.entries = append(q.entries, append([]byte(nil), p...))
}

type queueWriter struct {
	q *Queue
}

func (w queueWriter) Write(p []byte) (int, error) {
	w.q.push(p)
	return len(p), nil
}
