// Package history keeps the append-only comparison log for one session.
//
// The log is a tagged sequence of immutable comparison records plus a
// cursor. Records at index >= cursor are logically undone but retained so
// they can be replayed; recording a new comparison discards them.
package history

import "github.com/okian/duel/internal/domain/model"

// Default log configuration constants.
const (
	defaultLimit = 10_000
)

// Option applies a configuration option to the Log.
type Option func(*Log)

// WithLimit bounds the number of retained records. When the log is full,
// recording evicts the oldest record. Non-positive values mean unbounded.
func WithLimit(n int) Option {
	return func(l *Log) {
		l.limit = n
	}
}

// Log is a cursor-addressable sequence of comparison records. It is not
// safe for concurrent use; the owning session serializes access.
type Log struct {
	records []model.Comparison
	cursor  int
	limit   int
}

// New creates an empty log.
func New(opts ...Option) *Log {
	l := &Log{limit: defaultLimit}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record truncates any undone records at or after the cursor, appends c,
// and advances the cursor past it. A new choice invalidates a previously
// undone "future", so Record is valid in any state.
func (l *Log) Record(c model.Comparison) {
	l.records = append(l.records[:l.cursor], c)
	if l.limit > 0 && len(l.records) > l.limit {
		l.records = l.records[1:]
	}
	l.cursor = len(l.records)
}

// StepBack moves the cursor one record backward and returns the record now
// logically undone. The caller is responsible for reverting it on the
// rating state. Fails with ErrAtStart at the beginning of the log.
func (l *Log) StepBack() (model.Comparison, error) {
	if l.cursor == 0 {
		return model.Comparison{}, ErrAtStart
	}
	l.cursor--
	return l.records[l.cursor], nil
}

// StepForward returns the next undone record and moves the cursor past it.
// The caller is responsible for reapplying it on the rating state. Fails
// with ErrAtEnd when nothing has been undone.
func (l *Log) StepForward() (model.Comparison, error) {
	if l.cursor == len(l.records) {
		return model.Comparison{}, ErrAtEnd
	}
	c := l.records[l.cursor]
	l.cursor++
	return c, nil
}

// Tail returns the most recent record still applied, i.e. the one just
// before the cursor. The second return is false for an empty prefix.
func (l *Log) Tail() (model.Comparison, bool) {
	if l.cursor == 0 {
		return model.Comparison{}, false
	}
	return l.records[l.cursor-1], true
}

// Cursor returns the current cursor position.
func (l *Log) Cursor() int {
	return l.cursor
}

// Len returns the number of retained records, applied or not.
func (l *Log) Len() int {
	return len(l.records)
}

// Redoable returns how many undone records can still be replayed.
func (l *Log) Redoable() int {
	return len(l.records) - l.cursor
}
