package beeps

import (
	"sync"
	"time"
)

// TimestampLayout is RFC 2822 with a numeric zone. Timestamps are always UTC.
const TimestampLayout = time.RFC1123Z

// Beep is a single stored notice.
type Beep struct {
	Text      string
	Timestamp string
	CreatedAt time.Time
}

// Observer is notified after every append, under the log's lock, so totals
// arrive in order. Implementations must not block or call back into the Log.
type Observer interface {
	BeepAppended(total int)
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the time source used to stamp new beeps.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		if now != nil {
			l.now = now
		}
	}
}

// WithObserver registers o to be told the running total after each append.
func WithObserver(o Observer) Option {
	return func(l *Log) {
		l.observer = o
	}
}

// Log is the append-only, in-memory event log. All access goes through a
// single mutex; the backing slice is never handed out.
type Log struct {
	mu    sync.Mutex
	beeps []Beep

	now      func() time.Time
	observer Observer
}

// NewLog returns an empty log stamped by the wall clock unless WithClock says otherwise.
func NewLog(opts ...Option) *Log {
	l := &Log{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Append stamps text with the current time and adds it to the end of the log.
func (l *Log) Append(text string) {
	l.mu.Lock()
	now := l.now().UTC()
	l.beeps = append(l.beeps, Beep{
		Text:      text,
		Timestamp: now.Format(TimestampLayout),
		CreatedAt: now,
	})
	if l.observer != nil {
		l.observer.BeepAppended(len(l.beeps))
	}
	l.mu.Unlock()
}

// Snapshot returns an independent copy of the log in append order.
func (l *Log) Snapshot() []Beep {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Beep, len(l.beeps))
	copy(out, l.beeps)
	return out
}

// Len reports how many beeps have been appended.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.beeps)
}

// NewestFirst reverses a snapshot in place and returns it.
func NewestFirst(beeps []Beep) []Beep {
	for i, j := 0, len(beeps)-1; i < j; i, j = i+1, j-1 {
		beeps[i], beeps[j] = beeps[j], beeps[i]
	}
	return beeps
}
