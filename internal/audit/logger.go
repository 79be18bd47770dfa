package audit

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Audit statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Entry is one attempt to mutate the beep log.
type Entry struct {
	Timestamp time.Time
	Action    string
	Status    string
	IPAddress string
	Details   map[string]string
}

// Logger writes audit entries as structured log lines tagged audit=true so
// they can be split from request logs downstream.
type Logger struct {
	output zerolog.Logger
	now    func() time.Time
}

// NewLogger creates an audit logger on top of base.
func NewLogger(base zerolog.Logger) *Logger {
	return &Logger{
		output: base.With().Bool("audit", true).Logger(),
		now:    time.Now,
	}
}

// Log writes an audit entry. A nil Logger discards it.
func (l *Logger) Log(entry Entry) {
	if l == nil {
		return
	}
	l.write(l.output, entry)
}

// LogFromRequest records action with the caller's address. The entry goes
// through the request-scoped logger when there is one, so it carries the
// request ID.
func (l *Logger) LogFromRequest(r *http.Request, action, status string, details map[string]string) {
	if l == nil {
		return
	}
	out := l.output
	if scoped := zerolog.Ctx(r.Context()); scoped.GetLevel() != zerolog.Disabled {
		out = scoped.With().Bool("audit", true).Logger()
	}
	l.write(out, Entry{
		Action:    action,
		Status:    status,
		IPAddress: clientIP(r),
		Details:   details,
	})
}

func (l *Logger) write(out zerolog.Logger, entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now().UTC()
	}

	event := out.Info()
	if entry.Status == StatusFailure {
		event = out.Warn()
	}
	event = event.
		Time("at", entry.Timestamp).
		Str("action", entry.Action).
		Str("status", entry.Status).
		Str("ip_address", entry.IPAddress)
	for k, v := range entry.Details {
		event = event.Str(k, v)
	}
	event.Msg("audit")
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection's remote host.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
