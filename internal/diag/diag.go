// Package diag collects the diagnostics produced while attaching the core
// to an editor root and while normalizing its document. The core itself
// never fails fatally (see design §7); diagnostics are an observability
// channel, not a control flow one.
package diag

import "fmt"

type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Code identifies the kind of condition a diagnostic reports. Codes are
// grouped by severity band, mirroring the numbering scheme used for the
// core's own diagnostic catalogs.
type Code int

const (
	InfoTextNodesMerged        Code = 3000
	InfoWhitespaceCollapsed    Code = 3001
	WarnZeroHeightRect         Code = 2000
	WarnDetachedNode           Code = 2001
	WarnAtomicOffsetClamped    Code = 2002
	WarnCaretFromPointEmpty    Code = 2003
	ErrInvalidOffsetOnAttach   Code = 1000
	ErrNonDescendantPosition   Code = 1001
)

// Message is one recorded diagnostic. Handle carries an opaque reference
// (typically the leaf or node involved) for callers that want to
// correlate a diagnostic back to the tree without the core exposing its
// internal node type in the message itself.
type Message struct {
	Severity Severity
	Code     Code
	Text     string
	Handle   interface{}
}

func (m Message) String() string {
	return fmt.Sprintf("%s [%d]: %s", m.Severity, m.Code, m.Text)
}

// Handler accumulates diagnostics for the lifetime of one attached editor
// root. It never panics and never aborts the caller; it is purely a
// collection point that a host can surface in its own UI or logs.
type Handler struct {
	messages []Message
}

func NewHandler() *Handler {
	return &Handler{messages: make([]Message, 0, 8)}
}

func (h *Handler) append(sev Severity, code Code, handle interface{}, format string, args ...interface{}) {
	h.messages = append(h.messages, Message{
		Severity: sev,
		Code:     code,
		Text:     fmt.Sprintf(format, args...),
		Handle:   handle,
	})
}

func (h *Handler) Info(code Code, handle interface{}, format string, args ...interface{}) {
	h.append(Info, code, handle, format, args...)
}

func (h *Handler) Warn(code Code, handle interface{}, format string, args ...interface{}) {
	h.append(Warning, code, handle, format, args...)
}

func (h *Handler) Error(code Code, handle interface{}, format string, args ...interface{}) {
	h.append(Error, code, handle, format, args...)
}

func (h *Handler) HasErrors() bool {
	for _, m := range h.messages {
		if m.Severity == Error {
			return true
		}
	}
	return false
}

func (h *Handler) Messages() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

func (h *Handler) filter(sev Severity) []Message {
	var out []Message
	for _, m := range h.messages {
		if m.Severity == sev {
			out = append(out, m)
		}
	}
	return out
}

func (h *Handler) Errors() []Message   { return h.filter(Error) }
func (h *Handler) Warnings() []Message { return h.filter(Warning) }
func (h *Handler) Infos() []Message    { return h.filter(Info) }

func (h *Handler) Reset() {
	h.messages = h.messages[:0]
}
