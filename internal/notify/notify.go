// Package notify carries user-facing toast notifications.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Kind classifies a toast.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Toast is a one-time notification shown to the operator.
type Toast struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Success builds a success toast.
func Success(message string) Toast { return Toast{Kind: KindSuccess, Message: message} }

// Failure builds an error toast.
func Failure(message string) Toast { return Toast{Kind: KindError, Message: message} }

// Info builds an informational toast.
func Info(message string) Toast { return Toast{Kind: KindInfo, Message: message} }

// Notifier receives toasts.
type Notifier interface {
	Notify(Toast)
}

// Func adapts a function to Notifier.
type Func func(Toast)

func (f Func) Notify(t Toast) {
	if f != nil {
		f(t)
	}
}

// Discard drops every toast.
var Discard Notifier = Func(nil)

// OrDiscard returns n, or Discard when n is nil.
func OrDiscard(n Notifier) Notifier {
	if n == nil {
		return Discard
	}
	return n
}

// Log writes toasts to a logger.
func Log(logger *slog.Logger) Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return Func(func(t Toast) {
		level := slog.LevelInfo
		if t.Kind == KindError {
			level = slog.LevelWarn
		}
		logger.Log(context.Background(), level, "toast", slog.String("kind", string(t.Kind)), slog.String("message", t.Message))
	})
}

type multi []Notifier

func (m multi) Notify(t Toast) {
	for _, n := range m {
		if n != nil {
			n.Notify(t)
		}
	}
}

// Multi fans a toast out to every notifier.
func Multi(notifiers ...Notifier) Notifier {
	return multi(notifiers)
}

// Recorder keeps toasts until they are drained.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

// NewRecorder constructs an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(t Toast) {
	r.mu.Lock()
	r.toasts = append(r.toasts, t)
	r.mu.Unlock()
}

// Drain returns pending toasts and forgets them.
func (r *Recorder) Drain() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.toasts
	r.toasts = nil
	return out
}

// Len reports how many toasts are pending.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.toasts)
}
