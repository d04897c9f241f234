// Package logging defines the logger contract shared by the server and the
// publisher CLI, plus helpers for module-scoped loggers.
package logging

import "context"

// Logger is the minimal structured logging contract consumed by services.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
}

// FieldsLogger is an optional extension for loggers that can attach
// structured fields.
type FieldsLogger interface {
	Logger
	WithFields(fields map[string]any) Logger
}

// Provider hands out named child loggers.
type Provider interface {
	GetLogger(name string) Logger
}

const (
	rootModule      = "press"
	documentsModule = "press.documents"
	foldersModule   = "press.folders"
	notesModule     = "press.notes"
	timelineModule  = "press.timeline"
	httpModule      = "press.http"
	authModule      = "press.auth"
	publishModule   = "press.publish"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied.
func ModuleLogger(provider Provider, module string) Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// DocumentsLogger returns the logger namespace reserved for the document service.
func DocumentsLogger(provider Provider) Logger { return ModuleLogger(provider, documentsModule) }

// FoldersLogger returns the logger namespace reserved for the folder service.
func FoldersLogger(provider Provider) Logger { return ModuleLogger(provider, foldersModule) }

// NotesLogger returns the logger namespace reserved for quick notes.
func NotesLogger(provider Provider) Logger { return ModuleLogger(provider, notesModule) }

// TimelineLogger returns the logger namespace reserved for timeline queries.
func TimelineLogger(provider Provider) Logger { return ModuleLogger(provider, timelineModule) }

// HTTPLogger returns the logger namespace reserved for the HTTP API.
func HTTPLogger(provider Provider) Logger { return ModuleLogger(provider, httpModule) }

// AuthLogger returns the logger namespace reserved for the auth gate.
func AuthLogger(provider Provider) Logger { return ModuleLogger(provider, authModule) }

// PublishLogger returns the logger namespace reserved for publish runs.
func PublishLogger(provider Provider) Logger { return ModuleLogger(provider, publishModule) }

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension.
func WithFields(logger Logger, fields map[string]any) Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		for key, value := range fields {
			copied[key] = value
		}
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ FieldsLogger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) Logger {
	return n
}
