package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	rootModule      = "blog"
	postsModule     = "blog.posts"
	indexModule     = "blog.index"
	markdownModule  = "blog.markdown"
	generatorModule = "blog.generator"
)

const (
	fieldDocumentPath   = "document_path"
	fieldDocumentSlug   = "slug"
	fieldDocumentAction = "import_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PostsLogger returns the logger namespace reserved for the post store.
func PostsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, postsModule)
}

// IndexLogger returns the logger namespace reserved for index services.
func IndexLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, indexModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown workflows.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// GeneratorLogger returns the logger namespace reserved for site builds.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// WithDocumentContext enriches the provided logger with common document fields
// such as file path, slug, and import action. Empty values are ignored.
func WithDocumentContext(logger interfaces.Logger, path, slug, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldDocumentPath] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldDocumentSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldDocumentAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
