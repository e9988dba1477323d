// Package tools provides the tool registry and built-in tools.
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vinayprograms/edinburgh/internal/config"
	"github.com/vinayprograms/edinburgh/internal/logging"
)

// Tool represents an executable tool.
type Tool interface {
	// Name returns the tool name.
	Name() string
	// Description returns a description for the LLM.
	Description() string
	// Parameters returns the JSON schema for parameters.
	Parameters() map[string]interface{}
	// Execute runs the tool with the given arguments.
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// Definition is the LLM-facing tool definition.
type Definition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

var (
	// ErrToolNotFound is returned when no tool is registered under a name.
	ErrToolNotFound = errors.New("tool not found")
	// ErrToolDisabled is returned when the allow-list excludes a tool.
	ErrToolDisabled = errors.New("tool disabled")
)

// ValidationError reports bad arguments at the tool boundary.
type ValidationError struct {
	Tool   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid argument %q: %s", e.Tool, e.Field, e.Reason)
}

const tracerName = "github.com/vinayprograms/edinburgh/internal/tools"

// Registry holds all registered tools.
type Registry struct {
	mu      sync.RWMutex
	tools   map[string]Tool
	enabled func(string) bool
	logger  *logging.Logger
	tracer  trace.Tracer
}

// NewRegistry creates a new registry with built-in tools configured from cfg.
func NewRegistry(cfg *config.Config) *Registry {
	if cfg == nil {
		cfg = config.New()
	}
	r := &Registry{
		tools:   make(map[string]Tool),
		enabled: cfg.ToolEnabled,
		logger:  logging.New().WithComponent("tools"),
		tracer:  otel.Tracer(tracerName),
	}
	r.registerBuiltins(cfg)
	return r
}

// registerBuiltins registers all built-in tools.
func (r *Registry) registerBuiltins(cfg *config.Config) {
	r.Register(&classifyEntropyTool{})
	r.Register(&calculatorTool{})
	r.Register(newWebSearchTool(cfg.Search, r.logger))
	r.Register(&mockAPITool{})
}

// SetLogger replaces the registry logger.
func (r *Registry) SetLogger(l *logging.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = l
	if ws, ok := r.tools[webSearchName].(*webSearchTool); ok {
		ws.logger = l
	}
}

// SetTracerProvider routes tool spans to tp instead of the global provider.
func (r *Registry) SetTracerProvider(tp trace.TracerProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracer = tp.Tracer(tracerName)
}

// Register adds a tool to the registry, replacing any tool with the same name.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name()] = t
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// Has reports whether a tool is registered under name.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// IsEnabled reports whether name is registered and allowed.
func (r *Registry) IsEnabled(name string) bool {
	return r.Has(name) && r.enabled(name)
}

// Names returns the names of enabled tools, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		if r.enabled(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Definitions returns LLM-facing definitions for enabled tools, sorted by name.
func (r *Registry) Definitions() []Definition {
	names := r.Names()
	defs := make([]Definition, 0, len(names))
	for _, name := range names {
		t := r.Get(name)
		defs = append(defs, Definition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

// Execute runs the named tool. Every call gets a correlation ID that ties the
// log entries and the trace span together.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	tool := r.Get(name)
	if tool == nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	if !r.enabled(name) {
		return nil, fmt.Errorf("%w: %s", ErrToolDisabled, name)
	}
	if args == nil {
		args = map[string]interface{}{}
	}

	r.mu.RLock()
	logger, tracer := r.logger, r.tracer
	r.mu.RUnlock()

	callID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "tool."+name, trace.WithAttributes(
		attribute.String("tool.name", name),
		attribute.String("tool.call_id", callID),
	))
	defer span.End()

	logger.ToolCall(name, callID)
	start := time.Now()
	result, err := tool.Execute(ctx, args)
	logger.ToolResult(name, callID, time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return result, err
}
