// Package ambrelog provides structured logging for ambre. It wraps Go's
// log/slog, but instead of tagging child loggers with an arbitrary caller
// -supplied string (as a generic "module" label would), it binds each
// logger to one of ambre's own Components and offers logging methods
// shaped around the operations a Database actually performs: inserting or
// removing a transaction, deriving rules, predicting, and snapshotting.
package ambrelog

import (
	"log/slog"
	"os"
)

// Component identifies which part of ambre a Logger is attached to. This
// replaces a free-form "module" string with a closed set, so every log line
// ambre itself emits carries one of a known, greppable set of origins.
type Component string

const (
	ComponentDatabase    Component = "database"
	ComponentTrie        Component = "trie"
	ComponentRules       Component = "rules"
	ComponentPredict     Component = "predict"
	ComponentPersistence Component = "persistence"
	ComponentCLI         Component = "cmd"
)

// Logger wraps slog.Logger with the Component it was obtained for.
type Logger struct {
	inner     *slog.Logger
	component Component
}

var root *Logger

func init() {
	root = NewRoot(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// NewRoot creates an un-componentized root Logger backed by h. Call
// For(component) on the result to obtain a logger for a specific part of
// ambre.
func NewRoot(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// SetRoot replaces the package-level root logger that Default() returns.
// Loggers already obtained from the previous root are not affected.
func SetRoot(l *Logger) {
	if l != nil {
		root = l
	}
}

// Default returns the current package-level root logger.
func Default() *Logger {
	return root
}

// For returns a child logger scoped to component, carrying it as a
// structured field on every line it emits.
func (l *Logger) For(component Component) *Logger {
	return &Logger{inner: l.inner.With("component", string(component)), component: component}
}

// With returns a child logger with additional key-value context, preserving
// the receiver's Component.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...), component: l.component}
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// TransactionInserted logs a successful InsertTransaction, recording the
// transaction's size and the trie's size afterward.
func (l *Logger) TransactionInserted(itemCount, trieNodes int) {
	l.inner.Debug("transaction inserted", "items", itemCount, "trie_nodes", trieNodes)
}

// TransactionRemoved logs a successful RemoveTransaction.
func (l *Logger) TransactionRemoved(itemCount, trieNodes int) {
	l.inner.Debug("transaction removed", "items", itemCount, "trie_nodes", trieNodes)
}

// OperationFailed logs a failed trie operation (insert, remove, derive,
// predict) along with the error that caused it.
func (l *Logger) OperationFailed(operation string, err error) {
	l.inner.Warn("operation failed", "operation", operation, "error", err)
}

// RulesDerived logs the size of a completed DeriveRules call.
func (l *Logger) RulesDerived(ruleCount int) {
	l.inner.Info("rules derived", "rule_count", ruleCount)
}

// SnapshotWritten logs a completed SaveToFile call.
func (l *Logger) SnapshotWritten(path string, bytes int) {
	l.inner.Info("snapshot written", "path", path, "bytes", bytes)
}
