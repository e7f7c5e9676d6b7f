// Package logger fans log calls out to one or more backends. Until Init is
// called every function is a no-op, so library packages can log without
// requiring the caller to configure anything.
package logger

import "sync"

// Instance is a logging backend.
type Instance interface {
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

// Logger dispatches each call to all of its backends.
type Logger struct {
	instances []Instance
}

var (
	mu        sync.RWMutex
	singleton *Logger
)

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return singleton
}

// Init installs the global backends, replacing any previous set.
func Init(instances ...Instance) {
	mu.Lock()
	defer mu.Unlock()
	singleton = &Logger{instances: instances}
}

// Reset removes all backends.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	singleton = nil
}

// Debug writes a message at DEBUG level.
func Debug(message string, keyvals ...any) {
	l := current()
	if l == nil {
		return
	}
	for _, in := range l.instances {
		in.Debug(message, keyvals...)
	}
}

// Info writes a message at INFO level.
func Info(message string, keyvals ...any) {
	l := current()
	if l == nil {
		return
	}
	for _, in := range l.instances {
		in.Info(message, keyvals...)
	}
}

// Warn writes a message at WARN level.
func Warn(message string, keyvals ...any) {
	l := current()
	if l == nil {
		return
	}
	for _, in := range l.instances {
		in.Warn(message, keyvals...)
	}
}

// Error writes a message at ERROR level.
func Error(message string, keyvals ...any) {
	l := current()
	if l == nil {
		return
	}
	for _, in := range l.instances {
		in.Error(message, keyvals...)
	}
}

// Fatal writes a message at FATAL level. Backends are expected to exit.
func Fatal(message string, keyvals ...any) {
	l := current()
	if l == nil {
		return
	}
	for _, in := range l.instances {
		in.Fatal(message, keyvals...)
	}
}
