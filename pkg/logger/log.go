package logger

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARNING
	ERROR
	FATAL
)

func (l Level) String() string {
	return []string{"DBG", "INF", "WRN", "ERR", "FTL"}[l]
}

func (l Level) color() *color.Color {
	return []*color.Color{
		color.New(color.FgWhite, color.Italic),
		color.New(color.FgWhite),
		color.New(color.FgYellow),
		color.New(color.FgHiRed),
		color.New(color.FgHiRed, color.Bold),
	}[l]
}

var (
	mu       sync.Mutex
	minLevel = INFO
)

// SetLevel adjusts the minimum level emitted by all loggers.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// Logger is a named, leveled logger writing colored lines to stdout.
type Logger struct {
	name string
}

// Get returns a logger for the given component name.
func Get(name string) *Logger {
	return &Logger{name: name}
}

func (l *Logger) emit(level Level, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if level < minLevel {
		return
	}
	msg := fmt.Sprintf(format, args...)
	level.color().Fprintf(os.Stdout, "[%s] (%s) %s\n", l.name, level, msg)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.emit(DEBUG, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.emit(INFO, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.emit(WARNING, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.emit(ERROR, format, args...) }

func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.emit(FATAL, format, args...)
	os.Exit(1)
}
