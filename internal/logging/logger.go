// Package logging provides leveled, optionally colored console output.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/Norgate-AV/andromeda/internal/config"
	"github.com/Norgate-AV/andromeda/internal/display"
)

// Logger writes "[LEVEL] message" lines. ERROR goes to the error writer,
// everything else to the output writer. All methods are goroutine-safe.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	verbose bool

	debug   *color.Color
	info    *color.Color
	success *color.Color
	warn    *color.Color
	err     *color.Color

	theme *display.Theme
}

// NewLogger creates a console logger with cfg's verbosity and color mode
func NewLogger(cfg *config.Config, out, errOut io.Writer) *Logger {
	return New(out, errOut, cfg.Verbose, cfg.Color)
}

// New creates a logger writing to out and errOut
func New(out, errOut io.Writer, verbose bool, mode config.ColorMode) *Logger {
	l := &Logger{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		debug:   color.New(color.FgHiGreen),
		info:    color.New(color.FgHiBlue),
		success: color.New(color.FgHiGreen, color.Bold),
		warn:    color.New(color.FgHiYellow),
		err:     color.New(color.FgRed),
	}

	enable := colorEnabled(mode)
	for _, c := range []*color.Color{l.debug, l.info, l.success, l.warn, l.err} {
		if enable {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	l.theme = display.NewTheme(display.NewRenderer(out, enable, mode == config.ColorAlways))

	return l
}

// colorEnabled resolves the mode; auto follows fatih/color's terminal and
// NO_COLOR detection
func colorEnabled(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return !color.NoColor
	}
}

// Verbose reports whether debug output is enabled
func (l *Logger) Verbose() bool {
	return l.verbose
}

func (l *Logger) line(w io.Writer, c *color.Color, level, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = io.WriteString(w, c.Sprint("["+level+"]")+" "+text+"\n")
}

// Debug logs at DEBUG level, only when verbose
func (l *Logger) Debug(format string, args ...any) {
	if !l.verbose {
		return
	}

	l.line(l.out, l.debug, "DEBUG", fmt.Sprintf(format, args...))
}

// Info logs at INFO level
func (l *Logger) Info(format string, args ...any) {
	l.line(l.out, l.info, "INFO", fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level
func (l *Logger) Success(format string, args ...any) {
	l.line(l.out, l.success, "SUCCESS", fmt.Sprintf(format, args...))
}

// Warn logs at WARN level
func (l *Logger) Warn(format string, args ...any) {
	l.line(l.out, l.warn, "WARN", fmt.Sprintf(format, args...))
}

// Error logs at ERROR level to the error writer
func (l *Logger) Error(format string, args ...any) {
	l.line(l.errOut, l.err, "ERROR", fmt.Sprintf(format, args...))
}

// Theme returns the block styles matching the logger's color mode
func (l *Logger) Theme() *display.Theme {
	return l.theme
}

// Lifecycle prints a pre-formatted block as-is
func (l *Logger) Lifecycle(block string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !strings.HasSuffix(block, "\n") {
		block += "\n"
	}

	_, _ = io.WriteString(l.out, block)
}
