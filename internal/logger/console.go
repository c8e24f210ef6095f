package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// Console writes debug and info messages to stdout, warnings and errors to
// stderr. Colour is enabled when stdout is a terminal.
type Console struct {
	level     Level
	component string
	color     bool
	out       io.Writer
	err       io.Writer
}

func NewConsole(level Level) *Console {
	fd := os.Stdout.Fd()
	return &Console{
		level: level,
		color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		out:   os.Stdout,
		err:   os.Stderr,
	}
}

// NewWriter returns an uncoloured Console writing every level to w.
func NewWriter(level Level, w io.Writer) *Console {
	return &Console{
		level: level,
		out:   w,
		err:   w,
	}
}

func (l *Console) Debug(msg string, args ...interface{}) {
	l.log(LevelDebug, msg, args...)
}

func (l *Console) Info(msg string, args ...interface{}) {
	l.log(LevelInfo, msg, args...)
}

func (l *Console) Warn(msg string, args ...interface{}) {
	l.log(LevelWarn, msg, args...)
}

func (l *Console) Error(msg string, args ...interface{}) {
	l.log(LevelError, msg, args...)
}

func (l *Console) WithComponent(component string) Logger {
	c := *l
	c.component = component
	return &c
}

func (l *Console) log(level Level, msg string, args ...interface{}) {
	if level < l.level {
		return
	}

	output := l10n.F(msg, args...)
	if l.component != "" {
		if l.color {
			output = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, output)
		} else {
			output = fmt.Sprintf("[%s] %s", l.component, output)
		}
	}

	if l.color {
		switch level {
		case LevelDebug:
			output = colorGray + output + colorReset
		case LevelWarn:
			output = colorYellow + output + colorReset
		case LevelError:
			output = colorRed + output + colorReset
		}
	}

	if level >= LevelWarn {
		fmt.Fprintln(l.err, output)
	} else {
		fmt.Fprintln(l.out, output)
	}
}
