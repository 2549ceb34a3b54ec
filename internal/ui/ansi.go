package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray    = "\033[90m"
	fgGreen   = "\033[32m"
	fgYellow  = "\033[33m"
	fgBlue    = "\033[34m"
	fgRed     = "\033[31m"
	fgMagenta = "\033[35m"
	fgOrange  = "\033[38;5;208m"

	symCheck = "✔"
	symCross = "✖"
	symWarn  = "!"
)

var (
	forceColor   bool
	disableColor bool

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

// SetColorMode maps the ui.color config value (auto, always, never).
func SetColorMode(mode string) {
	switch strings.ToLower(mode) {
	case "always":
		SetColorForcing(true, false)
	case "never":
		SetColorForcing(false, true)
	default:
		SetColorForcing(false, false)
	}
}

// SetOutput redirects everything the package prints. Nil keeps the
// current writer.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

func Stdout() io.Writer { return stdout }
func Stderr() io.Writer { return stderr }

func isTTY() bool {
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func C(color, s string) string {
	if disableColor || current.Colorless || color == "" {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

func OK(msg string)   { fmt.Fprintln(stdout, C(fgGreen, symCheck+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(stderr, C(fgRed, symCross+" "+msg)) }
func Warn(msg string) { fmt.Fprintln(stderr, C(fgYellow, symWarn+" "+msg)) }
