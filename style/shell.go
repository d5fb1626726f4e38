package style

import (
	"fmt"
	"regexp"
	"strings"
)

// Shell identifies how non-printing sequences must be marked in a prompt.
type Shell string

const (
	ShellNone Shell = ""
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ParseShell validates a --shell flag value.
func ParseShell(name string) (Shell, error) {
	switch s := Shell(strings.ToLower(name)); s {
	case ShellNone, ShellBash, ShellZsh, ShellFish:
		return s, nil
	default:
		return ShellNone, fmt.Errorf("unsupported shell %q (want bash, zsh or fish)", name)
	}
}

var escapeSeq = regexp.MustCompile("\x1b\\[[0-9;:]*[A-Za-z]")

// WrapEscapes marks every ANSI escape sequence in s as zero-width so the shell
// computes the prompt length correctly. Fish measures escapes itself.
func WrapEscapes(s string, shell Shell) string {
	var open, closing string
	switch shell {
	case ShellBash:
		open, closing = `\[`, `\]`
	case ShellZsh:
		open, closing = `%{`, `%}`
	default:
		return s
	}
	return escapeSeq.ReplaceAllStringFunc(s, func(seq string) string {
		return open + seq + closing
	})
}
