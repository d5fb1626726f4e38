// Package style turns prompt style strings such as "149 bold" or
// "fg:#ff8800 bg:blue underline" into lipgloss styles and renders them for a
// specific shell.
package style

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var namedColors = map[string]int{
	"black":  0,
	"red":    1,
	"green":  2,
	"yellow": 3,
	"blue":   4,
	"purple": 5,
	"cyan":   6,
	"white":  7,
}

// Renderer paints text with parsed styles under a fixed colour profile. The
// profile is never detected from the output stream: a prompt is captured by
// the shell, so stdout is rarely a terminal.
type Renderer struct {
	lg    *lipgloss.Renderer
	shell Shell
}

// NewRenderer creates a renderer for the given colour profile and shell.
func NewRenderer(profile termenv.Profile, shell Shell) *Renderer {
	lg := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(profile))
	lg.SetColorProfile(profile)
	return &Renderer{lg: lg, shell: shell}
}

// Plain returns a renderer that emits no escape sequences at all.
func Plain() *Renderer {
	return NewRenderer(termenv.Ascii, ShellNone)
}

// Shell is the shell the rendered text is destined for.
func (r *Renderer) Shell() Shell {
	return r.shell
}

// Parse converts a style string into a lipgloss style. Tokens are separated by
// whitespace and matched case-insensitively. Unknown tokens are skipped and
// reported in the error; the returned style still carries every valid token.
// "none" clears everything parsed before it.
func (r *Renderer) Parse(spec string) (lipgloss.Style, error) {
	s := r.lg.NewStyle()
	var bad []string

	for _, token := range strings.Fields(strings.ToLower(spec)) {
		switch token {
		case "none":
			s = r.lg.NewStyle()
		case "bold":
			s = s.Bold(true)
		case "italic":
			s = s.Italic(true)
		case "underline":
			s = s.Underline(true)
		case "dimmed":
			s = s.Faint(true)
		case "inverted":
			s = s.Reverse(true)
		case "blink":
			s = s.Blink(true)
		case "strikethrough":
			s = s.Strikethrough(true)
		default:
			if c, ok := strings.CutPrefix(token, "bg:"); ok {
				if color, ok := parseColor(c); ok {
					s = s.Background(color)
					continue
				}
			} else if c, ok := strings.CutPrefix(token, "fg:"); ok {
				if color, ok := parseColor(c); ok {
					s = s.Foreground(color)
					continue
				}
			} else if color, ok := parseColor(token); ok {
				s = s.Foreground(color)
				continue
			}
			bad = append(bad, token)
		}
	}

	if len(bad) > 0 {
		return s, fmt.Errorf("unknown style tokens in %q: %s", spec, strings.Join(bad, ", "))
	}
	return s, nil
}

// Paint renders text with spec, wrapping escape sequences for the shell.
func (r *Renderer) Paint(spec, text string) string {
	if text == "" {
		return ""
	}
	s, _ := r.Parse(spec)
	return WrapEscapes(s.Render(text), r.shell)
}

// parseColor accepts a named colour, a "bright-" named colour, an ANSI 256
// index or a #rrggbb hex value.
func parseColor(token string) (lipgloss.Color, bool) {
	if strings.HasPrefix(token, "#") {
		if len(token) != 7 {
			return "", false
		}
		if _, err := strconv.ParseUint(token[1:], 16, 32); err != nil {
			return "", false
		}
		return lipgloss.Color(token), true
	}
	if n, err := strconv.Atoi(token); err == nil {
		if n < 0 || n > 255 {
			return "", false
		}
		return lipgloss.Color(strconv.Itoa(n)), true
	}
	name, bright := strings.CutPrefix(token, "bright-")
	idx, ok := namedColors[name]
	if !ok {
		return "", false
	}
	if bright {
		idx += 8
	}
	return lipgloss.Color(strconv.Itoa(idx)), true
}
