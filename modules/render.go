package modules

import (
	"strings"

	"github.com/grovetools/prompt/prompt"
	"github.com/grovetools/prompt/style"
)

// Line evaluates names and joins the rendered modules into one prompt line.
// With add_newline set the line starts with a newline.
func Line(ctx *prompt.Context, r *style.Renderer, names []string) string {
	var b strings.Builder
	if ctx.Config.AddNewline {
		b.WriteString("\n")
	}
	for _, m := range Evaluate(ctx, names) {
		b.WriteString(m.Render(r))
	}
	return b.String()
}
