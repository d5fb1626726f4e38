package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/prompt/errors"
)

// Exit codes returned by HandleError.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitConfig       = 2
	ExitUsage        = 3
	ExitCommandError = 4
)

var errorLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(out io.Writer, verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     out,
	}
}

// HandleError prints err to w and returns the process exit code.
func HandleError(w io.Writer, err error, verbose bool) int {
	return NewErrorHandler(w, verbose).Handle(err)
}

// Handle prints a message for err based on its code and returns the exit code.
func (h *ErrorHandler) Handle(err error) int {
	if err == nil {
		return ExitOK
	}

	code := ExitFailure
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		h.printf("Configuration not found. Run 'grove-prompt config path' to see where it is looked up.\n")
		code = ExitConfig

	case errors.ErrCodeConfigInvalid:
		h.printf("Configuration is invalid: %v\n", err)
		h.hint("Run 'grove-prompt config schema' to see the accepted keys.")
		code = ExitConfig

	case errors.ErrCodeUnknownModule:
		if promptErr, ok := err.(*errors.PromptError); ok {
			h.printf("Unknown module '%v'\n", promptErr.Details["module"])
		} else {
			h.printf("%v\n", err)
		}
		h.hint("Run 'grove-prompt module --list' to see available modules.")
		code = ExitUsage

	case errors.ErrCodeInvalidInput:
		h.printf("%v\n", err)
		code = ExitUsage

	case errors.ErrCodeCommandNotFound, errors.ErrCodeCommandFailed, errors.ErrCodeCommandTimeout:
		h.printf("%v\n", err)
		code = ExitCommandError

	default:
		h.printf("%v\n", err)
	}

	if h.Verbose {
		if promptErr, ok := err.(*errors.PromptError); ok {
			fmt.Fprintf(h.Out, "\nError details:\n%s\n", promptErr.ToJSON())
		}
	}
	return code
}

func (h *ErrorHandler) printf(format string, args ...interface{}) {
	fmt.Fprintf(h.Out, "%s %s", errorLabel.Render("Error:"), fmt.Sprintf(format, args...))
}

func (h *ErrorHandler) hint(msg string) {
	fmt.Fprintln(h.Out, msg)
}
