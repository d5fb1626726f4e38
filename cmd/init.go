package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/grovetools/prompt/errors"
	"github.com/grovetools/prompt/style"
	"github.com/spf13/cobra"
)

const bashInit = `_grove_prompt() {
    local status=$?
    PS1="$(::BIN:: prompt --shell bash --path "$PWD")\\\$ "
    return $status
}
if [[ ";${PROMPT_COMMAND[*]:-};" != *";_grove_prompt;"* ]]; then
    PROMPT_COMMAND="_grove_prompt${PROMPT_COMMAND:+;$PROMPT_COMMAND}"
fi
`

const zshInit = `_grove_prompt_precmd() {
    PROMPT="$(::BIN:: prompt --shell zsh --path "$PWD")%# "
}
autoload -Uz add-zsh-hook
add-zsh-hook precmd _grove_prompt_precmd
`

const fishInit = `function fish_prompt
    ::BIN:: prompt --shell fish --path "$PWD"
    echo -n '> '
end
`

// NewInitCmd returns the command printing the shell setup snippet.
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <bash|zsh|fish>",
		Short: "Print the shell code that installs the prompt",
		Long: `Print shell code that redraws the prompt with grove-prompt before every
command line.

Examples:
  eval "$(grove-prompt init bash)"     # ~/.bashrc
  eval "$(grove-prompt init zsh)"      # ~/.zshrc
  grove-prompt init fish | source      # ~/.config/fish/config.fish`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			bin, err := os.Executable()
			if err != nil {
				bin = "grove-prompt"
			}
			script, err := initScript(args[0], bin)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), script)
			return nil
		},
	}
}

func initScript(shellName, bin string) (string, error) {
	shell, err := style.ParseShell(shellName)
	if err != nil || shell == style.ShellNone {
		return "", errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unsupported shell %q (want bash, zsh or fish)", shellName))
	}

	var tmpl string
	switch shell {
	case style.ShellBash:
		tmpl = bashInit
	case style.ShellZsh:
		tmpl = zshInit
	case style.ShellFish:
		tmpl = fishInit
	}
	return strings.ReplaceAll(tmpl, "::BIN::", shellQuote(bin)), nil
}

// shellQuote single-quotes s unless it is made of safe characters only.
func shellQuote(s string) string {
	safe := strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("/._-+", r))
	}) == -1
	if safe && s != "" {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
