// Package starship installs grove-prompt as a starship custom module, for
// users who keep starship as their prompt and want the grove-prompt modules in it.
package starship

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/prompt/config"
	"github.com/grovetools/prompt/modules"
	"github.com/grovetools/prompt/prompt"
	"github.com/grovetools/prompt/style"
	"github.com/spf13/cobra"
)

// ModuleName is the starship table grove-prompt installs, [custom.<name>].
const ModuleName = "grove_prompt"

// NewStarshipCmd creates the starship command and its subcommands.
// The binaryName parameter is used to configure the command in starship.toml
// (e.g. "grove-prompt" generates `command = "grove-prompt starship status"`).
func NewStarshipCmd(binaryName string) *cobra.Command {
	starshipCmd := &cobra.Command{
		Use:   "starship",
		Short: "Manage Starship prompt integration",
		Long:  `Provides commands to show grove-prompt modules inside a Starship prompt.`,
	}

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install the grove-prompt module to your starship.toml",
		Long: `Appends a custom module to your starship.toml configuration file and
attempts to add it to your main prompt format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			return runStarshipInstall(cmd, path, binaryName)
		},
	}

	statusCmd := &cobra.Command{
		Use:    "status",
		Short:  "Print the modules for Starship (for internal use)",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE:   runStarshipStatus,
	}

	starshipCmd.AddCommand(installCmd)
	starshipCmd.AddCommand(statusCmd)

	return starshipCmd
}

// configPath honours STARSHIP_CONFIG like starship itself.
func configPath() (string, error) {
	if p := os.Getenv("STARSHIP_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "starship.toml"), nil
}

func runStarshipInstall(cmd *cobra.Command, configPath, binaryName string) error {
	contentBytes, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("starship config not found at %s. Please ensure starship is installed and configured", configPath)
		}
		return fmt.Errorf("could not read starship config: %w", err)
	}

	content, notes := Install(string(contentBytes), binaryName)
	for _, note := range notes {
		fmt.Fprintln(cmd.OutOrStdout(), note)
	}

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write updated starship config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nSuccessfully updated %s. Please restart your shell to see the changes.\n", configPath)
	return nil
}

// Install adds or refreshes the custom module in a starship.toml document and
// references it from the prompt format. It returns the new document and a
// note for every change made or skipped.
func Install(content, binaryName string) (string, []string) {
	var notes []string
	header := "[custom." + ModuleName + "]"
	command := fmt.Sprintf(`command = "%s starship status"`, binaryName)

	moduleConfig := fmt.Sprintf(`
# Added by '%s starship install'
%s
description = "Toolchain versions from grove-prompt"
%s
when = true
shell = ["sh"]
format = "[$output]($style)"
style = "149 bold"
`, binaryName, header, command)

	if headerIdx := strings.Index(content, header); headerIdx != -1 {
		if !strings.Contains(content, command) {
			notes = append(notes, fmt.Sprintf("ℹ️  %s already exists with a different command.", header),
				"   Keeping existing configuration to avoid conflicts.")
		} else {
			// Replace from the header's comment line up to the next table.
			startIdx := headerIdx
			if commentIdx := strings.LastIndex(content[:startIdx], "\n# Added by"); commentIdx != -1 &&
				!strings.Contains(content[commentIdx+1:startIdx], "\n[") {
				startIdx = commentIdx
			}
			endIdx := len(content)
			if next := strings.Index(content[headerIdx+1:], "\n["); next != -1 {
				endIdx = headerIdx + 1 + next
			}
			replacement := moduleConfig
			if endIdx < len(content) {
				replacement = strings.TrimSuffix(replacement, "\n")
			}
			content = content[:startIdx] + replacement + content[endIdx:]
			notes = append(notes, "✓ Updated existing grove-prompt starship module configuration.")
		}
	} else {
		content += moduleConfig
		notes = append(notes, fmt.Sprintf("✓ Added %s module to starship config.", header))
	}

	ref := "${custom." + ModuleName + "}"
	if strings.Contains(content, ref) || strings.Contains(content, "$custom."+ModuleName) {
		notes = append(notes, "✓ grove-prompt module already in starship format.")
		return content, notes
	}

	// Insert it after git_metrics, which is a common element.
	target := "$git_metrics\\"
	if strings.Contains(content, target) {
		content = strings.Replace(content, target, target+"\n"+ref+"\\", 1)
		notes = append(notes, "✓ Added grove-prompt module to starship format.")
	} else {
		notes = append(notes, fmt.Sprintf("⚠️  Could not automatically add '%s' to your starship format.", ref),
			"   Please add it manually to the 'format' string.")
	}
	return content, notes
}

// runStarshipStatus must be fast and never print errors: starship shows
// whatever lands on stdout.
func runStarshipStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDefault()
	if err != nil {
		cfg = config.Default()
	}

	dir, err := os.Getwd()
	if err != nil {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	pc := prompt.NewContext(ctx, dir, cfg)

	// starship applies its own style and adds its own newline handling.
	cfg.AddNewline = false
	line := modules.Line(pc, style.Plain(), modules.Order(pc))
	fmt.Fprint(cmd.OutOrStdout(), strings.TrimSpace(line))
	return nil
}
