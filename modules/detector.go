package modules

import (
	"github.com/grovetools/prompt/errors"
	"github.com/grovetools/prompt/prompt"
)

// versionDetector is the shared probe → resolve → format chain of modules
// that show a toolchain version.
type versionDetector struct {
	name       string
	files      []string
	extensions []string
	folders    []string
	tool       string
	args       []string
	format     func(string) (string, bool)
}

// detect returns the formatted version, or false when the directory does not
// match or the version could not be obtained. The tool is only run after a
// successful probe.
func (d versionDetector) detect(ctx *prompt.Context) (string, bool) {
	version, err := d.resolve(ctx)
	if err != nil {
		ctx.Logger().WithField("module", d.name).
			WithField("code", errors.GetCode(err)).
			Trace("Module absent")
		return "", false
	}
	return version, true
}

func (d versionDetector) resolve(ctx *prompt.Context) (string, error) {
	matched := ctx.TryBeginScan().
		SetFiles(d.files...).
		SetExtensions(d.extensions...).
		SetFolders(d.folders...).
		IsMatch()
	if !matched {
		return "", errors.New(errors.ErrCodeNoMatch, "no "+d.name+" project files")
	}

	raw, ok := ctx.Exec(d.tool, d.args...)
	if !ok {
		return "", errors.ToolUnavailable(d.name, nil)
	}

	formatted, ok := d.format(raw)
	if !ok {
		return "", errors.MalformedOutput(d.name, raw)
	}
	return formatted, nil
}
