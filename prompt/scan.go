package prompt

import "github.com/grovetools/prompt/pkg/dirscan"

// Scan is a probe over the cached directory listing. Build it with the
// setters and finish with IsMatch:
//
//	ctx.TryBeginScan().
//		SetFiles("cpanfile").
//		SetExtensions("pl", "pm").
//		IsMatch()
type Scan struct {
	contents   *dirscan.Contents
	files      []string
	extensions []string
	folders    []string
}

// SetFiles sets the exact file names to look for.
func (s *Scan) SetFiles(names ...string) *Scan {
	if s != nil {
		s.files = names
	}
	return s
}

// SetExtensions sets the file extensions to look for, without leading dots.
func (s *Scan) SetExtensions(exts ...string) *Scan {
	if s != nil {
		s.extensions = exts
	}
	return s
}

// SetFolders sets the folder names to look for.
func (s *Scan) SetFolders(names ...string) *Scan {
	if s != nil {
		s.folders = names
	}
	return s
}

// IsMatch reports whether any criterion is present. Files are checked first,
// then extensions, then folders; the first hit ends the probe.
func (s *Scan) IsMatch() bool {
	if s == nil {
		return false
	}
	return s.contents.HasAnyFile(s.files...) ||
		s.contents.HasAnyExtension(s.extensions...) ||
		s.contents.HasAnyFolder(s.folders...)
}
