package catalog

import (
	"io/fs"
	"sort"
	"strings"

	"github.com/rohmanhakim/richtext-icons/internal/sanitizer"
	"github.com/rohmanhakim/richtext-icons/pkg/fileutil"
)

// FileSource resolves icons straight from the icon directory, one file at
// a time. It backs inline substitution, where only the icons used on a
// page are read.
type FileSource struct {
	fsys      fs.FS
	sanitizer sanitizer.Sanitizer
}

func NewFileSource(fsys fs.FS, svgSanitizer sanitizer.Sanitizer) FileSource {
	return FileSource{
		fsys:      fsys,
		sanitizer: svgSanitizer,
	}
}

// Lookup reads <name>.svg, or the file whose slug equals name, and returns
// it sanitized. Names that are not a single path element never resolve.
func (s FileSource) Lookup(name string) (string, bool) {
	if name == "" || strings.ContainsAny(name, `/\`) || !fs.ValidPath(name+".svg") {
		return "", false
	}

	file := name + ".svg"
	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		file = s.fileForSlug(name)
		if file == "" {
			return "", false
		}
		if data, err = fs.ReadFile(s.fsys, file); err != nil {
			return "", false
		}
	}

	sanitized, sanitizeErr := s.sanitizer.Sanitize(file, string(data))
	if sanitizeErr != nil {
		return "", false
	}
	return sanitized.SVG(), true
}

// Names lists the class names available in the directory, sorted.
func (s FileSource) Names() []string {
	files, err := listSVGFiles(s.fsys)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(files))
	for _, file := range files {
		if slug := Slugify(fileutil.StripExtension(file)); slug != "" {
			names = append(names, slug)
		}
	}
	sort.Strings(names)
	return names
}

func (s FileSource) fileForSlug(name string) string {
	files, err := listSVGFiles(s.fsys)
	if err != nil {
		return ""
	}
	for _, file := range files {
		if Slugify(fileutil.StripExtension(file)) == name {
			return file
		}
	}
	return ""
}

// Select returns the icons whose class name appears in names, keeping
// catalog order.
func Select(icons []Icon, names []string) []Icon {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}
	var out []Icon
	for _, icon := range icons {
		if _, ok := wanted[icon.Name]; ok {
			out = append(out, icon)
		}
	}
	return out
}
