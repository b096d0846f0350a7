package catalog

import (
	"sort"

	"github.com/rohmanhakim/richtext-icons/internal/render"
)

// Icon is one sanitized SVG file of the icon directory.
type Icon struct {
	Name        string // class name, a slug of the file name
	File        string
	SVG         string
	AspectRatio float64
}

func (i Icon) Descriptor() render.IconDescriptor {
	return render.IconDescriptor{
		ClassName:   i.Name,
		SVG:         i.SVG,
		AspectRatio: i.AspectRatio,
	}
}

// Rejection names a file that produced no icon. Err is a *CatalogError or
// a *sanitizer.SanitizationError.
type Rejection struct {
	File string
	Err  error
}

// LoadResult holds icons and rejections in file-name order.
type LoadResult struct {
	Icons    []Icon
	Rejected []Rejection
}

func (r LoadResult) Descriptors() []render.IconDescriptor {
	out := make([]render.IconDescriptor, 0, len(r.Icons))
	for _, icon := range r.Icons {
		out = append(out, icon.Descriptor())
	}
	return out
}

// Lookup returns the sanitized SVG of the icon with the given class name.
func (r LoadResult) Lookup(name string) (string, bool) {
	for _, icon := range r.Icons {
		if icon.Name == name {
			return icon.SVG, true
		}
	}
	return "", false
}

// Names returns every class name, sorted.
func (r LoadResult) Names() []string {
	names := make([]string, 0, len(r.Icons))
	for _, icon := range r.Icons {
		names = append(names, icon.Name)
	}
	sort.Strings(names)
	return names
}

// LoaderParam holds the tunables of a Loader.
type LoaderParam struct {
	// Concurrency bounds the number of files sanitized at once.
	// Values below 1 mean 1.
	Concurrency int
	// Minify runs every sanitized SVG through an SVG minifier.
	Minify bool
}

func DefaultLoaderParam() LoaderParam {
	return LoaderParam{
		Concurrency: 4,
		Minify:      false,
	}
}
