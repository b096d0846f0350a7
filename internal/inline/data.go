package inline

// IconSource resolves an icon name to sanitized SVG markup.
type IconSource interface {
	Lookup(name string) (string, bool)
	// Names lists every known icon, used for suggestions.
	Names() []string
}

// Missing is an icon referenced by the page that the source does not know.
type Missing struct {
	Name string
	// Suggestion is the closest known name, or empty.
	Suggestion string
}

type ReplaceResult struct {
	HTML     string
	Replaced int
	// Missing is deduplicated and in order of first appearance.
	Missing []Missing
}
