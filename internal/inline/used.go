package inline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// UsedIcons lists the icon names referenced by <i> placeholders in page,
// deduplicated, in document order.
func UsedIcons(page string, prefix string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	var names []string
	seen := make(map[string]bool)
	doc.Find("i[class]").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		rest, ok := strings.CutPrefix(class, prefix+" ")
		if !ok {
			return
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return
		}
		name := fields[len(fields)-1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	})
	return names, nil
}
