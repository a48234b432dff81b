package strings

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
)

// DefaultCellMaxWidth is the widest a grid cell may be before it is cut.
const DefaultCellMaxWidth = 40

// MinTruncateWidth leaves room for one column of content plus the ellipsis.
const MinTruncateWidth = 4

const ellipsis = "..."

// TruncateCell collapses whitespace so the value fits on one line and cuts it
// to maxWidth terminal columns, ending in "...". Width is measured the way
// tables measure it: wide CJK runes count two and Thai combining marks count
// zero, so a base character never loses its marks.
func TruncateCell(s string, maxWidth int) string {
	if maxWidth < MinTruncateWidth {
		maxWidth = MinTruncateWidth
	}

	s = strings.Join(strings.Fields(s), " ")
	if text.StringWidthWithoutEscSequences(s) <= maxWidth {
		return s
	}

	limit := maxWidth - len(ellipsis)
	var b strings.Builder
	width := 0
	for _, r := range s {
		w := text.RuneWidth(r)
		if width+w > limit {
			break
		}
		b.WriteRune(r)
		width += w
	}
	return b.String() + ellipsis
}
