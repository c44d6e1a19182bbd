package figure

import (
	"strconv"
	"strings"
)

const captionToken = "caption"

// A Directive is the parsed form of the markup following the tag name:
//
//	[class-names...] <index> [caption]
type Directive struct {
	Classes string
	Index   int
	Caption bool
}

// ParseDirective parses markup. Markup that does not fit the grammar yields
// the zero Directive.
func ParseDirective(markup string) Directive {
	fields := strings.Fields(markup)

	var d Directive

	if n := len(fields); n > 0 && fields[n-1] == captionToken {
		d.Caption = true
		fields = fields[:n-1]
	}

	if len(fields) == 0 {
		return Directive{}
	}

	locator := fields[len(fields)-1]
	if !isDigits(locator) {
		return Directive{}
	}

	index, err := strconv.Atoi(locator)
	if err != nil {
		return Directive{}
	}

	d.Index = index
	d.Classes = strings.Join(fields[:len(fields)-1], " ")

	return d
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return s != ""
}
