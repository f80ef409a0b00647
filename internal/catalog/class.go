package catalog

import (
	"fmt"
	"strings"
)

// Class is a resolution class used to filter the catalog.
type Class string

const (
	ClassStandard Class = "standard" // width below 1200, shown as 1080p
	ClassHigh     Class = "high"     // width 1200 and above, shown as 2K
	ClassAll      Class = "all"
)

// Label is the short name shown to users.
func (c Class) Label() string {
	switch c {
	case ClassStandard:
		return "1080p"
	case ClassHigh:
		return "2K"
	default:
		return "all"
	}
}

// ParseClass accepts the class names and their display aliases.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "1080p", "fhd":
		return ClassStandard, nil
	case "high", "2k", "qhd":
		return ClassHigh, nil
	case "all", "":
		return ClassAll, nil
	}
	return "", fmt.Errorf("unknown resolution class %q (want 1080p, 2k or all)", s)
}

// Filter returns the modes belonging to class, in their original order.
// No match yields an empty, non-nil slice.
func Filter(modes []DisplayMode, class Class) []DisplayMode {
	out := make([]DisplayMode, 0, len(modes))
	for _, m := range modes {
		switch class {
		case ClassStandard:
			if m.IsHighResolution() {
				continue
			}
		case ClassHigh:
			if !m.IsHighResolution() {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}
