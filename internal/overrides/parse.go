package overrides

import (
	"strconv"
	"strings"
)

// NoOverride marks "no mode selected" for the global value and clears an
// application override when saved.
const NoOverride = -1

// Parse reads the mode file text. A first line that is missing or not an
// integer yields NoOverride. Application lines without '=' or with a
// non-integer mode are skipped; the package name is everything before the
// first '='.
func Parse(text string) (global int, apps map[string]int) {
	lines := strings.Split(text, "\n")
	apps = make(map[string]int)

	global = NoOverride
	if v, ok := parseModeID(lines[0]); ok {
		global = v
	}

	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		pkg, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		pkg = strings.TrimSpace(pkg)
		id, ok := parseModeID(value)
		if pkg == "" || !ok {
			continue
		}
		apps[pkg] = id
	}
	return global, apps
}

func parseModeID(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}
