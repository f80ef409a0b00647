package catalog

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// HighResolutionWidth is the first width counted as high resolution.
const HighResolutionWidth = 1200

// DisplayMode is one panel mode.
type DisplayMode struct {
	ID     int     `json:"id"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	FPS    int     `json:"fps"` // rounded for display
	RawFPS float64 `json:"rawFps"`
}

// Resolution formats the mode as WIDTHxHEIGHT.
func (m DisplayMode) Resolution() string {
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

// IsHighResolution reports whether the mode belongs to ClassHigh.
func (m DisplayMode) IsHighResolution() bool {
	return m.Width >= HighResolutionWidth
}

var (
	idField     = regexp.MustCompile(`id=(\d+)`)
	widthField  = regexp.MustCompile(`width=(\d+)`)
	heightField = regexp.MustCompile(`height=(\d+)`)
	fpsField    = regexp.MustCompile(`fps=([0-9.]+)`)
)

// Parse extracts display modes from text. Segments missing an id or an fps
// are dropped, as are exact repeats of an earlier segment. The result is
// sorted by rounded fps, then width; ties keep discovery order.
func Parse(text string) []DisplayMode {
	seen := make(map[string]bool)
	var modes []DisplayMode

	for _, segment := range segments(text) {
		if seen[segment] {
			continue
		}
		seen[segment] = true

		if m, ok := parseSegment(segment); ok {
			modes = append(modes, m)
		}
	}

	sort.SliceStable(modes, func(i, j int) bool {
		if modes[i].FPS != modes[j].FPS {
			return modes[i].FPS < modes[j].FPS
		}
		return modes[i].Width < modes[j].Width
	})
	return modes
}

func segments(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for _, part := range strings.Split(line, "{") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseSegment(segment string) (DisplayMode, bool) {
	id, ok := intField(idField, segment)
	if !ok {
		return DisplayMode{}, false
	}
	match := fpsField.FindStringSubmatch(segment)
	if match == nil {
		return DisplayMode{}, false
	}
	raw, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return DisplayMode{}, false
	}

	width, _ := intField(widthField, segment)
	height, _ := intField(heightField, segment)
	return DisplayMode{
		ID:     id,
		Width:  width,
		Height: height,
		FPS:    int(math.Round(raw)),
		RawFPS: raw,
	}, true
}

func intField(re *regexp.Regexp, s string) (int, bool) {
	match := re.FindStringSubmatch(s)
	if match == nil {
		return 0, false
	}
	v, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return v, true
}
