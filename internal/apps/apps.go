// Package apps lists installed third-party applications and matches them
// against a search term.
package apps

import (
	"context"
	"strconv"
	"strings"

	"ratectl/internal/bridge"
	"ratectl/internal/catalog"
	"ratectl/internal/overrides"
	pkgstrings "ratectl/pkg/strings"
)

// List runs command and returns one package id per non-blank line.
func List(ctx context.Context, exec bridge.Executor, command string) []string {
	raw := exec.Execute(ctx, command)
	var pkgs []string
	for _, line := range strings.Split(raw, "\n") {
		if pkg := strings.TrimSpace(line); pkg != "" {
			pkgs = append(pkgs, pkg)
		}
	}
	return pkgs
}

// LabelSource looks up resolved labels.
type LabelSource interface {
	Label(pkg string) (string, bool)
}

// OverrideSource looks up per-application mode assignments.
type OverrideSource interface {
	AppOverride(pkg string) (int, bool)
}

// ModeSource looks up display modes by id.
type ModeSource interface {
	Find(id int) (catalog.DisplayMode, bool)
}

// Search returns the packages matching term, case-insensitively, by
// package id, resolved label, or the refresh rate of the mode assigned to
// the package. An empty term matches everything.
func Search(pkgs []string, term string, labels LabelSource, assigned OverrideSource, modes ModeSource) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return pkgs
	}

	var out []string
	for _, pkg := range pkgs {
		if matches(pkg, term, labels, assigned, modes) {
			out = append(out, pkg)
		}
	}
	return out
}

func matches(pkg, term string, labels LabelSource, assigned OverrideSource, modes ModeSource) bool {
	if strings.Contains(strings.ToLower(pkg), term) {
		return true
	}
	if label, ok := labels.Label(pkg); ok && strings.Contains(strings.ToLower(label), term) {
		return true
	}
	if id, ok := assigned.AppOverride(pkg); ok {
		if m, ok := modes.Find(id); ok && strings.Contains(strconv.Itoa(m.FPS), term) {
			return true
		}
	}
	return false
}

// Entry is one row of the application list.
type Entry struct {
	PackageID      string `json:"packageId"`
	Label          string `json:"label,omitempty"`
	Prefix         string `json:"-"`
	Name           string `json:"-"`
	OverrideModeID int    `json:"overrideModeId"`
	OverrideFPS    int    `json:"overrideFps,omitempty"`
}

// HasOverride reports whether the application has its own mode.
func (e Entry) HasOverride() bool {
	return e.OverrideModeID != overrides.NoOverride
}

// Entries builds list rows for pkgs. Unresolved labels are left empty.
func Entries(pkgs []string, labels LabelSource, assigned OverrideSource, modes ModeSource) []Entry {
	out := make([]Entry, 0, len(pkgs))
	for _, pkg := range pkgs {
		e := Entry{PackageID: pkg, OverrideModeID: overrides.NoOverride}
		e.Prefix, e.Name = pkgstrings.LastSegment(pkg)
		if label, ok := labels.Label(pkg); ok {
			e.Label = label
		}
		if id, ok := assigned.AppOverride(pkg); ok {
			e.OverrideModeID = id
			if m, ok := modes.Find(id); ok {
				e.OverrideFPS = m.FPS
			}
		}
		out = append(out, e)
	}
	return out
}
