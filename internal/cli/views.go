package cli

import (
	"fmt"
	"strconv"

	"ratectl/internal/apps"
	"ratectl/internal/bridge"
	"ratectl/internal/catalog"
	"ratectl/internal/device"
	"ratectl/internal/rates"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const unknown = "unknown"

// StatusView is the combined device and configuration summary.
type StatusView struct {
	Bridge       string               `json:"bridge"`
	Slot         string               `json:"slot"`
	FPS          string               `json:"fps"`
	Backup       device.BackupState   `json:"backup"`
	GlobalModeID int                  `json:"globalModeId"`
	GlobalMode   *catalog.DisplayMode `json:"globalMode,omitempty"`
	AppOverrides int                  `json:"appOverrides"`
}

// Status prints the status summary as a key/value table.
func (p *Printer) Status(v StatusView) error {
	return p.Print(v, func(t table.Writer) {
		p.header(t, "PROPERTY", "VALUE")
		t.AppendRow(table.Row{"Bridge", v.Bridge})
		t.AppendRow(table.Row{"Boot slot", orUnknown(v.Slot)})
		t.AppendRow(table.Row{"Refresh rate", orUnknown(v.FPS)})
		t.AppendRow(table.Row{"DTBO backup", backupCell(v.Backup)})
		t.AppendRow(table.Row{"Global mode", globalCell(v)})
		t.AppendRow(table.Row{"App overrides", v.AppOverrides})
	})
}

func orUnknown(s string) string {
	if s == "" {
		return text.FgYellow.Sprint(unknown)
	}
	return s
}

func backupCell(b device.BackupState) string {
	switch b {
	case device.BackupPresent:
		return text.FgGreen.Sprint(string(b))
	case device.BackupAbsent:
		return text.FgRed.Sprint(string(b))
	default:
		return text.FgYellow.Sprint(unknown)
	}
}

func globalCell(v StatusView) string {
	if v.GlobalModeID < 0 {
		return text.FgYellow.Sprint("not set")
	}
	if v.GlobalMode == nil {
		return fmt.Sprintf("#%d", v.GlobalModeID)
	}
	return fmt.Sprintf("#%d %s @ %dHz", v.GlobalModeID, v.GlobalMode.Resolution(), v.GlobalMode.FPS)
}

// Modes prints the display modes of class, marking activeID.
func (p *Printer) Modes(modes []catalog.DisplayMode, class catalog.Class, activeID int) error {
	if !p.Structured() && len(modes) == 0 {
		p.Empty(fmt.Sprintf("No display modes found (class %s)", class.Label()))
		return nil
	}
	return p.Print(modes, func(t table.Writer) {
		p.header(t, "ID", "RESOLUTION", "FPS", "CLASS", "ACTIVE")
		for _, m := range modes {
			cls := catalog.ClassStandard
			if m.IsHighResolution() {
				cls = catalog.ClassHigh
			}
			active := ""
			if m.ID == activeID {
				active = text.FgGreen.Sprint("✓")
			}
			t.AppendRow(table.Row{m.ID, m.Resolution(), m.FPS, cls.Label(), active})
		}
		t.AppendFooter(table.Row{"", "", "", "Total", len(modes)})
	})
}

// Rates prints the rate table, marking the default base node.
func (p *Printer) Rates(nodes []rates.RateNode, base string) error {
	if !p.Structured() && len(nodes) == 0 {
		p.Empty("No refresh rate nodes found")
		return nil
	}
	return p.Print(nodes, func(t table.Writer) {
		p.header(t, "NODE", "FPS", "CLOCK", "FILE", "BASE")
		for _, n := range nodes {
			mark := ""
			if n.Node == base {
				mark = text.FgHiBlue.Sprint("*")
			}
			t.AppendRow(table.Row{n.Node, n.FPS, n.Clock.String(), n.File, mark})
		}
	})
}

// Apps prints application rows.
func (p *Printer) Apps(entries []apps.Entry) error {
	if !p.Structured() && len(entries) == 0 {
		p.Empty("No applications found")
		return nil
	}
	return p.Print(entries, func(t table.Writer) {
		p.header(t, "PACKAGE", "LABEL", "MODE")
		for _, e := range entries {
			t.AppendRow(table.Row{e.PackageID, e.Label, overrideCell(e)})
		}
		t.AppendFooter(table.Row{"", "Total", len(entries)})
	})
}

func overrideCell(e apps.Entry) string {
	if !e.HasOverride() {
		return text.Faint.Sprint("global")
	}
	if e.OverrideFPS == 0 {
		return "#" + strconv.Itoa(e.OverrideModeID)
	}
	return fmt.Sprintf("#%d @ %dHz", e.OverrideModeID, e.OverrideFPS)
}

// Diagnostics prints bridge diagnostic entries.
func (p *Printer) Diagnostics(entries []bridge.DiagnosticEntry) error {
	if !p.Structured() && len(entries) == 0 {
		p.Empty("No bridge activity recorded")
		return nil
	}
	return p.Print(entries, func(t table.Writer) {
		p.header(t, "TIME", "MESSAGE")
		for _, e := range entries {
			t.AppendRow(table.Row{e.Time.Format("15:04:05"), e.Message})
		}
	})
}
