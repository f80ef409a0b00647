package rates

import (
	"context"
	"encoding/json"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"ratectl/internal/script"
	"ratectl/pkg/logging"
)

// PreferredBaseFPS is the rate of the node offered as default base.
const PreferredBaseFPS = 120

// Confirmer asks the user to approve a destructive step.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// Manager owns the rate table and issues workspace changes.
type Manager struct {
	client *script.Client

	mu    sync.RWMutex
	table []RateNode
}

// NewManager creates a manager with an empty table.
func NewManager(client *script.Client) *Manager {
	return &Manager{client: client}
}

// Table returns a copy of the last scanned table, sorted by fps.
func (m *Manager) Table() []RateNode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.table)
}

// DefaultBase returns the node offered as base for Add: the 120 Hz node
// when there is one, otherwise the first node.
func (m *Manager) DefaultBase() (RateNode, bool) {
	table := m.Table()
	if len(table) == 0 {
		return RateNode{}, false
	}
	for _, n := range table {
		if n.FPS == PreferredBaseFPS {
			return n, true
		}
	}
	return table[0], true
}

// Scan asks the helper for the current nodes and replaces the table. On a
// *ParseError the previous table is kept.
func (m *Manager) Scan(ctx context.Context) error {
	resp := m.client.Run(ctx, script.OpScanRates)

	payload, err := script.ExtractJSONArray(resp)
	if err != nil {
		return m.parseFailure(resp, err)
	}

	var scanned []scannedNode
	if err := json.Unmarshal([]byte(payload), &scanned); err != nil {
		return m.parseFailure(resp, err)
	}

	table := make([]RateNode, 0, len(scanned))
	for _, n := range scanned {
		table = append(table, n.toRateNode())
	}
	sort.SliceStable(table, func(i, j int) bool { return table[i].FPS < table[j].FPS })

	m.mu.Lock()
	m.table = table
	m.mu.Unlock()

	logging.Debug("Rates", "Scanned %d rate nodes", len(table))
	return nil
}

func (m *Manager) parseFailure(resp string, err error) error {
	snippet := script.Snippet(resp)
	logging.Warn("Rates", "Scan output unusable: %v: %s", err, snippet)
	return &ParseError{Snippet: snippet, Err: err}
}

// InitWorkspace extracts and unpacks the device tree, then scans.
func (m *Manager) InitWorkspace(ctx context.Context) (string, error) {
	resp, err := m.client.Do(ctx, script.OpInitWorkspace)
	if err != nil {
		return resp, err
	}
	return resp, m.Scan(ctx)
}

// Add clones baseNode with a new target rate, then rescans. Input is
// checked before anything is sent to the device.
func (m *Manager) Add(ctx context.Context, baseNode, targetFPS string) (string, error) {
	baseNode = strings.TrimSpace(baseNode)
	targetFPS = strings.TrimSpace(targetFPS)
	if baseNode == "" {
		return "", ErrNoBaseNode
	}
	if _, err := parseTargetFPS(targetFPS); err != nil {
		return "", err
	}

	resp, err := m.client.Do(ctx, script.OpAddRate, baseNode, targetFPS)
	if err != nil {
		return resp, err
	}
	logging.Info("Rates", "Added %s Hz node based on %s", targetFPS, baseNode)
	return resp, m.Scan(ctx)
}

// Remove deletes node after confirm approves, then rescans.
func (m *Manager) Remove(ctx context.Context, node string, confirm Confirmer) (string, error) {
	if !confirm.Confirm(ctx, "Remove rate node "+node+"?") {
		logging.Debug("Rates", "Removal of %s cancelled", node)
		return "", ErrCancelled
	}

	resp, err := m.client.Do(ctx, script.OpRemoveRate, node)
	if err != nil {
		return resp, err
	}
	logging.Info("Rates", "Removed node %s", node)
	return resp, m.Scan(ctx)
}

// Modify replaces node by a copy running at newFPS: the copy is added
// first and the old node removed only once that succeeded.
//
// If the removal fails the result is a *PartialError; the table is still
// rescanned so it shows both nodes.
func (m *Manager) Modify(ctx context.Context, node string, currentFPS int, newFPS string) (string, error) {
	newFPS = strings.TrimSpace(newFPS)
	target, err := parseTargetFPS(newFPS)
	if err != nil {
		return "", err
	}
	if target == float64(currentFPS) {
		return "", ErrUnchanged
	}

	resp, err := m.client.Do(ctx, script.OpAddRate, node, newFPS)
	if err != nil {
		return resp, err
	}

	resp, err = m.client.Do(ctx, script.OpRemoveRate, node)
	if err != nil {
		partial := &PartialError{Node: node, NewFPS: newFPS, Response: resp}
		logging.Warn("Rates", "%v", partial)
		if scanErr := m.Scan(ctx); scanErr != nil {
			logging.Warn("Rates", "Rescan after partial modify failed: %v", scanErr)
		}
		return resp, partial
	}

	logging.Info("Rates", "Modified %s from %d Hz to %s Hz", node, currentFPS, newFPS)
	return resp, m.Scan(ctx)
}

// ApplyChanges repacks the workspace and flashes it after confirm approves.
func (m *Manager) ApplyChanges(ctx context.Context, confirm Confirmer) (string, error) {
	if !confirm.Confirm(ctx, "Repack the device tree and flash it to the device?") {
		return "", ErrCancelled
	}
	return m.client.Do(ctx, script.OpApplyChanges)
}

func parseTargetFPS(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrInvalidFPS
	}
	return v, nil
}
