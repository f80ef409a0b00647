package script

import (
	"errors"
	"fmt"
	"strings"

	pkgstrings "ratectl/pkg/strings"
)

// Op names a helper script subcommand.
type Op string

const (
	OpCheckBackup     Op = "check_backup"
	OpSetConfig       Op = "set_config"
	OpGetAppInfo      Op = "get_app_info"
	OpSetAppConfig    Op = "set_app_config"
	OpInitWorkspace   Op = "init_workspace"
	OpScanRates       Op = "scan_rates"
	OpAddRate         Op = "add_rate"
	OpRemoveRate      Op = "remove_rate"
	OpApplyChanges    Op = "apply_changes"
	OpToggleADFR      Op = "toggle_adfr"
	OpUninstallModule Op = "uninstall_module"
	OpFlashDTBO       Op = "flash_dtbo"
	OpRestoreDTBO     Op = "restore_dtbo"
)

// Outcome is the classification of a helper response.
type Outcome int

const (
	// Failed means the expected success marker is missing.
	Failed Outcome = iota
	// Succeeded means the response carries the success marker.
	Succeeded
	// Unknown means the response is empty: the bridge timed out or failed.
	Unknown
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Unknown:
		return "unknown"
	default:
		return "failed"
	}
}

// successMarkers lists, per write operation, the substrings that mean success.
var successMarkers = map[Op][]string{
	OpSetConfig:       {"Success"},
	OpSetAppConfig:    {"Success"},
	OpInitWorkspace:   {"Success"},
	OpAddRate:         {"Success", "Added"},
	OpRemoveRate:      {"Success", "Removed"},
	OpApplyChanges:    {"Success"},
	OpToggleADFR:      {"Success"},
	OpUninstallModule: {"Success"},
	OpRestoreDTBO:     {"Success"},
}

// Classify decides what a helper response means for op.
//
// check_backup succeeds when the backup EXISTs and fails on NONE or anything
// else. get_app_info succeeds on any non-empty text. flash_dtbo has no
// marker and always succeeds on a non-empty response; its text is shown
// verbatim. Empty responses are Unknown for every op.
func Classify(op Op, response string) Outcome {
	if strings.TrimSpace(response) == "" {
		return Unknown
	}

	switch op {
	case OpCheckBackup:
		if strings.Contains(response, "EXIST") {
			return Succeeded
		}
		return Failed
	case OpGetAppInfo, OpFlashDTBO, OpScanRates:
		return Succeeded
	}

	for _, marker := range successMarkers[op] {
		if strings.Contains(response, marker) {
			return Succeeded
		}
	}
	return Failed
}

// ErrNoJSONPayload is returned when a response carries no bracketed JSON array.
var ErrNoJSONPayload = errors.New("invalid JSON output: no array payload found")

// ExtractJSONArray returns the text between the first '[' and the last ']'.
func ExtractJSONArray(response string) (string, error) {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONPayload
	}
	return response[start : end+1], nil
}

// snippetLen bounds the raw output quoted in diagnostics.
const snippetLen = 100

// Snippet returns a short single-line excerpt of a raw response.
func Snippet(response string) string {
	return pkgstrings.Truncate(response, snippetLen)
}

// FailureError reports a helper response that lacks the expected marker.
// Response holds the raw text so it can be shown to the user verbatim.
type FailureError struct {
	Op       Op
	Response string
}

func (e *FailureError) Error() string {
	if strings.TrimSpace(e.Response) == "" {
		return fmt.Sprintf("%s failed: no response from helper script", e.Op)
	}
	return fmt.Sprintf("%s failed:\n%s", e.Op, e.Response)
}

// IsFailure reports whether err is (or wraps) a FailureError.
func IsFailure(err error) bool {
	var fe *FailureError
	return errors.As(err, &fe)
}
