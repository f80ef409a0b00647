// Package rates manages the custom refresh-rate nodes in the unpacked
// device-tree workspace.
//
// Every change goes through the helper script; afterwards the table is
// rescanned rather than patched, because the script decides node names and
// clock values. A scan is authoritative and replaces the previous table.
//
// The usual flow is InitWorkspace, then any number of Add, Remove and
// Modify calls, then ApplyChanges to repack and flash the result.
package rates
