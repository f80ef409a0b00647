// Package cli provides the presentation helpers shared by ratectl commands.
//
// # Output
//
// Printer renders command results in one of three formats:
//   - table: go-pretty tables with rounded borders and highlighted headers
//   - json: indented JSON for scripting
//   - yaml: YAML converted from the JSON form, so json tags apply
//
// The view methods (Status, Modes, Rates, Apps, Diagnostics) know how to
// lay out each result type as a table and pass the raw value through for
// the structured formats.
//
// # Interaction
//
// Notifier prints short colored notices to stderr and Alert prints helper
// responses verbatim for operations that touch boot partitions. Spin wraps
// slow bridge calls in a spinner unless output is quiet. PromptConfirmer
// asks y/N questions through readline; AlwaysConfirm answers yes for
// --yes and scripted use.
//
// # Exit codes
//
// UsageError marks errors caused by bad input so the root command can
// exit with a distinct status.
package cli
