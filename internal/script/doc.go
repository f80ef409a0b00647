// Package script speaks the text protocol of the privileged helper script.
//
// The helper is invoked as `sh "<script>" <subcommand> "<arg>"...` and answers
// with free-form text. Whether an answer means success is decided in exactly
// one place, Classify, so the marker rules can be hardened later without
// touching the call sites. The rules are intentionally uneven: add_rate also
// accepts "Added" and remove_rate also accepts "Removed", while every other
// write operation only accepts "Success".
package script
