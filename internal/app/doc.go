// Package app wires ratectl's components together and owns their
// lifecycle.
//
// # Architecture Overview
//
// Everything privileged happens on the device through one command bridge.
// The State built here holds exactly one of each component and creates
// them in dependency order:
//
//  1. Bridge: runs shell commands through the configured host
//  2. Script client: issues helper subcommands over the bridge
//  3. Overrides store: global and per-application modes
//  4. Catalog: display modes reported by the panel
//  5. Rate manager, label queue and device actions
//
// There are no package-level singletons; commands receive the State they
// operate on, and the interactive shell keeps one State alive across many
// commands so caches such as resolved labels survive between them.
//
// # Bootstrap
//
// Bootstrap loads settings (unless they are supplied), selects the host
// convention and builds the State. Unless disabled it then refreshes the
// catalog and overrides in the same order the module's own UI does: modes
// first, then the mode file, then the resolution class heuristic.
//
// A panic anywhere during bootstrap is recovered into an *InitError that
// carries the stack, so the CLI can render it instead of crashing.
//
// Example usage:
//
//	cfg := app.NewConfig(false, "")
//	state, err := app.Bootstrap(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
package app
