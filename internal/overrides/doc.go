// Package overrides holds the module's mode assignments: one global
// display mode plus optional per-application modes.
//
// The on-device file is line oriented. The first line is the global mode
// id; every later line is `<package>=<mode id>`:
//
//	3
//	com.example.game=5
//	com.example.video=7
//
// Reads go through the bridge with `cat`; writes always go through the
// helper script so the module daemon picks them up.
package overrides
