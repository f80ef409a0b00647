// Package catalog keeps the list of display modes the panel reports and
// groups them into resolution classes.
//
// Modes are discovered from the display service dump, where each mode
// record carries `id=`, `width=`, `height=` and `fps=` fields:
//
//	{id=1, width=1080, height=2400, fps=60.000004
//	{id=2, width=1440, height=3200, fps=120.00001
//
// A snapshot is replaced as a whole on every reload; readers always get a
// copy and never observe a partially built list.
package catalog
