// Package tui implements the interactive browse screen.
//
// The screen is a bubbletea model with two input modes. In viewing mode
// the key bindings scroll the result table, "/" moves focus into the
// query box, and "q"/"esc" quit. In editing mode keystrokes edit the
// query; Enter and Esc both commit, which blurs the box and restarts the
// background scan for the new text. There is no cancel: the committed
// query is whatever the box holds.
//
// Rendering is decoupled from discovery. A timer message re-reads the
// record store on every tick and rebuilds the table, so results appear
// as they arrive without the scanner ever touching the UI. Scan startup
// failures surface in the footer together with a troubleshooting hint.
//
// The model never stops the scanner; the command layer owns controller
// shutdown after the program exits.
package tui
