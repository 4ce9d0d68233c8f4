// Package ui provides semantic text formatting for jaylock output.
//
// Formatters colorize text when the terminal supports it. When NO_COLOR
// is set or color is unavailable, some formatters fall back to plain text
// decorations so the meaning survives:
//
//   - Command: `backticks`
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration
//
// Usage:
//
//	ui.Command.Sprint(":wq")
//	ui.Error.Sprint("✗") + " Failed to save notes"
package ui
