// Package session implements the interactive editor loop for one note.
//
// A Session owns a line buffer and interprets each line of input either as
// text to append or as a ':' command. Two commands need a second line:
// ":edit <n>" waits for the replacement text, and ":clear" waits for a
// yes/no answer. Those waits are explicit modes, so HandleLine is a plain
// state machine that tests can drive one line at a time.
//
// Run connects a Session to a terminal.LineReader and handles the ways a
// session can end. Only ":q" exits without saving.
package session
