// Package logger provides leveled logging for jaylock commands.
//
// Output is prefixed and colored with fatih/color. Verbosity follows the
// persistent root flags:
//
//   - --verbose: info and warning messages
//   - --debug: everything, including debug and error details
//
// Without flags only WarnfAlways output is shown. Diagnostic messages
// never include passphrases, keys or note text; the file identifier is
// the most specific thing a log line may name.
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Debugf("Loading note %s", id)
package logger
