// Package configs manages jaylock settings and its configuration file.
//
// The config file lives at <user config dir>/jaylock/config.toml:
//
//	[storage]
//	dir = "~/.jaylock"
//
//	[crypto]
//	cipher = "cbc"   # or "secretbox"
//
//	[editor]
//	banner = true
//
// # Precedence
//
// The notes directory comes from the --dir flag, then the JAYLOCK_DIR
// environment variable, then the config file, then ~/.jaylock. The cipher
// mode comes from the --cipher flag, then the config file, then "cbc".
//
// The cipher only affects writing. Reading a note detects the mode from
// the stored envelope, so changing it never strands existing notes.
//
// # Settings
//
// JaylockSettings is initialized at startup with the default paths. Tests
// replace it with a value pointing into a temporary directory.
package configs
