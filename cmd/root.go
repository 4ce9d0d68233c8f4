package cmd

import (
	"os"

	logger "github.com/PolarWolf314/jaylock/internal/logging"
	"github.com/PolarWolf314/jaylock/internal/terminal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	debug      bool
	notesDir   string
	cipherFlag cipherValue
	Logger     logger.Logger

	// exitFunc is called for failures that must end the process with a
	// non-zero code. Can be overridden for testing.
	exitFunc = os.Exit

	// openConsole opens the terminal used for passphrases and the editor.
	// Can be overridden for testing.
	openConsole = terminal.Open

	RootCmd = &cobra.Command{
		Use:   "jaylock",
		Short: "Jaylock - encrypted notes behind a single password.",
		Long: `Jaylock keeps one encrypted note per password in ~/.jaylock.

Run jaylock with no arguments to open the note for a password in a small
line editor. The password decides both the encryption key and which file
the note lives in, so there is nothing to select and nothing to remember
besides the password itself.

Editor commands:
  :w                    Save changes
  :q                    Quit without saving
  :wq                   Save and quit
  :list                 Show all content with line numbers
  :edit <line>          Edit a line with its content pre-filled
  :edit <line> <text>   Replace a line directly
  :delete <line>        Delete a line
  :insert <line> <text> Insert text before a line
  :clear                Clear all content (with confirmation)
  :help                 Show the commands

Any other line is appended to the note. Ctrl+C and end of input save
before exiting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		},
		RunE: runEditor,
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&notesDir, "dir", "", "notes directory (default ~/.jaylock, or $JAYLOCK_DIR)")
	RootCmd.PersistentFlags().Var(&cipherFlag, "cipher", "cipher for writing notes: cbc or secretbox")

	RootCmd.AddCommand(catCmd)
	RootCmd.AddCommand(migrateCmd)
	RootCmd.AddCommand(doctorCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	notesDir = ""
	cipherFlag = cipherValue{}
	exitFunc = os.Exit
	openConsole = terminal.Open
	resetCatCommandState()
	resetMigrateCommandState()
	resetDoctorCommandState()
	resetLogCommandState()
	resetConfigCommandState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears Changed on every flag so values from one test
// do not leak into the next.
func resetCobraFlagState(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}

// SetExitFunc sets the exit function for testing purposes.
func SetExitFunc(f func(int)) {
	exitFunc = f
}

// SetConsoleOpener sets the console factory for testing purposes.
func SetConsoleOpener(f func() (terminal.Console, error)) {
	openConsole = f
}
