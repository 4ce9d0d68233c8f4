package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/PolarWolf314/jaylock/internal/configs"
	"github.com/PolarWolf314/jaylock/internal/envelope"
	"github.com/PolarWolf314/jaylock/internal/ui"
	"github.com/briandowns/spinner"
	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stderr)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// settings is the effective configuration after flags, environment and
// config file have been merged.
type settings struct {
	Dir    string
	Cipher envelope.Mode
	Config *configs.Config
}

// loadSettings merges flags, JAYLOCK_DIR and the config file.
func loadSettings() (*settings, error) {
	cfg, err := configs.LoadConfig()
	if err != nil {
		return nil, err
	}

	dir := configs.ResolveNotesDir(notesDir, cfg)
	name := configs.ResolveCipher(cipherFlag.String(), cfg)
	mode, err := envelope.ParseMode(name)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", configs.JaylockSettings.ConfigPath, err)
	}

	Logger.Debugf("Notes directory: %s", dir)
	Logger.Debugf("Cipher: %s", mode)
	return &settings{Dir: dir, Cipher: mode, Config: cfg}, nil
}

// printBanner writes the jaylock ASCII banner.
func printBanner(out io.Writer) {
	fmt.Fprintln(out)
	if color.NoColor {
		fmt.Fprint(out, figure.NewFigure("jaylock", "small", true).String())
	} else {
		fmt.Fprint(out, figure.NewColorFigure("jaylock", "small", "green", true).ColorString())
	}
	fmt.Fprintln(out)
}

// printFailure writes a startup failure to stderr.
func printFailure(msg string, err error) {
	if err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" "+msg)
}

// fail prints a startup failure and exits with code 1.
func fail(msg string, err error) {
	printFailure(msg, err)
	exitFunc(1)
}
