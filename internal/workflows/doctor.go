package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/PolarWolf314/jaylock/internal/configs"
	"github.com/PolarWolf314/jaylock/internal/envelope"
	"github.com/PolarWolf314/jaylock/internal/store"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	// Dir is the notes directory to inspect.
	Dir string

	// ConfigPath is the config file to validate. Empty skips the check.
	ConfigPath string

	// Cipher is the mode new notes are written with.
	Cipher envelope.Mode
}

// doctor holds state shared between checks.
type doctor struct {
	opts    DoctorOptions
	entries []store.Entry
	listErr error
	// parsed maps note paths to the mode their envelope was written with.
	parsed map[string]envelope.Mode
}

// Doctor runs health checks on the notes directory and configuration.
//
// The doctor workflow checks:
//   - Config file validity
//   - Notes directory existence and permissions
//   - Note file permissions
//   - Note files parse as envelopes with a known cipher
//   - Notes written with a cipher other than the configured one
//   - Temporary files left behind by an interrupted save
//
// Notes are never decrypted: doctor does not know any passphrase.
func Doctor(ctx context.Context, opts DoctorOptions) (*DoctorResult, error) {
	d := &doctor{opts: opts, parsed: make(map[string]envelope.Mode)}
	d.entries, d.listErr = store.New(opts.Dir).List(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	checks := []func() CheckResult{
		d.checkConfig,
		d.checkNotesDir,
		d.checkDirPermissions,
		d.checkEnvelopes,
		d.checkFilePermissions,
		d.checkCipherConsistency,
		d.checkLeftoverTempFiles,
	}

	var results []CheckResult
	for _, check := range checks {
		results = append(results, check())
	}

	summary := calculateDoctorSummary(results)

	// Collect suggestions (deduplicated).
	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     summary,
		Suggestions: suggestions,
	}, nil
}

func (d *doctor) checkConfig() CheckResult {
	const name = "Configuration"
	path := d.opts.ConfigPath
	if path == "" {
		return CheckResult{Name: name, Status: CheckPass, Message: "No config file in use"}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:       name,
			Status:     CheckPass,
			Message:    "No config file (using defaults)",
			Suggestion: "Run 'jaylock config init' to create one",
		}
	}

	cfg := configs.DefaultConfig()
	if err := configs.LoadTOML(path, cfg); err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to parse config: %v", err),
			Suggestion: fmt.Sprintf("Check %s for syntax errors", path),
		}
	}
	if _, err := envelope.ParseMode(cfg.Crypto.Cipher); err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Invalid cipher in config: %v", err),
			Suggestion: "Set [crypto] cipher to \"cbc\" or \"secretbox\"",
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "Config file valid"}
}

func (d *doctor) checkNotesDir() CheckResult {
	const name = "Notes directory"
	info, err := os.Stat(d.opts.Dir)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%s does not exist yet", d.opts.Dir),
			Suggestion: "Run 'jaylock' and save a note to create it",
		}
	}
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to stat notes directory: %v", err),
			Suggestion: "Check that the notes directory is accessible",
		}
	}
	if !info.IsDir() {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("%s is not a directory", d.opts.Dir),
			Suggestion: "Move the file away or choose another directory with --dir",
		}
	}
	if d.listErr != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to list notes: %v", d.listErr),
			Suggestion: "Check that the notes directory is readable",
		}
	}

	return CheckResult{
		Name:    name,
		Status:  CheckPass,
		Message: fmt.Sprintf("%d note(s) in %s", len(d.entries), d.opts.Dir),
	}
}

func (d *doctor) checkDirPermissions() CheckResult {
	const name = "Notes directory permissions"
	if runtime.GOOS == "windows" {
		return CheckResult{Name: name, Status: CheckPass, Message: "Permission bits not checked on Windows"}
	}
	info, err := os.Stat(d.opts.Dir)
	if err != nil {
		return CheckResult{Name: name, Status: CheckPass, Message: "Notes directory not present (skipping)"}
	}

	mode := info.Mode().Perm()
	if mode&0077 != 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Notes directory is accessible to other users (%04o)", mode),
			Suggestion: fmt.Sprintf("Run 'chmod 700 %s' to fix permissions", d.opts.Dir),
		}
	}

	return CheckResult{
		Name:    name,
		Status:  CheckPass,
		Message: fmt.Sprintf("Notes directory has correct permissions (%04o)", mode),
	}
}

func (d *doctor) checkEnvelopes() CheckResult {
	const name = "Note files"
	if len(d.entries) == 0 {
		return CheckResult{Name: name, Status: CheckPass, Message: "No notes to check"}
	}

	var badNames, corrupt int
	for _, e := range d.entries {
		if e.ID == "" {
			badNames++
		}
		data, err := os.ReadFile(e.Path)
		if err != nil {
			corrupt++
			continue
		}
		env, err := envelope.Parse(string(data))
		if err != nil {
			corrupt++
			continue
		}
		mode, err := envelope.DetectMode(env)
		if err != nil {
			corrupt++
			continue
		}
		d.parsed[e.Path] = mode
	}

	if corrupt > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("%d of %d note file(s) are not valid envelopes", corrupt, len(d.entries)),
			Suggestion: "Restore damaged notes from backup; jaylock opens them as empty notes",
		}
	}
	if badNames > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%d note file(s) have names no passphrase can produce", badNames),
			Suggestion: "Files must be named <32 lowercase hex digits>.enc to be opened",
		}
	}

	return CheckResult{
		Name:    name,
		Status:  CheckPass,
		Message: fmt.Sprintf("All %d note file(s) are well-formed", len(d.entries)),
	}
}

func (d *doctor) checkFilePermissions() CheckResult {
	const name = "Note file permissions"
	if runtime.GOOS == "windows" {
		return CheckResult{Name: name, Status: CheckPass, Message: "Permission bits not checked on Windows"}
	}

	var loose int
	for _, e := range d.entries {
		if e.Mode&0077 != 0 {
			loose++
		}
	}
	if loose > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%d note file(s) are readable by other users", loose),
			Suggestion: fmt.Sprintf("Run 'chmod 600 %s/*.enc' to fix permissions", d.opts.Dir),
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "All note files are private (0600)"}
}

func (d *doctor) checkCipherConsistency() CheckResult {
	const name = "Cipher mode"
	var other int
	for _, mode := range d.parsed {
		if mode != d.opts.Cipher {
			other++
		}
	}

	if other > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("%d note(s) use a cipher other than '%s'", other, d.opts.Cipher),
			Suggestion: fmt.Sprintf("Run 'jaylock migrate --cipher %s' with each passphrase to convert", d.opts.Cipher),
		}
	}

	return CheckResult{
		Name:    name,
		Status:  CheckPass,
		Message: fmt.Sprintf("Notes use the configured cipher '%s'", d.opts.Cipher),
	}
}

func (d *doctor) checkLeftoverTempFiles() CheckResult {
	const name = "Interrupted saves"
	if _, err := os.Stat(d.opts.Dir); err != nil {
		return CheckResult{Name: name, Status: CheckPass, Message: "Notes directory not present (skipping)"}
	}

	matches, err := doublestar.Glob(os.DirFS(d.opts.Dir), ".*.tmp")
	if err != nil {
		return CheckResult{
			Name:       name,
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to scan for temporary files: %v", err),
			Suggestion: "Check that the notes directory is readable",
		}
	}
	if len(matches) > 0 {
		return CheckResult{
			Name:       name,
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Found %d temporary file(s) from an interrupted save", len(matches)),
			Suggestion: fmt.Sprintf("Remove %s/.*.tmp once no jaylock session is running", d.opts.Dir),
		}
	}

	return CheckResult{Name: name, Status: CheckPass, Message: "No leftover temporary files"}
}

// calculateDoctorSummary calculates the counts of checks by status.
func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, result := range results {
		switch result.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
