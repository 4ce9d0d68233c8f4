package workflows

import (
	"context"
	"io"

	"github.com/PolarWolf314/jaylock/internal/audit"
	"github.com/PolarWolf314/jaylock/internal/buffer"
	logger "github.com/PolarWolf314/jaylock/internal/logging"
	"github.com/PolarWolf314/jaylock/internal/session"
	"github.com/PolarWolf314/jaylock/internal/terminal"
)

// EditOptions configures the Edit workflow.
type EditOptions struct {
	Note   *Note
	Reader terminal.LineReader
	Out    io.Writer
	Logger logger.Logger
}

// Edit runs the interactive editor over an opened note until the user
// quits, input ends, or ctx is cancelled.
func Edit(ctx context.Context, opts EditOptions) (session.Result, error) {
	n := opts.Note
	s := session.New(session.Options{
		Buffer: buffer.FromText(n.Text),
		Saver:  n.Saver(ctx),
		Out:    opts.Out,
		Logger: opts.Logger,
	})

	s.Welcome()
	res, err := s.Run(ctx, opts.Reader)

	if res.Reason == session.ExitQuit && n.Exists {
		n.trail.Record(audit.Entry{
			Operation: audit.OpDiscard,
			FileID:    n.ID.String(),
			Lines:     s.Buffer().Len(),
			Reason:    res.Reason.String(),
		})
	}
	opts.Logger.Debugf("Session ended: %s after %d save(s)", res.Reason, res.Saves)
	return res, err
}
