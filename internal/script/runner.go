package script

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ironsheep/image-transform/internal/codec"
	"github.com/ironsheep/image-transform/internal/imaging"
)

// Runner executes scripts against a Processor.
type Runner struct {
	proc   *imaging.Processor
	out    io.Writer
	logger *slog.Logger

	// Dir resolves relative load and save paths. Empty means the process
	// working directory.
	Dir string

	// Strict stops the script at the first failing command. Otherwise the
	// failure is reported on the output and the script continues.
	Strict bool
}

// Stats counts the outcome of a Run.
type Stats struct {
	Executed int
	Failed   int
}

// NewRunner returns a Runner that reports progress to out.
func NewRunner(proc *imaging.Processor, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{proc: proc, out: out, logger: logger}
}

// Run executes commands from r until the input ends or a quit command is
// read. Blank lines and lines starting with '#' are ignored. The context is
// checked between commands; a running transform is never interrupted.
func (r *Runner) Run(ctx context.Context, in io.Reader) (Stats, error) {
	var stats Stats
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cmd, err := Parse(line)
		if err == nil {
			if cmd.Kind == KindQuit {
				r.printf("Image processor quit\n")
				return stats, nil
			}
			err = r.Exec(cmd)
		}
		stats.Executed++
		if err != nil {
			stats.Failed++
			r.logger.Warn("command failed", "line", lineNo, "command", line, "error", err)
			r.printf("line %d: %v\n", lineNo, err)
			if r.Strict {
				return stats, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read script: %w", err)
	}
	return stats, nil
}

// Exec runs a single parsed command.
func (r *Runner) Exec(cmd Command) error {
	switch cmd.Kind {
	case KindLoad:
		img, err := codec.Load(r.path(cmd.Path))
		if err != nil {
			return fmt.Errorf("load %q: %w", cmd.Path, err)
		}
		r.proc.Store().Put(cmd.Name, img)
		r.printf("Loaded %s as %s (%s)\n", cmd.Path, cmd.Name, img)
		return nil

	case KindSave:
		img, ok := r.proc.Store().Get(cmd.Name)
		if !ok {
			return fmt.Errorf("save: image %q: %w", cmd.Name, imaging.ErrNotFound)
		}
		if err := codec.Save(r.path(cmd.Path), img); err != nil {
			return fmt.Errorf("save %q: %w", cmd.Path, err)
		}
		r.printf("Saved %s to %s\n", cmd.Name, cmd.Path)
		return nil

	case KindTransform:
		req := cmd.Request
		img, err := r.proc.Run(req)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("Operation: %s, Image name: %s", cmd.Word, req.Source)
		if b, ok := req.Op.(imaging.Brighten); ok {
			line += fmt.Sprintf(", Increment: %d", b.Strength)
		}
		if req.Mask != "" {
			line += ", Mask name: " + req.Mask
		}
		r.printf("%s, New image name: %s (%s)\n", line, req.Dest, img)
		return nil

	default:
		return fmt.Errorf("command %q cannot be executed", cmd.Word)
	}
}

func (r *Runner) path(p string) string {
	if r.Dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.Dir, p)
}

func (r *Runner) printf(format string, args ...any) {
	if r.out == nil {
		return
	}
	fmt.Fprintf(r.out, format, args...)
}
