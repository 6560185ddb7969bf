package script

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-transform/internal/imaging"
)

const koalaPPM = `P3
2 2
255
96 102 107
63 66 57
119 115 109
104 96 88
`

// newTestRunner returns a runner rooted at a temp dir holding koala.ppm,
// plus the buffer it reports to.
func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "koala.ppm"), []byte(koalaPPM), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRunner(imaging.NewProcessor(imaging.NewStore()), &out, logger)
	r.Dir = dir
	return r, &out
}

func TestRunner_Run(t *testing.T) {
	r, out := newTestRunner(t)

	script := `# brighten and shrink
load koala.ppm koala

brighten koala 50 bright
downscale 0.5 0.5 bright small
save small.ppm small
`
	stats, err := r.Run(context.Background(), strings.NewReader(script))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Executed != 4 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want 4 executed, 0 failed", stats)
	}

	data, err := os.ReadFile(filepath.Join(r.Dir, "small.ppm"))
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if want := "P3\n1 1\n255\n146\n152\n157\n"; string(data) != want {
		t.Errorf("small.ppm = %q, want %q", data, want)
	}

	for _, want := range []string{
		"Loaded koala.ppm as koala (2x2 (max 255))",
		"Operation: brighten, Image name: koala, Increment: 50, New image name: bright (2x2 (max 255))",
		"Operation: downscale, Image name: bright, New image name: small (1x1 (max 255))",
		"Saved small to small.ppm",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunner_Run_Mask(t *testing.T) {
	r, out := newTestRunner(t)

	script := `load koala.ppm koala
load koala.ppm mask
greyscale koala mask grey
`
	if _, err := r.Run(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := "Operation: greyscale, Image name: koala, Mask name: mask, New image name: grey"
	if !strings.Contains(out.String(), want) {
		t.Errorf("output missing %q:\n%s", want, out.String())
	}

	// Every mask red value is below the threshold, so every pixel changes.
	grey, _ := r.proc.Store().Get("grey")
	p, _ := grey.At(0, 0)
	if p.R != p.G || p.G != p.B {
		t.Errorf("pixel (0,0) = %+v, want grey", p)
	}
}

func TestRunner_Run_ContinuesAfterFailure(t *testing.T) {
	r, out := newTestRunner(t)

	script := `load koala.ppm koala
blur nope soft
rotate koala turned
vertical-flip koala flipped
`
	stats, err := r.Run(context.Background(), strings.NewReader(script))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Executed != 4 || stats.Failed != 2 {
		t.Errorf("stats = %+v, want 4 executed, 2 failed", stats)
	}
	if !r.proc.Store().Has("flipped") {
		t.Error("command after a failure did not run")
	}
	if r.proc.Store().Has("soft") {
		t.Error("failed blur stored a result")
	}
	if !strings.Contains(out.String(), "line 2:") || !strings.Contains(out.String(), "line 3:") {
		t.Errorf("failures not reported with line numbers:\n%s", out.String())
	}
}

func TestRunner_Run_Strict(t *testing.T) {
	r, _ := newTestRunner(t)
	r.Strict = true

	script := `load koala.ppm koala
brighten nope 10 bright
vertical-flip koala flipped
`
	stats, err := r.Run(context.Background(), strings.NewReader(script))
	if !errors.Is(err, imaging.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if stats.Executed != 2 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 2 executed, 1 failed", stats)
	}
	if r.proc.Store().Has("flipped") {
		t.Error("strict run continued past a failure")
	}
}

func TestRunner_Run_Quit(t *testing.T) {
	r, out := newTestRunner(t)

	script := `load koala.ppm koala
q
vertical-flip koala flipped
`
	stats, err := r.Run(context.Background(), strings.NewReader(script))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Executed != 1 {
		t.Errorf("executed %d commands, want 1", stats.Executed)
	}
	if r.proc.Store().Has("flipped") {
		t.Error("command after quit ran")
	}
	if !strings.Contains(out.String(), "Image processor quit") {
		t.Errorf("quit not reported:\n%s", out.String())
	}
}

func TestRunner_Run_Cancelled(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx, strings.NewReader("load koala.ppm koala\n"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if r.proc.Store().Has("koala") {
		t.Error("cancelled run executed a command")
	}
}

func TestRunner_Exec_SaveMissing(t *testing.T) {
	r, _ := newTestRunner(t)
	err := r.Exec(Command{Kind: KindSave, Word: "save", Path: "x.ppm", Name: "ghost"})
	if !errors.Is(err, imaging.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestRunner_AbsolutePath(t *testing.T) {
	r, _ := newTestRunner(t)
	abs := filepath.Join(r.Dir, "koala.ppm")
	r.Dir = t.TempDir()

	if err := r.Exec(Command{Kind: KindLoad, Word: "load", Path: abs, Name: "koala"}); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if !r.proc.Store().Has("koala") {
		t.Error("absolute load path was not honoured")
	}
}
