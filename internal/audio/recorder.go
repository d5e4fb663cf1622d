package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrNoRecorder indicates no usable capture command was found on PATH.
	ErrNoRecorder = errors.New("no audio recorder available (tried sox, ffmpeg, arecord)")

	// ErrAlreadyRecording rejects a second Start while a cycle is active.
	ErrAlreadyRecording = errors.New("a recording is already in progress")

	// ErrNotRecording rejects Stop without a matching Start.
	ErrNotRecording = errors.New("no recording in progress")
)

// Recording is one captured audio blob, ready for transcription.
type Recording struct {
	Data     []byte
	Filename string
}

// Empty reports whether the cycle captured no audio. An empty recording
// is a no-op for the caller, not an error.
func (r Recording) Empty() bool {
	return len(r.Data) == 0
}

// Recorder captures microphone audio. One cycle (Start then Stop) may
// be active at a time.
type Recorder interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) (Recording, error)
}

// recorderCandidates lists capture commands in preference order. Each
// records from the default input device into the output path appended
// as the final argument, until interrupted.
var recorderCandidates = [][]string{
	{"sox", "-d", "-c", "1", "-r", "16000"},
	{"ffmpeg", "-y", "-loglevel", "quiet", "-f", "pulse", "-i", "default", "-ac", "1", "-ar", "16000"},
	{"arecord", "-q", "-c", "1", "-r", "16000", "-f", "S16_LE"},
}

// ExecRecorder captures audio by running a system recorder writing to a
// temp WAV file, stopped via interrupt. A mutex guards the cycle state:
// Start runs on the UI loop while Stop runs in a command goroutine.
type ExecRecorder struct {
	command []string

	mu   sync.Mutex
	cmd  *exec.Cmd
	path string
}

// NewExecRecorder resolves the first available system recorder.
func NewExecRecorder() (*ExecRecorder, error) {
	for _, cand := range recorderCandidates {
		if _, err := exec.LookPath(cand[0]); err == nil {
			return &ExecRecorder{command: cand}, nil
		}
	}
	return nil, ErrNoRecorder
}

// NewExecRecorderCommand builds a recorder around an explicit command.
func NewExecRecorderCommand(command ...string) *ExecRecorder {
	return &ExecRecorder{command: command}
}

// Start launches the capture process.
func (r *ExecRecorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return ErrAlreadyRecording
	}

	r.path = filepath.Join(os.TempDir(), "intervueai-rec-"+uuid.New().String()+".wav")
	args := append(append([]string{}, r.command[1:]...), r.path)
	cmd := exec.CommandContext(ctx, r.command[0], args...)
	if err := cmd.Start(); err != nil {
		r.path = ""
		return fmt.Errorf("start recorder: %w", err)
	}
	r.cmd = cmd
	return nil
}

// Stop interrupts the capture process and returns whatever was
// captured. A cycle that produced no audio returns an empty Recording
// and no error.
func (r *ExecRecorder) Stop(_ context.Context) (Recording, error) {
	r.mu.Lock()
	cmd, path := r.cmd, r.path
	r.cmd = nil
	r.path = ""
	r.mu.Unlock()

	if cmd == nil {
		return Recording{}, ErrNotRecording
	}
	defer os.Remove(path)

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		cmd.Process.Kill()
	}
	// Recorders exit non-zero on interrupt; only the captured file
	// matters.
	_ = cmd.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Recording{}, nil
		}
		return Recording{}, fmt.Errorf("read recording: %w", err)
	}
	if len(data) == 0 {
		return Recording{}, nil
	}
	return Recording{Data: data, Filename: "answer.wav"}, nil
}
