// Package audio is the glue between the interview flow and the host's
// media tooling. Playback and capture shell out to whatever system
// player/recorder is installed; everything behind the two interfaces so
// the session screen (and its tests) never touch a real device.
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

// ErrNoPlayer indicates no usable playback command was found on PATH.
var ErrNoPlayer = errors.New("no audio player available (tried afplay, ffplay, mpv)")

// Player plays one audio payload to completion. Implementations must
// serialize: a second Play must not start before the previous one has
// finished or errored, so narrations never overlap.
type Player interface {
	Play(ctx context.Context, data []byte) error
}

// playerCandidates lists playback commands in preference order, with
// the flags that make them exit when the file ends.
var playerCandidates = [][]string{
	{"afplay"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"mpv", "--no-video", "--really-quiet"},
}

// ExecPlayer plays audio by writing it to a temp file and running a
// system player. A mutex serializes playback.
type ExecPlayer struct {
	mu      sync.Mutex
	command []string
}

// NewExecPlayer resolves the first available system player. Returns
// ErrNoPlayer when none is installed; callers treat that as narration
// disabled, not as a fatal condition.
func NewExecPlayer() (*ExecPlayer, error) {
	for _, cand := range playerCandidates {
		if _, err := exec.LookPath(cand[0]); err == nil {
			return &ExecPlayer{command: cand}, nil
		}
	}
	return nil, ErrNoPlayer
}

// NewExecPlayerCommand builds a player around an explicit command,
// bypassing PATH probing. Used when config overrides the player.
func NewExecPlayerCommand(command ...string) *ExecPlayer {
	return &ExecPlayer{command: command}
}

// Play blocks until the audio has finished rendering or the context is
// canceled. Concurrent calls queue behind the mutex.
func (p *ExecPlayer) Play(ctx context.Context, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	path := filepath.Join(os.TempDir(), "intervueai-"+uuid.New().String()+".mp3")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write playback file: %w", err)
	}
	defer os.Remove(path)

	args := append(append([]string{}, p.command[1:]...), path)
	cmd := exec.CommandContext(ctx, p.command[0], args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("play audio: %w", err)
	}
	return nil
}

// NopPlayer discards audio immediately. Used when narration is
// disabled.
type NopPlayer struct{}

func (NopPlayer) Play(context.Context, []byte) error { return nil }
