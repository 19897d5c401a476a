package voice

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// Environment passed to voice commands.
const (
	EnvLocale = "KENOTRIX_VOICE_LOCALE"
	EnvRate   = "KENOTRIX_VOICE_RATE"
	EnvPitch  = "KENOTRIX_VOICE_PITCH"
	EnvVoice  = "KENOTRIX_VOICE_NAME"
)

func lookup(argv []string) bool {
	if len(argv) == 0 {
		return false
	}
	_, err := exec.LookPath(argv[0])
	return err == nil
}

// CommandRecognizer runs an external speech-to-text program that records one
// utterance and prints the transcript on stdout. The locale is passed in
// KENOTRIX_VOICE_LOCALE.
type CommandRecognizer struct {
	argv []string
}

// NewCommandRecognizer splits command on whitespace. An empty command is unsupported.
func NewCommandRecognizer(command string) *CommandRecognizer {
	return &CommandRecognizer{argv: strings.Fields(command)}
}

func (r *CommandRecognizer) Supported() bool { return lookup(r.argv) }

func (r *CommandRecognizer) Recognize(ctx context.Context, locale string) (string, error) {
	if !r.Supported() {
		return "", fmt.Errorf("speech recognition command not available")
	}
	cmd := exec.CommandContext(ctx, r.argv[0], r.argv[1:]...)
	cmd.Env = append(os.Environ(), EnvLocale+"="+locale)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	// Only the first line is the final result.
	transcript, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(transcript), nil
}

// CommandSynthesizer runs an external text-to-speech program (for example
// `espeak-ng --stdin`) with the text on stdin. Rate, pitch and voice are
// passed in KENOTRIX_VOICE_* variables. At most one process runs at a time.
type CommandSynthesizer struct {
	argv   []string
	voices []Voice

	mu      sync.Mutex
	current *exec.Cmd
}

func NewCommandSynthesizer(command string, voiceNames []string) *CommandSynthesizer {
	voices := make([]Voice, 0, len(voiceNames))
	for _, name := range voiceNames {
		if name = strings.TrimSpace(name); name != "" {
			voices = append(voices, Voice{Name: name})
		}
	}
	return &CommandSynthesizer{argv: strings.Fields(command), voices: voices}
}

func (s *CommandSynthesizer) Supported() bool { return lookup(s.argv) }

func (s *CommandSynthesizer) Voices() []Voice {
	return append([]Voice(nil), s.voices...)
}

func (s *CommandSynthesizer) Speak(u Utterance) error {
	if !s.Supported() {
		return fmt.Errorf("speech synthesis command not available")
	}
	cmd := exec.Command(s.argv[0], s.argv[1:]...)
	cmd.Stdin = strings.NewReader(u.Text)
	cmd.Env = append(os.Environ(),
		EnvRate+"="+strconv.FormatFloat(u.Rate, 'f', -1, 64),
		EnvPitch+"="+strconv.FormatFloat(u.Pitch, 'f', -1, 64),
	)
	if u.Voice != nil {
		cmd.Env = append(cmd.Env, EnvVoice+"="+u.Voice.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("could not start speech synthesis: %w", err)
	}
	s.current = cmd
	go s.wait(cmd)
	return nil
}

func (s *CommandSynthesizer) wait(cmd *exec.Cmd) {
	if err := cmd.Wait(); err != nil {
		slog.Debug("Speech synthesis process ended", "error", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == cmd {
		s.current = nil
	}
}

func (s *CommandSynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Speaking reports whether an utterance is playing.
func (s *CommandSynthesizer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

func (s *CommandSynthesizer) stopLocked() {
	if s.current == nil || s.current.Process == nil {
		return
	}
	if err := s.current.Process.Kill(); err != nil {
		slog.Debug("Could not stop speech synthesis process", "error", err)
	}
	s.current = nil
}
