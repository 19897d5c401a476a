// Package voice wraps speech-to-text and text-to-speech capabilities.
//
// Capabilities are providers with an explicit Supported query; the Adapter
// degrades gracefully when one is missing.
package voice

import (
	"context"
	"strings"
	"sync"
)

// UnsupportedRecognitionNotice is surfaced when speech recognition is unavailable.
const UnsupportedRecognitionNotice = "Voice input is not supported on this system."

// Recognizer provides single-utterance speech-to-text.
type Recognizer interface {
	Supported() bool
	// Recognize captures one utterance (non-continuous, final results only)
	// and returns its transcript.
	Recognize(ctx context.Context, locale string) (string, error)
}

// Voice is a synthesis voice offered by the platform.
type Voice struct {
	Name   string `json:"name"`
	Locale string `json:"locale,omitempty"`
}

// Utterance is a synthesis request. A nil Voice selects the platform default.
type Utterance struct {
	Text  string
	Rate  float64
	Pitch float64
	Voice *Voice
}

// Synthesizer provides text-to-speech with at most one utterance playing.
type Synthesizer interface {
	Supported() bool
	Voices() []Voice
	// Speak starts playback and returns without waiting for it to finish.
	Speak(u Utterance) error
	// Cancel stops the current utterance, if any.
	Cancel()
}

// Notifier surfaces a notice to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

type Options struct {
	Locale         string
	PreferredVoice string
	Rate           float64
	Pitch          float64
}

// DefaultOptions match the browser defaults of the web client.
func DefaultOptions() Options {
	return Options{Locale: "en-US", PreferredVoice: "Google US English", Rate: 1.0, Pitch: 1.0}
}

type Adapter struct {
	rec    Recognizer
	syn    Synthesizer
	notify Notifier
	opts   Options
}

// NewAdapter wires the capability providers. Either provider may be nil,
// which is the same as unsupported.
func NewAdapter(rec Recognizer, syn Synthesizer, notifier Notifier, opts Options) *Adapter {
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	return &Adapter{rec: rec, syn: syn, notify: notifier, opts: opts}
}

// Capabilities describes what the adapter can do.
type Capabilities struct {
	Recognition bool    `json:"recognition"`
	Synthesis   bool    `json:"synthesis"`
	Locale      string  `json:"locale"`
	Voices      []Voice `json:"voices"`
}

func (a *Adapter) Capabilities() Capabilities {
	caps := Capabilities{
		Recognition: a.canRecognize(),
		Synthesis:   a.canSynthesize(),
		Locale:      a.opts.Locale,
		Voices:      []Voice{},
	}
	if caps.Synthesis {
		caps.Voices = append(caps.Voices, a.syn.Voices()...)
	}
	return caps
}

func (a *Adapter) canRecognize() bool  { return a.rec != nil && a.rec.Supported() }
func (a *Adapter) canSynthesize() bool { return a.syn != nil && a.syn.Supported() }

// Session is an active recognition.
type Session struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop cancels the recognition. onEnd still runs exactly once.
func (s *Session) Stop() { s.cancel() }

// Done is closed after onEnd has run.
func (s *Session) Done() <-chan struct{} { return s.done }

// StartListening runs one recognition. onResult receives a non-empty
// transcript; onEnd is called exactly once however the session ends. When
// recognition is unsupported the user is notified, onEnd runs immediately and
// the returned session is nil.
func (a *Adapter) StartListening(onResult func(string), onEnd func()) *Session {
	var endOnce sync.Once
	end := func() {
		endOnce.Do(func() {
			if onEnd != nil {
				onEnd()
			}
		})
	}

	if !a.canRecognize() {
		a.notify.Notify(UnsupportedRecognitionNotice)
		end()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(s.done)
		defer cancel()
		defer end()
		transcript, err := a.rec.Recognize(ctx, a.opts.Locale)
		if err != nil {
			return
		}
		if transcript = strings.TrimSpace(transcript); transcript != "" && onResult != nil {
			onResult(transcript)
		}
	}()
	return s
}

var markdownStripper = strings.NewReplacer("*", "", "#", "", "_", "", "`", "")

// CleanText removes markdown punctuation that reads badly aloud.
func CleanText(text string) string {
	return markdownStripper.Replace(text)
}

// SpeakText cancels any current utterance and speaks text. It is a no-op
// when synthesis is unsupported.
func (a *Adapter) SpeakText(text string) error {
	if !a.canSynthesize() {
		return nil
	}
	a.syn.Cancel()

	u := Utterance{Text: CleanText(text), Rate: a.opts.Rate, Pitch: a.opts.Pitch}
	if v, ok := selectVoice(a.syn.Voices(), a.opts.PreferredVoice); ok {
		u.Voice = &v
	}
	return a.syn.Speak(u)
}

// selectVoice picks the first voice whose name contains preferred, else the first voice.
func selectVoice(voices []Voice, preferred string) (Voice, bool) {
	if preferred != "" {
		for _, v := range voices {
			if strings.Contains(v.Name, preferred) {
				return v, true
			}
		}
	}
	if len(voices) > 0 {
		return voices[0], true
	}
	return Voice{}, false
}
