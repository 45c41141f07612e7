// Package typewriter animates the rotating hero text: each text is typed one
// character at a time, held for a delay, cleared, and followed by the next.
package typewriter

import (
	"time"

	"github.com/cristianoliveira/folio/internal/domain"
	"github.com/cristianoliveira/folio/internal/schedule"
)

const (
	DefaultSpeed = 100 * time.Millisecond
	DefaultDelay = 2000 * time.Millisecond
)

// DefaultTexts are shown until the backend supplies its own.
var DefaultTexts = []string{"Python Developer", "React Specialist", "Java Expert", "Full Stack Wizard"}

// Option configures a Typewriter.
type Option func(*Typewriter)

// WithScheduler sets the scheduler driving the animation.
func WithScheduler(s schedule.Scheduler) Option {
	return func(t *Typewriter) {
		if s != nil {
			t.scheduler = s
		}
	}
}

// WithSpeed sets the delay between typed characters.
func WithSpeed(d time.Duration) Option {
	return func(t *Typewriter) {
		if d > 0 {
			t.speed = d
		}
	}
}

// WithDelay sets how long a complete text stays on screen.
func WithDelay(d time.Duration) Option {
	return func(t *Typewriter) {
		if d > 0 {
			t.delay = d
		}
	}
}

// WithOnChange registers a callback receiving the visible text after each step.
func WithOnChange(fn func(string)) Option {
	return func(t *Typewriter) {
		t.onChange = fn
	}
}

// Typewriter is not safe for concurrent use; deliver scheduler callbacks on
// the owner's goroutine.
type Typewriter struct {
	texts     [][]rune
	speed     time.Duration
	delay     time.Duration
	scheduler schedule.Scheduler
	onChange  func(string)

	textIndex int
	charIndex int
	cancel    schedule.Cancel
}

// New creates a stopped typewriter over DefaultTexts.
func New(opts ...Option) *Typewriter {
	t := &Typewriter{
		speed:     DefaultSpeed,
		delay:     DefaultDelay,
		scheduler: schedule.New(),
	}
	t.setTexts(DefaultTexts)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Configure applies backend settings. Empty text lists keep the current texts
// and timing. The animation restarts from the first text.
func (t *Typewriter) Configure(cfg domain.RotatingTexts) {
	if len(cfg.HeroTexts) == 0 {
		return
	}
	t.setTexts(cfg.HeroTexts)
	if cfg.TypingSpeed > 0 {
		t.speed = time.Duration(cfg.TypingSpeed) * time.Millisecond
	}
	if cfg.DelaySeconds > 0 {
		t.delay = time.Duration(cfg.DelaySeconds * float64(time.Second))
	}
	t.textIndex, t.charIndex = 0, 0
	if t.Running() {
		t.Stop()
		t.Start()
	}
	t.notify()
}

func (t *Typewriter) setTexts(texts []string) {
	t.texts = t.texts[:0]
	for _, s := range texts {
		t.texts = append(t.texts, []rune(s))
	}
}

// Text returns the currently visible prefix.
func (t *Typewriter) Text() string {
	if len(t.texts) == 0 {
		return ""
	}
	return string(t.texts[t.textIndex][:t.charIndex])
}

// Full returns the complete text currently being typed.
func (t *Typewriter) Full() string {
	if len(t.texts) == 0 {
		return ""
	}
	return string(t.texts[t.textIndex])
}

// Step performs one transition and returns the wait before the next one.
func (t *Typewriter) Step() time.Duration {
	if len(t.texts) == 0 {
		return t.delay
	}
	if t.charIndex < len(t.texts[t.textIndex]) {
		t.charIndex++
	} else {
		t.charIndex = 0
		t.textIndex = (t.textIndex + 1) % len(t.texts)
	}
	t.notify()
	return t.wait()
}

func (t *Typewriter) wait() time.Duration {
	if t.charIndex < len(t.texts[t.textIndex]) {
		return t.speed
	}
	return t.delay
}

// Start begins the animation. It is a no-op when already running.
func (t *Typewriter) Start() {
	if t.Running() || len(t.texts) == 0 {
		return
	}
	t.schedule(t.wait())
}

func (t *Typewriter) schedule(d time.Duration) {
	t.cancel = t.scheduler.After(d, func() {
		t.cancel = nil
		t.schedule(t.Step())
	})
}

// Stop cancels the pending step.
func (t *Typewriter) Stop() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// Running reports whether a step is scheduled.
func (t *Typewriter) Running() bool {
	return t.cancel != nil
}

func (t *Typewriter) notify() {
	if t.onChange != nil {
		t.onChange(t.Text())
	}
}
