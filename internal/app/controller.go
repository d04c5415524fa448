// Package app holds the screen controller: the welcome/question/result
// state machine and its per-question countdown.
package app

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"python-quiz/internal/countdown"
	"python-quiz/internal/domain"
	"python-quiz/internal/loop"
)

// DefaultSecondsPerQuestion is the countdown used when none is configured.
const DefaultSecondsPerQuestion = 30

const nameWarning = "Please enter your name to start."

// Controller owns the quiz session and drives the countdown. All methods must
// be called from the goroutine that runs the scheduler's event loop.
type Controller struct {
	quiz    domain.Quiz
	seconds int
	timer   *countdown.Timer
	now     func() time.Time
	screen  Screen
	session domain.Session
	warning string
	exited  bool
	render  func(View)
	onExit  func()
}

// NewController returns a controller on the Welcome screen. quiz must
// already be validated.
func NewController(quiz domain.Quiz, sched loop.Scheduler, secondsPerQuestion int) *Controller {
	if secondsPerQuestion <= 0 {
		secondsPerQuestion = DefaultSecondsPerQuestion
	}
	c := &Controller{
		quiz:    quiz,
		seconds: secondsPerQuestion,
		now:     time.Now,
		screen:  ScreenWelcome,
	}
	c.timer = countdown.New(sched, c.onTick, c.onTimeout)
	return c
}

// NewControllerWithClock is test-only for deterministic session timestamps.
func NewControllerWithClock(quiz domain.Quiz, sched loop.Scheduler, secondsPerQuestion int, now func() time.Time) *Controller {
	c := NewController(quiz, sched, secondsPerQuestion)
	c.now = now
	return c
}

// OnRender registers the sink that receives a View after every change.
func (c *Controller) OnRender(fn func(View)) {
	c.render = fn
}

// OnExit registers the hook run once by Exit.
func (c *Controller) OnExit(fn func()) {
	c.onExit = fn
}

// Show renders the current view without changing state.
func (c *Controller) Show() {
	c.publish()
}

// View returns the view for the current state.
func (c *Controller) View() View {
	return Render(c.quiz, c.State())
}

// State returns a copy of the controller state.
func (c *Controller) State() State {
	return State{
		Screen:    c.screen,
		Session:   c.session,
		Remaining: c.timer.Remaining(),
		Warning:   c.warning,
	}
}

// TimerRunning reports whether a countdown is active.
func (c *Controller) TimerRunning() bool {
	return c.timer.Running()
}

// StartQuiz begins a new session for name and enters the first question.
func (c *Controller) StartQuiz(name string) error {
	if c.exited {
		return domain.ErrExited
	}
	if c.screen != ScreenWelcome {
		return domain.ErrNotOnWelcome
	}
	name = strings.TrimSpace(name)
	if name == "" {
		c.warning = nameWarning
		log.Warn().Msg("quiz start rejected: empty name")
		c.publish()
		return domain.ErrNameRequired
	}

	c.warning = ""
	c.session = domain.Session{
		ID:        uuid.NewString(),
		Username:  name,
		StartedAt: c.now(),
	}
	log.Info().
		Str("session_id", c.session.ID).
		Str("quiz_id", c.quiz.ID).
		Str("username", name).
		Int("questions", len(c.quiz.Questions)).
		Msg("quiz started")
	c.enterCurrent()
	return nil
}

// SubmitAnswer scores choice against the displayed question and advances.
func (c *Controller) SubmitAnswer(choice string) error {
	if c.exited {
		return domain.ErrExited
	}
	if c.screen != ScreenQuestion {
		return domain.ErrNotInQuestion
	}
	// cancel the tick before anything else so a queued timeout is dropped
	c.timer.Stop()

	correct := c.quiz.Questions[c.session.CurrentIndex].IsCorrect(choice)
	log.Debug().
		Str("session_id", c.session.ID).
		Int("question", c.session.CurrentIndex+1).
		Bool("correct", correct).
		Msg("answer submitted")
	c.resolve(correct)
	return nil
}

// onTimeout is the countdown's expiry callback.
func (c *Controller) onTimeout() {
	if c.exited || c.screen != ScreenQuestion {
		return
	}
	log.Debug().
		Str("session_id", c.session.ID).
		Int("question", c.session.CurrentIndex+1).
		Msg("question timed out")
	c.resolve(false)
}

// Restart drops the session progress and returns to Welcome. The username
// is kept so the welcome view can pre-fill it.
func (c *Controller) Restart() error {
	if c.exited {
		return domain.ErrExited
	}
	c.timer.Stop()
	log.Info().
		Str("session_id", c.session.ID).
		Int("score", c.session.Score).
		Msg("quiz restarted")
	c.session = domain.Session{Username: c.session.Username}
	c.warning = ""
	c.screen = ScreenWelcome
	c.publish()
	return nil
}

// Exit stops the countdown and runs the exit hook. Further actions fail.
func (c *Controller) Exit() {
	if c.exited {
		return
	}
	c.timer.Stop()
	c.exited = true
	log.Info().Str("session_id", c.session.ID).Msg("quiz exited")
	if c.onExit != nil {
		c.onExit()
	}
}

// Exited reports whether Exit was called.
func (c *Controller) Exited() bool {
	return c.exited
}

func (c *Controller) resolve(scored bool) {
	c.timer.Stop()
	if scored {
		c.session.Score++
	}
	c.session.CurrentIndex++
	c.enterCurrent()
}

// enterCurrent shows the question at CurrentIndex or the result once every
// question has been resolved.
func (c *Controller) enterCurrent() {
	c.timer.Stop()
	if c.session.CurrentIndex >= len(c.quiz.Questions) {
		c.screen = ScreenResult
		log.Info().
			Str("session_id", c.session.ID).
			Int("score", c.session.Score).
			Int("questions", len(c.quiz.Questions)).
			Dur("elapsed", c.now().Sub(c.session.StartedAt)).
			Msg("quiz finished")
		c.publish()
		return
	}
	c.screen = ScreenQuestion
	// Start renders the question through onTick.
	c.timer.Start(c.seconds)
}

func (c *Controller) onTick(int) {
	if c.screen == ScreenQuestion {
		c.publish()
	}
}

func (c *Controller) publish() {
	if c.render != nil {
		c.render(c.View())
	}
}
