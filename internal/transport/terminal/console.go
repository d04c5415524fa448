// Package terminal is the interactive text front end for the quiz.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"python-quiz/internal/app"
	"python-quiz/internal/domain"
	"python-quiz/internal/loop"
)

// Console renders views as text and turns input lines into controller
// actions. Render and handle both run on the event loop.
type Console struct {
	ctrl *app.Controller
	out  io.Writer
	last app.View
	seen bool
}

func NewConsole(ctrl *app.Controller, out io.Writer) *Console {
	return &Console{ctrl: ctrl, out: out}
}

// Play runs one interactive quiz until the user exits, input ends or ctx is
// canceled.
func Play(ctx context.Context, quiz domain.Quiz, secondsPerQuestion int, clock clockwork.Clock, in io.Reader, out io.Writer) error {
	ev := loop.New(clock)
	ctrl := app.NewController(quiz, ev, secondsPerQuestion)
	console := NewConsole(ctrl, out)
	ctrl.OnRender(console.Render)
	ctrl.OnExit(ev.Stop)

	ev.Post(ctrl.Show)
	go console.readInput(in, ev)

	err := ev.Run(ctx)
	// the loop is stopped, so nothing else touches the controller
	ctrl.Exit()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *Console) readInput(in io.Reader, ev *loop.Loop) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if !ev.Post(func() { c.handle(line) }) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Msg("reading input failed")
	}
	ev.Post(c.ctrl.Exit)
}

func (c *Console) handle(line string) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "q", "quit", "exit":
		fmt.Fprintln(c.out, "Bye!")
		c.ctrl.Exit()
		return
	}

	switch c.last.Screen {
	case app.ScreenWelcome:
		name := line
		if name == "" {
			name = c.last.Username
		}
		_ = c.ctrl.StartQuiz(name)
	case app.ScreenQuestion:
		choice, ok := c.choice(line)
		if !ok {
			fmt.Fprintf(c.out, "Choose 1-%d.\n> ", len(c.last.Options))
			return
		}
		_ = c.ctrl.SubmitAnswer(choice)
	case app.ScreenResult:
		switch strings.ToLower(line) {
		case "r", "restart":
			_ = c.ctrl.Restart()
		default:
			fmt.Fprint(c.out, "Type r to restart or q to exit.\n> ")
		}
	}
}

// choice maps an option number or the exact option text to an option.
func (c *Console) choice(line string) (string, bool) {
	if n, err := strconv.Atoi(line); err == nil {
		if n >= 1 && n <= len(c.last.Options) {
			return c.last.Options[n-1], true
		}
		return "", false
	}
	for _, opt := range c.last.Options {
		if opt == line {
			return opt, true
		}
	}
	return "", false
}

// Render prints v. Countdown ticks on the same question only rewrite the
// timer line.
func (c *Console) Render(v app.View) {
	tickOnly := c.seen &&
		v.Screen == app.ScreenQuestion &&
		c.last.Screen == app.ScreenQuestion &&
		v.QuestionNumber == c.last.QuestionNumber
	c.last = v
	c.seen = true

	if tickOnly {
		fmt.Fprintf(c.out, "\rTime left: %2d s > ", v.SecondsRemaining)
		return
	}

	var b strings.Builder
	b.WriteString("\n")
	switch v.Screen {
	case app.ScreenWelcome:
		fmt.Fprintf(&b, "=== %s ===\n\nWelcome!\n", v.Title)
		if v.Warning != "" {
			fmt.Fprintf(&b, "! %s\n", v.Warning)
		}
		if v.Username != "" {
			fmt.Fprintf(&b, "%s [%s] (q to exit)\n> ", v.Message, v.Username)
		} else {
			fmt.Fprintf(&b, "%s (q to exit)\n> ", v.Message)
		}
	case app.ScreenQuestion:
		fmt.Fprintf(&b, "%s\n\n", v.Prompt)
		for i, opt := range v.Options {
			fmt.Fprintf(&b, "  %d) %s\n", i+1, opt)
		}
		fmt.Fprintf(&b, "\nTime left: %2d s > ", v.SecondsRemaining)
	case app.ScreenResult:
		fmt.Fprintf(&b, "%s\n\n(r to restart, q to exit)\n> ", v.Message)
	}
	fmt.Fprint(c.out, b.String())
}
