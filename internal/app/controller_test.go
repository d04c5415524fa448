package app_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"python-quiz/internal/app"
	"python-quiz/internal/domain"
	"python-quiz/internal/loop"
)

func TestStartQuizRequiresName(t *testing.T) {
	ctrl, sched, views := newTestController(t, 3)

	for _, name := range []string{"", "   ", "\t\n"} {
		err := ctrl.StartQuiz(name)
		if !errors.Is(err, domain.ErrNameRequired) {
			t.Fatalf("name %q: expected ErrNameRequired, got %v", name, err)
		}
		st := ctrl.State()
		if st.Screen != app.ScreenWelcome || st.Session.CurrentIndex != 0 || st.Session.Username != "" {
			t.Fatalf("name %q: expected unchanged welcome state, got %+v", name, st)
		}
	}
	if ctrl.TimerRunning() || sched.Pending() != 0 {
		t.Fatalf("expected no countdown on a rejected start")
	}
	last := views.last(t)
	if last.Warning == "" || last.Screen != app.ScreenWelcome {
		t.Fatalf("expected welcome view with warning, got %+v", last)
	}
}

func TestStartQuizEntersFirstQuestion(t *testing.T) {
	ctrl, _, views := newTestController(t, 3)

	if err := ctrl.StartQuiz("  Alice "); err != nil {
		t.Fatalf("start: %v", err)
	}
	st := ctrl.State()
	if st.Screen != app.ScreenQuestion || st.Session.CurrentIndex != 0 || st.Session.Score != 0 {
		t.Fatalf("expected Question(0) with score 0, got %+v", st)
	}
	if st.Session.Username != "Alice" || st.Session.ID == "" {
		t.Fatalf("expected trimmed username and session id, got %+v", st.Session)
	}
	if !ctrl.TimerRunning() || st.Remaining != 30 {
		t.Fatalf("expected a fresh 30s countdown, got running=%v remaining=%d", ctrl.TimerRunning(), st.Remaining)
	}
	v := views.last(t)
	if v.Prompt != "Q1. question 1" || len(v.Options) != domain.OptionsPerQuestion || v.SecondsRemaining != 30 {
		t.Fatalf("unexpected question view %+v", v)
	}
	if v.Warning != "" {
		t.Fatalf("expected warning cleared, got %q", v.Warning)
	}

	if err := ctrl.StartQuiz("Bob"); !errors.Is(err, domain.ErrNotOnWelcome) {
		t.Fatalf("expected ErrNotOnWelcome, got %v", err)
	}
}

func TestAnswersScoreAndAdvance(t *testing.T) {
	ctrl, _, _ := newTestController(t, 3)
	mustStart(t, ctrl)

	if err := ctrl.SubmitAnswer(correctChoice(0)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	st := ctrl.State()
	if st.Session.Score != 1 || st.Session.CurrentIndex != 1 || st.Screen != app.ScreenQuestion {
		t.Fatalf("expected score 1 at Question(1), got %+v", st)
	}

	if err := ctrl.SubmitAnswer(wrongChoice(1)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	st = ctrl.State()
	if st.Session.Score != 1 || st.Session.CurrentIndex != 2 {
		t.Fatalf("expected unchanged score at Question(2), got %+v", st)
	}

	if err := ctrl.SubmitAnswer(correctChoice(2)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	st = ctrl.State()
	if st.Screen != app.ScreenResult || st.Session.CurrentIndex != 3 || st.Session.Score != 2 {
		t.Fatalf("expected result after last question, got %+v", st)
	}
	if ctrl.TimerRunning() {
		t.Fatalf("expected countdown stopped on result screen")
	}
	if err := ctrl.SubmitAnswer(correctChoice(0)); !errors.Is(err, domain.ErrNotInQuestion) {
		t.Fatalf("expected ErrNotInQuestion on result screen, got %v", err)
	}
}

func TestSubmitAnswerOnWelcome(t *testing.T) {
	ctrl, _, _ := newTestController(t, 3)
	if err := ctrl.SubmitAnswer("a"); !errors.Is(err, domain.ErrNotInQuestion) {
		t.Fatalf("expected ErrNotInQuestion, got %v", err)
	}
}

func TestTimeoutAdvancesWithoutScoring(t *testing.T) {
	ctrl, sched, views := newTestController(t, 3)
	mustStart(t, ctrl)

	sched.Advance(29 * time.Second)
	if v := views.last(t); v.SecondsRemaining != 1 || v.QuestionNumber != 1 {
		t.Fatalf("expected 1s left on question 1, got %+v", v)
	}

	sched.Advance(time.Second)
	st := ctrl.State()
	if st.Session.CurrentIndex != 1 || st.Session.Score != 0 {
		t.Fatalf("expected timeout to advance without scoring, got %+v", st)
	}
	if st.Remaining != 30 || sched.Pending() != 1 {
		t.Fatalf("expected a single fresh countdown, remaining=%d pending=%d", st.Remaining, sched.Pending())
	}
}

func TestSevenCorrectThreeTimeouts(t *testing.T) {
	ctrl, sched, views := newTestController(t, 10)
	mustStart(t, ctrl)

	for i := 0; i < 10; i++ {
		if i%3 == 1 {
			sched.Advance(30 * time.Second)
			continue
		}
		if err := ctrl.SubmitAnswer(correctChoice(i)); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	v := views.last(t)
	if v.Screen != app.ScreenResult || v.Result != "7/10" {
		t.Fatalf("expected 7/10 result, got %+v", v)
	}
	if v.Message != "Well done, Alice!\n\nYour Score: 7/10" {
		t.Fatalf("unexpected result message %q", v.Message)
	}
}

func TestAllCorrectNeverTimesOut(t *testing.T) {
	ctrl, sched, views := newTestController(t, 10)
	mustStart(t, ctrl)

	for i := 0; i < 10; i++ {
		sched.Advance(10 * time.Second)
		if err := ctrl.SubmitAnswer(correctChoice(i)); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if sched.Pending() != 0 {
		t.Fatalf("expected no pending tick after the last answer, got %d", sched.Pending())
	}
	sched.Advance(time.Hour)

	for _, v := range views.all {
		if v.Screen == app.ScreenQuestion && v.SecondsRemaining == 0 {
			t.Fatalf("timeout display observed: %+v", v)
		}
	}
	if v := views.last(t); v.Result != "10/10" {
		t.Fatalf("expected 10/10, got %+v", v)
	}
}

func TestAnswerAtLastSecondCancelsTick(t *testing.T) {
	ctrl, sched, _ := newTestController(t, 3)
	mustStart(t, ctrl)

	sched.Advance(29 * time.Second)
	if err := ctrl.SubmitAnswer(wrongChoice(0)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	sched.Advance(time.Second)

	st := ctrl.State()
	if st.Session.CurrentIndex != 1 {
		t.Fatalf("late tick double-advanced the index: %+v", st)
	}
	if st.Remaining != 29 {
		t.Fatalf("expected the new countdown at 29s, got %d", st.Remaining)
	}
}

func TestRestartAfterFinish(t *testing.T) {
	ctrl, _, views := newTestController(t, 2)
	mustStart(t, ctrl)
	_ = ctrl.SubmitAnswer(correctChoice(0))
	_ = ctrl.SubmitAnswer(correctChoice(1))

	if err := ctrl.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	st := ctrl.State()
	if st.Screen != app.ScreenWelcome || st.Session.Score != 0 || st.Session.CurrentIndex != 0 {
		t.Fatalf("expected reset welcome state, got %+v", st)
	}
	if v := views.last(t); v.Username != "Alice" {
		t.Fatalf("expected username kept for the welcome view, got %q", v.Username)
	}

	mustStart(t, ctrl)
	if st := ctrl.State(); st.Screen != app.ScreenQuestion || st.Session.CurrentIndex != 0 {
		t.Fatalf("expected a new run from Question(0), got %+v", st)
	}
}

func TestRestartMidQuestionStopsTimer(t *testing.T) {
	ctrl, sched, _ := newTestController(t, 3)
	mustStart(t, ctrl)
	_ = ctrl.Restart()

	if ctrl.TimerRunning() || sched.Pending() != 0 {
		t.Fatalf("expected countdown cancelled by restart")
	}
	sched.Advance(time.Minute)
	if st := ctrl.State(); st.Screen != app.ScreenWelcome || st.Session.CurrentIndex != 0 {
		t.Fatalf("expected welcome untouched by stale ticks, got %+v", st)
	}
}

func TestExitStopsTimer(t *testing.T) {
	ctrl, sched, _ := newTestController(t, 3)
	exits := 0
	ctrl.OnExit(func() { exits++ })
	mustStart(t, ctrl)

	ctrl.Exit()
	ctrl.Exit()
	if exits != 1 || !ctrl.Exited() {
		t.Fatalf("expected exit hook once, got %d", exits)
	}
	if sched.Pending() != 0 {
		t.Fatalf("expected countdown cancelled on exit")
	}
	sched.Advance(time.Minute)
	if ctrl.State().Session.CurrentIndex != 0 {
		t.Fatalf("expected no advance after exit")
	}
	if err := ctrl.SubmitAnswer(correctChoice(0)); !errors.Is(err, domain.ErrExited) {
		t.Fatalf("expected ErrExited, got %v", err)
	}
	if err := ctrl.Restart(); !errors.Is(err, domain.ErrExited) {
		t.Fatalf("expected ErrExited, got %v", err)
	}
}

type viewLog struct {
	all []app.View
}

func (l *viewLog) last(t *testing.T) app.View {
	t.Helper()
	if len(l.all) == 0 {
		t.Fatalf("nothing rendered")
	}
	return l.all[len(l.all)-1]
}

func newTestController(t *testing.T, questions int) (*app.Controller, *loop.ManualScheduler, *viewLog) {
	t.Helper()
	sched := loop.NewManualScheduler()
	fixed := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	ctrl := app.NewControllerWithClock(testQuiz(questions), sched, 30, func() time.Time { return fixed })
	views := &viewLog{}
	ctrl.OnRender(func(v app.View) { views.all = append(views.all, v) })
	return ctrl, sched, views
}

func mustStart(t *testing.T, ctrl *app.Controller) {
	t.Helper()
	if err := ctrl.StartQuiz("Alice"); err != nil {
		t.Fatalf("start: %v", err)
	}
}

func testQuiz(n int) domain.Quiz {
	quiz := domain.Quiz{ID: "test", Title: "Test Quiz"}
	for i := 0; i < n; i++ {
		quiz.Questions = append(quiz.Questions, domain.Question{
			Prompt:  fmt.Sprintf("question %d", i+1),
			Options: []string{"a", "b", "c", "d"},
			Answer:  correctChoice(i),
		})
	}
	return quiz
}

func correctChoice(i int) string {
	return []string{"a", "b", "c", "d"}[i%4]
}

func wrongChoice(i int) string {
	return []string{"a", "b", "c", "d"}[(i+1)%4]
}
