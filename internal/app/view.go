package app

import (
	"fmt"

	"python-quiz/internal/domain"
)

// Screen identifies which view is displayed.
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenQuestion
	ScreenResult
)

func (s Screen) String() string {
	switch s {
	case ScreenWelcome:
		return "welcome"
	case ScreenQuestion:
		return "question"
	case ScreenResult:
		return "result"
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

func (s Screen) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// View describes one screen independently of any rendering toolkit.
type View struct {
	Screen           Screen   `json:"screen"`
	Title            string   `json:"title"`
	Username         string   `json:"username,omitempty"`
	Warning          string   `json:"warning,omitempty"`
	QuestionNumber   int      `json:"questionNumber,omitempty"`
	QuestionCount    int      `json:"questionCount"`
	Prompt           string   `json:"prompt,omitempty"`
	Options          []string `json:"options,omitempty"`
	SecondsRemaining int      `json:"secondsRemaining,omitempty"`
	Score            int      `json:"score"`
	Result           string   `json:"result,omitempty"`
	Message          string   `json:"message,omitempty"`
}

// State is the controller state a View is derived from.
type State struct {
	Screen    Screen
	Session   domain.Session
	Remaining int
	Warning   string
}

// Render is a pure function from quiz content and state to a View.
func Render(quiz domain.Quiz, st State) View {
	v := View{
		Screen:        st.Screen,
		Title:         quiz.Title,
		Username:      st.Session.Username,
		Warning:       st.Warning,
		QuestionCount: len(quiz.Questions),
		Score:         st.Session.Score,
	}
	switch st.Screen {
	case ScreenWelcome:
		v.Message = "Enter your name:"
	case ScreenQuestion:
		q := quiz.Questions[st.Session.CurrentIndex]
		v.QuestionNumber = st.Session.CurrentIndex + 1
		v.Prompt = fmt.Sprintf("Q%d. %s", v.QuestionNumber, q.Prompt)
		v.Options = append([]string(nil), q.Options...)
		v.SecondsRemaining = st.Remaining
	case ScreenResult:
		v.Result = fmt.Sprintf("%d/%d", st.Session.Score, len(quiz.Questions))
		v.Message = fmt.Sprintf("Well done, %s!\n\nYour Score: %s", st.Session.Username, v.Result)
	}
	return v
}
