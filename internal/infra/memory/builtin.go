package memory

import "python-quiz/internal/domain"

// BuiltinQuizID names the quiz shipped with the binary.
const BuiltinQuizID = "python-basics"

// BuiltinQuizzes returns the quizzes available without any backing store.
func BuiltinQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		BuiltinQuizID: pythonBasics(),
	}
}

func pythonBasics() domain.Quiz {
	return domain.Quiz{
		ID:    BuiltinQuizID,
		Title: "Python Quiz",
		Questions: []domain.Question{
			{
				Prompt:  "Which of these is a Python keyword?",
				Options: []string{"range", "def", "Val", "loop"},
				Answer:  "def",
			},
			{
				Prompt:  "Which of the following is a built-in function in Python?",
				Options: []string{"factorial()", "print()", "sqrt()", "seed()"},
				Answer:  "print()",
			},
			{
				Prompt:  "Which is NOT a core data type in Python?",
				Options: []string{"Tuple", "Dictionary", "Lists", "Class"},
				Answer:  "Class",
			},
			{
				Prompt:  "Who developed Python programming language?",
				Options: []string{"Wick Van Rossum", "Rasmus Lerdorf", "Guido Van Rossum", "Niene Stom"},
				Answer:  "Guido Van Rossum",
			},
			{
				Prompt:  "What is the correct extension for Python files?",
				Options: []string{".py", ".python", ".p", ".pl"},
				Answer:  ".py",
			},
			{
				Prompt:  "What does the len() function return?",
				Options: []string{"Number of items", "Length in cm", "Memory size", "None of these"},
				Answer:  "Number of items",
			},
			{
				Prompt:  "Which operator is used for floor division?",
				Options: []string{"/", "//", "%", "**"},
				Answer:  "//",
			},
			{
				Prompt:  "Default value of 'end' in print() is?",
				Options: []string{"space", "tab", `newline (\n)`, "None"},
				Answer:  `newline (\n)`,
			},
			{
				Prompt:  "Which of the following is immutable?",
				Options: []string{"List", "Set", "Tuple", "Dictionary"},
				Answer:  "Tuple",
			},
			{
				Prompt:  "Which statement is used to handle exceptions?",
				Options: []string{"catch", "try-except", "error", "handle"},
				Answer:  "try-except",
			},
		},
	}
}
