package tutor

import (
	"strings"
	"testing"
)

func TestSystemPersona(t *testing.T) {
	required := []string{"helpful coding assistant", "concise", "code snippets"}
	for _, keyword := range required {
		if !strings.Contains(SystemPersona, keyword) {
			t.Errorf("system persona missing keyword %q", keyword)
		}
	}
}

func TestPersonalizationClauseEmpty(t *testing.T) {
	if got := PersonalizationClause("", nil); got != "" {
		t.Errorf("clause with no context = %q, want empty", got)
	}
}

func TestPersonalizationClauseInterest(t *testing.T) {
	got := PersonalizationClause("Python", nil)
	if !strings.Contains(got, "primary coding language is Python") {
		t.Errorf("clause missing interest: %q", got)
	}
	if strings.Contains(got, "programming concepts") {
		t.Errorf("clause mentions score without one: %q", got)
	}
}

// The score branch is a strict two-way threshold at 2.
func TestPersonalizationClauseScoreThreshold(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "needs more guidance"},
		{2, "needs more guidance"},
		{3, "good understanding"},
		{5, "good understanding"},
	}
	for _, tc := range cases {
		got := PersonalizationClause("Java", &tc.score)
		if !strings.Contains(got, tc.want) {
			t.Errorf("score %d: clause %q missing %q", tc.score, got, tc.want)
		}
	}
}

func TestTutorialPrompt(t *testing.T) {
	got := TutorialPrompt("lists", "beginner", "Python")
	if got != "Provide a beginner tutorial on lists for Python." {
		t.Errorf("unexpected tutorial prompt: %q", got)
	}
}

func TestChallengePrompt(t *testing.T) {
	got := ChallengePrompt("OOP", "advanced", "Java")
	if got != "Generate a advanced coding challenge related to OOP for Java." {
		t.Errorf("unexpected challenge prompt: %q", got)
	}
}

func TestSolutionFeedbackPrompt(t *testing.T) {
	got := SolutionFeedbackPrompt("print('hi')")
	if !strings.Contains(got, "Provide feedback on this solution") {
		t.Errorf("unexpected feedback prompt: %q", got)
	}
	if !strings.Contains(got, "print('hi')") {
		t.Errorf("feedback prompt missing the solution: %q", got)
	}
}
