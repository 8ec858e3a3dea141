package chat

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/techitup/backend/internal/flow"
	"github.com/techitup/backend/internal/models"
	"github.com/techitup/backend/internal/tutor"
)

type fakeUserStore struct {
	user *models.User
}

func (f *fakeUserStore) GetByID(userID int64) (*models.User, error) {
	return f.user, nil
}

// fakeLog counts writes so tests can assert nothing was persisted on a
// failed exchange.
type fakeLog struct {
	questions    int
	challenges   int
	votes        []models.FeedbackVote
	lastQuestion string
	lastAnswer   string
}

func (f *fakeLog) LogQuestion(userID int64, question, answer string) error {
	f.questions++
	f.lastQuestion = question
	f.lastAnswer = answer
	return nil
}

func (f *fakeLog) LogChallenge(userID int64, challenge, solution, feedback string) error {
	f.challenges++
	return nil
}

func (f *fakeLog) LogFeedback(userID int64, vote models.FeedbackVote) error {
	f.votes = append(f.votes, vote)
	return nil
}

type fakeTutor struct {
	reply string
	err   error
	calls int
}

func (f *fakeTutor) Ask(ctx context.Context, prompt, interest string, score *int) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeTutor) Tutorial(ctx context.Context, topic, level, language string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeTutor) Challenge(ctx context.Context, topic, level, language string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeTutor) SolutionFeedback(ctx context.Context, solution string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func gradedUser() *models.User {
	score := 4
	return &models.User{ID: 1, Username: "alice", Interest: "Python", AssessmentScore: &score}
}

func newTestHandler(user *models.User, logs *fakeLog, tut *fakeTutor) (*Handler, *flow.Registry) {
	sessions := flow.NewRegistry()
	return NewHandler(&fakeUserStore{user: user}, logs, tut, sessions), sessions
}

func doJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), "user_id", int64(1)))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestAskRequiresCompletedAssessment(t *testing.T) {
	user := &models.User{ID: 1, Username: "alice", Interest: "Python"}
	h, _ := newTestHandler(user, &fakeLog{}, &fakeTutor{reply: "answer"})

	w := doJSON(t, h.Ask, `{"message":"What is a slice?"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestAskServiceFaultWritesNoLog(t *testing.T) {
	logs := &fakeLog{}
	tut := &fakeTutor{err: fmt.Errorf("%w: connection refused", tutor.ErrServiceUnavailable)}
	h, sessions := newTestHandler(gradedUser(), logs, tut)

	w := doJSON(t, h.Ask, `{"message":"What is a slice?"}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if logs.questions != 0 {
		t.Errorf("logged %d questions, want 0 after a service fault", logs.questions)
	}

	sess, _ := sessions.Get(1)
	if len(sess.Conversation) != 0 {
		t.Errorf("transcript has %d messages, want 0 after a service fault", len(sess.Conversation))
	}
}

func TestAskLogsAfterSuccess(t *testing.T) {
	logs := &fakeLog{}
	h, sessions := newTestHandler(gradedUser(), logs, &fakeTutor{reply: "A slice is a view over an array."})

	// Pre-collected feedback from a previous answer resets on a new one.
	sess := sessions.GetOrStart(1, "alice", flow.PageChat)
	sess.FeedbackCollected = true

	w := doJSON(t, h.Ask, `{"message":"What is a slice?"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if logs.questions != 1 || logs.lastQuestion != "What is a slice?" {
		t.Errorf("logged = %d question(s) (%q), want the asked question recorded once", logs.questions, logs.lastQuestion)
	}
	if len(sess.Conversation) != 2 {
		t.Fatalf("transcript has %d messages, want 2", len(sess.Conversation))
	}
	if sess.Conversation[0].Role != "user" || sess.Conversation[1].Role != "chatbot" {
		t.Errorf("transcript roles = %q, %q", sess.Conversation[0].Role, sess.Conversation[1].Role)
	}
	if sess.FeedbackCollected {
		t.Error("a fresh answer should be open for feedback again")
	}
}

func TestAskRejectsDuplicateAnywhereInTranscript(t *testing.T) {
	logs := &fakeLog{}
	tut := &fakeTutor{reply: "answer"}
	h, sessions := newTestHandler(gradedUser(), logs, tut)

	sess := sessions.GetOrStart(1, "alice", flow.PageChat)
	sess.Conversation = []models.ChatMessage{
		{Role: "user", Content: "What is a slice?"},
		{Role: "chatbot", Content: "A slice is a view over an array."},
	}

	// Same text as an earlier question.
	w := doJSON(t, h.Ask, `{"message":"What is a slice?"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 for a repeated question", w.Code)
	}

	// Same text as an earlier answer counts as a duplicate too.
	w = doJSON(t, h.Ask, `{"message":"A slice is a view over an array."}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 for text already in the transcript", w.Code)
	}

	if tut.calls != 0 {
		t.Errorf("tutor called %d times, want 0 for duplicates", tut.calls)
	}
	if logs.questions != 0 {
		t.Errorf("logged %d questions, want 0 for duplicates", logs.questions)
	}
}

func TestVoteOncePerAnswer(t *testing.T) {
	logs := &fakeLog{}
	h, sessions := newTestHandler(gradedUser(), logs, &fakeTutor{})

	sess := sessions.GetOrStart(1, "alice", flow.PageChat)
	sess.LastQuestion = "What is a slice?"
	sess.LastAnswer = "A slice is a view over an array."

	w := doJSON(t, h.Vote, `{"helpful":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(logs.votes) != 1 || !logs.votes[0].Helpful || logs.votes[0].Question != sess.LastQuestion {
		t.Fatalf("votes = %+v, want one helpful vote on the last exchange", logs.votes)
	}

	w = doJSON(t, h.Vote, `{"helpful":false}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("second vote: status = %d, want 409", w.Code)
	}
	if len(logs.votes) != 1 {
		t.Errorf("votes = %d, want still 1 after a rejected re-vote", len(logs.votes))
	}
}

func TestVoteWithoutAnswer(t *testing.T) {
	h, _ := newTestHandler(gradedUser(), &fakeLog{}, &fakeTutor{})

	w := doJSON(t, h.Vote, `{"helpful":true}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestSubmitSolutionLoggedOnlyOnSuccess(t *testing.T) {
	logs := &fakeLog{}
	tut := &fakeTutor{err: fmt.Errorf("%w: timeout", tutor.ErrServiceUnavailable)}
	h, sessions := newTestHandler(gradedUser(), logs, tut)

	sess := sessions.GetOrStart(1, "alice", flow.PageChat)
	sess.Challenge = "Write a function that reverses a string."

	w := doJSON(t, h.SubmitSolution, `{"solution":"def rev(s): return s[::-1]"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if logs.challenges != 0 {
		t.Errorf("logged %d challenges, want 0 after a service fault", logs.challenges)
	}
	if sess.SolutionSubmitted {
		t.Error("a failed submission should not consume the one-shot flag")
	}

	tut.err = nil
	tut.reply = "Looks correct."
	w = doJSON(t, h.SubmitSolution, `{"solution":"def rev(s): return s[::-1]"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("retry: status = %d, want 200", w.Code)
	}
	if logs.challenges != 1 {
		t.Errorf("logged %d challenges, want 1", logs.challenges)
	}

	w = doJSON(t, h.SubmitSolution, `{"solution":"def rev(s): return s[::-1]"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("resubmit: status = %d, want 409", w.Code)
	}
	if logs.challenges != 1 {
		t.Errorf("logged %d challenges, want still 1 after a rejected resubmit", logs.challenges)
	}
}

func TestSubmitSolutionWithoutChallenge(t *testing.T) {
	h, _ := newTestHandler(gradedUser(), &fakeLog{}, &fakeTutor{reply: "ok"})

	w := doJSON(t, h.SubmitSolution, `{"solution":"print(1)"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
}

func TestChallengeArmsSubmission(t *testing.T) {
	h, sessions := newTestHandler(gradedUser(), &fakeLog{}, &fakeTutor{reply: "Reverse a string."})

	sess := sessions.GetOrStart(1, "alice", flow.PageChat)
	sess.SolutionSubmitted = true

	w := doJSON(t, h.Challenge, `{"language":"Python","topic":"strings","level":"beginner"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if sess.Challenge != "Reverse a string." {
		t.Errorf("challenge = %q", sess.Challenge)
	}
	if sess.SolutionSubmitted {
		t.Error("a new challenge should accept a fresh solution")
	}
}

func TestGenerateRequestValidation(t *testing.T) {
	h, _ := newTestHandler(gradedUser(), &fakeLog{}, &fakeTutor{reply: "ok"})

	cases := []string{
		`{"topic":"strings","level":"beginner"}`,
		`{"language":"Python","level":"beginner"}`,
		`{"language":"Python","topic":"strings","level":"expert"}`,
	}
	for _, body := range cases {
		w := doJSON(t, h.Tutorial, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
	}
}
