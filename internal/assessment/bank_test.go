package assessment

import "testing"

func TestBankHasFiveCategories(t *testing.T) {
	if len(Categories) != 5 {
		t.Fatalf("expected 5 interest categories, got %d", len(Categories))
	}
	for _, interest := range Categories {
		if !KnownInterest(interest) {
			t.Errorf("category %q has no question bank", interest)
		}
	}
}

func TestEveryCategoryHasFiveQuestions(t *testing.T) {
	for _, interest := range Categories {
		questions, err := QuestionsFor(interest)
		if err != nil {
			t.Fatalf("QuestionsFor(%q): %v", interest, err)
		}
		if len(questions) != 5 {
			t.Errorf("%s: expected 5 questions, got %d", interest, len(questions))
		}
		for _, q := range questions {
			if len(q.Options) != 4 {
				t.Errorf("%s: question %q has %d options, want 4", interest, q.Text, len(q.Options))
			}
		}
	}
}

func TestAnswerKeyMatchesBank(t *testing.T) {
	for _, interest := range Categories {
		questions, err := QuestionsFor(interest)
		if err != nil {
			t.Fatalf("QuestionsFor(%q): %v", interest, err)
		}
		key, err := AnswerKey(interest)
		if err != nil {
			t.Fatalf("AnswerKey(%q): %v", interest, err)
		}
		if len(key) != len(questions) {
			t.Errorf("%s: key has %d entries, bank has %d questions", interest, len(key), len(questions))
		}
		for _, q := range questions {
			answer, ok := key[q.Text]
			if !ok {
				t.Errorf("%s: question %q missing from answer key", interest, q.Text)
				continue
			}
			found := false
			for _, opt := range q.Options {
				if opt == answer {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%s: correct answer %q is not among the options of %q", interest, answer, q.Text)
			}
		}
	}
}

func TestUnknownInterest(t *testing.T) {
	if KnownInterest("COBOL") {
		t.Error("COBOL should not be a known interest")
	}
	if _, err := QuestionsFor("COBOL"); err != ErrUnknownInterest {
		t.Errorf("QuestionsFor(COBOL) error = %v, want ErrUnknownInterest", err)
	}
	if _, err := AnswerKey("COBOL"); err != ErrUnknownInterest {
		t.Errorf("AnswerKey(COBOL) error = %v, want ErrUnknownInterest", err)
	}
}
