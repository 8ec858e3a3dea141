package assessment

// Score counts the questions whose chosen option matches the answer key.
// Unanswered questions and answers to questions outside the key count as
// incorrect, never as errors.
func Score(userAnswers map[string]string, key map[string]string) int {
	correct := 0
	for question, answer := range key {
		if userAnswers[question] == answer {
			correct++
		}
	}
	return correct
}
