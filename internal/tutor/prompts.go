package tutor

import "fmt"

// SystemPersona fixes the assistant's register for every completion call.
const SystemPersona = "You are a helpful coding assistant. Provide a concise answer with code snippets (where necessary)."

// PersonalizationClause builds the context prefix prepended to chat
// prompts. The score branch is a strict two-way threshold at 2, not a
// scale.
func PersonalizationClause(interest string, score *int) string {
	clause := ""
	if interest != "" {
		clause += fmt.Sprintf("As a reminder, the user's primary coding language is %s. ", interest)
	}
	if score != nil {
		if *score > 2 {
			clause += "The user has a good understanding of basic programming concepts. "
		} else {
			clause += "The user needs more guidance on basic programming concepts. "
		}
	}
	return clause
}

func TutorialPrompt(topic, level, language string) string {
	return fmt.Sprintf("Provide a %s tutorial on %s for %s.", level, topic, language)
}

func ChallengePrompt(topic, level, language string) string {
	return fmt.Sprintf("Generate a %s coding challenge related to %s for %s.", level, topic, language)
}

func SolutionFeedbackPrompt(solution string) string {
	return fmt.Sprintf("Provide feedback on this solution for this challenge: '%s'", solution)
}
