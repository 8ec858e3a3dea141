// Package flow is the page-flow controller: it decides which page the
// client should render next from server-side facts, never from stale
// client state.
package flow

import "errors"

// Page is the next-page directive held server-side for each session.
type Page string

const (
	PageAnonymous  Page = "anonymous"
	PageAssessment Page = "awaiting_assessment"
	PageFeedback   Page = "awaiting_feedback"
	PageChat       Page = "chat"
	PageTutorials  Page = "tutorials"
	PageChallenges Page = "challenges"
	PageProgress   Page = "progress"
	PageLoggedOut  Page = "logged_out"
)

var (
	ErrUnknownPage        = errors.New("unknown page")
	ErrAssessmentRequired = errors.New("assessment must be completed first")
)

// sidebarPages are the navigation targets offered once the assessment is
// complete. Logout is handled separately because it destroys the session.
var sidebarPages = map[Page]bool{
	PageChat:       true,
	PageTutorials:  true,
	PageChallenges: true,
	PageProgress:   true,
}

// SidebarPage reports whether p is a valid sidebar navigation target.
func SidebarPage(p Page) bool {
	return sidebarPages[p]
}

// Route re-derives the page to render from the stored directive and the
// persisted facts. The directive is advisory: an unauthenticated user is
// always anonymous, a user without a score is pinned to the assessment,
// and a graded user is never sent back to it.
func Route(directive Page, authenticated, hasAssessment bool) Page {
	if !authenticated {
		return PageAnonymous
	}
	if !hasAssessment {
		return PageAssessment
	}
	switch directive {
	case PageFeedback, PageChat, PageTutorials, PageChallenges, PageProgress:
		return directive
	default:
		// Covers a stale awaiting_assessment directive and anything
		// unrecognized.
		return PageChat
	}
}

// Navigate applies a sidebar transition to the session. Navigation is only
// offered post-assessment; moving between pages clears the one-shot flags
// so a new page starts clean.
func Navigate(s *Session, target Page, hasAssessment bool) error {
	if !SidebarPage(target) {
		return ErrUnknownPage
	}
	if !hasAssessment {
		return ErrAssessmentRequired
	}
	if s.Page != target {
		s.ResetOneShots()
	}
	s.Page = target
	return nil
}
