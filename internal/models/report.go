package models

import "time"

// ReportStatus represents the moderation state of a report.
type ReportStatus string

const (
	// ReportStatusPending indicates a report awaiting moderator attention.
	ReportStatusPending ReportStatus = "pending"
	// ReportStatusReviewed indicates a moderator has looked at the report.
	ReportStatusReviewed ReportStatus = "reviewed"
	// ReportStatusResolved indicates the reported content was removed.
	ReportStatusResolved ReportStatus = "resolved"
	// ReportStatusDismissed indicates the report was closed without action.
	ReportStatusDismissed ReportStatus = "dismissed"
)

// ReportableType identifies what kind of content a report targets.
type ReportableType string

const (
	// ReportablePost targets a feed post.
	ReportablePost ReportableType = "Post"
	// ReportableProject targets a project showcase.
	ReportableProject ReportableType = "Project"
	// ReportableComment targets a comment.
	ReportableComment ReportableType = "Comment"
	// ReportableGig targets a gig listing.
	ReportableGig ReportableType = "Gig"
)

// Report represents a user-filed moderation report.
type Report struct {
	ID             uint           `json:"id"`
	Reporter       User           `json:"reporter"`
	ReportableType ReportableType `json:"reportable_type"`
	ReportableID   uint           `json:"reportable_id"`
	Reason         string         `json:"reason,omitempty"`
	Status         ReportStatus   `json:"status"`
	InsertedAt     time.Time      `json:"inserted_at"`
}

// Terminal reports whether the status admits no further transitions.
// Resolved and dismissed are terminal.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}

// CanTransition reports whether moving from s to next is allowed in the
// moderation flow: pending→reviewed, pending/reviewed→resolved or dismissed.
func (s ReportStatus) CanTransition(next ReportStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case ReportStatusReviewed:
		return s == ReportStatusPending
	case ReportStatusResolved, ReportStatusDismissed:
		return s == ReportStatusPending || s == ReportStatusReviewed
	default:
		return false
	}
}
