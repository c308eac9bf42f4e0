package budget

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"budget-backend/internal/model"
)

// Event is a lifecycle transition trigger.
type Event string

const (
	EventSubmit          Event = "submit"
	EventStartReview     Event = "start_review"
	EventApprove         Event = "approve"
	EventReject          Event = "reject"
	EventRequestRevision Event = "request_revision"
	EventResubmit        Event = "resubmit"
)

// TransitionError reports an event that is not legal from the current state.
type TransitionError struct {
	From  model.Status
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a budget in status %q", e.Event, e.From)
}

// Next returns the target status for an event fired from a given status.
// It encodes the full transition table; anything not listed is illegal.
func Next(from model.Status, ev Event) (model.Status, error) {
	switch ev {
	case EventSubmit:
		if from == model.StatusDraft {
			return model.StatusSubmitted, nil
		}
	case EventStartReview:
		if from == model.StatusSubmitted {
			return model.StatusUnderReview, nil
		}
	case EventApprove:
		if from.IsPending() {
			return model.StatusApproved, nil
		}
	case EventReject:
		if from.IsPending() {
			return model.StatusRejected, nil
		}
	case EventRequestRevision:
		if from.IsPending() {
			return model.StatusRevisionRequired, nil
		}
	case EventResubmit:
		if from == model.StatusRevisionRequired {
			return model.StatusSubmitted, nil
		}
	}
	return "", &TransitionError{From: from, Event: ev}
}

// TransitionInput carries the side-effect data a transition must record.
type TransitionInput struct {
	Actor    uuid.UUID
	Comments string
	Now      time.Time
}

// Apply runs an event against a budget and returns the updated copy. The input
// record is never mutated: validation happens first, and a failed transition
// returns the original record untouched together with the full violation list
// (validate-then-commit). Status, actor, and timestamps always change together.
func Apply(b model.Budget, items []model.BudgetLineItem, ev Event, in TransitionInput, belongs CostCenterLookup) (model.Budget, error) {
	next, err := Next(b.Status, ev)
	if err != nil {
		return b, err
	}

	switch ev {
	case EventSubmit, EventResubmit:
		if errs := ValidateForSubmission(b, items, belongs); len(errs) > 0 {
			return b, errs
		}
	case EventStartReview, EventApprove, EventReject, EventRequestRevision:
		if errs := ValidateForReview(ev, in.Comments); len(errs) > 0 {
			return b, errs
		}
	}

	now := in.Now
	out := b
	out.Status = next
	out.UpdatedAt = now

	switch ev {
	case EventSubmit:
		out.SubmittedAt = &now
		if out.SubmittedBy == nil {
			actor := in.Actor
			out.SubmittedBy = &actor
		}
	case EventResubmit:
		out.SubmittedAt = &now
		out.ReviewedBy = nil
		out.ReviewedAt = nil
		out.ReviewComments = ""
	case EventStartReview:
		// Reviewer claims the item; the review timestamp is only set on a decision.
		actor := in.Actor
		out.ReviewedBy = &actor
	case EventApprove, EventReject:
		actor := in.Actor
		out.ReviewedBy = &actor
		out.ReviewedAt = &now
		out.ReviewComments = in.Comments
	case EventRequestRevision:
		actor := in.Actor
		out.ReviewedBy = &actor
		out.ReviewComments = in.Comments
	}

	return out, nil
}
