package budget

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-backend/internal/model"
)

func TestNext(t *testing.T) {
	tests := []struct {
		from    model.Status
		ev      Event
		want    model.Status
		wantErr bool
	}{
		{from: model.StatusDraft, ev: EventSubmit, want: model.StatusSubmitted},
		{from: model.StatusSubmitted, ev: EventStartReview, want: model.StatusUnderReview},
		{from: model.StatusSubmitted, ev: EventApprove, want: model.StatusApproved},
		{from: model.StatusUnderReview, ev: EventApprove, want: model.StatusApproved},
		{from: model.StatusSubmitted, ev: EventReject, want: model.StatusRejected},
		{from: model.StatusUnderReview, ev: EventReject, want: model.StatusRejected},
		{from: model.StatusSubmitted, ev: EventRequestRevision, want: model.StatusRevisionRequired},
		{from: model.StatusRevisionRequired, ev: EventResubmit, want: model.StatusSubmitted},
		{from: model.StatusApproved, ev: EventReject, wantErr: true},
		{from: model.StatusRejected, ev: EventSubmit, wantErr: true},
		{from: model.StatusDraft, ev: EventApprove, wantErr: true},
		{from: model.StatusUnderReview, ev: EventStartReview, wantErr: true},
		{from: model.StatusDraft, ev: EventResubmit, wantErr: true},
	}

	for _, tt := range tests {
		got, err := Next(tt.from, tt.ev)
		if tt.wantErr {
			var terr *TransitionError
			require.ErrorAs(t, err, &terr, "%s + %s", tt.from, tt.ev)
			continue
		}
		require.NoError(t, err, "%s + %s", tt.from, tt.ev)
		assert.Equal(t, tt.want, got)
	}
}

func TestApplySubmit(t *testing.T) {
	b, items := validDraft()
	actor := uuid.New()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	out, err := Apply(b, items, EventSubmit, TransitionInput{Actor: actor, Now: now}, itBelongs)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSubmitted, out.Status)
	require.NotNil(t, out.SubmittedAt)
	assert.Equal(t, now, *out.SubmittedAt)
	require.NotNil(t, out.SubmittedBy)
	assert.Equal(t, actor, *out.SubmittedBy)
	assert.Nil(t, out.ReviewedAt)
}

func TestApplySubmitInvalidLeavesRecordUnchanged(t *testing.T) {
	b, items := validDraft()
	b.Department = ""

	out, err := Apply(b, items, EventSubmit, TransitionInput{Actor: uuid.New(), Now: time.Now()}, itBelongs)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, fieldsOf(errs), "department")

	// Failed transitions never partially apply.
	assert.Equal(t, model.StatusDraft, out.Status)
	assert.Nil(t, out.SubmittedAt)
	assert.Equal(t, b, out)
}

func TestApplyReject(t *testing.T) {
	b, items := validDraft()
	submittedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	b.Status = model.StatusSubmitted
	b.SubmittedAt = &submittedAt

	reviewer := uuid.New()
	now := submittedAt.Add(48 * time.Hour)

	t.Run("empty comments fail validation", func(t *testing.T) {
		out, err := Apply(b, items, EventReject, TransitionInput{Actor: reviewer, Now: now}, itBelongs)
		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, b, out)
	})

	t.Run("comments drive the transition", func(t *testing.T) {
		out, err := Apply(b, items, EventReject, TransitionInput{Actor: reviewer, Comments: "duplicate request", Now: now}, itBelongs)
		require.NoError(t, err)
		assert.Equal(t, model.StatusRejected, out.Status)
		require.NotNil(t, out.ReviewedBy)
		assert.Equal(t, reviewer, *out.ReviewedBy)
		require.NotNil(t, out.ReviewedAt)
		assert.Equal(t, now, *out.ReviewedAt)
		assert.Equal(t, "duplicate request", out.ReviewComments)
		// Submission timestamp is untouched by review.
		require.NotNil(t, out.SubmittedAt)
		assert.Equal(t, submittedAt, *out.SubmittedAt)
	})
}

func TestApplyApproveWithoutComments(t *testing.T) {
	b, items := validDraft()
	b.Status = model.StatusUnderReview
	reviewer := uuid.New()
	now := time.Now()

	out, err := Apply(b, items, EventApprove, TransitionInput{Actor: reviewer, Now: now}, itBelongs)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, out.Status)
	require.NotNil(t, out.ReviewedAt)
	assert.Empty(t, out.ReviewComments)
}

func TestApplyStartReviewSetsReviewerOnly(t *testing.T) {
	b, items := validDraft()
	b.Status = model.StatusSubmitted
	reviewer := uuid.New()

	out, err := Apply(b, items, EventStartReview, TransitionInput{Actor: reviewer, Now: time.Now()}, itBelongs)
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnderReview, out.Status)
	require.NotNil(t, out.ReviewedBy)
	assert.Nil(t, out.ReviewedAt) // Only a decision sets the review timestamp.
}

func TestApplyResubmitClearsReviewFields(t *testing.T) {
	b, items := validDraft()
	reviewer := uuid.New()
	reviewedAt := time.Now().Add(-time.Hour)
	b.Status = model.StatusRevisionRequired
	b.ReviewedBy = &reviewer
	b.ReviewComments = "split the hardware items"
	b.ReviewedAt = &reviewedAt

	now := time.Now()
	out, err := Apply(b, items, EventResubmit, TransitionInput{Actor: uuid.New(), Now: now}, itBelongs)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSubmitted, out.Status)
	assert.Nil(t, out.ReviewedBy)
	assert.Nil(t, out.ReviewedAt)
	assert.Empty(t, out.ReviewComments)
	require.NotNil(t, out.SubmittedAt)
	assert.Equal(t, now, *out.SubmittedAt)
}

func TestApplyTerminalStatesAreFinal(t *testing.T) {
	b, items := validDraft()
	for _, status := range []model.Status{model.StatusApproved, model.StatusRejected} {
		b.Status = status
		for _, ev := range []Event{EventSubmit, EventStartReview, EventApprove, EventReject, EventRequestRevision, EventResubmit} {
			_, err := Apply(b, items, ev, TransitionInput{Actor: uuid.New(), Comments: "x", Now: time.Now()}, itBelongs)
			var terr *TransitionError
			assert.ErrorAs(t, err, &terr, "%s must be final for %s", status, ev)
		}
	}
}
