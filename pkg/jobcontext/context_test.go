package jobcontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDetach_SurvivesParentCancel(t *testing.T) {
	jobID, userID := uuid.New(), uuid.New()
	parent, cancelParent := context.WithCancel(context.Background())
	parent = JobBegin(parent, jobID, "analyze", userID)

	ctx, cancel := Detach(parent, time.Second)
	defer cancel()

	cancelParent()
	if ctx.Err() != nil {
		t.Fatalf("detached context must not observe parent cancellation: %v", ctx.Err())
	}

	md := GetJobMetadata(ctx)
	if md.JobID != jobID || md.UserID != userID || md.JobType != "analyze" {
		t.Fatalf("metadata not carried over: %+v", md)
	}
	if len(LogFields(ctx)) != 4 {
		t.Fatalf("expected elapsed field alongside ids")
	}
}

func TestDetach_OwnTimeout(t *testing.T) {
	ctx, cancel := Detach(context.Background(), 10*time.Millisecond)
	defer cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("detached context ignored its own timeout")
	}
}
