package jobcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KeyContext string

var (
	keyJobID        KeyContext = "job_id"
	keyJobType      KeyContext = "job_type"
	keyUserID       KeyContext = "user_id"
	keyJobStartTime KeyContext = "job_start_time"
)

// JobMetadata holds metadata for a paid unit of work (one analysis)
type JobMetadata struct {
	JobID     uuid.UUID
	JobType   string
	UserID    uuid.UUID
	StartTime time.Time
}

// JobBegin attaches job metadata to ctx
func JobBegin(parentCtx context.Context, jobID uuid.UUID, jobType string, userID uuid.UUID) context.Context {
	ctx := context.WithValue(parentCtx, keyJobID, jobID)
	ctx = context.WithValue(ctx, keyJobType, jobType)
	ctx = context.WithValue(ctx, keyUserID, userID)
	ctx = context.WithValue(ctx, keyJobStartTime, time.Now())
	return ctx
}

// Detach returns a context that keeps parent values but ignores parent
// cancellation, bounded by its own timeout. Credit accounting runs on it so a
// client disconnect cannot leave a charge half-handled.
func Detach(parentCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parentCtx)
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// GetJobID extracts job ID from context
func GetJobID(ctx context.Context) (uuid.UUID, bool) {
	jobID, ok := ctx.Value(keyJobID).(uuid.UUID)
	return jobID, ok
}

// GetJobType extracts job type from context
func GetJobType(ctx context.Context) (string, bool) {
	jobType, ok := ctx.Value(keyJobType).(string)
	return jobType, ok
}

// GetUserID extracts the paying user from context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(keyUserID).(uuid.UUID)
	return userID, ok
}

// GetJobStartTime extracts job start time from context
func GetJobStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyJobStartTime).(time.Time)
	return startTime, ok
}

// GetJobMetadata extracts all job metadata from context
func GetJobMetadata(ctx context.Context) *JobMetadata {
	jobID, _ := GetJobID(ctx)
	jobType, _ := GetJobType(ctx)
	userID, _ := GetUserID(ctx)
	startTime, _ := GetJobStartTime(ctx)

	return &JobMetadata{
		JobID:     jobID,
		JobType:   jobType,
		UserID:    userID,
		StartTime: startTime,
	}
}

// LogFields renders the job metadata as zap fields
func LogFields(ctx context.Context) []zap.Field {
	md := GetJobMetadata(ctx)
	fields := []zap.Field{
		zap.String("job_id", md.JobID.String()),
		zap.String("job_type", md.JobType),
		zap.String("user_id", md.UserID.String()),
	}
	if !md.StartTime.IsZero() {
		fields = append(fields, zap.Duration("elapsed", time.Since(md.StartTime)))
	}
	return fields
}
