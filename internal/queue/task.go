package queue

import "fmt"

type TaskType string

const (
	// TaskTypeEmailSend is an outbound email handed off to the mail worker.
	TaskTypeEmailSend TaskType = "email_send"
)

// EmailTask is the fire-and-forget payload a job enqueues for one recipient.
// Enqueue success means the message is durably in the stream, not that the
// mail was delivered; delivery is the worker's problem.
type EmailTask struct {
	To      string
	Subject string
	Body    string
	TraceID *string
	Attempt int
}

// UserStreamName is the per-user Redis stream real-time notifications are
// pushed to. Dashboard sessions tail it for live updates.
func UserStreamName(userID int64) string {
	return fmt.Sprintf("notify-stream:user-%d", userID)
}
