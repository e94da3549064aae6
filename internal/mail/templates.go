package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// MeetingReminderData feeds the reminder email body. StartTime arrives
// pre-rendered in the recipient-facing time zone.
type MeetingReminderData struct {
	RecipientName string
	MeetingTitle  string
	StartTime     string
	ProjectName   string
}

var meetingReminderTmpl = template.Must(template.New("meeting_reminder").Parse(`
<html>
<body style="font-family: sans-serif; color: #222;">
  <p>Hi {{.RecipientName}},</p>
  <p>Your meeting <strong>{{.MeetingTitle}}</strong>{{if .ProjectName}} in project <strong>{{.ProjectName}}</strong>{{end}} starts at <strong>{{.StartTime}}</strong>.</p>
  <p>See you there.</p>
  <p>— Stride</p>
</body>
</html>
`))

// RenderMeetingReminder renders the reminder email body.
func RenderMeetingReminder(data MeetingReminderData) (string, error) {
	var buf bytes.Buffer
	if err := meetingReminderTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering meeting reminder: %w", err)
	}
	return buf.String(), nil
}
