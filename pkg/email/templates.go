package email

import (
	"fmt"
	"strings"
)

// InterviewEmailData carries everything the interview notification needs.
// Date/Time/Location may be empty when the recruiter didn't provide them.
type InterviewEmailData struct {
	ApplicantName   string
	ApplicantEmail  string
	InternshipTitle string
	Mode            string // "online" | "offline"
	Location        string
	Date            string
	Time            string
	AppName         string
}

// BuildInterviewScheduledEmail creates the notification sent to an applicant
// when a recruiter schedules their interview.
func BuildInterviewScheduledEmail(data InterviewEmailData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "InternExplore"
	}

	name := data.ApplicantName
	if name == "" {
		name = "there"
	}

	subject := fmt.Sprintf("Interview scheduled for %s", data.InternshipTitle)

	var details []string
	details = append(details, fmt.Sprintf("Mode: %s", data.Mode))
	if data.Date != "" {
		details = append(details, fmt.Sprintf("Date: %s", data.Date))
	}
	if data.Time != "" {
		details = append(details, fmt.Sprintf("Time: %s", data.Time))
	}
	if data.Location != "" {
		details = append(details, fmt.Sprintf("Location: %s", data.Location))
	}
	detailBlock := strings.Join(details, "\n")

	textBody := fmt.Sprintf(`Hi %s,

Good news: an interview has been scheduled for your application to "%s".

%s

Please be available at the scheduled time. Good luck!

The %s Team`,
		name, data.InternshipTitle, detailBlock, appName)

	var htmlRows strings.Builder
	for _, d := range details {
		kv := strings.SplitN(d, ": ", 2)
		htmlRows.WriteString(fmt.Sprintf(
			`<tr><td style="padding: 6px 12px; color: #6b7280;">%s</td><td style="padding: 6px 12px;"><strong>%s</strong></td></tr>`,
			kv[0], kv[1]))
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hi %s,</h2>
    <p>Good news: an interview has been scheduled for your application to <strong>%s</strong>.</p>
    <table style="border-collapse: collapse; background-color: #f3f4f6; border-radius: 6px; margin: 20px 0;">%s</table>
    <p>Please be available at the scheduled time. Good luck!</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">The %s Team</p>
</body>
</html>`,
		name, data.InternshipTitle, htmlRows.String(), appName)

	return Message{
		To:       []string{data.ApplicantEmail},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

// ApplicationEmailData carries the fields for the recruiter-side
// "new application" notification.
type ApplicationEmailData struct {
	RecruiterEmail  string
	ApplicantName   string
	InternshipTitle string
	AppName         string
}

// BuildApplicationReceivedEmail creates the notification sent to the posting
// recruiter when a new application is recorded.
func BuildApplicationReceivedEmail(data ApplicationEmailData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "InternExplore"
	}

	applicant := data.ApplicantName
	if applicant == "" {
		applicant = "A candidate"
	}

	subject := fmt.Sprintf("New application for %s", data.InternshipTitle)

	textBody := fmt.Sprintf(`%s has applied to "%s".

Review the application from your recruiter dashboard.

The %s Team`,
		applicant, data.InternshipTitle, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <p><strong>%s</strong> has applied to <strong>%s</strong>.</p>
    <p>Review the application from your recruiter dashboard.</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">The %s Team</p>
</body>
</html>`,
		applicant, data.InternshipTitle, appName)

	return Message{
		To:       []string{data.RecruiterEmail},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}
