package email

import (
	"strings"
	"testing"
)

func TestBuildInterviewScheduledEmail(t *testing.T) {
	msg := BuildInterviewScheduledEmail(InterviewEmailData{
		ApplicantName:   "Asha",
		ApplicantEmail:  "asha@example.com",
		InternshipTitle: "Backend Intern",
		Mode:            "offline",
		Location:        "Bangalore office",
		Date:            "2026-09-15",
		Time:            "10:30",
	})

	if len(msg.To) != 1 || msg.To[0] != "asha@example.com" {
		t.Errorf("unexpected recipients: %v", msg.To)
	}
	if !strings.Contains(msg.Subject, "Backend Intern") {
		t.Errorf("subject should name the internship, got %q", msg.Subject)
	}
	for _, want := range []string{"Asha", "offline", "Bangalore office", "2026-09-15", "10:30"} {
		if !strings.Contains(msg.TextBody, want) {
			t.Errorf("text body missing %q", want)
		}
	}
}

func TestBuildInterviewScheduledEmail_OmitsEmptyFields(t *testing.T) {
	msg := BuildInterviewScheduledEmail(InterviewEmailData{
		ApplicantEmail:  "asha@example.com",
		InternshipTitle: "Backend Intern",
		Mode:            "online",
	})

	if strings.Contains(msg.TextBody, "Location:") {
		t.Error("location line should be omitted when empty")
	}
	if strings.Contains(msg.TextBody, "Date:") {
		t.Error("date line should be omitted when empty")
	}
	if !strings.Contains(msg.TextBody, "Mode: online") {
		t.Error("mode line is always present")
	}
}

func TestBuildApplicationReceivedEmail(t *testing.T) {
	msg := BuildApplicationReceivedEmail(ApplicationEmailData{
		RecruiterEmail:  "recruiter@example.com",
		ApplicantName:   "Asha",
		InternshipTitle: "Backend Intern",
	})

	if len(msg.To) != 1 || msg.To[0] != "recruiter@example.com" {
		t.Errorf("unexpected recipients: %v", msg.To)
	}
	if !strings.Contains(msg.TextBody, "Asha") {
		t.Error("text body should name the applicant")
	}
}
