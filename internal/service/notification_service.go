package service

import (
	"context"
	"fmt"
	"time"

	"go-radiotherapy-navigator/internal/domain/entity"
	"go-radiotherapy-navigator/pkg/email"

	"github.com/sirupsen/logrus"
)

// notifyTimeout bounds a single post-commit send so a slow SMTP server can
// never hold a request open.
const notifyTimeout = 10 * time.Second

// NotificationService sends journey emails to patients. Every method is
// best-effort: the transition has already committed when these run, so a
// returned error only downgrades the caller's response to
// success-with-warning and must never be treated as a transition failure.
type NotificationService struct {
	mailer *email.Client
	log    *logrus.Logger
}

func NewNotificationService(mailer *email.Client, log *logrus.Logger) *NotificationService {
	return &NotificationService{
		mailer: mailer,
		log:    log,
	}
}

// SendPlanPublished notifies the patient that their treatment schedule is
// available.
func (s *NotificationService) SendPlanPublished(patient *entity.Patient, plan *entity.TreatmentPlan) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nYour radiotherapy treatment plan has been published.\n\n"+
			"Treatment type: %s\nNumber of sessions: %d\nFirst session: %s\n\n"+
			"Preparation instructions:\n%s\n\n"+
			"Please log in to your patient portal for full care guidance.\n",
		patient.FullName,
		plan.TreatmentType,
		plan.NumSessions,
		plan.StartAt.Format("Monday, 2 January 2006 at 15:04"),
		plan.PrepInstructions,
	)
	return s.send(patient, "Your treatment plan is ready", body)
}

// SendTreatmentCompleted notifies the patient that their treatment course
// has finished.
func (s *NotificationService) SendTreatmentCompleted(patient *entity.Patient) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nCongratulations - your radiotherapy treatment course is complete.\n\n"+
			"The care team will be in touch shortly to schedule your three follow-up reviews.\n",
		patient.FullName,
	)
	return s.send(patient, "Treatment course completed", body)
}

// SendReviewsScheduled notifies the patient of their three follow-up dates.
func (s *NotificationService) SendReviewsScheduled(patient *entity.Patient, reviews []entity.TreatmentReview) error {
	body := fmt.Sprintf("Dear %s,\n\nYour post-treatment reviews have been scheduled:\n\n", patient.FullName)
	for _, r := range reviews {
		body += fmt.Sprintf("  Review %d: %s at %s\n", r.ReviewNumber, r.ScheduledDate.Format("Monday, 2 January 2006"), r.OfficeLocation)
	}
	body += "\nPlease attend all three appointments.\n"
	return s.send(patient, "Follow-up reviews scheduled", body)
}

// SendReviewCompleted notifies the patient after each review visit is
// recorded, including what comes next.
func (s *NotificationService) SendReviewCompleted(patient *entity.Patient, reviewNumber int) error {
	var next string
	if reviewNumber < entity.ReviewsPerCourse {
		next = fmt.Sprintf("Your next appointment is review %d.", reviewNumber+1)
	} else {
		next = "All reviews are now complete. Your consultant will be in touch with the outcome."
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nReview %d of %d has been recorded as complete. %s\n",
		patient.FullName, reviewNumber, entity.ReviewsPerCourse, next,
	)
	return s.send(patient, fmt.Sprintf("Review %d completed", reviewNumber), body)
}

// SendJourneyComplete congratulates the patient on a successful outcome.
func (s *NotificationService) SendJourneyComplete(patient *entity.Patient) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nWe are delighted to let you know your treatment has been assessed as successful "+
			"and your care journey with us is complete.\n\nWe wish you the very best.\n",
		patient.FullName,
	)
	return s.send(patient, "Treatment journey complete", body)
}

// SendTreatmentRestarted informs the patient that a new treatment course is
// being planned.
func (s *NotificationService) SendTreatmentRestarted(patient *entity.Patient, reason string) error {
	body := fmt.Sprintf(
		"Dear %s,\n\nFollowing your reviews, your consultant has decided to plan a further course "+
			"of treatment.\n\nReason: %s\n\nThe care team will contact you about the next steps.\n",
		patient.FullName, reason,
	)
	return s.send(patient, "A new treatment course is being planned", body)
}

func (s *NotificationService) send(patient *entity.Patient, subject, body string) error {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	err := s.mailer.Send(ctx, email.Message{
		To:      []string{patient.Email},
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		s.log.Warnf("Failed to send %q email to patient %s (non-fatal): %+v", subject, patient.ID, err)
		return err
	}

	s.log.Infof("Notification sent: patient=%s, subject=%q", patient.ID, subject)
	return nil
}
