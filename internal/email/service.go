package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"gymlite/internal/logger"
	"gymlite/internal/metrics"
	"gymlite/internal/payment"
	"gymlite/internal/reservation"
	"gymlite/internal/subscription"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
)

type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) Send(ctx context.Context, to, name, emailType, subject, body string) error {
	job := EmailJob{
		To:      to,
		Name:    name,
		Type:    emailType,
		Subject: subject,
		Body:    body,
		Tries:   0,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", to, err)
		metrics.RecordEmail(emailType, "queue_error")
		return err
	}

	metrics.RecordEmail(emailType, "queued")
	logger.Infof("Email queued: %s to %s", subject, to)
	return nil
}

func (s *Service) Start(ctx context.Context) {
	logger.Info("Email service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}
	metrics.EmailQueueLength.Set(float64(s.QueueLength(ctx)))

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			metrics.RecordEmail(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Infof("Email sent to %s", job.To)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Email to %s moved to failed queue after %d attempts", job.To, job.Tries)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

// SendReservationConfirmed mails the member after the admission guard admits
// them. Members without an email on file are skipped.
func (s *Service) SendReservationConfirmed(detail reservation.ReservationDetail) {
	if detail.Email == nil {
		return
	}

	name := detail.FirstName + " " + detail.LastName
	subject := "Reservation Confirmed - " + detail.SessionName
	body := fmt.Sprintf(`Hi %s,

Your spot is booked!

Class: %s
Time: %s

See you at the gym!

- GymLite Team`, detail.FirstName, detail.SessionName, detail.StartsAt.Format("Jan 2, 2006 at 3:04 PM"))

	if err := s.Send(context.Background(), *detail.Email, name, "reservation_confirmed", subject, body); err != nil {
		logger.Errorf("Failed to queue reservation confirmation for %s: %v", name, err)
	}
}

// SendPaymentReceived mails a receipt for a recorded payment.
func (s *Service) SendPaymentReceived(detail payment.PaymentDetail) {
	if detail.Email == nil {
		return
	}

	name := detail.FirstName + " " + detail.LastName
	subject := "Payment Received - " + detail.PlanName
	body := fmt.Sprintf(`Hi %s,

We received your payment.

Plan: %s
Amount: $%.2f
Method: %s
Date: %s

Thanks for staying with us!

- GymLite Team`, detail.FirstName, detail.PlanName, float64(detail.AmountCents)/100,
		detail.Method, detail.PaidAt.Format("Jan 2, 2006"))

	if err := s.Send(context.Background(), *detail.Email, name, "payment_received", subject, body); err != nil {
		logger.Errorf("Failed to queue payment receipt for %s: %v", name, err)
	}
}

// SendExpiryReminder nudges a member whose membership ends soon.
func (s *Service) SendExpiryReminder(sub subscription.ExpiringSubscription) {
	if sub.Email == nil {
		return
	}

	name := sub.FirstName + " " + sub.LastName
	subject := "Your membership expires soon"
	body := fmt.Sprintf(`Hi %s,

Your %s membership ends on %s (%d days left).

Renew at the front desk to keep your classes.

- GymLite Team`, sub.FirstName, sub.PlanName, sub.EndDate.Format("Jan 2, 2006"), sub.DaysLeft)

	if err := s.Send(context.Background(), *sub.Email, name, "expiry_reminder", subject, body); err != nil {
		logger.Errorf("Failed to queue expiry reminder for %s: %v", name, err)
	}
}
