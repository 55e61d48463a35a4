package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"clubreg/internal/config"
	"clubreg/internal/logging"
	"clubreg/internal/mailer"
	"clubreg/internal/metrics"
	"clubreg/internal/queue"
	"clubreg/internal/registry"
	"clubreg/internal/store"
)

// Worker drains the mail outbox: contact confirmations, password resets, and
// submission receipts queued by the API.
func main() {
	cfg := config.Load()
	logging.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logrus.Info("shutdown signal received")
		cancel()
	}()

	db, err := store.NewDB(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		logrus.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr, cfg.RedisTimeout)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "clubreg:outbox")
	}

	repo := registry.NewRepository(db.Client)
	mail := mailer.New(cfg.SendGridAPIKey, cfg.MailSender, cfg.MailSkip)

	if !mail.Configured() && !cfg.MailSkip {
		logrus.Warn("SENDGRID_API_KEY not set, deliveries will be dropped")
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		logrus.Fatalf("queue consume init failed: %v", err)
	}

	w := worker{cfg: cfg, repo: repo, mail: mail}

	logrus.Info("worker started, waiting for messages...")
	for msg := range messages {
		switch msg.Type {
		case queue.TypeContactEmail:
			w.handleContactEmail(ctx, msg.Body)
		case queue.TypePasswordReset:
			w.handlePasswordReset(ctx, msg.Body)
		case queue.TypeSubmissionReceipt:
			w.handleSubmissionReceipt(ctx, msg.Body)
		default:
			logrus.Warnf("unknown message type %q, dropping", msg.Type)
		}
	}

	logrus.Info("worker stopped")
}

type worker struct {
	cfg  config.App
	repo *registry.Repository
	mail *mailer.Client
}

// handleContactEmail sends the confirmation to the inquirer and the
// notification to the club inbox, then records the delivery outcome on the
// stored inquiry.
func (w *worker) handleContactEmail(ctx context.Context, body json.RawMessage) {
	var payload struct {
		InquiryID string `json:"inquiry_id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		logrus.Errorf("contact email payload invalid: %v", err)
		return
	}

	inquiry, err := w.repo.GetInquiry(ctx, payload.InquiryID)
	if err != nil {
		logrus.Errorf("fetch inquiry %s failed: %v", payload.InquiryID, err)
		return
	}

	subject, html := mailer.ContactConfirmation(inquiry.Name, inquiry.Message)
	confirmErr := w.mail.Send(ctx, inquiry.Email, subject, html)

	subject, html = mailer.OwnerNotification(inquiry.Name, inquiry.Email, inquiry.Message)
	notifyErr := w.mail.Send(ctx, w.cfg.OwnerEmail, subject, html)

	status := "sent"
	result := "ok"
	if confirmErr != nil || notifyErr != nil {
		logrus.Errorf("contact delivery for %s failed: confirm=%v notify=%v",
			inquiry.ID, confirmErr, notifyErr)
		status = "failed"
		result = "error"
	}
	metrics.MailDeliveries.WithLabelValues(queue.TypeContactEmail, result).Inc()

	if err := w.repo.SetInquiryStatus(ctx, inquiry.ID, status); err != nil {
		logrus.Errorf("inquiry %s status update failed: %v", inquiry.ID, err)
	}
}

func (w *worker) handlePasswordReset(ctx context.Context, body json.RawMessage) {
	var payload struct {
		MemberID string `json:"member_id"`
		Token    string `json:"token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		logrus.Errorf("password reset payload invalid: %v", err)
		return
	}

	m, err := w.repo.GetMember(ctx, payload.MemberID)
	if err != nil {
		logrus.Errorf("fetch member %s failed: %v", payload.MemberID, err)
		return
	}

	subject, html := mailer.PasswordReset(m.FullName, payload.Token)
	if err := w.mail.Send(ctx, m.Email, subject, html); err != nil {
		logrus.Errorf("password reset delivery to %s failed: %v", m.Email, err)
		metrics.MailDeliveries.WithLabelValues(queue.TypePasswordReset, "error").Inc()
		return
	}
	metrics.MailDeliveries.WithLabelValues(queue.TypePasswordReset, "ok").Inc()
}

func (w *worker) handleSubmissionReceipt(ctx context.Context, body json.RawMessage) {
	var payload struct {
		MemberID string `json:"member_id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		logrus.Errorf("submission receipt payload invalid: %v", err)
		return
	}

	m, err := w.repo.GetMember(ctx, payload.MemberID)
	if err != nil {
		logrus.Errorf("fetch member %s failed: %v", payload.MemberID, err)
		return
	}
	if m.GithubLink == nil {
		logrus.Warnf("member %s has no submission, skipping receipt", m.ID)
		return
	}

	subject, html := mailer.SubmissionReceipt(m.FullName, *m.GithubLink)
	if err := w.mail.Send(ctx, m.Email, subject, html); err != nil {
		logrus.Errorf("submission receipt delivery to %s failed: %v", m.Email, err)
		metrics.MailDeliveries.WithLabelValues(queue.TypeSubmissionReceipt, "error").Inc()
		return
	}
	metrics.MailDeliveries.WithLabelValues(queue.TypeSubmissionReceipt, "ok").Inc()
}
