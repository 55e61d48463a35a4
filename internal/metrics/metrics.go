package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters exported at /metrics.
var (
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubreg_registrations_total",
		Help: "Completed member registrations.",
	})

	Submissions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubreg_submissions_total",
		Help: "Recorded project submissions.",
	})

	ChatbotRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubreg_chatbot_requests_total",
		Help: "Chatbot requests by outcome.",
	}, []string{"outcome"})

	MailDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clubreg_mail_deliveries_total",
		Help: "Worker mail deliveries by result.",
	}, []string{"type", "result"})
)
