package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SurveysSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedback_surveys_sent_total",
		Help: "Survey prompts delivered to users.",
	})
	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedback_reminders_sent_total",
		Help: "Reminder prompts delivered to users.",
	})
	ResponsesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedback_responses_recorded_total",
		Help: "Mood answers recorded.",
	})
	ReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedback_reports_generated_total",
		Help: "Daily manager reports generated.",
	})
	DeliveryErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedback_delivery_errors_total",
		Help: "Per-recipient send failures. Failures are counted, never retried.",
	})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
