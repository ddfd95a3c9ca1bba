// Package metrics содержит счетчики Prometheus для основного приложения.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EntitlementDecisions счетчик решений о доступе к просмотру,
// с разбивкой по результату и причине.
var EntitlementDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "movieflix_entitlement_decisions_total",
		Help: "Access decisions made by the entitlement evaluator.",
	},
	[]string{"allowed", "reason"},
)

// GuardRedirects счетчик перенаправлений со страниц просмотра.
var GuardRedirects = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "movieflix_guard_redirects_total",
		Help: "Redirects issued by the watch guard.",
	},
	[]string{"target"},
)

// TrialNotificationsSent счетчик отправленных писем об окончании пробного периода.
var TrialNotificationsSent = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "movieflix_trial_notifications_sent_total",
		Help: "Trial expiry notification emails sent.",
	},
)
