package popup

import "github.com/prometheus/client_golang/prometheus"

var popupRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blackarrow_popup_requests_total",
		Help: "Popup slot requests by popup and result.",
	},
	[]string{"popup", "result"},
)

func init() {
	prometheus.MustRegister(popupRequests)
}

func observeRequest(id ID, reason string) {
	popupRequests.WithLabelValues(string(id), reason).Inc()
}
