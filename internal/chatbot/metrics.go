package chatbot

import "github.com/prometheus/client_golang/prometheus"

var chatbotReplies = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blackarrow_chatbot_replies_total",
		Help: "Chatbot replies by match outcome.",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(chatbotReplies)
}
