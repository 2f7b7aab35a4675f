package deedmarket

import (
	"github.com/prometheus/client_golang/prometheus"
)

const MetricNameSpace = "deedmarket"

var (
	eventCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "events_total",
			Help:      "state transition notifications appended",
		},
		[]string{"event"},
	)

	openAuctionGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "open_auctions",
			Help:      "auctions currently open",
		},
	)
)

func init() {
	prometheus.MustRegister(
		eventCounter,
		openAuctionGauge,
	)
}

func metricEvent(name string) {
	eventCounter.WithLabelValues(name).Inc()
}

func metricOpenAuctions(n int) {
	openAuctionGauge.Set(float64(n))
}
