package payment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	capturesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobmarket_payments_captured_total",
		Help: "Number of payments captured with their settlement ledger.",
	})
	releasesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobmarket_payments_released_total",
		Help: "Number of escrowed payments released to providers.",
	})
	refundsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jobmarket_payments_refunded_total",
		Help: "Number of payments refunded to clients.",
	})
)
