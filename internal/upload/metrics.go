package upload

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_upload_items_total",
			Help: "Total number of attachments attempted, by result",
		},
		[]string{"result"},
	)

	uploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "drive_upload_duration_seconds",
			Help:    "Time spent moving one attachment from Mattermost to Google Drive",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	transfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drive_upload_transfers_total",
			Help: "Total number of transfer runs, by outcome",
		},
		[]string{"outcome"},
	)
)
