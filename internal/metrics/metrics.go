package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RentalsAssignedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ombrello_rentals_assigned_total",
		Help: "Total number of umbrellas successfully assigned to a renter.",
	})

	RentalsReturnedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ombrello_rentals_returned_total",
		Help: "Total number of umbrellas successfully returned.",
	})

	RentalIDCollisionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ombrello_rental_id_collisions_total",
		Help: "Total number of generated rental ids that collided with an existing one.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ombrello_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation", "kind"},
	)

	WeatherCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ombrello_weather_cache_hits_total",
		Help: "Weather lookups served from the cache.",
	})

	WeatherCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ombrello_weather_cache_misses_total",
		Help: "Weather lookups that required a provider fetch.",
	})

	WeatherFetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ombrello_weather_fetch_errors_total",
		Help: "Failed weather provider fetches.",
	})

	WeatherCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ombrello_weather_cache_items",
		Help: "Current number of location buckets in the weather cache.",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ombrello_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status code.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"route", "method", "status"},
	)

	ReconciledUmbrellasTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ombrello_reconciled_umbrellas_total",
		Help: "Umbrellas whose status was corrected by the reconciliation job.",
	},
		[]string{"direction"},
	)
)
