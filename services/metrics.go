package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotel_bookings_total",
		Help: "Reservations created",
	})
	cancellationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotel_cancellations_total",
		Help: "Reservations cancelled",
	})
	persistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotel_persistence_failures_total",
			Help: "Failed collection saves",
		},
		[]string{"collection"},
	)
	roomsGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hotel_rooms",
			Help: "Rooms in inventory by availability",
		},
		[]string{"status"},
	)
	reservationsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hotel_reservations_active",
		Help: "Reservations currently held",
	})
)
