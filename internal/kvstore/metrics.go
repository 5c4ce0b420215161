package kvstore

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentedStore records Prometheus metrics around another Store
type InstrumentedStore struct {
	next       Store
	operations *prometheus.CounterVec
	valueBytes *prometheus.HistogramVec
}

// Instrument wraps store and registers its collectors on reg
func Instrument(store Store, reg prometheus.Registerer) (*InstrumentedStore, error) {
	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ggsale_kvstore_operations_total",
			Help: "Total number of key-value store operations",
		},
		[]string{"op", "result"},
	)

	valueBytes := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ggsale_kvstore_value_bytes",
			Help:    "Size of values read from and written to the key-value store",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"op"},
	)

	for _, c := range []prometheus.Collector{operations, valueBytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &InstrumentedStore{
		next:       store,
		operations: operations,
		valueBytes: valueBytes,
	}, nil
}

// Get delegates to the wrapped store
func (s *InstrumentedStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok, err := s.next.Get(ctx, key)
	switch {
	case err != nil:
		s.operations.WithLabelValues("get", "error").Inc()
	case !ok:
		s.operations.WithLabelValues("get", "miss").Inc()
	default:
		s.operations.WithLabelValues("get", "hit").Inc()
		s.valueBytes.WithLabelValues("get").Observe(float64(len(value)))
	}
	return value, ok, err
}

// Set delegates to the wrapped store
func (s *InstrumentedStore) Set(ctx context.Context, key string, value string) error {
	err := s.next.Set(ctx, key, value)
	switch {
	case errors.Is(err, ErrQuotaExceeded):
		s.operations.WithLabelValues("set", "quota_exceeded").Inc()
	case err != nil:
		s.operations.WithLabelValues("set", "error").Inc()
	default:
		s.operations.WithLabelValues("set", "ok").Inc()
		s.valueBytes.WithLabelValues("set").Observe(float64(len(value)))
	}
	return err
}
