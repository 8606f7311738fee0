package converter

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/unit-converter-service/internal/domain"
	"github.com/couchcryptid/unit-converter-service/internal/observability"
)

const outcomeSuccess = "success"

// Publisher delivers conversion events to the audit stream.
type Publisher interface {
	Publish(ctx context.Context, event domain.ConversionEvent) error
}

// ReadinessChecker is implemented by publishers that can check their backend.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Service runs conversions for the HTTP and CLI surfaces, adding caching,
// metrics and event publishing around the domain engine.
type Service struct {
	logger    *slog.Logger
	metrics   *observability.Metrics
	cache     *resultCache
	publisher Publisher
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables an LRU result cache of the given size. Sizes <= 0 leave
// caching disabled.
func WithCache(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cache = newLRUCache[string, domain.Result](size)
		}
	}
}

// WithPublisher emits a ConversionEvent for every successful conversion.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// New creates a Service with the given observability and options.
func New(logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Service {
	s := &Service{
		logger:  logger,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.publisher != nil {
		s.metrics.PublisherEnabled.Set(1)
	} else {
		s.metrics.PublisherEnabled.Set(0)
	}
	return s
}

// Convert normalizes and converts req. Rejected requests return a
// *domain.ConversionError; publishing failures are logged, never returned.
func (s *Service) Convert(ctx context.Context, req domain.Request) (domain.Result, error) {
	req = req.Normalize()
	label := categoryLabel(req.Category)

	result, err := s.lookupOrConvert(req, label)
	if err != nil {
		s.metrics.Conversions.WithLabelValues(label, string(domain.KindOf(err))).Inc()
		s.logger.Debug("conversion rejected",
			"category", req.Category,
			"from_unit", req.FromUnit,
			"to_unit", req.ToUnit,
			"error", err,
		)
		return domain.Result{}, err
	}

	s.metrics.Conversions.WithLabelValues(label, outcomeSuccess).Inc()
	s.publish(ctx, result)
	return result, nil
}

// Units lists the units of a category in display order.
func (s *Service) Units(category domain.Category) ([]string, error) {
	return domain.UnitsFor(category)
}

// CheckReadiness delegates to the publisher when it can check its backend.
// Without a publisher the service has no dependencies and is always ready.
func (s *Service) CheckReadiness(ctx context.Context) error {
	if rc, ok := s.publisher.(ReadinessChecker); ok {
		return rc.CheckReadiness(ctx)
	}
	return nil
}

func (s *Service) lookupOrConvert(req domain.Request, label string) (domain.Result, error) {
	key := cacheKey(req)
	if s.cache != nil {
		if result, ok := s.cache.get(key); ok {
			s.metrics.CacheLookups.WithLabelValues("hit").Inc()
			return result, nil
		}
		s.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	result, err := domain.Convert(req)
	s.metrics.ConversionDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.Result{}, err
	}

	if s.cache != nil {
		s.cache.put(key, result)
	}
	return result, nil
}

func (s *Service) publish(ctx context.Context, result domain.Result) {
	if s.publisher == nil {
		return
	}
	event := domain.NewConversionEvent(result)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Warn("publish conversion event failed", "error", err, "event_id", event.ID)
		return
	}
	s.metrics.EventsPublished.Inc()
}

// categoryLabel bounds metric cardinality: free-text categories collapse to "unknown".
func categoryLabel(c domain.Category) string {
	if c.IsValid() {
		return string(c)
	}
	return "unknown"
}
