// Package reconcile fetches parcel, place and registry records for an
// address and fuses them into one form payload with verdicts.
package reconcile

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "cstore-prefill/internal/common/errors"
	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/common/metrics"
	"cstore-prefill/internal/common/observability"
	"cstore-prefill/internal/common/smarty"
	"cstore-prefill/internal/models"
)

// ErrAddressRequired is returned for an empty or blank address.
var ErrAddressRequired = errors.New("address is required")

// Outcome labels recorded per reconciliation.
const (
	OutcomeSuccess         = "success"
	OutcomeNotFound        = "not_found"
	OutcomeParcelError     = "parcel_error"
	OutcomeAddressRequired = "address_required"
)

type ParcelFetcher interface {
	FetchParcel(ctx context.Context, address string) (*models.ParcelRecord, error)
}

type PlacesFetcher interface {
	FetchPlace(ctx context.Context, address string) (*models.PlaceRecord, error)
}

// RegistryMatcher never fails; lookup problems surface as a nil match.
type RegistryMatcher interface {
	Match(ctx context.Context, address string) *models.RegistryMatch
}

// Recorder receives one observation per reconciliation.
type Recorder interface {
	RecordReconcile(ctx context.Context, outcome string, duration time.Duration, fields int)
}

// Sources groups the external lookups. Places and Registry may be nil.
type Sources struct {
	Parcel   ParcelFetcher
	Places   PlacesFetcher
	Registry RegistryMatcher
}

type Service struct {
	sources  Sources
	opts     Options
	recorder Recorder
	logger   logger.Logger
	tracer   trace.Tracer
}

func NewService(sources Sources, opts Options, recorder Recorder, log logger.Logger) *Service {
	return &Service{
		sources:  sources,
		opts:     opts,
		recorder: recorder,
		logger:   log.WithFields(map[string]interface{}{"component": "reconcile"}),
		tracer:   observability.Tracer(),
	}
}

// Reconcile runs the full pipeline for one address. It fails only when the
// address is blank (ErrAddressRequired) or the parcel provider call fails;
// every other source degrades to empty data.
func (s *Service) Reconcile(ctx context.Context, address string) (*models.ReconcileResult, error) {
	start := time.Now()

	captured, err := s.Collect(ctx, address)
	if err != nil {
		outcome := OutcomeParcelError
		if errors.Is(err, ErrAddressRequired) {
			outcome = OutcomeAddressRequired
		}
		s.record(ctx, outcome, start, 0)
		return nil, err
	}

	result := Assemble(captured, s.opts)
	outcome := OutcomeSuccess
	if !result.Success {
		outcome = OutcomeNotFound
	}
	s.record(ctx, outcome, start, result.FieldsCount)

	if result.Validation != nil {
		metrics.Verdicts.WithLabelValues(
			string(result.Validation.PropertyType),
			boolLabel(result.Validation.IsValid),
			string(result.Ownership.Status),
		).Inc()
	}
	s.logger.Info("Reconciliation complete", map[string]interface{}{
		"outcome":     outcome,
		"fieldsCount": result.FieldsCount,
		"ownership":   result.Ownership.Status,
		"durationMs":  time.Since(start).Milliseconds(),
	})
	return result, nil
}

// Collect fetches the raw records for address without fusing them. Parcel
// and place lookups run concurrently; the registry is consulted only when a
// parcel was found.
func (s *Service) Collect(ctx context.Context, address string) (Captured, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Captured{}, ErrAddressRequired
	}

	ctx, span := s.tracer.Start(ctx, "reconcile.collect", trace.WithAttributes(attribute.String("address", address)))
	defer span.End()

	captured := Captured{Address: address}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		parcel, err := s.fetchParcel(gctx, address)
		if err != nil {
			return err
		}
		captured.Parcel = parcel
		return nil
	})
	g.Go(func() error {
		captured.Place = s.fetchPlace(gctx, address)
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parcel lookup failed")
		return Captured{}, err
	}

	if captured.Parcel == nil {
		s.logger.Info("No parcel found for address", map[string]interface{}{"address": address})
		return captured, nil
	}

	captured.Registry = s.matchRegistry(ctx, address)
	return captured, nil
}

func (s *Service) fetchParcel(ctx context.Context, address string) (*models.ParcelRecord, error) {
	ctx, span := s.tracer.Start(ctx, "source.parcel")
	defer span.End()
	start := time.Now()

	parcel, err := s.sources.Parcel.FetchParcel(ctx, address)
	metrics.SourceDuration.WithLabelValues("parcel").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SourceFailures.WithLabelValues("parcel").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		stdErr := classifyParcelError(err)
		s.logger.Error("Parcel lookup failed", map[string]interface{}{
			"errorCode": stdErr.Code,
			"error":     err.Error(),
		})
		return nil, stdErr
	}
	span.SetAttributes(attribute.Bool("found", parcel != nil))
	return parcel, nil
}

func classifyParcelError(err error) *apperrors.StandardError {
	switch {
	case errors.Is(err, smarty.ErrInvalidCredentials), errors.Is(err, smarty.ErrNotConfigured):
		return apperrors.NewParcelAuthError(err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewParcelTimeoutError(err)
	}
	return apperrors.NewParcelProviderError(err)
}

func (s *Service) fetchPlace(ctx context.Context, address string) *models.PlaceRecord {
	if s.sources.Places == nil {
		return nil
	}
	ctx, span := s.tracer.Start(ctx, "source.places")
	defer span.End()
	start := time.Now()

	place, err := s.sources.Places.FetchPlace(ctx, address)
	metrics.SourceDuration.WithLabelValues("places").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SourceFailures.WithLabelValues("places").Inc()
		span.RecordError(err)
		stdErr := apperrors.NewPlacesProviderError(err)
		s.logger.Warn("Places lookup failed, continuing without business data", map[string]interface{}{
			"errorCode": stdErr.Code,
			"error":     err.Error(),
		})
		return nil
	}
	if place != nil {
		span.SetAttributes(
			attribute.String("dataSource", string(place.DataSource)),
			attribute.Bool("isGasStation", place.IsGasStation),
		)
	}
	return place
}

func (s *Service) matchRegistry(ctx context.Context, address string) *models.RegistryMatch {
	if s.sources.Registry == nil {
		return nil
	}
	ctx, span := s.tracer.Start(ctx, "source.registry")
	defer span.End()
	start := time.Now()

	match := s.sources.Registry.Match(ctx, address)
	metrics.SourceDuration.WithLabelValues("registry").Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Bool("matched", match != nil))
	return match
}

func (s *Service) record(ctx context.Context, outcome string, start time.Time, fields int) {
	metrics.Reconciliations.WithLabelValues(outcome).Inc()
	if s.recorder != nil {
		s.recorder.RecordReconcile(ctx, outcome, time.Since(start), fields)
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
