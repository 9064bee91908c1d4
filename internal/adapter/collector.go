package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-hds-keeper/internal/audit"
	"github.com/MKhiriev/go-hds-keeper/internal/config"
	"github.com/MKhiriev/go-hds-keeper/internal/logger"
	"github.com/MKhiriev/go-hds-keeper/internal/utils"
	"github.com/MKhiriev/go-hds-keeper/models"
)

// auditCollector is the HTTP/REST implementation of [audit.Store] talking to
// a central audit collector. The collector owns event ids and server
// timestamps, exactly as the database does for the local store.
type auditCollector struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewAuditCollector constructs the collector client from cfg. The address is
// normalized: a missing scheme defaults to http and trailing slashes are
// removed.
func NewAuditCollector(cfg config.Audit, logger *logger.Logger) (audit.Store, error) {
	baseURL, err := normalizeBaseURL(cfg.CollectorURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCollectorURL, err)
	}

	return &auditCollector{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Append implements [audit.Store]. It POSTs the event to /api/audit/events
// and returns the id assigned by the collector.
func (a *auditCollector) Append(ctx context.Context, event models.AuditEvent) (string, error) {
	var created appendResponse

	resp, err := a.request(ctx).
		SetBody(event).
		SetResult(&created).
		Post(eventsPath)
	if err != nil {
		return "", fmt.Errorf("append audit event request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return created.ID, nil
}

// AppendBatch implements [audit.Store]. The collector stores the batch
// atomically; an acknowledgement for fewer events than submitted is reported
// as [ErrPartialBatch].
func (a *auditCollector) AppendBatch(ctx context.Context, events []models.AuditEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	var stored batchResponse

	resp, err := a.request(ctx).
		SetBody(batchRequest{Events: events, Length: len(events)}).
		SetResult(&stored).
		Post(eventsBatchPath)
	if err != nil {
		return 0, fmt.Errorf("append audit batch request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return 0, err
	}

	if stored.Stored != len(events) {
		logger.FromContext(ctx).Warn().
			Str("func", "auditCollector.AppendBatch").
			Int("submitted", len(events)).
			Int("stored", stored.Stored).
			Msg("audit collector acknowledged a partial batch")
		return stored.Stored, fmt.Errorf("%w: %d of %d", ErrPartialBatch, stored.Stored, len(events))
	}

	return stored.Stored, nil
}

// List implements [audit.Store]. Filter fields are sent as query parameters;
// zero values are omitted.
func (a *auditCollector) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEvent, error) {
	var events []models.AuditEvent

	resp, err := a.request(ctx).
		SetQueryParamsFromValues(filterParams(filter)).
		SetResult(&events).
		Get(eventsPath)
	if err != nil {
		return nil, fmt.Errorf("list audit events request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return events, nil
}

func (a *auditCollector) request(ctx context.Context) *resty.Request {
	return a.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
}

func filterParams(filter models.AuditFilter) url.Values {
	params := url.Values{}
	if filter.ActorID != "" {
		params.Set("actorId", filter.ActorID)
	}
	if filter.Resource != "" {
		params.Set("resource", filter.Resource)
	}
	if filter.EventType != "" {
		params.Set("eventType", string(filter.EventType))
	}
	if !filter.Since.IsZero() {
		params.Set("since", filter.Since.UTC().Format(time.RFC3339Nano))
	}
	if !filter.Until.IsZero() {
		params.Set("until", filter.Until.UTC().Format(time.RFC3339Nano))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.FormatUint(filter.Limit, 10))
	}
	return params
}
