// Package directory implements the clinic directory service client.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"locator/config"
	"locator/internal/domain/entity"
	"locator/internal/domain/lifecycle"
	"locator/internal/domain/service"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

var tracer = otel.Tracer("locator/infra/directory")

// httpDirectory implements ClinicDirectory with a single GET of the whole list
type httpDirectory struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

type clinicRecord struct {
	ID          string          `json:"_id"`
	ClinicName  string          `json:"clinic_name"`
	ContactInfo json.RawMessage `json:"contact_info"`
	Location    *struct {
		Latitude  flexFloat `json:"latitude"`
		Longitude flexFloat `json:"longitude"`
		Address   string    `json:"address"`
	} `json:"location"`
}

// flexFloat accepts a JSON number or a numeric string. Anything else leaves it unset.
type flexFloat struct {
	Value float64
	Set   bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		return nil
	}

	raw = strings.Trim(raw, `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}

	f.Value = v
	f.Set = true

	return nil
}

// DirectoryParams holds dependencies for the clinic directory, injected by Fx
type DirectoryParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	HTTPClient *http.Client `optional:"true"`
}

// NewDirectory creates a ClinicDirectory from the directory config section
func NewDirectory(params DirectoryParams) (service.ClinicDirectory, error) {
	cfg := params.Config.Directory
	if cfg == nil || strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("clinic directory URL is required")
	}

	httpClient := params.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = lifecycle.DefaultExternalCallTimeout
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &httpDirectory{
		url:        cfg.URL,
		httpClient: httpClient,
		logger:     params.Logger,
	}, nil
}

// ListClinics fetches every clinic. A body that is not a JSON array is an empty catalog.
func (d *httpDirectory) ListClinics(ctx context.Context) ([]entity.Clinic, error) {
	ctx, span := tracer.Start(ctx, "directory.list", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)

		return nil, errors.Wrap(err, "clinic directory request failed")
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := errors.Errorf("clinic directory returned status %d", resp.StatusCode)
		span.RecordError(err)

		return nil, err
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		span.RecordError(err)

		return nil, errors.Wrap(err, "failed to decode clinic directory response")
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		d.logger.WarnContext(ctx, "Clinic directory returned a non-list body, treating as empty")

		return []entity.Clinic{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		span.RecordError(err)

		return nil, errors.Wrap(err, "failed to decode clinic records")
	}

	clinics := make([]entity.Clinic, 0, len(records))
	for i, raw := range records {
		var record clinicRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			d.logger.WarnContext(ctx, "Skipping malformed clinic record", slog.Int("index", i), slog.Any("error", err))

			continue
		}
		if strings.TrimSpace(record.ID) == "" {
			d.logger.DebugContext(ctx, "Skipping clinic record without id", slog.String("name", record.ClinicName))

			continue
		}
		clinics = append(clinics, toClinic(record))
	}

	span.SetAttributes(attribute.Int("directory.clinics", len(clinics)))

	return clinics, nil
}

func toClinic(record clinicRecord) entity.Clinic {
	clinic := entity.Clinic{
		ID:          record.ID,
		Name:        record.ClinicName,
		ContactInfo: contactInfo(record.ContactInfo),
	}

	if loc := record.Location; loc != nil {
		clinic.Address = loc.Address
		if loc.Latitude.Set && loc.Longitude.Set {
			if coordinate, err := entity.NewCoordinate(loc.Latitude.Value, loc.Longitude.Value); err == nil {
				clinic.Location = &coordinate
			}
		}
	}

	return clinic
}

// contactInfo keeps strings as is and any other JSON value in its compact form
func contactInfo(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}

	return compact.String()
}
