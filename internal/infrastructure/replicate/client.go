package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"customgpt-actions/internal/config"
	"customgpt-actions/internal/domain/media"
	"customgpt-actions/internal/infrastructure/metrics"
	"customgpt-actions/internal/utils/platformerrors"
)

// Client talks to the Replicate predictions API. It creates a prediction with
// a synchronous-wait preference and polls the prediction resource until it
// reaches a terminal status.
type Client struct {
	baseURL      string
	token        string
	waitSeconds  int
	pollInterval time.Duration
	httpClient   *http.Client
	log          zerolog.Logger
}

func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	if !cfg.ReplicateConfigured() {
		log.Warn().Msg("REPLICATE_API_TOKEN is not set, generation requests will fail")
	}
	return &Client{
		baseURL:      cfg.ReplicateBaseURL,
		token:        cfg.ReplicateAPIToken,
		waitSeconds:  cfg.WaitSeconds,
		pollInterval: cfg.PollInterval,
		httpClient:   &http.Client{Timeout: cfg.ProviderTimeout},
		log:          log.With().Str("component", "replicate-client").Logger(),
	}
}

// Generate runs one prediction to completion and returns the asset URL.
func (c *Client) Generate(ctx context.Context, model media.ModelRef, input map[string]any) (media.Asset, error) {
	start := time.Now()
	asset, err := c.generate(ctx, model, input)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		metrics.RecordProviderCall(model.Path, "error", elapsed)
		return media.Asset{}, err
	}
	metrics.RecordProviderCall(model.Path, "success", elapsed)
	return asset, nil
}

func (c *Client) generate(ctx context.Context, model media.ModelRef, input map[string]any) (media.Asset, error) {
	if c.token == "" {
		return media.Asset{}, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"replicate api token is not configured",
			nil,
			"a9c3e1d7-5b2f-4a8e-9c6d-0f1e2d3c4b5a",
		)
	}

	pred, err := c.createPrediction(ctx, model, input)
	if err != nil {
		return media.Asset{}, err
	}

	c.log.Debug().
		Str("prediction_id", pred.ID).
		Str("model", model.Path).
		Str("status", pred.Status).
		Msg("prediction created")

	pred, err = c.awaitPrediction(ctx, pred)
	if err != nil {
		return media.Asset{}, err
	}

	if pred.Status != statusSucceeded {
		detail := fmt.Sprintf("prediction %s %s", pred.ID, pred.Status)
		if msg := stringifyError(pred.Error); msg != "" {
			detail = msg
		}
		return media.Asset{}, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			detail,
			nil,
			"e7f6a5b4-c3d2-4e1f-8a9b-7c6d5e4f3a2b",
			map[string]any{"prediction_id": pred.ID, "status": pred.Status},
		)
	}

	assetURL, ok := extractOutputURL(pred.Output)
	if !ok {
		return media.Asset{}, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"prediction succeeded but returned no output url",
			nil,
			"1b2c3d4e-5f6a-4b7c-8d9e-0f1a2b3c4d5e",
			map[string]any{"prediction_id": pred.ID},
		)
	}

	return media.Asset{URL: assetURL, ContentType: c.probeContentType(ctx, assetURL)}, nil
}

func (c *Client) createPrediction(ctx context.Context, model media.ModelRef, input map[string]any) (*Prediction, error) {
	var endpoint string
	payload := predictionRequest{Input: input}
	if model.Version != "" {
		endpoint = c.baseURL + "/v1/predictions"
		payload.Version = model.Version
	} else {
		endpoint = fmt.Sprintf("%s/v1/models/%s/predictions", c.baseURL, model.Path)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal,
			"encode prediction request",
			err,
			"6d5e4f3a-2b1c-4d0e-9f8a-7b6c5d4e3f2a",
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeInternal,
			"build prediction request",
			err,
			"4e3f2a1b-0c9d-4e8f-7a6b-5c4d3e2f1a0b",
		)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if c.waitSeconds > 0 {
		req.Header.Set("Prefer", fmt.Sprintf("wait=%d", c.waitSeconds))
	}

	return c.doPrediction(ctx, req)
}

// awaitPrediction polls the prediction resource until it is terminal.
func (c *Client) awaitPrediction(ctx context.Context, pred *Prediction) (*Prediction, error) {
	for !pred.terminal() {
		if pred.URLs.Get == "" {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeExternal,
				"prediction is pending but exposes no polling url",
				nil,
				"9a8b7c6d-5e4f-4a3b-2c1d-0e9f8a7b6c5d",
			)
		}

		select {
		case <-ctx.Done():
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeExternal,
				"timed out waiting for prediction",
				ctx.Err(),
				"2c1d0e9f-8a7b-4c5d-6e4f-3a2b1c0d9e8f",
			)
		case <-time.After(c.pollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pred.URLs.Get, nil)
		if err != nil {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeInternal,
				"build prediction poll request",
				err,
				"8f7a6b5c-4d3e-4f2a-1b0c-9d8e7f6a5b4c",
			)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		pred, err = c.doPrediction(ctx, req)
		if err != nil {
			return nil, err
		}
	}
	return pred, nil
}

func (c *Client) doPrediction(ctx context.Context, req *http.Request) (*Prediction, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"replicate request failed",
			err,
			"7b6c5d4e-3f2a-4b1c-0d9e-8f7a6b5c4d3e",
		)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"read replicate response",
			err,
			"5c4d3e2f-1a0b-4c9d-8e7f-6a5b4c3d2e1f",
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, platformerrors.NewErrorWithContext(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("replicate returned status %d: %s", resp.StatusCode, truncate(string(body), 300)),
			nil,
			"3e2f1a0b-9c8d-4e7f-6a5b-4c3d2e1f0a9b",
			map[string]any{"status_code": resp.StatusCode},
		)
	}

	var pred Prediction
	if err := json.Unmarshal(body, &pred); err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"decode replicate response",
			err,
			"0a9b8c7d-6e5f-4a4b-3c2d-1e0f9a8b7c6d",
		)
	}
	return &pred, nil
}

// probeContentType asks the CDN for the asset's content type. Failures are
// non-fatal; the file type falls back to the URL extension.
func (c *Client) probeContentType(ctx context.Context, assetURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, assetURL, nil)
	if err != nil {
		return ""
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Msg("content type probe failed")
		return ""
	}
	defer resp.Body.Close()
	return resp.Header.Get("Content-Type")
}

// extractOutputURL digs the asset URL out of a model output. Outputs vary:
// a bare URL string, a list of URLs, or an object keyed by artifact name.
func extractOutputURL(output any) (string, bool) {
	switch v := output.(type) {
	case string:
		if v != "" {
			return v, true
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				return s, true
			}
		}
	case map[string]any:
		for _, key := range []string{"mesh", "model_file", "url", "video", "audio", "image"} {
			if nested, ok := extractOutputURL(v[key]); ok {
				return nested, true
			}
		}
	}
	return "", false
}

func stringifyError(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
