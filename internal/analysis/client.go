package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JonathanAHerrera/Fitprint/internal/config"
	"github.com/JonathanAHerrera/Fitprint/internal/media"
	"github.com/JonathanAHerrera/Fitprint/internal/models"
)

// analyzeTimeout bounds one submission end to end. The backend runs AI
// inference per request, so this is minutes, not the short timeout typical
// of CRUD calls. Matches the original client's 120s budget.
const analyzeTimeout = 2 * time.Minute

// Client talks to the remote analysis service.
type Client struct {
	BaseURL    string
	Token      string
	media      *media.Source
	httpClient *http.Client
}

// NewClient creates an analysis client from resolved configuration.
func NewClient(cfg config.Client, src *media.Source) *Client {
	return &Client{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Token:   cfg.Token,
		media:   src,
		httpClient: &http.Client{
			Timeout: analyzeTimeout,
		},
	}
}

// Analyze dereferences the image locator and submits it with the user
// identity; see AnalyzeImage for the wire call. An unreadable locator
// fails with *media.ReadError before anything is sent.
func (c *Client) Analyze(ctx context.Context, userID, imageRef string) (*models.AnalysisResult, error) {
	data, err := c.media.Read(ctx, imageRef)
	if err != nil {
		return nil, err
	}
	return c.AnalyzeImage(ctx, userID, data)
}

// AnalyzeImage submits raw image bytes to POST /analysis/outfit as a
// multipart form with fields user_id and image (named image.jpg) and
// decodes the structured result.
func (c *Client) AnalyzeImage(ctx context.Context, userID string, image []byte) (*models.AnalysisResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("user_id", userID); err != nil {
		return nil, fmt.Errorf("failed to write user_id field: %w", err)
	}

	part, err := writer.CreateFormFile("image", "image.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to write image bytes: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/analysis/outfit", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	slog.Info("Submitting image for analysis", "user_id", userID, "bytes", len(image))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: readServerMessage(resp.Body)}
	}

	result, err := decodeResult(resp.Body)
	if err != nil {
		return nil, err
	}

	slog.Info("Analysis complete", "analysis_id", result.AnalysisID, "brand", result.SustainabilityReport.Brand)
	return result, nil
}

// GetAnalysis fetches a previously produced result by id.
func (c *Client) GetAnalysis(ctx context.Context, analysisID string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := c.get(ctx, "/analysis/outfit/"+url.PathEscape(analysisID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAnalyses fetches all results produced for a user, newest last.
func (c *Client) ListAnalyses(ctx context.Context, userID string) ([]models.AnalysisResult, error) {
	var results []models.AnalysisResult
	if err := c.get(ctx, "/analysis/outfit/user/"+url.PathEscape(userID), &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ServiceError{StatusCode: resp.StatusCode, Message: readServerMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &MalformedResponseError{Err: err}
	}
	return nil
}

// decodeResult parses the response body and rejects bodies that parse but
// are missing the identity fields every result carries.
func decodeResult(r io.Reader) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	switch {
	case result.AnalysisID == "":
		return nil, &MalformedResponseError{Err: fmt.Errorf("missing analysis_id")}
	case result.SustainabilityReport.ReportID == "":
		return nil, &MalformedResponseError{Err: fmt.Errorf("missing sustainability_report.report_id")}
	case result.ClothingItem.ClothingID == "":
		return nil, &MalformedResponseError{Err: fmt.Errorf("missing clothing_item.clothing_id")}
	}

	return &result, nil
}

// readServerMessage pulls a display message out of an error body. The
// service reports errors as {"detail": "..."}; anything else is passed
// through as trimmed text.
func readServerMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}

	var errBody struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &errBody); err == nil && errBody.Detail != "" {
		return errBody.Detail
	}

	return strings.TrimSpace(string(raw))
}
