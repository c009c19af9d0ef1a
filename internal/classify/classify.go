// Package classify calls the ML service that turns free text into a
// sentiment label, a confidence score, and topic labels. Results are
// consumed ad hoc and never cached.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/burnlikeash/SentimentScope/internal/catalog"
)

// Result is the classifier's verdict on one piece of text.
type Result struct {
	Sentiment  catalog.Sentiment
	Confidence float64 // [0, 1]
	Topics     []string
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a classifier client. The ML service can take a while on
// cold models, so callers usually pass a generous timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Sentiment  string   `json:"sentiment"`
	Confidence float64  `json:"confidence"`
	Topics     []string `json:"topics"`
}

// Classify sends text to the ML service and returns its verdict.
func (c *Client) Classify(ctx context.Context, text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, fmt.Errorf("text is required")
	}

	body, _ := json.Marshal(analyzeRequest{Text: text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze-text", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, fmt.Errorf("classifier returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var ar analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return Result{}, fmt.Errorf("decoding classifier response: %w", err)
	}

	return Result{
		Sentiment:  catalog.ParseSentiment(ar.Sentiment),
		Confidence: ar.Confidence,
		Topics:     ar.Topics,
	}, nil
}

// Status mirrors the ML service's processing counters.
type Status struct {
	TotalReviews        int     `json:"total_reviews"`
	ProcessedSentiments int     `json:"processed_sentiments"`
	UnprocessedReviews  int     `json:"unprocessed_reviews"`
	TotalTopics         int     `json:"total_topics"`
	SentimentPercentage float64 `json:"sentiment_percentage"`
}

// ProcessingStatus reports how far the ML pipeline has gotten through the
// review backlog.
func (c *Client) ProcessingStatus(ctx context.Context) (Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return Status{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Status{}, fmt.Errorf("classifier status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Status{}, fmt.Errorf("classifier status returned %d", resp.StatusCode)
	}

	var s Status
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return Status{}, err
	}
	return s, nil
}
