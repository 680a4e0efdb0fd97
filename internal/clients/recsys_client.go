package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/domain"
)

// RecsysClient is the typed surface of the remote recommendation backend.
// Every call returns the decoded body as-is; display fallbacks for absent
// fields are the caller's responsibility.
type RecsysClient interface {
	ListUsers(ctx context.Context, page, limit int) (*domain.UsersPage, error)
	GetUserProfile(ctx context.Context, userID int64) (*domain.UserProfile, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]domain.Product, error)
	GetProduct(ctx context.Context, itemID int64) (*domain.Product, error)
	GetRecommendations(ctx context.Context, algo domain.Algorithm, userID int64) ([]domain.Recommendation, error)
	GetContextRecommendations(ctx context.Context, algo domain.Algorithm, userID, itemID int64) ([]domain.Recommendation, error)
	AnalyzeSentiment(ctx context.Context, text string) (*domain.SentimentResult, error)
}

// APIError is the uniform failure the client reports: a non-2xx response
// (StatusCode > 0, Detail carrying the server-supplied message if any) or a
// transport error (StatusCode 0).
type APIError struct {
	StatusCode int
	Detail     string
	cause      error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("recsys backend returned status %d", e.StatusCode)
	}
	return "failed to communicate with recsys backend"
}

func (e *APIError) Unwrap() error { return e.cause }

type recsysHTTPClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

// NewRecsysHTTPClient creates a client for the recsys backend. The timeout
// should be generous: recommendation endpoints run model inference.
func NewRecsysHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger) RecsysClient {
	return &recsysHTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

func (c *recsysHTTPClient) ListUsers(ctx context.Context, page, limit int) (*domain.UsersPage, error) {
	params := url.Values{
		"page":  {fmt.Sprintf("%d", page)},
		"limit": {fmt.Sprintf("%d", limit)},
	}
	c.log.Infof("RecsysClient: Requesting user list (page %d, limit %d)", page, limit)

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/users/?"+params.Encode(), nil, &raw); err != nil {
		return nil, err
	}
	return decodeUsersPage(raw)
}

// decodeUsersPage accepts both response shapes this endpoint has shipped
// with: the canonical {users,total,total_pages} envelope and a bare array,
// which gets wrapped with TotalPages=0 (unknown).
func decodeUsersPage(raw json.RawMessage) (*domain.UsersPage, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var users []domain.UserSummary
		if err := json.Unmarshal(raw, &users); err != nil {
			return nil, fmt.Errorf("failed to decode user list: %w", err)
		}
		return &domain.UsersPage{Users: users, Total: len(users)}, nil
	}
	var page domain.UsersPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("failed to decode user list: %w", err)
	}
	return &page, nil
}

func (c *recsysHTTPClient) GetUserProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	c.log.Infof("RecsysClient: Requesting profile for user %d", userID)
	var profile domain.UserProfile
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userID), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *recsysHTTPClient) ListProducts(ctx context.Context, page, pageSize int) ([]domain.Product, error) {
	c.log.Infof("RecsysClient: Requesting products page %d (size %d)", page, pageSize)
	var products []domain.Product
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/products/%d/page/%d", page, pageSize), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *recsysHTTPClient) GetProduct(ctx context.Context, itemID int64) (*domain.Product, error) {
	c.log.Infof("RecsysClient: Requesting product %d", itemID)
	var product domain.Product
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/products/%d", itemID), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// recommendationsEnvelope is how every recommendation endpoint answers.
type recommendationsEnvelope struct {
	Recommendations []domain.Recommendation `json:"recommendations"`
}

func (c *recsysHTTPClient) GetRecommendations(ctx context.Context, algo domain.Algorithm, userID int64) ([]domain.Recommendation, error) {
	c.log.Infof("RecsysClient: Requesting %s recommendations for user %d", algo, userID)
	var envelope recommendationsEnvelope
	path := fmt.Sprintf("/recommend_%s/%d", algo, userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Recommendations, nil
}

func (c *recsysHTTPClient) GetContextRecommendations(ctx context.Context, algo domain.Algorithm, userID, itemID int64) ([]domain.Recommendation, error) {
	c.log.Infof("RecsysClient: Requesting %s context recommendations for user %d, item %d", algo, userID, itemID)
	var envelope recommendationsEnvelope
	path := fmt.Sprintf("/recommend_%s/%d/context/%d", algo, userID, itemID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Recommendations, nil
}

func (c *recsysHTTPClient) AnalyzeSentiment(ctx context.Context, text string) (*domain.SentimentResult, error) {
	c.log.Info("RecsysClient: Submitting review text for sentiment analysis")
	body := map[string]string{"text": text}
	var result domain.SentimentResult
	if err := c.doJSON(ctx, http.MethodPost, "/analyze_sentiment", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// doJSON executes one backend call. Non-2xx responses and transport errors
// come back as *APIError; the only cross-cutting side effect on failure is
// the structured diagnostic log of status code and payload. No retries, no
// caching, no in-flight de-duplication.
func (c *recsysHTTPClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create recsys request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).Errorf("RecsysClient: request failed: %v", err)
		return &APIError{cause: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Errorf("RecsysClient: failed to read response body for %s: %v", path, err)
		return &APIError{StatusCode: resp.StatusCode, cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.WithFields(logrus.Fields{
			"method":  method,
			"path":    path,
			"status":  resp.StatusCode,
			"payload": string(payload),
		}).Error("RecsysClient: backend reported failure")
		return &APIError{StatusCode: resp.StatusCode, Detail: extractDetail(payload)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		c.log.Errorf("RecsysClient: failed to decode response for %s: %v", path, err)
		return fmt.Errorf("failed to decode recsys response: %w", err)
	}
	return nil
}

// extractDetail pulls the human-readable "detail" field the backend attaches
// to error responses, if present.
func extractDetail(payload []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Detail
}
