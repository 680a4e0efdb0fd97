package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/clients"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/sentiment"
)

const minReviewLength = 5

// Validation failures are caught before any backend call; the input field is
// kept as typed so the user can fix it without retyping.
var (
	ErrEmptyReview    = errors.New("review text cannot be empty")
	ErrReviewTooShort = errors.New("review is too short (minimum 5 characters)")
)

type SubmitResult struct {
	Entry sentiment.Entry `json:"entry"`
	Stats sentiment.Stats `json:"stats"`
}

type SentimentUseCase struct {
	client  clients.RecsysClient
	reviews *sentiment.Log
	log     *logrus.Logger
}

func NewSentimentUseCase(client clients.RecsysClient, reviews *sentiment.Log, logger *logrus.Logger) *SentimentUseCase {
	return &SentimentUseCase{client: client, reviews: reviews, log: logger}
}

// Submit validates and analyzes one review. Local validation rejects empty
// or too-short input with no network call. On success the review joins the
// log with safe defaults for missing model fields (neutral label, zero
// confidence); on failure nothing is appended and the error carries the
// server detail when available.
func (uc *SentimentUseCase) Submit(ctx context.Context, text string) (*SubmitResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyReview
	}
	if utf8.RuneCountInString(trimmed) < minReviewLength {
		return nil, ErrReviewTooShort
	}

	result, err := uc.client.AnalyzeSentiment(ctx, trimmed)
	if err != nil {
		uc.log.Warnf("Use Case: Sentiment analysis failed: %v", err)
		return nil, err
	}

	entry := uc.reviews.Append(trimmed, sentiment.NormalizeLabel(result.Sentiment), result.Confidence)
	uc.log.Infof("Use Case: Review analyzed as %s (confidence %.2f)", entry.Label, entry.Confidence)

	return &SubmitResult{Entry: entry, Stats: uc.reviews.Stats()}, nil
}

// Overview returns the current log and its breakdown.
func (uc *SentimentUseCase) Overview() ([]sentiment.Entry, sentiment.Stats) {
	return uc.reviews.Entries(), uc.reviews.Stats()
}

// Remove drops one entry by index; no backend call is involved.
func (uc *SentimentUseCase) Remove(index int) bool {
	return uc.reviews.Remove(index)
}

// Clear drops the whole log; no backend call is involved.
func (uc *SentimentUseCase) Clear() {
	uc.reviews.Clear()
}

// IsValidationError reports whether err is a local input-validation failure
// (never sent to the backend).
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyReview) || errors.Is(err, ErrReviewTooShort) || errors.Is(err, ErrInvalidPage)
}
