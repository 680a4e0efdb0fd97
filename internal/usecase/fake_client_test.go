package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/clients"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/domain"
)

var assertAnError = errors.New("model unavailable")

// fakeClient implements clients.RecsysClient with pluggable behavior and
// call counting per method.
type fakeClient struct {
	clients.RecsysClient

	mu    sync.Mutex
	calls map[string]int

	listProducts func(ctx context.Context, page, pageSize int) ([]domain.Product, error)
	listUsers    func(ctx context.Context, page, limit int) (*domain.UsersPage, error)
	getProduct   func(ctx context.Context, itemID int64) (*domain.Product, error)
	recommend    func(ctx context.Context, algo domain.Algorithm, userID int64) ([]domain.Recommendation, error)
	recommendCtx func(ctx context.Context, algo domain.Algorithm, userID, itemID int64) ([]domain.Recommendation, error)
	analyze      func(ctx context.Context, text string) (*domain.SentimentResult, error)
}

func newFakeClient() *fakeClient {
	return &fakeClient{calls: make(map[string]int)}
}

func (f *fakeClient) count(method string) {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()
}

func (f *fakeClient) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeClient) ListUsers(ctx context.Context, page, limit int) (*domain.UsersPage, error) {
	f.count("ListUsers")
	return f.listUsers(ctx, page, limit)
}

func (f *fakeClient) ListProducts(ctx context.Context, page, pageSize int) ([]domain.Product, error) {
	f.count("ListProducts")
	return f.listProducts(ctx, page, pageSize)
}

func (f *fakeClient) GetProduct(ctx context.Context, itemID int64) (*domain.Product, error) {
	f.count("GetProduct")
	return f.getProduct(ctx, itemID)
}

func (f *fakeClient) GetRecommendations(ctx context.Context, algo domain.Algorithm, userID int64) ([]domain.Recommendation, error) {
	f.count("GetRecommendations")
	return f.recommend(ctx, algo, userID)
}

func (f *fakeClient) GetContextRecommendations(ctx context.Context, algo domain.Algorithm, userID, itemID int64) ([]domain.Recommendation, error) {
	f.count("GetContextRecommendations")
	return f.recommendCtx(ctx, algo, userID, itemID)
}

func (f *fakeClient) AnalyzeSentiment(ctx context.Context, text string) (*domain.SentimentResult, error) {
	f.count("AnalyzeSentiment")
	return f.analyze(ctx, text)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}
