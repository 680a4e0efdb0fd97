package delivery

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/clients"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/domain"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/sentiment"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/session"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/usecase"
)

type stubClient struct {
	clients.RecsysClient

	profile func(ctx context.Context, id int64) (*domain.UserProfile, error)
	recs    func(ctx context.Context, algo domain.Algorithm, userID int64) ([]domain.Recommendation, error)
}

func (s *stubClient) GetUserProfile(ctx context.Context, id int64) (*domain.UserProfile, error) {
	return s.profile(ctx, id)
}

func (s *stubClient) GetRecommendations(ctx context.Context, algo domain.Algorithm, userID int64) ([]domain.Recommendation, error) {
	return s.recs(ctx, algo, userID)
}

type memStorage struct {
	id *int64
}

func (m *memStorage) Load() (*int64, error) { return m.id, nil }
func (m *memStorage) Save(id int64) error   { m.id = &id; return nil }
func (m *memStorage) Clear() error          { m.id = nil; return nil }

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestRouter(t *testing.T, client clients.RecsysClient) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := testLogger()

	store := session.NewStore(client, &memStorage{}, logger)
	modal := usecase.NewContextPanelController(client, logger)
	sentimentUC := usecase.NewSentimentUseCase(client, sentiment.NewLog(), logger)

	router := gin.New()
	api := router.Group("/api")
	NewPagesHandler(store, usecase.NewHomeUseCase(client, logger), usecase.NewCatalogUseCase(client, logger),
		usecase.NewUsersUseCase(client, logger), modal, logger).RegisterRoutes(api)
	NewSessionHandler(store, logger).RegisterRoutes(api)
	NewSentimentHandler(sentimentUC, logger).RegisterRoutes(api)
	return router, store
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSelectUserInvalidIDReturnsBadRequest(t *testing.T) {
	router, _ := newTestRouter(t, &stubClient{})

	for _, id := range []string{"abc", "0", "-3"} {
		w := doRequest(router, http.MethodPost, "/api/session/select/"+id, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q", id)
		assert.Equal(t, "Fail", decodeResponse(t, w).Status)
	}
}

func TestSelectUserCommitsSession(t *testing.T) {
	client := &stubClient{
		profile: func(_ context.Context, _ int64) (*domain.UserProfile, error) {
			return &domain.UserProfile{UserName: "Budi"}, nil
		},
	}
	router, store := newTestRouter(t, client)

	w := doRequest(router, http.MethodPost, "/api/session/select/7", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Success", decodeResponse(t, w).Status)
	assert.True(t, store.IsAuthenticated())
}

func TestOpenContextModalRequiresSelectedUser(t *testing.T) {
	router, _ := newTestRouter(t, &stubClient{})

	w := doRequest(router, http.MethodPost, "/api/catalog/context/42", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInvalidPageParamRejected(t *testing.T) {
	router, _ := newTestRouter(t, &stubClient{})

	for _, path := range []string{"/api/users?page=0", "/api/users?page=x", "/api/catalog?page=-1"} {
		w := doRequest(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestSubmitReviewTooShortReturnsBadRequest(t *testing.T) {
	router, _ := newTestRouter(t, &stubClient{})

	w := doRequest(router, http.MethodPost, "/api/sentiment", `{"text":"  ok  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Fail", decodeResponse(t, w).Status)
}

func TestHomeReportsComparisonFailureInline(t *testing.T) {
	client := &stubClient{
		profile: func(_ context.Context, _ int64) (*domain.UserProfile, error) {
			return &domain.UserProfile{UserName: "Siti"}, nil
		},
		recs: func(_ context.Context, _ domain.Algorithm, _ int64) ([]domain.Recommendation, error) {
			return nil, &clients.APIError{StatusCode: http.StatusServiceUnavailable}
		},
	}
	router, store := newTestRouter(t, client)
	_, err := store.SelectUser(context.Background(), 3)
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/home", "")
	require.Equal(t, http.StatusOK, w.Code, "page must load even when the comparison section fails")

	resp := decodeResponse(t, w)
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var view struct {
		ComparisonError string `json:"comparison_error"`
		CanRetry        bool   `json:"can_retry"`
	}
	require.NoError(t, json.Unmarshal(data, &view))
	assert.NotEmpty(t, view.ComparisonError)
	assert.True(t, view.CanRetry)
}

func TestMapErrorToStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, mapErrorToStatus(usecase.ErrReviewTooShort))
	assert.Equal(t, http.StatusBadRequest, mapErrorToStatus(usecase.ErrInvalidPage))
	assert.Equal(t, http.StatusNotFound, mapErrorToStatus(&clients.APIError{StatusCode: http.StatusNotFound}))
	assert.Equal(t, http.StatusBadGateway, mapErrorToStatus(&clients.APIError{StatusCode: http.StatusInternalServerError}))
	assert.Equal(t, http.StatusInternalServerError, mapErrorToStatus(assert.AnError))
}
