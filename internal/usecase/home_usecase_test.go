package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/domain"
)

func TestComparisonLoadsBothColumns(t *testing.T) {
	client := newFakeClient()
	client.recommend = func(_ context.Context, algo domain.Algorithm, userID int64) ([]domain.Recommendation, error) {
		recs := make([]domain.Recommendation, 8)
		for i := range recs {
			recs[i] = domain.Recommendation{ItemID: int64(i + 1)}
		}
		return recs, nil
	}
	uc := NewHomeUseCase(client, testLogger())

	view, err := uc.Comparison(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, view.NCF, 5, "comparison columns cap at 5")
	assert.Len(t, view.CBF, 5)
	assert.Equal(t, 2, client.callCount("GetRecommendations"), "only ncf and cbf are fetched")
}

func TestComparisonAggregatesFailure(t *testing.T) {
	client := newFakeClient()
	client.recommend = func(_ context.Context, algo domain.Algorithm, userID int64) ([]domain.Recommendation, error) {
		if algo == domain.AlgorithmCBF {
			return nil, assertAnError
		}
		return []domain.Recommendation{{ItemID: 1}}, nil
	}
	uc := NewHomeUseCase(client, testLogger())

	_, err := uc.Comparison(context.Background(), 4)
	require.ErrorIs(t, err, ErrComparisonUnavailable, "either column failing fails the whole section")
}

func TestComparisonEmptyColumnsAreNotAnError(t *testing.T) {
	client := newFakeClient()
	client.recommend = func(_ context.Context, algo domain.Algorithm, userID int64) ([]domain.Recommendation, error) {
		return nil, nil
	}
	uc := NewHomeUseCase(client, testLogger())

	view, err := uc.Comparison(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, view.NCF)
	assert.Empty(t, view.CBF)
}
