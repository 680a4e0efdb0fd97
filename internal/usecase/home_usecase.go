package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/clients"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/domain"
)

// comparisonLimit caps each comparison column.
const comparisonLimit = 5

// ErrComparisonUnavailable is the aggregated failure for the home comparison
// section, the one place where two fetches share a page-level error (the UI
// offers a retry there).
var ErrComparisonUnavailable = errors.New("failed to load recommendations, please try again")

type ComparisonView struct {
	NCF []domain.DisplayedProduct `json:"ncf"`
	CBF []domain.DisplayedProduct `json:"cbf"`
}

type HomeUseCase struct {
	client clients.RecsysClient
	log    *logrus.Logger
}

func NewHomeUseCase(client clients.RecsysClient, logger *logrus.Logger) *HomeUseCase {
	return &HomeUseCase{client: client, log: logger}
}

// Comparison fetches the NCF and CBF sets concurrently for the home page's
// side-by-side columns. Unlike the catalog rows, a failure in either fetch
// fails the whole section.
func (uc *HomeUseCase) Comparison(ctx context.Context, userID int64) (*ComparisonView, error) {
	var (
		wg       sync.WaitGroup
		ncf, cbf []domain.Recommendation
		ncfErr   error
		cbfErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		ncf, ncfErr = uc.client.GetRecommendations(ctx, domain.AlgorithmNCF, userID)
	}()
	go func() {
		defer wg.Done()
		cbf, cbfErr = uc.client.GetRecommendations(ctx, domain.AlgorithmCBF, userID)
	}()
	wg.Wait()

	if ncfErr != nil || cbfErr != nil {
		uc.log.Warnf("Use Case: Home comparison failed for user %d (ncf: %v, cbf: %v)", userID, ncfErr, cbfErr)
		return nil, ErrComparisonUnavailable
	}

	view := &ComparisonView{
		NCF: displayTop(ncf, comparisonLimit),
		CBF: displayTop(cbf, comparisonLimit),
	}
	uc.log.Infof("Use Case: Home comparison loaded for user %d (%d ncf, %d cbf)", userID, len(view.NCF), len(view.CBF))
	return view, nil
}

func displayTop(recs []domain.Recommendation, limit int) []domain.DisplayedProduct {
	if len(recs) > limit {
		recs = recs[:limit]
	}
	out := make([]domain.DisplayedProduct, 0, len(recs))
	for _, r := range recs {
		out = append(out, domain.DisplayRecommendation(r))
	}
	return out
}
