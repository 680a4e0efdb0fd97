package usecase

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/clients"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/domain"
)

// CatalogPageSize is the public catalog grid size.
const CatalogPageSize = 12

type CatalogPageView struct {
	Products []domain.DisplayedProduct `json:"products"`
	Page     int                       `json:"page"`
	HasNext  bool                      `json:"has_next"`
}

// RowState is one per-algorithm recommendation row. A row is Hidden when its
// fetch failed or returned nothing; Err distinguishes the two causes even
// though both render the same way.
type RowState struct {
	Algorithm domain.Algorithm
	Info      domain.AlgorithmInfo
	Items     []domain.DisplayedProduct
	Err       error
	Hidden    bool
}

type CatalogUseCase struct {
	client clients.RecsysClient
	log    *logrus.Logger
}

func NewCatalogUseCase(client clients.RecsysClient, logger *logrus.Logger) *CatalogUseCase {
	return &CatalogUseCase{client: client, log: logger}
}

// PublicCatalog fetches one page of the product grid. No page is cached;
// navigating back to a page re-fetches it.
func (uc *CatalogUseCase) PublicCatalog(ctx context.Context, page int) (*CatalogPageView, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	products, err := uc.client.ListProducts(ctx, page, CatalogPageSize)
	if err != nil {
		uc.log.Warnf("Use Case: Failed to fetch catalog page %d: %v", page, err)
		return nil, err
	}

	view := &CatalogPageView{
		Products: make([]domain.DisplayedProduct, 0, len(products)),
		Page:     page,
		HasNext:  len(products) >= CatalogPageSize,
	}
	for _, p := range products {
		view.Products = append(view.Products, domain.DisplayProduct(p))
	}
	return view, nil
}

// RecommendationRows fetches the four per-algorithm rows concurrently, one
// goroutine per model. Rows are fully independent: a failure or an empty
// result hides that row only, and the others still render.
func (uc *CatalogUseCase) RecommendationRows(ctx context.Context, userID int64) []RowState {
	rows := make([]RowState, len(domain.Algorithms))

	var wg sync.WaitGroup
	for i, algo := range domain.Algorithms {
		wg.Add(1)
		go func(i int, algo domain.Algorithm) {
			defer wg.Done()

			row := RowState{Algorithm: algo, Info: domain.AlgorithmCatalog[algo]}
			recs, err := uc.client.GetRecommendations(ctx, algo, userID)
			if err != nil {
				uc.log.Warnf("Use Case: %s recommendations failed for user %d: %v", algo, userID, err)
				row.Err = err
				row.Hidden = true
			} else if len(recs) == 0 {
				row.Hidden = true
			} else {
				row.Items = make([]domain.DisplayedProduct, 0, len(recs))
				for _, r := range recs {
					row.Items = append(row.Items, domain.DisplayRecommendation(r))
				}
			}
			rows[i] = row
		}(i, algo)
	}
	wg.Wait()

	return rows
}
