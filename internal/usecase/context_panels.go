package usecase

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/clients"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/domain"
)

// contextPanelLimit caps how many cards one modal panel shows.
const contextPanelLimit = 5

// PanelState is one algorithm's slot inside the contextual modal.
type PanelState struct {
	Algorithm domain.Algorithm          `json:"algorithm"`
	Info      domain.AlgorithmInfo      `json:"info"`
	Loading   bool                      `json:"loading"`
	Error     string                    `json:"error,omitempty"`
	Empty     bool                      `json:"empty"`
	Items     []domain.DisplayedProduct `json:"items"`
}

// ContextModalView is what the modal renders: the clicked product's header
// plus the four independent panels.
type ContextModalView struct {
	Open    bool                     `json:"open"`
	ItemID  int64                    `json:"item_id,omitempty"`
	Product *domain.DisplayedProduct `json:"product,omitempty"`
	Panels  []PanelState             `json:"panels,omitempty"`
}

// ContextPanelController owns the contextual-recommendation modal lifecycle.
// Opening it issues four concurrent per-algorithm fetches; each panel tracks
// its own loading/error/result and never blocks on the others. Closing
// discards every slot, so reopening the same item re-issues all four calls.
//
// In-flight calls are not cancelled on close; instead each fetch carries the
// generation current at its start and a resolution only commits while that
// generation is still live ("last committed request for the current target
// wins"). Resolutions for a superseded generation are discarded.
type ContextPanelController struct {
	client clients.RecsysClient
	log    *logrus.Logger

	mu     sync.Mutex
	gen    uint64
	open   bool
	userID int64
	itemID int64
	header *domain.DisplayedProduct
	panels map[domain.Algorithm]*PanelState
}

func NewContextPanelController(client clients.RecsysClient, logger *logrus.Logger) *ContextPanelController {
	return &ContextPanelController{client: client, log: logger}
}

// Open starts the modal for {userID, itemID}: all four contextual fetches
// plus a product-detail fetch for the header, each in its own goroutine.
// Any previously open modal is superseded.
func (c *ContextPanelController) Open(ctx context.Context, userID, itemID int64) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.open = true
	c.userID = userID
	c.itemID = itemID
	c.header = nil
	c.panels = make(map[domain.Algorithm]*PanelState, len(domain.Algorithms))
	for _, algo := range domain.Algorithms {
		c.panels[algo] = &PanelState{
			Algorithm: algo,
			Info:      domain.AlgorithmCatalog[algo],
			Loading:   true,
		}
	}
	c.mu.Unlock()

	c.log.Infof("Context modal: Opened for user %d, item %d", userID, itemID)

	// detach from the request context: navigating away must not abort the
	// calls, staleness is handled by the generation check on commit
	fetchCtx := context.WithoutCancel(ctx)

	go c.fetchHeader(fetchCtx, gen, itemID)
	for _, algo := range domain.Algorithms {
		go c.fetchPanel(fetchCtx, gen, algo, userID, itemID)
	}
}

// Close discards all panel state. In-flight resolutions for the closed modal
// will be dropped by their generation check.
func (c *ContextPanelController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.open = false
	c.userID = 0
	c.itemID = 0
	c.header = nil
	c.panels = nil
	c.log.Info("Context modal: Closed")
}

// Snapshot returns a copy of the modal state for rendering, panels in
// catalog order.
func (c *ContextPanelController) Snapshot() ContextModalView {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return ContextModalView{}
	}

	view := ContextModalView{
		Open:   true,
		ItemID: c.itemID,
		Panels: make([]PanelState, 0, len(domain.Algorithms)),
	}
	if c.header != nil {
		header := *c.header
		view.Product = &header
	}
	for _, algo := range domain.Algorithms {
		panel := *c.panels[algo]
		panel.Items = append([]domain.DisplayedProduct(nil), panel.Items...)
		view.Panels = append(view.Panels, panel)
	}
	return view
}

func (c *ContextPanelController) fetchHeader(ctx context.Context, gen uint64, itemID int64) {
	product, err := c.client.GetProduct(ctx, itemID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || !c.open {
		return
	}
	if err != nil {
		// header is cosmetic; panels carry their own errors
		c.log.Warnf("Context modal: Product detail fetch failed for item %d: %v", itemID, err)
		fallback := domain.DisplayProduct(domain.Product{ItemID: itemID})
		c.header = &fallback
		return
	}
	header := domain.DisplayProduct(*product)
	c.header = &header
}

func (c *ContextPanelController) fetchPanel(ctx context.Context, gen uint64, algo domain.Algorithm, userID, itemID int64) {
	recs, err := c.client.GetContextRecommendations(ctx, algo, userID, itemID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || !c.open {
		c.log.Infof("Context modal: Discarding stale %s result for item %d", algo, itemID)
		return
	}

	panel := c.panels[algo]
	panel.Loading = false
	if err != nil {
		c.log.Warnf("Context modal: %s context fetch failed for user %d, item %d: %v", algo, userID, itemID, err)
		panel.Error = err.Error()
		return
	}
	if len(recs) == 0 {
		panel.Empty = true
		return
	}
	if len(recs) > contextPanelLimit {
		recs = recs[:contextPanelLimit]
	}
	panel.Items = make([]domain.DisplayedProduct, 0, len(recs))
	for _, r := range recs {
		panel.Items = append(panel.Items, domain.DisplayRecommendation(r))
	}
}
