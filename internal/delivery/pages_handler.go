package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/domain"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/session"
	"github.com/AdityaHandrian/kelompokfprsbp/internal/usecase"
)

// PagesHandler serves the demo pages: home, catalog (with the contextual
// modal), and the user selection page. It only composes orchestrator output;
// no fetch or fallback logic lives here.
type PagesHandler struct {
	store   *session.Store
	home    *usecase.HomeUseCase
	catalog *usecase.CatalogUseCase
	users   *usecase.UsersUseCase
	modal   *usecase.ContextPanelController
	log     *logrus.Logger
}

func NewPagesHandler(
	store *session.Store,
	home *usecase.HomeUseCase,
	catalog *usecase.CatalogUseCase,
	users *usecase.UsersUseCase,
	modal *usecase.ContextPanelController,
	logger *logrus.Logger,
) *PagesHandler {
	return &PagesHandler{
		store:   store,
		home:    home,
		catalog: catalog,
		users:   users,
		modal:   modal,
		log:     logger,
	}
}

func (h *PagesHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/home", h.Home)
	router.GET("/catalog", h.Catalog)
	router.GET("/users", h.Users)

	modal := router.Group("/catalog/context")
	{
		modal.POST("/:itemId", h.OpenContextModal)
		modal.GET("", h.ContextModal)
		modal.DELETE("", h.CloseContextModal)
	}
}

type homeView struct {
	Session         session.Session          `json:"session"`
	Comparison      *usecase.ComparisonView  `json:"comparison,omitempty"`
	ComparisonError string                   `json:"comparison_error,omitempty"`
	CanRetry        bool                     `json:"can_retry,omitempty"`
	Features        []domain.AlgorithmInfo   `json:"features"`
}

func (h *PagesHandler) Home(c *gin.Context) {
	view := homeView{Session: h.store.Snapshot()}
	for _, algo := range domain.Algorithms {
		view.Features = append(view.Features, domain.AlgorithmCatalog[algo])
	}

	if userID, ok := h.store.CurrentUserID(); ok {
		comparison, err := h.home.Comparison(c.Request.Context(), userID)
		if err != nil {
			// section-local failure with a retry affordance; the page itself loads
			view.ComparisonError = err.Error()
			view.CanRetry = true
		} else {
			view.Comparison = comparison
		}
	}

	SuccessResponse(c, http.StatusOK, "Home page", view)
}

type catalogRowView struct {
	Algorithm domain.Algorithm          `json:"algorithm"`
	Info      domain.AlgorithmInfo      `json:"info"`
	Items     []domain.DisplayedProduct `json:"items"`
}

type catalogView struct {
	Personalized bool                     `json:"personalized"`
	Rows         []catalogRowView         `json:"rows,omitempty"`
	Grid         *usecase.CatalogPageView `json:"grid,omitempty"`
}

func (h *PagesHandler) Catalog(c *gin.Context) {
	if userID, ok := h.store.CurrentUserID(); ok {
		rows := h.catalog.RecommendationRows(c.Request.Context(), userID)
		view := catalogView{Personalized: true}
		for _, row := range rows {
			// failed and empty rows render as absent, not as errors
			if row.Hidden {
				continue
			}
			view.Rows = append(view.Rows, catalogRowView{
				Algorithm: row.Algorithm,
				Info:      row.Info,
				Items:     row.Items,
			})
		}
		SuccessResponse(c, http.StatusOK, "Personalized catalog", view)
		return
	}

	page, ok := h.pageParam(c)
	if !ok {
		return
	}
	grid, err := h.catalog.PublicCatalog(c.Request.Context(), page)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to load products: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Public catalog", catalogView{Grid: grid})
}

func (h *PagesHandler) Users(c *gin.Context) {
	page, ok := h.pageParam(c)
	if !ok {
		return
	}

	list, err := h.users.ListUsers(c.Request.Context(), page)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch users: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Users page", gin.H{
		"session": h.store.Snapshot(),
		"list":    list,
	})
}

func (h *PagesHandler) OpenContextModal(c *gin.Context) {
	userID, ok := h.store.CurrentUserID()
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Select a user before requesting contextual recommendations")
		return
	}

	idStr := c.Param("itemId")
	itemID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || itemID <= 0 {
		h.log.Warnf("Handler: Invalid item ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid item ID format")
		return
	}

	h.modal.Open(c.Request.Context(), userID, itemID)
	SuccessResponse(c, http.StatusAccepted, "Context modal opened", h.modal.Snapshot())
}

func (h *PagesHandler) ContextModal(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Context modal state", h.modal.Snapshot())
}

func (h *PagesHandler) CloseContextModal(c *gin.Context) {
	h.modal.Close()
	SuccessResponse(c, http.StatusOK, "Context modal closed", h.modal.Snapshot())
}

func (h *PagesHandler) pageParam(c *gin.Context) (int, bool) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		h.log.Warnf("Handler: Invalid page parameter: %s", pageStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid page number")
		return 0, false
	}
	return page, true
}
