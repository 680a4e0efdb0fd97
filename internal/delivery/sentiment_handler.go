package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/usecase"
)

type SentimentHandler struct {
	useCase *usecase.SentimentUseCase
	log     *logrus.Logger
}

func NewSentimentHandler(uc *usecase.SentimentUseCase, logger *logrus.Logger) *SentimentHandler {
	return &SentimentHandler{useCase: uc, log: logger}
}

func (h *SentimentHandler) RegisterRoutes(router gin.IRouter) {
	sent := router.Group("/sentiment")
	{
		sent.GET("", h.Overview)
		sent.POST("", h.Submit)
		sent.DELETE("/:index", h.Remove)
		sent.DELETE("", h.Clear)
	}
}

type submitReviewRequest struct {
	Text string `json:"text"`
}

// submitReviewResponse tells the page whether to clear the input: kept on
// failure so the user can retry without retyping, cleared on success.
type submitReviewResponse struct {
	Result     *usecase.SubmitResult `json:"result,omitempty"`
	ClearInput bool                  `json:"clear_input"`
}

func (h *SentimentHandler) Submit(c *gin.Context) {
	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Handler: Failed to bind review request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.useCase.Submit(c.Request.Context(), req.Text)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Review analyzed successfully", submitReviewResponse{
		Result:     result,
		ClearInput: true,
	})
}

func (h *SentimentHandler) Overview(c *gin.Context) {
	entries, stats := h.useCase.Overview()
	SuccessResponse(c, http.StatusOK, "Sentiment overview", gin.H{
		"reviews": entries,
		"stats":   stats,
	})
}

func (h *SentimentHandler) Remove(c *gin.Context) {
	indexStr := c.Param("index")
	index, err := strconv.Atoi(indexStr)
	if err != nil || index < 0 {
		h.log.Warnf("Handler: Invalid review index parameter: %s", indexStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid review index")
		return
	}

	if !h.useCase.Remove(index) {
		ErrorResponse(c, http.StatusNotFound, "No review at that index")
		return
	}

	entries, stats := h.useCase.Overview()
	SuccessResponse(c, http.StatusOK, "Review removed", gin.H{
		"reviews": entries,
		"stats":   stats,
	})
}

func (h *SentimentHandler) Clear(c *gin.Context) {
	h.useCase.Clear()
	SuccessResponse(c, http.StatusOK, "All reviews cleared", nil)
}
