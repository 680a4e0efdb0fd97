package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/AdityaHandrian/kelompokfprsbp/internal/session"
)

type SessionHandler struct {
	store *session.Store
	log   *logrus.Logger
}

func NewSessionHandler(store *session.Store, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{store: store, log: logger}
}

func (h *SessionHandler) RegisterRoutes(router gin.IRouter) {
	sess := router.Group("/session")
	{
		sess.GET("", h.GetSession)
		sess.POST("/select/:userId", h.SelectUser)
		sess.POST("/logout", h.Logout)
	}
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Session retrieved", h.store.Snapshot())
}

func (h *SessionHandler) SelectUser(c *gin.Context) {
	idStr := c.Param("userId")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.log.Warnf("Handler: Invalid user ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	profile, err := h.store.SelectUser(c.Request.Context(), id)
	if errors.Is(err, session.ErrSuperseded) {
		// a newer selection won; report the state that selection produced
		SuccessResponse(c, http.StatusOK, "Selection superseded by a newer request", h.store.Snapshot())
		return
	}
	if err != nil {
		// prior session state is untouched; the page shows this inline
		ErrorResponse(c, mapErrorToStatus(err), "Failed to select user: "+err.Error())
		return
	}

	h.log.Infof("Handler: User %d selected (%s)", id, profile.UserName)
	SuccessResponse(c, http.StatusOK, "User selected successfully", h.store.Snapshot())
}

func (h *SessionHandler) Logout(c *gin.Context) {
	h.store.Logout()
	SuccessResponse(c, http.StatusOK, "Logged out", h.store.Snapshot())
}
