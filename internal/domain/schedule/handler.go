package schedule

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/orplan/orplan/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/schedule", h.FetchWindow)
	api.POST("/schedule/surgeries/:id/move", h.Move)
	api.POST("/schedule/surgeries/:id/resize", h.Resize)
}

func (h *Handler) FetchWindow(c echo.Context) error {
	hospitalID, err := uuid.Parse(c.QueryParam("hospital_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hospital_id")
	}
	ref, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	view := View(c.QueryParam("view"))
	if view == "" {
		view = ViewDay
	}
	w, err := h.svc.FetchWindow(c.Request().Context(), hospitalID, ref, view)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, w)
}

type moveRequest struct {
	NewStart time.Time  `json:"new_start"`
	RoomID   *uuid.UUID `json:"room_id,omitempty"`
}

func (h *Handler) Move(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.NewStart.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "new_start is required")
	}
	sg, err := h.svc.Move(c.Request().Context(), id, req.NewStart, req.RoomID)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, sg)
}

type resizeRequest struct {
	Edge Edge      `json:"edge"`
	At   time.Time `json:"at"`
}

func (h *Handler) Resize(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req resizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.At.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "at is required")
	}
	sg, err := h.svc.Resize(c.Request().Context(), id, req.Edge, req.At)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, sg)
}
