package assignment

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
	api.POST("/assignments/rooms", h.AssignToRoom)
	api.DELETE("/assignments/rooms/:id", h.UnassignRoom)
	api.GET("/assignments/rooms", h.ListRoomAssignments)
	api.POST("/assignments/surgeries", h.AssignToSurgery)
	api.DELETE("/assignments/surgeries/:id", h.UnassignSurgery)
	api.GET("/assignments/surgeries/:surgeryId", h.ListSurgeryAssignments)
	api.POST("/assignments/drop", h.Drop)
}

type assignRoomRequest struct {
	RoomID uuid.UUID `json:"room_id"`
	PoolID uuid.UUID `json:"pool_id"`
	Date   string    `json:"date"`
}

func (h *Handler) AssignToRoom(c echo.Context) error {
	var req assignRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	a, err := h.svc.AssignToRoom(c.Request().Context(), req.RoomID, req.PoolID, date)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) UnassignRoom(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.UnassignRoom(c.Request().Context(), id); err != nil {
		return apperr.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListRoomAssignments(c echo.Context) error {
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	if roomParam := c.QueryParam("room_id"); roomParam != "" {
		roomID, err := uuid.Parse(roomParam)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid room_id")
		}
		items, err := h.svc.ListByRoom(c.Request().Context(), roomID, date)
		if err != nil {
			return apperr.HTTPError(err)
		}
		if items == nil {
			items = []*RoomStaffAssignment{}
		}
		return c.JSON(http.StatusOK, items)
	}
	items, err := h.svc.ListRoomAssignmentsByDate(c.Request().Context(), date)
	if err != nil {
		return apperr.HTTPError(err)
	}
	if items == nil {
		items = []*RoomStaffAssignment{}
	}
	return c.JSON(http.StatusOK, items)
}

type assignSurgeryRequest struct {
	SurgeryID uuid.UUID `json:"surgery_id"`
	PoolID    uuid.UUID `json:"pool_id"`
}

func (h *Handler) AssignToSurgery(c echo.Context) error {
	var req assignSurgeryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.AssignToSurgery(c.Request().Context(), req.SurgeryID, req.PoolID)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) UnassignSurgery(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.UnassignSurgery(c.Request().Context(), id); err != nil {
		return apperr.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListSurgeryAssignments(c echo.Context) error {
	surgeryID, err := uuid.Parse(c.Param("surgeryId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid surgery id")
	}
	items, err := h.svc.ListBySurgery(c.Request().Context(), surgeryID)
	if err != nil {
		return apperr.HTTPError(err)
	}
	if items == nil {
		items = []*PlannedStaffAssignment{}
	}
	return c.JSON(http.StatusOK, items)
}

type dropRequest struct {
	Staff  StaffDrag  `json:"staff"`
	Target DropTarget `json:"target"`
}

func (h *Handler) Drop(c echo.Context) error {
	var req dropRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	outcome, err := h.svc.Drop(c.Request().Context(), req.Staff, req.Target)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, outcome)
}
