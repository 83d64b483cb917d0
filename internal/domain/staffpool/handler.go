package staffpool

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
	api.GET("/staff-pool", h.ListPool)
	api.POST("/staff-pool", h.AddToPool)
	api.DELETE("/staff-pool/:id", h.RemoveFromPool)
	api.GET("/staff-options", h.ListStaffOptions)
	api.POST("/staff-options/promote", h.Promote)
}

func (h *Handler) ListPool(c echo.Context) error {
	hospitalID, err := uuid.Parse(c.QueryParam("hospital_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hospital_id")
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	items, err := h.svc.ListPool(c.Request().Context(), hospitalID, date)
	if err != nil {
		return apperr.HTTPError(err)
	}
	if items == nil {
		items = []*PoolEntry{}
	}
	return c.JSON(http.StatusOK, items)
}

type addToPoolRequest struct {
	HospitalID uuid.UUID  `json:"hospital_id"`
	Date       string     `json:"date"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
}

func (h *Handler) AddToPool(c echo.Context) error {
	var req addToPoolRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	e, err := h.svc.AddToPool(c.Request().Context(), req.HospitalID, date, req.Name, req.Role, req.UserID)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) RemoveFromPool(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.RemoveFromPool(c.Request().Context(), id); err != nil {
		return apperr.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListStaffOptions(c echo.Context) error {
	hospitalID, err := uuid.Parse(c.QueryParam("hospital_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hospital_id")
	}
	items, err := h.svc.ListStaffOptions(c.Request().Context(), hospitalID)
	if err != nil {
		return apperr.HTTPError(err)
	}
	if q := c.QueryParam("q"); q != "" {
		items = FilterOptions(items, q)
	}
	if items == nil {
		items = []*StaffUser{}
	}
	return c.JSON(http.StatusOK, items)
}

type promoteRequest struct {
	HospitalID uuid.UUID `json:"hospital_id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
}

func (h *Handler) Promote(c echo.Context) error {
	var req promoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, relinked, err := h.svc.PromoteAdHocToUser(c.Request().Context(), req.HospitalID, req.Name, req.Role)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"user":     u,
		"relinked": relinked,
	})
}
