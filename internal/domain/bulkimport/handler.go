package bulkimport

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/orplan/orplan/internal/platform/apperr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/import/parse", h.Parse)
	api.POST("/import/commit", h.Commit)
}

type parseRequest struct {
	HospitalID uuid.UUID `json:"hospital_id"`
	Text       string    `json:"text"`
}

func (h *Handler) Parse(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTPError(apperr.Validation("invalid request body"))
	}
	if req.HospitalID == uuid.Nil {
		return apperr.HTTPError(apperr.Validation("hospital_id is required"))
	}
	rows, err := h.service.Preview(c.Request().Context(), req.HospitalID, req.Text)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"rows": rows})
}

type commitRequest struct {
	HospitalID uuid.UUID `json:"hospital_id"`
	Rows       []struct {
		Row       *ParsedRow `json:"row"`
		SurgeonID *uuid.UUID `json:"surgeon_id,omitempty"`
	} `json:"rows"`
}

func (h *Handler) Commit(c echo.Context) error {
	var req commitRequest
	if err := c.Bind(&req); err != nil {
		return apperr.HTTPError(apperr.Validation("invalid request body"))
	}
	if req.HospitalID == uuid.Nil {
		return apperr.HTTPError(apperr.Validation("hospital_id is required"))
	}
	rows := make([]CommitRow, 0, len(req.Rows))
	for _, r := range req.Rows {
		rows = append(rows, CommitRow{Row: r.Row, SurgeonID: r.SurgeonID})
	}
	report := h.service.Commit(c.Request().Context(), req.HospitalID, rows)
	return c.JSON(http.StatusOK, report)
}
