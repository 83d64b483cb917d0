package daysheet

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
	api.GET("/day-sheet", h.Render)
}

func (h *Handler) Render(c echo.Context) error {
	hospitalID, err := uuid.Parse(c.QueryParam("hospital_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid hospital_id")
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
	}
	doc, contentType, ok, err := h.svc.Render(c.Request().Context(), hospitalID, date)
	if err != nil {
		return apperr.HTTPError(err)
	}
	if !ok {
		// An empty day renders nothing; tell the client there is no sheet.
		return c.JSON(http.StatusOK, map[string]interface{}{"empty": true})
	}
	return c.Blob(http.StatusOK, contentType, doc)
}
