package audit

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/leitos/leitos/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/audit", h.ListEntries)
}

// ListEntries handles GET /audit with optional bed_id, patient_id and
// action filters.
func (h *Handler) ListEntries(c echo.Context) error {
	var f Filter

	if v := c.QueryParam("bed_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid bed_id")
		}
		f.BedID = &id
	}
	if v := c.QueryParam("patient_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		f.PatientID = &id
	}
	f.Action = Action(c.QueryParam("action"))

	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListEntries(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		if errors.Is(err, ErrInvalidAction) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
