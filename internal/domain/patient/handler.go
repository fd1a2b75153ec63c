package patient

import (
	"errors"
	"net/http"

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
	api.POST("/patients", h.RegisterPatient)
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:cpf", h.GetPatient)
}

type registerRequest struct {
	Name string `json:"name"`
	CPF  string `json:"cpf"`
}

// RegisterPatient handles POST /patients.
func (h *Handler) RegisterPatient(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p := &Patient{Name: req.Name, CPF: req.CPF}
	if err := h.svc.Register(c.Request().Context(), p); err != nil {
		switch {
		case errors.Is(err, ErrNameRequired):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrInvalidCPF):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, ErrCPFTaken):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

// GetPatient handles GET /patients/:cpf.
func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.GetByCPF(c.Request().Context(), c.Param("cpf"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCPF):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, ErrPatientNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

// ListPatients handles GET /patients.
func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPatients(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
