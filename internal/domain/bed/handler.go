package bed

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
	api.GET("/beds", h.ListBeds)
	api.POST("/beds", h.RegisterBed)
	api.GET("/beds/:id", h.GetBed)
	api.POST("/beds/occupy", h.Occupy)
	api.POST("/beds/release", h.Release)
	api.POST("/beds/transfer", h.Transfer)
	api.GET("/patients/:cpf/bed", h.FindPatientBed)
}

type registerBedRequest struct {
	Code string `json:"code"`
	Kind Kind   `json:"kind"`
}

type occupyRequest struct {
	BedID     uuid.UUID `json:"bed_id"`
	PatientID uuid.UUID `json:"patient_id"`
}

type releaseRequest struct {
	BedID uuid.UUID `json:"bed_id"`
}

type transferRequest struct {
	SourceBedID      uuid.UUID `json:"source_bed_id"`
	DestinationBedID uuid.UUID `json:"destination_bed_id"`
}

// httpError maps engine sentinels to stable status codes.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrCodeRequired), errors.Is(err, ErrInvalidKind):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCPF):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrBedNotFound), errors.Is(err, ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrBedUnavailable),
		errors.Is(err, ErrPatientAlreadyAdmitted),
		errors.Is(err, ErrNoPatientAtSource),
		errors.Is(err, ErrDestinationUnavailable),
		errors.Is(err, ErrCodeTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// ListBeds handles GET /beds.
func (h *Handler) ListBeds(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListBeds(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// RegisterBed handles POST /beds.
func (h *Handler) RegisterBed(c echo.Context) error {
	var req registerBedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	b := &Bed{Code: req.Code, Kind: req.Kind}
	if err := h.svc.RegisterBed(c.Request().Context(), b); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, b)
}

// GetBed handles GET /beds/:id.
func (h *Handler) GetBed(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bed id")
	}
	b, err := h.svc.GetBed(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

// Occupy handles POST /beds/occupy.
func (h *Handler) Occupy(c echo.Context) error {
	var req occupyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.BedID == uuid.Nil || req.PatientID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bed_id and patient_id are required")
	}

	b, err := h.svc.Occupy(c.Request().Context(), req.BedID, req.PatientID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

// Release handles POST /beds/release.
func (h *Handler) Release(c echo.Context) error {
	var req releaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.BedID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bed_id is required")
	}

	b, err := h.svc.Release(c.Request().Context(), req.BedID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

// Transfer handles POST /beds/transfer.
func (h *Handler) Transfer(c echo.Context) error {
	var req transferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.SourceBedID == uuid.Nil || req.DestinationBedID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "source_bed_id and destination_bed_id are required")
	}

	b, err := h.svc.Transfer(c.Request().Context(), req.SourceBedID, req.DestinationBedID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, b)
}

// FindPatientBed handles GET /patients/:cpf/bed.
func (h *Handler) FindPatientBed(c echo.Context) error {
	res, err := h.svc.FindPatientBed(c.Request().Context(), c.Param("cpf"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}
