package careplan

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mdscare/mdscare/internal/platform/auth"
	"github.com/mdscare/mdscare/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	clinical := auth.RequireRole("admin", "mds_coordinator", "nurse")
	coordinator := auth.RequireRole("admin", "mds_coordinator")

	api.GET("/investigations/:id", h.GetInvestigation, clinical)
	api.GET("/assessments/:id/investigations", h.ListInvestigationsByAssessment, clinical)
	api.GET("/residents/:id/investigations", h.ListInvestigationsByResident, clinical)
	api.POST("/investigations/:id/complete", h.CompleteInvestigation, coordinator)

	api.POST("/care-plan-entries", h.CreateEntry, clinical)
	api.GET("/care-plan-entries/:id", h.GetEntry, clinical)
	api.PUT("/care-plan-entries/:id", h.UpdateEntry, clinical)
	api.DELETE("/care-plan-entries/:id", h.DeleteEntry, coordinator)
	api.GET("/residents/:id/care-plan", h.ListEntriesByResident, clinical)
}

func (h *Handler) GetInvestigation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	inv, err := h.svc.GetInvestigation(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "investigation not found")
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) ListInvestigationsByAssessment(c echo.Context) error {
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid assessment id")
	}
	items, err := h.svc.ListInvestigationsByAssessment(c.Request().Context(), assessmentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Investigation{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListInvestigationsByResident(c echo.Context) error {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid resident id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListInvestigationsByResident(c.Request().Context(), residentID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) CompleteInvestigation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Findings string `json:"findings"`
		Proceed  bool   `json:"proceed"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	inv, err := h.svc.CompleteInvestigation(c.Request().Context(), id, body.Findings, body.Proceed)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) CreateEntry(c echo.Context) error {
	var e CarePlanEntry
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateEntry(c.Request().Context(), &e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) GetEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	e, err := h.svc.GetEntry(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "care plan entry not found")
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) UpdateEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var e CarePlanEntry
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e.ID = id
	if err := h.svc.UpdateEntry(c.Request().Context(), &e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) DeleteEntry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteEntry(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListEntriesByResident(c echo.Context) error {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid resident id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListEntriesByResident(c.Request().Context(), residentID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
