package assessment

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mdscare/mdscare/internal/mds"
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

	api.POST("/assessments", h.Create, clinical)
	api.GET("/assessments/:id", h.Get, clinical)
	api.GET("/residents/:id/assessments", h.ListByResident, clinical)

	api.PUT("/assessments/:id/sections/:section", h.SaveSection, clinical)
	api.POST("/assessments/:id/sections/:section/validate", h.ValidateSection, clinical)
	api.GET("/assessments/:id/skip/:item", h.SkipCheck, clinical)

	api.POST("/assessments/:id/complete", h.Complete, coordinator)
	api.POST("/assessments/:id/triggers", h.RunTriggers, coordinator)
	api.GET("/assessments/:id/triggers", h.GetTriggers, clinical)
	api.POST("/assessments/:id/submit", h.Submit, coordinator)
	api.POST("/assessments/:id/lock", h.Lock, coordinator)

	api.GET("/mds/help/:item", h.ItemHelp, clinical)
	api.GET("/mds/skip-patterns/:section", h.SkipPatterns, clinical)
}

func (h *Handler) Create(c echo.Context) error {
	var a Assessment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListByResident(c echo.Context) error {
	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid resident id")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByResident(c.Request().Context(), residentID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) SaveSection(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var data mds.SectionData
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.SaveSection(c.Request().Context(), id, c.Param("section"), data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) ValidateSection(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	result, err := h.svc.ValidateSection(c.Request().Context(), id, c.Param("section"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// SkipCheck reports whether an item is covered by an active skip
// pattern given the assessment's current data, for UI greying.
func (h *Handler) SkipCheck(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
	}
	item := c.Param("item")
	return c.JSON(http.StatusOK, map[string]any{
		"item":    item,
		"skipped": mds.ShouldSkipField(item, a.Data),
	})
}

func (h *Handler) Complete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Complete(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) RunTriggers(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	triggers, err := h.svc.RunTriggers(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	if triggers == nil {
		triggers = []mds.CaaTrigger{}
	}
	return c.JSON(http.StatusOK, triggers)
}

func (h *Handler) GetTriggers(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "assessment not found")
	}
	if !a.TriggersEvaluated() {
		return echo.NewHTTPError(http.StatusConflict, "triggers have not been evaluated")
	}
	triggers := a.CaaTriggers
	if triggers == nil {
		triggers = []mds.CaaTrigger{}
	}
	return c.JSON(http.StatusOK, triggers)
}

func (h *Handler) Submit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Submit(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Lock(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.Lock(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ItemHelp(c echo.Context) error {
	item := c.Param("item")
	return c.JSON(http.StatusOK, map[string]string{
		"item": item,
		"help": mds.FieldHelp(item),
	})
}

func (h *Handler) SkipPatterns(c echo.Context) error {
	section := c.Param("section")
	patterns := mds.SkipPatternsForSection(section)
	out := make([]map[string]any, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, map[string]any{
			"field":       p.Field,
			"skip_to":     p.SkipTo,
			"dependents":  p.Dependents,
			"description": p.Description,
		})
	}
	return c.JSON(http.StatusOK, out)
}
