package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rollhouse/salesdash/internal/dashboard"
	"github.com/rollhouse/salesdash/internal/domain"
	"github.com/rollhouse/salesdash/internal/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// parseFilters builds a Filters value from query parameters. A preset id
// takes precedence over explicit start/end; an invalid custom range is
// rejected here, before it can reach the engine.
func (h *DashboardHandler) parseFilters(c *gin.Context) (domain.Filters, error) {
	f := domain.Filters{
		Department: strings.TrimSpace(c.DefaultQuery("department", domain.DepartmentAll)),
		SearchTerm: strings.TrimSpace(c.Query("search")),
	}

	if preset := strings.TrimSpace(c.Query("preset")); preset != "" {
		r, ok := dashboard.Resolve(preset, time.Now())
		if !ok {
			return f, errors.New("unknown preset: " + preset)
		}
		f.DateRange = r
	} else {
		start := strings.TrimSpace(c.Query("start"))
		end := strings.TrimSpace(c.Query("end"))
		if start != "" || end != "" {
			if start == "" || end == "" {
				return f, errors.New("start and end must be provided together")
			}
			r := domain.DateRange{Start: start, End: end}
			if !r.Valid() {
				return f, service.ErrInvalidRange
			}
			f.DateRange = &r
		}
	}

	// Support both repeated params and comma-separated lists:
	//   ?category=A&category=B  and  ?category=A,B
	raw := c.QueryArray("category")
	if len(raw) == 0 {
		raw = c.QueryArray("categories")
	}
	seen := make(map[string]struct{})
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			f.Categories = append(f.Categories, part)
		}
	}

	return f, nil
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	filters, err := h.parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.GetDashboard(c.Request.Context(), filters)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrInvalidRange) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"dashboard":  result,
		"dataStatus": h.service.Status(),
	})
}

func (h *DashboardHandler) GetItems(c *gin.Context) {
	filters, err := h.parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	col := c.DefaultQuery("sort", string(dashboard.SortRevenue))
	if !dashboard.ValidSortColumn(col) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sort column: " + col})
		return
	}
	state := dashboard.DefaultState(dashboard.SortColumn(col))
	switch c.Query("dir") {
	case "":
	case "asc":
		state.Descending = false
	case "desc":
		state.Descending = true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "dir must be asc or desc"})
		return
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "0")); err == nil {
		state = state.WithPage(page)
	}

	pageResult, err := h.service.GetItems(c.Request.Context(), filters, state)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pageResult)
}

func (h *DashboardHandler) GetSpecialty(c *gin.Context) {
	filters, err := h.parseFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.service.GetSpecialty(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *DashboardHandler) GetSeasonality(c *gin.Context) {
	department := strings.TrimSpace(c.DefaultQuery("department", domain.DepartmentAll))
	c.JSON(http.StatusOK, h.service.GetSeasonality(department))
}

func (h *DashboardHandler) GetForecast(c *gin.Context) {
	forecast := h.service.Forecast()
	if forecast == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "forecast snapshot not loaded"})
		return
	}
	c.JSON(http.StatusOK, forecast)
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary := h.service.SummarySnapshot()
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "summary snapshot not loaded"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) GetPresets(c *gin.Context) {
	now := time.Now()
	type presetInfo struct {
		ID    string            `json:"id"`
		Label string            `json:"label"`
		Range *domain.DateRange `json:"range"`
	}
	presets := dashboard.Presets()
	out := make([]presetInfo, 0, len(presets))
	for _, p := range presets {
		out = append(out, presetInfo{ID: p.ID, Label: p.Label, Range: p.Resolve(now)})
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}

func (h *DashboardHandler) DetectPreset(c *gin.Context) {
	start := strings.TrimSpace(c.Query("start"))
	end := strings.TrimSpace(c.Query("end"))

	var r *domain.DateRange
	if start != "" || end != "" {
		if start == "" || end == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start and end must be provided together"})
			return
		}
		r = &domain.DateRange{Start: start, End: end}
	}
	c.JSON(http.StatusOK, gin.H{"preset": dashboard.Detect(r, time.Now())})
}
