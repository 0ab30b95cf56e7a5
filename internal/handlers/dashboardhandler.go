package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jadarat-dashboard/internal/apperrors"
	"github.com/justsurfingit/jadarat-dashboard/internal/cache"
	"github.com/justsurfingit/jadarat-dashboard/internal/charts"
	"github.com/justsurfingit/jadarat-dashboard/internal/dtos"
	"github.com/justsurfingit/jadarat-dashboard/internal/services"
	"go.uber.org/zap"
)

const defaultPageLimit = 100

// DashboardHandler serves the page, the JSON API and the chart images.
type DashboardHandler struct {
	DashboardService  *services.DashboardService
	CommentaryService *services.CommentaryService
	Charts            *charts.Renderer
	Cache             cache.Cache
	CacheTTL          time.Duration
	Logger            *zap.Logger
}

func NewDashboardHandler(d *services.DashboardService, c *services.CommentaryService, r *charts.Renderer, chartCache cache.Cache, ttl time.Duration, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		DashboardService:  d,
		CommentaryService: c,
		Charts:            r,
		Cache:             chartCache,
		CacheTTL:          ttl,
		Logger:            logger,
	}
}

type pageData struct {
	D     *dtos.DashboardResponse
	Query template.URL
}

// Page is GET /
func (h *DashboardHandler) Page(c *gin.Context) {
	resp, ok := h.dashboard(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", pageData{D: resp, Query: selectionQuery(resp.Selection)})
}

// Dashboard is GET /api/v1/dashboard
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	resp, ok := h.dashboard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Postings is GET /api/v1/postings
func (h *DashboardHandler) Postings(c *gin.Context) {
	req, ok := bindFilter(c)
	if !ok {
		return
	}
	var page dtos.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondError(c, apperrors.InvalidInput("invalid paging: "+err.Error(), err))
		return
	}
	if page.Limit == 0 {
		page.Limit = defaultPageLimit
	}

	view, err := h.DashboardService.Resolve(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.PostingsResponse{
		Total:    len(view.Rows),
		Limit:    page.Limit,
		Offset:   page.Offset,
		Postings: services.Page(view.Rows, page.Limit, page.Offset),
	})
}

// Chart is GET /api/v1/charts/:kind, with kind one of regions.png,
// experience.png or gender.png.
func (h *DashboardHandler) Chart(c *gin.Context) {
	name := c.Param("kind")
	kind, ok := charts.ParseKind(strings.TrimSuffix(name, ".png"))
	if !ok {
		respondError(c, apperrors.NotFound("unknown chart "+name, nil))
		return
	}
	req, ok := bindFilter(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	ds, err := h.DashboardService.Store.Get(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	f, err := services.ResolveFilter(req, ds)
	if err != nil {
		respondError(c, err)
		return
	}

	cacheable := h.Cache != nil && !h.DashboardService.Store.Volatile()
	key := "chart:" + strconv.FormatUint(ds.Version, 10) + ":" + string(kind) + ":" + f.Key()
	if cacheable {
		if img, err := h.Cache.Get(ctx, key); err == nil {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "image/png", img)
			return
		} else if !errors.Is(err, cache.ErrNotFound) {
			h.Logger.Warn("chart cache get failed", zap.String("key", key), zap.Error(err))
		}
	}

	resp := services.Render(ds, f)
	img, err := h.Charts.Render(kind, &resp)
	if err != nil {
		respondError(c, apperrors.Internal("render chart", err))
		return
	}

	if cacheable {
		if err := h.Cache.Set(ctx, key, img, h.CacheTTL); err != nil {
			h.Logger.Warn("chart cache set failed", zap.String("key", key), zap.Error(err))
		}
		c.Header("X-Cache", "MISS")
	}
	c.Data(http.StatusOK, "image/png", img)
}

// Insights is GET /api/v1/insights
func (h *DashboardHandler) Insights(c *gin.Context) {
	resp, ok := h.dashboard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.CommentaryService.Insight(c.Request.Context(), resp))
}

// Reload is POST /api/v1/dataset/reload
func (h *DashboardHandler) Reload(c *gin.Context) {
	ds, err := h.DashboardService.Store.Reload(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if h.Cache != nil {
		// Old keys carry the previous version and can never be hit again.
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if err := h.Cache.Clear(ctx); err != nil {
			h.Logger.Warn("chart cache clear failed", zap.Error(err))
		}
	}
	minExp, maxExp := ds.ExperienceBounds()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"rows":    ds.Len(),
		"version": ds.Version,
		"exp_min": minExp,
		"exp_max": maxExp,
	})
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *DashboardHandler) dashboard(c *gin.Context) (*dtos.DashboardResponse, bool) {
	req, ok := bindFilter(c)
	if !ok {
		return nil, false
	}
	resp, err := h.DashboardService.Dashboard(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return resp, true
}

func bindFilter(c *gin.Context) (dtos.FilterRequest, bool) {
	var req dtos.FilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, apperrors.InvalidInput("invalid filter: "+err.Error(), err))
		return req, false
	}
	// A cleared number input submits "exp_max=", which binds as 0. Treat it
	// as unset so the dataset bound applies.
	if strings.TrimSpace(c.Query("exp_min")) == "" {
		req.ExperienceMin = nil
	}
	if strings.TrimSpace(c.Query("exp_max")) == "" {
		req.ExperienceMax = nil
	}
	return req, true
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{
		"error": err.Error(),
		"type":  apperrors.TypeOf(err),
	})
}

func selectionQuery(sel dtos.FilterSelection) template.URL {
	v := url.Values{}
	v.Set("region", sel.Region)
	v.Set("gender", sel.Gender)
	v.Set("exp_min", strconv.Itoa(sel.ExperienceMin))
	v.Set("exp_max", strconv.Itoa(sel.ExperienceMax))
	return template.URL(v.Encode())
}
