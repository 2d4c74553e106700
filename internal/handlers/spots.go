package handlers

import (
	"html/template"
	"net/http"
	"time"

	"potarig/internal/band"
	"potarig/internal/models"
	"potarig/internal/service"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
)

const (
	indexTemplateName = "index"
	createdLayout     = "2006-01-02 15:04"
)

// pageSortKeys are offered by the page's sort selector.
var pageSortKeys = []string{"activator", service.SortFrequency, service.SortLocation, service.SortTime, "reference", "mode"}

var templateFuncs = template.FuncMap{
	"khz":      func(f float64) string { return humanize.CommafWithDigits(f, 1) },
	"sortKeys": func() []string { return pageSortKeys },
}

// spotView is a spot as presented to clients.
type spotView struct {
	models.Spot
	Band      string `json:"band"`
	TimeSince int64  `json:"timeSince"` // seconds since the spot
	Age       string `json:"age"`       // e.g. "3 minutes ago"
}

// spotsPage is everything the spot list needs: filtered spots plus the
// choices for each filter, taken from the unfiltered list.
type spotsPage struct {
	Created  string                `json:"created"`
	Count    int                   `json:"count"`
	Spots    []spotView            `json:"spots"`
	Bands    []string              `json:"bands"`
	Modes    []string              `json:"modes"`
	Programs []string              `json:"programs"`
	Filters  models.FilterCriteria `json:"filters"`
}

// buildPage fetches the latest spots, applies update (if any) to the filter
// and renders the page model.
func (h *Handler) buildPage(c *gin.Context, update *service.FilterUpdate) spotsPage {
	ctx := c.Request.Context()
	now := h.now().UTC()

	latest := h.services.Spots.FetchLatest(ctx)
	bands, modes, programs := service.Facets(latest)

	var criteria models.FilterCriteria
	if update != nil {
		criteria = h.services.Filters.Update(ctx, *update)
	} else {
		criteria = h.services.Filters.Get(ctx)
	}

	filtered := service.Filter(latest, criteria)
	views := make([]spotView, 0, len(filtered))
	for _, sp := range filtered {
		views = append(views, spotView{
			Spot:      sp,
			Band:      band.Classify(sp.FrequencyKHz),
			TimeSince: now.Unix() - sp.SpotTime,
			Age:       humanize.RelTime(time.Unix(sp.SpotTime, 0), now, "ago", "from now"),
		})
	}

	return spotsPage{
		Created:  now.Format(createdLayout),
		Count:    len(views),
		Spots:    views,
		Bands:    bands,
		Modes:    modes,
		Programs: programs,
		Filters:  criteria,
	}
}

// formUpdate reads the filter form: only submitted fields change, and the
// exqrt checkbox is on exactly when present.
func formUpdate(c *gin.Context) service.FilterUpdate {
	var u service.FilterUpdate
	if v, ok := c.GetPostForm("band"); ok {
		u.Band = &v
	}
	if v, ok := c.GetPostForm("mode"); ok {
		u.Mode = &v
	}
	if v, ok := c.GetPostForm("program"); ok {
		u.Program = &v
	}
	if v, ok := c.GetPostForm("sortby"); ok {
		u.SortBy = &v
	}
	_, u.ExcludeTerminated = c.GetPostForm("exqrt")
	return u
}

// index renders the spot list page. POST submits the filter form first.
func (h *Handler) index(c *gin.Context) {
	var update *service.FilterUpdate
	if c.Request.Method == http.MethodPost {
		u := formUpdate(c)
		update = &u
	}
	c.HTML(http.StatusOK, indexTemplateName, h.buildPage(c, update))
}

// @Summary      Latest spots
// @Description  One spot per activation, filtered and sorted by the current filter.
// @Tags         spots
// @Produce      json
// @Success      200  {object}  spotsPage
// @Router       /api/v1/spots [get]
func (h *Handler) getSpots(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildPage(c, nil))
}

// @Summary      Update filter and list spots
// @Tags         spots
// @Accept       json
// @Produce      json
// @Param        body  body      service.FilterUpdate  true  "Filter change"
// @Success      200   {object}  spotsPage
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/spots [post]
func (h *Handler) postSpots(c *gin.Context) {
	var u service.FilterUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.buildPage(c, &u))
}

// @Summary      Current spot filter
// @Tags         spots
// @Produce      json
// @Success      200  {object}  models.FilterCriteria
// @Router       /api/v1/filters [get]
func (h *Handler) getFilters(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Filters.Get(c.Request.Context()))
}

// @Summary      Update spot filter
// @Description  Band, mode and program are upper-cased. Omitted fields are unchanged; exclude_terminated defaults to false.
// @Tags         spots
// @Accept       json
// @Produce      json
// @Param        body  body      service.FilterUpdate  true  "Filter change"
// @Success      200   {object}  models.FilterCriteria
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/filters [put]
func (h *Handler) putFilters(c *gin.Context) {
	var u service.FilterUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.services.Filters.Update(c.Request.Context(), u))
}
