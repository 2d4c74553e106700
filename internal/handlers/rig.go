package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type tuneRequest struct {
	Mode string `json:"mode" example:"SSB"`
	Freq string `json:"freq" example:"7200"` // kHz
}

// @Summary      Tune the transceiver
// @Description  Sets frequency then mode through the rig controller. Returns 502 with the report when any command failed.
// @Tags         rig
// @Accept       json
// @Produce      json
// @Param        body  body      tuneRequest  true  "Mode and frequency in kHz"
// @Success      200   {object}  service.TuneReport
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  service.TuneReport
// @Router       /api/v1/rig/tune [post]
func (h *Handler) tune(c *gin.Context) {
	var req tuneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	report := h.services.Rig.Tune(c.Request.Context(), req.Mode, req.Freq)
	code := http.StatusOK
	if report.Failed() {
		code = http.StatusBadGateway
	}
	c.JSON(code, report)
}

// @Summary      Transceiver state
// @Tags         rig
// @Produce      json
// @Success      200  {object}  service.RigState
// @Router       /api/v1/rig [get]
func (h *Handler) getRig(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Rig.State(c.Request.Context()))
}

// legacyTune serves the page's click-to-tune link. It always answers 204.
func (h *Handler) legacyTune(c *gin.Context) {
	h.services.Rig.Tune(c.Request.Context(), c.Query("mode"), c.Query("freq"))
	c.Status(http.StatusNoContent)
}
