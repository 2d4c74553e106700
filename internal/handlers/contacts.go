package handlers

import (
	"errors"
	"net/http"

	"potarig/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errLogContact   = "failed to log contact"
	errListContacts = "failed to load contacts"
)

// @Summary      Log a contact
// @Description  Appends the contact to the ADIF log and stores it. Band, MHz frequency and UTC date/time are derived.
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        body  body      service.ContactInput  true  "Contact"
// @Success      201   {object}  models.Contact
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/contacts [post]
func (h *Handler) logContact(c *gin.Context) {
	var in service.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	contact, err := h.services.Contacts.Log(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrMissingCall) || errors.Is(err, service.ErrInvalidFrequency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLogContact, "contact_log_failed", err, "call", in.Call)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2025-08-01)
// @Param        to    query   string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        band  query   string  false  "Band"  example(40m)
// @Success      200   {object}  map[string]interface{}  "count, contacts"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/contacts [get]
func (h *Handler) listContacts(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}
	band := c.Query("band")

	contacts, err := h.services.Contacts.List(c.Request.Context(), service.ContactFilter{From: from, To: to, Band: band})
	if err != nil {
		if errors.Is(err, service.ErrInvalidTimeRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errRangeInvalid})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errListContacts, "contacts_list_failed", err, "band", band)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(contacts),
		"contacts": contacts,
	})
}

// legacyLogData serves the page's log link. It always answers 204; failures are only logged.
func (h *Handler) legacyLogData(c *gin.Context) {
	_, err := h.services.Contacts.Log(c.Request.Context(), service.ContactInput{
		Call:         c.Query("call"),
		FrequencyKHz: c.Query("freq"),
		Mode:         c.Query("mode"),
		Reference:    c.Query("ref"),
		ParkName:     c.Query("name"),
	})
	if err != nil && h.log != nil {
		h.log.Errorw("contact_log_failed", "err", err, "call", c.Query("call"))
	}
	c.Status(http.StatusNoContent)
}
