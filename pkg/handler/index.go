package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Index shows the record counts and how often this session has been here.
func (h *Handler) Index(c *gin.Context) {
	d, err := h.svc.Dashboard().Counts(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}

	d.NumVisits, err = nextVisit(sessions.Default(c))
	if err != nil {
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, "index.html", gin.H{
		"num_drivers":       d.NumDrivers,
		"num_cars":          d.NumCars,
		"num_manufacturers": d.NumManufacturers,
		"num_visits":        d.NumVisits,
	})
}
