package api

import (
	"net/http"

	"github.com/Domenick1991/flightlog/internal/reference"
	"github.com/gin-gonic/gin"
)

// ReferenceLookup feeds the airport and airline pickers of the entry form.
type ReferenceLookup interface {
	AirportOptions(query string) []reference.Option
	AirlineOptions(query string) []reference.Option
}

type ReferenceHandler struct {
	lookup ReferenceLookup
}

func NewReferenceHandler(lookup ReferenceLookup) *ReferenceHandler {
	return &ReferenceHandler{lookup: lookup}
}

func (h *ReferenceHandler) Register(router *gin.RouterGroup) {
	router.GET("/airports", h.airports)
	router.GET("/airlines", h.airlines)
}

func (h *ReferenceHandler) airports(c *gin.Context) {
	c.JSON(http.StatusOK, h.lookup.AirportOptions(c.Query("q")))
}

func (h *ReferenceHandler) airlines(c *gin.Context) {
	c.JSON(http.StatusOK, h.lookup.AirlineOptions(c.Query("q")))
}
