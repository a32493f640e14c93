package api

import (
	"net/http"

	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/Domenick1991/flightlog/internal/geo"
	"github.com/Domenick1991/flightlog/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	service flights.FlightUseCase
}

func NewStatsHandler(service flights.FlightUseCase) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.stats)
	router.GET("/departures-by-country", h.departuresByCountry)
	router.GET("/time-grouping", h.timeGrouping)
	router.GET("/journey", h.journey)
}

// RegisterMap mounts the map endpoints, which share the selector handling.
func (h *StatsHandler) RegisterMap(router *gin.RouterGroup) {
	router.GET("/paths", h.paths)
}

func (h *StatsHandler) stats(c *gin.Context) {
	sel, err := selectorParam(c, domain.SelectorAll)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := h.service.Stats(c.Request.Context(), userID(c), sel)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *StatsHandler) departuresByCountry(c *gin.Context) {
	sel, err := selectorParam(c, domain.SelectorAll)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := h.service.DeparturesByCountry(c.Request.Context(), userID(c), sel)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *StatsHandler) timeGrouping(c *gin.Context) {
	sel, err := selectorParam(c, domain.SelectorAll)
	if err != nil {
		writeError(c, err)
		return
	}
	mode := c.DefaultQuery("mode", string(domain.GroupingMonth))
	grouping, err := domain.ParseGrouping(mode)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := h.service.TimeGrouping(c.Request.Context(), userID(c), grouping, sel)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *StatsHandler) journey(c *gin.Context) {
	sel, err := selectorParam(c, domain.SelectorAll)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := h.service.Journey(c.Request.Context(), userID(c), sel)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *StatsHandler) paths(c *gin.Context) {
	sel, err := selectorParam(c, domain.SelectorAll)
	if err != nil {
		writeError(c, err)
		return
	}
	paths, err := h.service.Paths(c.Request.Context(), userID(c), sel)
	if err != nil {
		writeError(c, err)
		return
	}
	data, err := geo.PathsGeoJSON(paths)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}
