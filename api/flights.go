package api

import (
	"net/http"

	"github.com/Domenick1991/flightlog/internal/export"
	"github.com/Domenick1991/flightlog/internal/service/flights"
	"github.com/Domenick1991/flightlog/internal/service/stats"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.record)
	router.POST("/import", h.importCSV)
	router.GET("/years", h.years)
	router.GET("/export.xlsx", h.exportXLSX)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	sel, err := selectorParam(c, "")
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := h.service.List(c.Request.Context(), userID(c), sel)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) years(c *gin.Context) {
	years, err := h.service.Years(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"years": years})
}

func (h *FlightHandler) record(c *gin.Context) {
	var req flights.RecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.Record(c.Request.Context(), userID(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) importCSV(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	n, err := h.service.Import(c.Request.Context(), userID(c), file)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"imported": n})
}

func (h *FlightHandler) exportXLSX(c *gin.Context) {
	sel, err := selectorParam(c, "")
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := h.service.List(c.Request.Context(), userID(c), sel)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="flights.xlsx"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := export.WriteXLSX(c.Writer, result, stats.Compute(result)); err != nil {
		c.Error(err)
	}
}
