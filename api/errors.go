package api

import (
	"encoding/csv"
	"errors"
	"log"
	"net/http"

	"github.com/Domenick1991/flightlog/internal/domain"
	"github.com/Domenick1991/flightlog/internal/importer"
	"github.com/Domenick1991/flightlog/internal/repository"
	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, err error) {
	var verr *importer.ValidationError
	var perr *csv.ParseError
	switch {
	case errors.As(err, &verr):
		rows := make([]string, 0, len(verr.Rows))
		for _, r := range verr.Rows {
			rows = append(rows, r.String())
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "rows": rows})
	case errors.Is(err, domain.ErrInvalidSelector),
		errors.Is(err, domain.ErrInvalidGrouping),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, importer.ErrEmptyFile),
		errors.Is(err, importer.ErrUnknownLayout),
		errors.As(err, &perr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// selectorParam reads ?selector=, falling back to def when absent.
func selectorParam(c *gin.Context, def domain.Selector) (domain.Selector, error) {
	raw := c.Query("selector")
	if raw == "" {
		return def, nil
	}
	return domain.ParseSelector(raw)
}
