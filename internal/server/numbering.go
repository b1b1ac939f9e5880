package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	documentdomain "github.com/mrossi-dev/gestionale/internal/document/domain"
	numberingdomain "github.com/mrossi-dev/gestionale/internal/numbering/domain"
)

func (s *Server) ListCounters(c *gin.Context) {
	counters, err := s.numberingSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": counters})
}

// PeekNumber reports the next number a document of the given type would
// receive, without consuming it.
func (s *Server) PeekNumber(c *gin.Context) {
	docType, err := documentdomain.ParseType(strings.TrimSpace(c.Query("type")))
	if err != nil {
		AbortWithError(c, documentdomain.NewValidationError("type", err.Error()))
		return
	}

	year := time.Now().Year()
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, documentdomain.NewValidationError("year", "must be a number"))
			return
		}
	}

	alloc, err := s.numberingSvc.Peek(c.Request.Context(), string(docType), year)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": alloc})
}

func (s *Server) ConfigureCounter(c *gin.Context) {
	docType, err := documentdomain.ParseType(strings.TrimSpace(c.Param("type")))
	if err != nil {
		AbortWithError(c, documentdomain.NewValidationError("type", err.Error()))
		return
	}

	year, err := strconv.Atoi(strings.TrimSpace(c.Param("year")))
	if err != nil {
		AbortWithError(c, documentdomain.NewValidationError("year", "must be a number"))
		return
	}

	var req numberingdomain.Defaults
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.PadWidth < 0 || req.PadWidth > 20 {
		AbortWithError(c, documentdomain.NewValidationError("pad_width", "must be between 0 and 20"))
		return
	}

	counter, err := s.numberingSvc.Configure(c.Request.Context(), string(docType), year, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": counter})
}
