package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	documentdomain "github.com/mrossi-dev/gestionale/internal/document/domain"
	"github.com/shopspring/decimal"
)

// ListInstallments returns a document's installments, optionally
// narrowed to overdue ones or those falling due soon.
func (s *Server) ListInstallments(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := s.documentSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	now := time.Now().UTC()
	overdueOnly := strings.EqualFold(c.Query("overdue"), "true")

	dueWithin := 0
	if raw := strings.TrimSpace(c.Query("due_within")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			AbortWithError(c, documentdomain.NewValidationError("due_within", "must be a non-negative number of days"))
			return
		}
		dueWithin = days
	}

	out := make([]documentdomain.Installment, 0, len(doc.Installments))
	for _, inst := range doc.Installments {
		if overdueOnly && !inst.Overdue(now) {
			continue
		}
		if dueWithin > 0 && !inst.DueWithin(now, dueWithin) {
			continue
		}
		out = append(out, inst)
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (s *Server) RegisterPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Amount decimal.Decimal `json:"amount"`
		Date   *time.Time      `json:"date,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	inst, err := s.documentSvc.RegisterPayment(c.Request.Context(), id, req.Amount, date)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inst})
}
