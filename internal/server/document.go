package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	documentdomain "github.com/mrossi-dev/gestionale/internal/document/domain"
	"github.com/shopspring/decimal"
)

func parseID(c *gin.Context) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, documentdomain.NewValidationError("id", "malformed identifier"))
		return 0, false
	}
	return id, true
}

func (s *Server) CreateDocument(c *gin.Context) {
	var req documentdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	doc, err := s.documentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": doc})
}

func (s *Server) ListDocuments(c *gin.Context) {
	var req documentdomain.ListRequest

	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		docType, err := documentdomain.ParseType(raw)
		if err != nil {
			AbortWithError(c, documentdomain.NewValidationError("type", err.Error()))
			return
		}
		req.Type = &docType
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := documentdomain.Status(raw)
		if !status.Valid() {
			AbortWithError(c, documentdomain.NewValidationError("status", "unknown status "+raw))
			return
		}
		req.Status = &status
	}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, documentdomain.NewValidationError("year", "must be a number"))
			return
		}
		req.Year = &year
	}

	docs, err := s.documentSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": docs})
}

func (s *Server) GetDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := s.documentSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": doc})
}

func (s *Server) UpdateDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req documentdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	doc, err := s.documentSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": doc})
}

func (s *Server) DeleteDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := s.documentSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) TransitionDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Status documentdomain.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	doc, err := s.documentSvc.Transition(c.Request.Context(), id, req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": doc})
}

func (s *Server) DuplicateDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Type documentdomain.Type `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	doc, err := s.documentSvc.Duplicate(c.Request.Context(), id, req.Type)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": doc})
}

// PreviewTotals computes line amounts, summaries and totals for a set
// of lines without persisting anything.
func (s *Server) PreviewTotals(c *gin.Context) {
	var req struct {
		Lines             []documentdomain.LineInput `json:"lines"`
		WithholdingAmount decimal.Decimal            `json:"withholding_amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	doc := &documentdomain.Document{WithholdingAmount: req.WithholdingAmount}
	for i, in := range req.Lines {
		doc.Lines = append(doc.Lines, documentdomain.Line{
			LineNumber:     i + 1,
			Description:    in.Description,
			Quantity:       in.Quantity,
			UnitPrice:      in.UnitPrice,
			Discount1:      in.Discount1,
			Discount2:      in.Discount2,
			Discount3:      in.Discount3,
			TaxRatePercent: in.TaxRatePercent,
		})
	}

	doc, err := s.documentSvc.Recalculate(doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"lines":       doc.Lines,
		"summaries":   doc.Summaries,
		"total_net":   doc.TotalNet,
		"total_tax":   doc.TotalTax,
		"total_gross": doc.TotalGross,
	}})
}

func (s *Server) ListTaxRates(c *gin.Context) {
	rates := s.taxCatalog.Rates()
	out := make([]gin.H, 0, len(rates))
	for _, r := range rates {
		entry := gin.H{
			"percentage":  r.Percentage,
			"code":        r.Code,
			"description": r.Description,
		}
		if r.Exempt() {
			entry["exempt_nature"] = r.ExemptNature
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}
