package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	subjectdomain "github.com/mrossi-dev/gestionale/internal/subject/domain"
)

func (s *Server) CreateSubject(c *gin.Context) {
	var req subjectdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	subject, err := s.subjectSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": subject})
}

func (s *Server) ListSubjects(c *gin.Context) {
	var req subjectdomain.ListRequest
	if raw := strings.TrimSpace(c.Query("role")); raw != "" {
		role := subjectdomain.Role(strings.ToUpper(raw))
		req.Role = &role
	}
	req.Name = c.Query("name")

	subjects, err := s.subjectSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": subjects})
}

func (s *Server) GetSubject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	subject, err := s.subjectSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": subject})
}

func (s *Server) UpdateSubject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req subjectdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	subject, err := s.subjectSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": subject})
}

func (s *Server) DeleteSubject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := s.subjectSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
