package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	analyticsdomain "github.com/smallbiznis/dentalpay/internal/analytics/domain"
	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
)

func (s *Server) SubmitSalary(c *gin.Context) {
	var req salarydomain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, bindError(err))
		return
	}

	record, err := s.salarySvc.Submit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (s *Server) SearchSalaries(c *gin.Context) {
	page, limit, err := parsePage(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.analyticsSvc.Search(c.Request.Context(), analyticsdomain.SearchRequest{
		Specialty:    queryValue(c, "specialty", "speciality"),
		SubSpecialty: queryValue(c, "subspeciality", "subSpecialty"),
		State:        queryValue(c, "state"),
		Practice:     queryValue(c, "practice", "practiceSetting"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListSalaries(c *gin.Context) {
	page, limit, err := parsePage(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	minSalary, err := parseOptionalFloat(c.Query("minSalary"))
	if err != nil {
		AbortWithError(c, newValidationError("minSalary", "invalid_min_salary", "minSalary must be a number"))
		return
	}
	maxSalary, err := parseOptionalFloat(c.Query("maxSalary"))
	if err != nil {
		AbortWithError(c, newValidationError("maxSalary", "invalid_max_salary", "maxSalary must be a number"))
		return
	}

	resp, err := s.salarySvc.List(c.Request.Context(), salarydomain.ListRequest{
		Specialty:       queryValue(c, "specialty", "speciality"),
		PracticeSetting: queryValue(c, "practiceSetting", "practice"),
		Experience:      queryValue(c, "experience"),
		MinSalary:       minSalary,
		MaxSalary:       maxSalary,
		Satisfaction:    queryValue(c, "satisfaction"),
		Page:            page,
		Limit:           limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) SpecialtyStats(c *gin.Context) {
	resp, err := s.analyticsSvc.SpecialtyStats(c.Request.Context(), analyticsdomain.SpecialtyStatsRequest{
		Specialty:       queryValue(c, "specialty", "speciality"),
		PracticeSetting: queryValue(c, "practiceSetting", "practice"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) StatsBySpecialtyName(c *gin.Context) {
	resp, err := s.analyticsSvc.StatsBySpecialtyName(c.Request.Context(), queryValue(c, "specialty", "speciality"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) SpecialtyInsights(c *gin.Context) {
	resp, err := s.analyticsSvc.SpecialtyInsights(c.Request.Context(), queryValue(c, "specialty", "speciality"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CompensationAnalysis(c *gin.Context) {
	var amount float64
	if raw := queryValue(c, "amount", "compensation"); raw != "" {
		parsed, err := parseOptionalFloat(strings.ReplaceAll(raw, ",", ""))
		if err != nil || parsed == nil {
			AbortWithError(c, analyticsdomain.ErrInvalidAmount)
			return
		}
		amount = *parsed
	}

	resp, err := s.analyticsSvc.CompensationAnalysis(c.Request.Context(), analyticsdomain.CompensationRequest{
		Specialty:       queryValue(c, "specialty", "speciality"),
		State:           queryValue(c, "state"),
		PracticeSetting: queryValue(c, "practiceSetting", "practice"),
		Amount:          amount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) SalaryCount(c *gin.Context) {
	count, err := s.salarySvc.Count(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
