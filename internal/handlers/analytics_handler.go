package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "pesaguru/internal/errors"
	"pesaguru/internal/services"
)

// defaultTrendMonths is the analysis window when none is requested.
const defaultTrendMonths = 6

// AnalyticsHandler handles spending-analysis requests.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetSpendingTrends handles retrieving spending trends over a trailing window.
// @Summary     Get spending trends
// @Description Aggregate expenses into monthly/category trend tables with month-over-month changes
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       months query int false "Months to analyze (1-36, default 6)"
// @Success     200 {object} services.SpendingTrends "Spending trends"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/spending-trends [get]
func (h *AnalyticsHandler) GetSpendingTrends(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months := defaultTrendMonths
	if v := c.Query("months"); v != "" {
		months, err = strconv.Atoi(v)
		if err != nil || months < 1 || months > 36 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be an integer between 1 and 36"))
			return
		}
	}

	trends, err := h.analyticsService.AnalyzeSpendingTrends(userID, months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trends": trends})
}
