package handlers

import (
	"net/http"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/bank_dashboard/internal/core/ports/services"
	"github.com/SscSPs/bank_dashboard/internal/dto"
	"github.com/SscSPs/bank_dashboard/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	rg.GET("/financial-overview", h.getFinancialOverview)
	rg.GET("/spending-analysis", h.getSpendingAnalysis)
}

// getFinancialOverview godoc
// @Summary Income vs expenses by month
// @Description Monthly totals for the last N months plus last month's summary. Internal transfers are excluded.
// @Tags reports
// @Produce json
// @Param months query int false "Number of months (1-24)" default(6)
// @Success 200 {object} dto.FinancialOverviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /financial-overview [get]
func (h *reportingHandler) getFinancialOverview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var params dto.FinancialOverviewParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	overview, err := h.reportingService.FinancialOverview(c.Request.Context(), actor, params.Months)
	if err != nil {
		respondError(c, logger, err, "Failed to generate financial overview")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialOverviewResponse(overview))
}

// getSpendingAnalysis godoc
// @Summary Spending by category
// @Tags reports
// @Produce json
// @Param timeframe query string false "week, month or year" default(month)
// @Success 200 {object} dto.SpendingAnalysisResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /spending-analysis [get]
func (h *reportingHandler) getSpendingAnalysis(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var params dto.SpendingAnalysisParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	analysis, err := h.reportingService.SpendingAnalysis(c.Request.Context(), actor, domain.SpendingTimeframe(params.Timeframe))
	if err != nil {
		respondError(c, logger, err, "Failed to generate spending analysis")
		return
	}
	c.JSON(http.StatusOK, dto.ToSpendingAnalysisResponse(analysis))
}
