package handlers

import (
	"net/http"
	"strconv"

	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/services"
	"github.com/gin-gonic/gin"
)

// ValuationHandler handles valuation and rebalance endpoints
type ValuationHandler struct {
	dashboardSvc *services.DashboardService
}

// NewValuationHandler creates a new ValuationHandler
func NewValuationHandler(dashboardSvc *services.DashboardService) *ValuationHandler {
	return &ValuationHandler{
		dashboardSvc: dashboardSvc,
	}
}

// GetFX handles GET /fx
// @Summary Current FX rate
// @Description Foreign-to-home exchange rate, falling back to the configured rate when no provider answers
// @Tags valuation
// @Produce json
// @Success 200 {object} models.FXQuote
// @Router /fx [get]
func (h *ValuationHandler) GetFX(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboardSvc.CurrentFX(c.Request.Context()))
}

// RefreshQuotes handles POST /quotes/refresh
// @Summary Refresh quotes
// @Description Drop cached quotes and FX rates; the next valuation fetches live values
// @Tags valuation
// @Success 204
// @Router /quotes/refresh [post]
func (h *ValuationHandler) RefreshQuotes(c *gin.Context) {
	h.dashboardSvc.RefreshQuotes()
	c.Status(http.StatusNoContent)
}

// Valuate handles GET /valuation
// @Summary Value the session portfolio
// @Description Value every account (or one) against a single market snapshot
// @Tags valuation
// @Produce json
// @Param account query string false "Value only this account"
// @Param include_excluded query bool false "Fold excluded accounts into the consolidated view"
// @Success 200 {object} models.ValuationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /valuation [get]
func (h *ValuationHandler) Valuate(c *gin.Context) {
	includeExcluded := false
	if raw := c.Query("include_excluded"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "include_excluded must be a boolean")
			return
		}
		includeExcluded = v
	}

	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.dashboardSvc.Valuate(warnCtx, c.Query("account"), includeExcluded)
	if err != nil {
		respondError(c, err)
		return
	}

	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}

// ValuateHoldings handles POST /valuation
// @Summary Value posted holdings
// @Description Value the posted accounts without touching the session
// @Tags valuation
// @Accept json
// @Produce json
// @Param request body models.ValuationRequest true "Accounts to value"
// @Success 200 {object} models.ValuationResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /valuation [post]
func (h *ValuationHandler) ValuateHoldings(c *gin.Context) {
	var req models.ValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.dashboardSvc.ValuateHoldings(warnCtx, req.Accounts)
	if err != nil {
		respondError(c, err)
		return
	}

	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}

// Rebalance handles POST /rebalance
// @Summary Plan a rebalance
// @Description Simulate trading one account to target quantities. Tickers without a target keep their current quantity. A target for a ticker the account does not hold is planned as a new position (warning W3003).
// @Tags valuation
// @Accept json
// @Produce json
// @Param request body models.RebalanceRequest true "Account and target quantities"
// @Success 200 {object} models.RebalanceResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /rebalance [post]
func (h *ValuationHandler) Rebalance(c *gin.Context) {
	var req models.RebalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	resp, err := h.dashboardSvc.Rebalance(warnCtx, req.Account, req.Targets)
	if err != nil {
		respondError(c, err)
		return
	}

	resp.Warnings = wc.GetWarnings()
	c.JSON(http.StatusOK, resp)
}
