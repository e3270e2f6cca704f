package handlers

import (
	"net/http"

	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// PortfolioHandler handles the session's account and holdings endpoints
type PortfolioHandler struct {
	sessionSvc *services.SessionService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(sessionSvc *services.SessionService) *PortfolioHandler {
	return &PortfolioHandler{
		sessionSvc: sessionSvc,
	}
}

// ListAccounts handles GET /accounts
// @Summary List accounts
// @Description List the account names held in the session
// @Tags accounts
// @Produce json
// @Success 200 {object} models.AccountListResponse
// @Router /accounts [get]
func (h *PortfolioHandler) ListAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, models.AccountListResponse{Accounts: h.sessionSvc.ListAccounts()})
}

// GetHoldings handles GET /accounts/:name/holdings
// @Summary Get account holdings
// @Description Return the holdings table of one account
// @Tags accounts
// @Produce json
// @Param name path string true "Account name"
// @Success 200 {object} models.HoldingsResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /accounts/{name}/holdings [get]
func (h *PortfolioHandler) GetHoldings(c *gin.Context) {
	name := c.Param("name")
	holdings, err := h.sessionSvc.GetHoldings(name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.HoldingsResponse{AccountName: name, Holdings: holdings})
}

// ReplaceHoldings handles PUT /accounts/:name/holdings
// @Summary Replace account holdings
// @Description Validate and replace the holdings of one account, creating it if needed
// @Tags accounts
// @Accept json
// @Produce json
// @Param name path string true "Account name"
// @Param request body models.ReplaceHoldingsRequest true "Holdings"
// @Success 200 {object} models.HoldingsResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /accounts/{name}/holdings [put]
func (h *PortfolioHandler) ReplaceHoldings(c *gin.Context) {
	var req models.ReplaceHoldingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	rows, err := services.HoldingsFromInput(req.Holdings)
	if err != nil {
		respondError(c, err)
		return
	}

	name := c.Param("name")
	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	holdings, err := h.sessionSvc.ReplaceHoldings(warnCtx, name, rows)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.HoldingsResponse{
		AccountName: name,
		Holdings:    holdings,
		Warnings:    wc.GetWarnings(),
	})
}

// DeleteAccount handles DELETE /accounts/:name
// @Summary Delete an account
// @Description Drop an account and its holdings from the session
// @Tags accounts
// @Param name path string true "Account name"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /accounts/{name} [delete]
func (h *PortfolioHandler) DeleteAccount(c *gin.Context) {
	if err := h.sessionSvc.DeleteAccount(c.Param("name")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Upload handles POST /holdings/upload
// @Summary Import holdings from CSV
// @Description Import a holdings CSV. Rows are grouped by account_name; rows without one go to the account form field (default "Default"). Accounts named in the file are replaced, others are kept.
// @Tags accounts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Holdings CSV"
// @Param account formData string false "Account for rows without account_name"
// @Success 200 {object} models.ImportResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /holdings/upload [post]
func (h *PortfolioHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "multipart field 'file' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, "failed to open uploaded file: "+err.Error())
		return
	}
	defer file.Close()

	rows, err := ParseHoldingsCSV(file)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(rows) == 0 {
		badRequest(c, "CSV contains no holdings")
		return
	}

	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	accounts, err := h.sessionSvc.ImportRows(warnCtx, rows, c.PostForm("account"))
	if err != nil {
		respondError(c, err)
		return
	}
	log.Infof("Imported %d holdings into %d account(s) from %s", len(rows), len(accounts), fileHeader.Filename)

	c.JSON(http.StatusOK, models.ImportResponse{
		Accounts: accounts,
		Rows:     len(rows),
		Warnings: wc.GetWarnings(),
	})
}

// Reset handles POST /session/reset
// @Summary Reset the session
// @Description Drop every account and restore the sample portfolio
// @Tags accounts
// @Produce json
// @Success 200 {object} models.AccountListResponse
// @Router /session/reset [post]
func (h *PortfolioHandler) Reset(c *gin.Context) {
	h.sessionSvc.Reset()
	c.JSON(http.StatusOK, models.AccountListResponse{Accounts: h.sessionSvc.ListAccounts()})
}
