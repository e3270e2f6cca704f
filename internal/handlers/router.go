package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the account and valuation endpoints on r
func RegisterRoutes(r gin.IRouter, portfolioHandler *PortfolioHandler, valuationHandler *ValuationHandler) {
	// Session routes
	r.GET("/accounts", portfolioHandler.ListAccounts)
	r.GET("/accounts/:name/holdings", portfolioHandler.GetHoldings)
	r.PUT("/accounts/:name/holdings", portfolioHandler.ReplaceHoldings)
	r.DELETE("/accounts/:name", portfolioHandler.DeleteAccount)
	r.POST("/holdings/upload", portfolioHandler.Upload)
	r.POST("/session/reset", portfolioHandler.Reset)

	// Valuation routes
	r.GET("/fx", valuationHandler.GetFX)
	r.POST("/quotes/refresh", valuationHandler.RefreshQuotes)
	r.GET("/valuation", valuationHandler.Valuate)
	r.POST("/valuation", valuationHandler.ValuateHoldings)
	r.POST("/rebalance", valuationHandler.Rebalance)
}
