package alphavantage

// GlobalQuoteResponse represents the AlphaVantage GLOBAL_QUOTE response
type GlobalQuoteResponse struct {
	GlobalQuote GlobalQuote `json:"Global Quote"`
	apiMessages
}

// GlobalQuote holds the fields of a GLOBAL_QUOTE payload that are used
type GlobalQuote struct {
	Symbol        string `json:"01. symbol"`
	Price         string `json:"05. price"`
	LatestTrading string `json:"07. latest trading day"`
	PreviousClose string `json:"08. previous close"`
}

// ExchangeRateResponse represents the AlphaVantage CURRENCY_EXCHANGE_RATE response
type ExchangeRateResponse struct {
	Rate ExchangeRate `json:"Realtime Currency Exchange Rate"`
	apiMessages
}

// ExchangeRate is a single realtime currency pair rate
type ExchangeRate struct {
	FromCode    string `json:"1. From_Currency Code"`
	ToCode      string `json:"3. To_Currency Code"`
	Rate        string `json:"5. Exchange Rate"`
	LastRefresh string `json:"6. Last Refreshed"`
}

// apiMessages are returned with HTTP 200 when a call is rejected
// (rate limit, bad key, unknown symbol)
type apiMessages struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (m apiMessages) message() string {
	switch {
	case m.ErrorMessage != "":
		return m.ErrorMessage
	case m.Note != "":
		return m.Note
	default:
		return m.Information
	}
}
