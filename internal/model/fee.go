package model

// FeeItem is one line of a trade's fee schedule.
type FeeItem struct {
	ID           string `json:"id"`
	TradeID      string `json:"tradeId"`
	FeeType      string `json:"feeType"`
	Amount       Money  `json:"amount"`
	Currency     string `json:"currency"`
	IsActive     bool   `json:"isActive"`
	AcademicYear string `json:"academicYear"`
}
