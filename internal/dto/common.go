package dto

import "github.com/shopspring/decimal"

// ListParams defines offset pagination query parameters.
type ListParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// AmountRequest carries a positive amount for deposits and withdrawals.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"decimal_gt0"`
}
