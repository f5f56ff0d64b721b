package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentType is the closed set of holdings an analysis can list.
type InvestmentType string

const (
	InvestmentBonds       InvestmentType = "bonds"
	InvestmentStocks      InvestmentType = "stocks"
	InvestmentMutualFunds InvestmentType = "mutual funds"
	InvestmentRealEstate  InvestmentType = "real estate"
	InvestmentGold        InvestmentType = "gold"
)

// IsValid reports whether t is a known investment type.
func (t InvestmentType) IsValid() bool {
	switch t {
	case InvestmentBonds, InvestmentStocks, InvestmentMutualFunds, InvestmentRealEstate, InvestmentGold:
		return true
	}
	return false
}

// CategorizedInflows splits liquid inflows by origin.
type CategorizedInflows struct {
	Salary         decimal.Decimal `json:"salary"`
	BusinessIncome decimal.Decimal `json:"businessIncome"`
	Freelance      decimal.Decimal `json:"freelance"`
	OtherSources   decimal.Decimal `json:"otherSources"`
}

// Outflows is a total with its per-category breakdown.
type Outflows struct {
	Total     decimal.Decimal            `json:"total"`
	Breakdown map[string]decimal.Decimal `json:"breakdown,omitempty"`
}

// LiquidBalance is the cash section of an analysis document.
type LiquidBalance struct {
	Total                decimal.Decimal    `json:"total"`
	CategorizedInflows   CategorizedInflows `json:"categorizedInflows"`
	EssentialOutflows    Outflows           `json:"essentialOutflows"`
	NonEssentialOutflows Outflows           `json:"nonEssentialOutflows"`
}

// Holding is one investment line.
type Holding struct {
	Type     InvestmentType  `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	BuyPrice decimal.Decimal `json:"buyPrice"`
}

// LoanDetails describes a loan and its computed installment.
type LoanDetails struct {
	TotalLoan    decimal.Decimal `json:"totalLoan"`
	InterestRate decimal.Decimal `json:"interestRate"`
	LoanTerm     int             `json:"loanTerm"` // months
	EMI          decimal.Decimal `json:"emi"`
	PayoffDate   *time.Time      `json:"payoffDate,omitempty"`
}

// Analysis is the saved per-user financial analysis document.
type Analysis struct {
	UserID        string        `json:"userID"`
	LiquidBalance LiquidBalance `json:"liquidBalance"`
	Investments   []Holding     `json:"investments"`
	LoanDetails   LoanDetails   `json:"loanDetails"`
	AuditFields
}

// Validate checks holdings and loan terms.
func (a Analysis) Validate() error {
	for _, h := range a.Investments {
		if !h.Type.IsValid() {
			return validationErr("invalid investment type %q", h.Type)
		}
		if h.Amount.IsNegative() || h.BuyPrice.IsNegative() {
			return validationErr("investment amounts cannot be negative")
		}
	}
	if a.LoanDetails.LoanTerm < 0 {
		return validationErr("loanTerm cannot be negative")
	}
	if a.LoanDetails.TotalLoan.IsNegative() || a.LoanDetails.InterestRate.IsNegative() {
		return validationErr("loan amounts cannot be negative")
	}
	return nil
}

// MarketPrices is the reference price sheet served alongside analyses.
type MarketPrices struct {
	Gold       decimal.Decimal            `json:"gold"`
	RealEstate decimal.Decimal            `json:"realEstate"`
	Stocks     map[string]decimal.Decimal `json:"stocks"`
}

// DefaultMarketPrices returns the static price sheet.
func DefaultMarketPrices() MarketPrices {
	return MarketPrices{
		Gold:       decimal.NewFromInt(1800),
		RealEstate: decimal.NewFromInt(200),
		Stocks: map[string]decimal.Decimal{
			"SP500":  decimal.NewFromInt(4000),
			"NASDAQ": decimal.NewFromInt(13000),
		},
	}
}
