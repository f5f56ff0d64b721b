package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSaveAnalysis_ComputesInstallment(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAnalysisRepository)
	svc := services.NewAnalysisService(repo)

	var saved domain.Analysis
	repo.On("UpsertAnalysis", ctx, mock.AnythingOfType("domain.Analysis")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Analysis) }).
		Return(nil).Once()
	repo.On("FindAnalysis", ctx, ownerID).
		Return(&saved, nil).Once()

	req := dto.SaveAnalysisRequest{
		Investments: []domain.Holding{{Type: domain.InvestmentGold, Amount: d("2"), BuyPrice: d("1700")}},
		LoanDetails: domain.LoanDetails{TotalLoan: d("100000"), InterestRate: d("10"), LoanTerm: 60, EMI: d("1")},
	}
	analysis, err := svc.SaveAnalysis(ctx, ownerID, req)

	require.NoError(t, err)
	assert.Equal(t, "2124.70", analysis.LoanDetails.EMI.StringFixed(2))
	require.NotNil(t, analysis.LoanDetails.PayoffDate)
	assert.WithinDuration(t, time.Now().AddDate(0, 60, 0), *analysis.LoanDetails.PayoffDate, time.Minute)
	repo.AssertExpectations(t)
}

func TestSaveAnalysis_InvalidHolding(t *testing.T) {
	repo := new(MockAnalysisRepository)
	svc := services.NewAnalysisService(repo)

	_, err := svc.SaveAnalysis(context.Background(), ownerID, dto.SaveAnalysisRequest{
		Investments: []domain.Holding{{Type: "crypto", Amount: d("1")}},
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "UpsertAnalysis", mock.Anything, mock.Anything)
}

func TestUpdateAnalysis_RequiresExisting(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAnalysisRepository)
	svc := services.NewAnalysisService(repo)
	repo.On("FindAnalysis", ctx, ownerID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.UpdateAnalysis(ctx, ownerID, dto.SaveAnalysisRequest{})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "UpsertAnalysis", mock.Anything, mock.Anything)
}

func TestMarketPrices(t *testing.T) {
	svc := services.NewAnalysisService(new(MockAnalysisRepository))
	prices := svc.MarketPrices(context.Background())

	assert.Equal(t, "1800", prices.Gold.String())
	assert.Equal(t, "200", prices.RealEstate.String())
	assert.Equal(t, "4000", prices.Stocks["SP500"].String())
	assert.Equal(t, "13000", prices.Stocks["NASDAQ"].String())
}
