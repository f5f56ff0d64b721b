package services

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
)

type analysisService struct {
	BaseService
	analysisRepo portsrepo.AnalysisRepositoryFacade
	clock        func() time.Time
}

// NewAnalysisService creates a new analysis document service.
func NewAnalysisService(analysisRepo portsrepo.AnalysisRepositoryFacade) portssvc.AnalysisSvcFacade {
	return &analysisService{
		analysisRepo: analysisRepo,
		clock:        func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.AnalysisSvcFacade = (*analysisService)(nil)

func (s *analysisService) SaveAnalysis(ctx context.Context, userID string, req dto.SaveAnalysisRequest) (*domain.Analysis, error) {
	now := s.clock()
	analysis := domain.Analysis{
		UserID:        userID,
		LiquidBalance: req.LiquidBalance,
		Investments:   req.Investments,
		LoanDetails:   withInstallment(req.LoanDetails, now),
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	if err := analysis.Validate(); err != nil {
		return nil, err
	}

	if err := s.analysisRepo.UpsertAnalysis(ctx, analysis); err != nil {
		s.LogError(ctx, err, "Failed to save analysis")
		return nil, err
	}

	// Read back so the response carries the original creation stamp on replace.
	saved, err := s.analysisRepo.FindAnalysis(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to reload analysis")
		return nil, err
	}
	s.LogInfo(ctx, "Analysis saved")
	return saved, nil
}

// withInstallment recomputes the EMI and payoff date from the loan terms.
func withInstallment(loan domain.LoanDetails, now time.Time) domain.LoanDetails {
	loan.EMI = accounting.EMI(loan.TotalLoan, loan.InterestRate, loan.LoanTerm)
	loan.PayoffDate = nil
	if loan.LoanTerm > 0 {
		payoff := now.AddDate(0, loan.LoanTerm, 0)
		loan.PayoffDate = &payoff
	}
	return loan
}

func (s *analysisService) GetAnalysis(ctx context.Context, userID string) (*domain.Analysis, error) {
	analysis, err := s.analysisRepo.FindAnalysis(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find analysis")
		}
		return nil, err
	}
	return analysis, nil
}

func (s *analysisService) UpdateAnalysis(ctx context.Context, userID string, req dto.SaveAnalysisRequest) (*domain.Analysis, error) {
	if _, err := s.GetAnalysis(ctx, userID); err != nil {
		return nil, err
	}
	return s.SaveAnalysis(ctx, userID, req)
}

func (s *analysisService) DeleteAnalysis(ctx context.Context, userID string) error {
	if err := s.analysisRepo.DeleteAnalysis(ctx, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete analysis")
		}
		return err
	}
	return nil
}

// MarketPrices returns the static reference prices.
func (s *analysisService) MarketPrices(ctx context.Context) domain.MarketPrices {
	return domain.DefaultMarketPrices()
}
