package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/google/uuid"
)

// transactionService manages audit-trail entries. It checks that every
// entry points at an account and a record the caller owns.
type transactionService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountReader
	incomeRepo  portsrepo.IncomeReader
	expenseRepo portsrepo.ExpenseReader
	clock       func() time.Time
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountReader, incomeRepo portsrepo.IncomeReader, expenseRepo portsrepo.ExpenseReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		incomeRepo:  incomeRepo,
		expenseRepo: expenseRepo,
		clock:       func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	now := s.clock()
	date := now
	if req.Date != nil {
		date = req.Date.UTC()
	}

	txn := domain.Transaction{
		TransactionID:    uuid.NewString(),
		UserID:           userID,
		AccountID:        req.AccountID,
		Amount:           req.Amount,
		Type:             req.Type,
		Category:         req.Category,
		Date:             date,
		Description:      req.Description,
		TransactionRefID: req.TransactionRefID,
		AuditFields:      domain.NewAuditFields(userID, now),
	}
	if err := s.validateReferences(ctx, txn); err != nil {
		return nil, err
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)))
	return &txn, nil
}

// validateReferences checks the entry's fields, then that its account and
// referenced record exist for the owner.
func (s *transactionService) validateReferences(ctx context.Context, txn domain.Transaction) error {
	if err := txn.Validate(); err != nil {
		return err
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, txn.UserID, txn.AccountID); err != nil {
		return err
	}

	var err error
	switch txn.Type {
	case domain.TransactionIncome:
		_, err = s.incomeRepo.FindIncomeByID(ctx, txn.UserID, txn.TransactionRefID)
	case domain.TransactionExpense:
		_, err = s.expenseRepo.FindExpenseByID(ctx, txn.UserID, txn.TransactionRefID)
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: transactionRefId does not reference an existing %s", apperrors.ErrValidation, txn.Type)
	}
	return err
}

func (s *transactionService) GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, nil, fmt.Errorf("%w: type must be Income or Expense", apperrors.ErrValidation)
	}

	txns, next, err := s.txnRepo.ListTransactions(ctx, userID, filter, limit, nextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list transactions",
				slog.String("type", string(filter.Type)),
				slog.String("account_id", filter.AccountID))
		}
		return nil, nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, next, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	if req.AccountID != nil {
		txn.AccountID = *req.AccountID
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Type != nil {
		txn.Type = *req.Type
	}
	if req.Category != nil {
		txn.Category = *req.Category
	}
	if req.Date != nil {
		txn.Date = req.Date.UTC()
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.TransactionRefID != nil {
		txn.TransactionRefID = *req.TransactionRefID
	}
	if err := s.validateReferences(ctx, *txn); err != nil {
		return nil, err
	}

	txn.Touch(userID, s.clock())
	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}
	return nil
}
