package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when an account is created without one.
const DefaultCurrency = "USD"

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	clock       func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the time source used for audit stamps.
func WithAccountClock(clock func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.clock = clock
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(txManager portsrepo.TransactionManager, repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		txManager:   txManager,
		accountRepo: repo,
		clock:       func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		UserID:          userID,
		Name:            strings.TrimSpace(req.Name),
		AccountType:     req.AccountType,
		Balance:         req.Balance,
		Currency:        currency,
		InterestRate:    req.InterestRate,
		MinimumBalance:  req.MinimumBalance,
		WithdrawalLimit: req.WithdrawalLimit,
		LoanTermMonths:  req.LoanTermMonths,
		AuditFields:     domain.NewAuditFields(userID, s.clock()),
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	if account.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil && strings.TrimSpace(*req.Name) != account.Name {
		account.Name = strings.TrimSpace(*req.Name)
		updated = true
	}
	if req.AccountType != nil && *req.AccountType != account.AccountType {
		account.AccountType = *req.AccountType
		updated = true
	}
	if req.Currency != nil && strings.ToUpper(*req.Currency) != account.Currency {
		account.Currency = strings.ToUpper(*req.Currency)
		updated = true
	}
	if req.InterestRate != nil && !req.InterestRate.Equal(account.InterestRate) {
		account.InterestRate = *req.InterestRate
		updated = true
	}
	if req.MinimumBalance != nil && !req.MinimumBalance.Equal(account.MinimumBalance) {
		account.MinimumBalance = *req.MinimumBalance
		updated = true
	}
	if req.WithdrawalLimit != nil && !req.WithdrawalLimit.Equal(account.WithdrawalLimit) {
		account.WithdrawalLimit = *req.WithdrawalLimit
		updated = true
	}
	if req.LoanTermMonths != nil && *req.LoanTermMonths != account.LoanTermMonths {
		account.LoanTermMonths = *req.LoanTermMonths
		updated = true
	}

	if !updated {
		s.LogDebug(ctx, "No fields to update for account", slog.String("account_id", accountID))
		return account, nil
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	account.Touch(userID, s.clock())
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	if err := s.accountRepo.DeleteAccount(ctx, userID, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		}
		return err
	}
	s.LogInfo(ctx, "Account deleted successfully", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) Deposit(ctx context.Context, userID string, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	if err := domain.ValidateAmount("amount", amount); err != nil {
		return nil, err
	}

	if err := s.accountRepo.ApplyBalanceChanges(ctx, userID, []domain.BalanceChange{domain.Credit(accountID, amount)}); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deposit", slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Deposit applied",
		slog.String("account_id", accountID),
		slog.String("amount", amount.String()))
	return s.accountRepo.FindAccountByID(ctx, userID, accountID)
}

func (s *accountService) Withdraw(ctx context.Context, userID string, accountID string, amount decimal.Decimal) (*domain.Account, error) {
	if err := domain.ValidateAmount("amount", amount); err != nil {
		return nil, err
	}

	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if account.WithdrawalLimit.IsPositive() && amount.GreaterThan(account.WithdrawalLimit) {
		return nil, fmt.Errorf("%w: amount exceeds withdrawal limit of %s", apperrors.ErrValidation, account.WithdrawalLimit)
	}

	if err := s.accountRepo.ApplyBalanceChanges(ctx, userID, []domain.BalanceChange{domain.Debit(accountID, amount, true)}); err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to withdraw", slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal applied",
		slog.String("account_id", accountID),
		slog.String("amount", amount.String()))
	return s.accountRepo.FindAccountByID(ctx, userID, accountID)
}

func (s *accountService) Transfer(ctx context.Context, userID string, fromAccountID string, toAccountID string, amount decimal.Decimal) (*domain.Account, *domain.Account, error) {
	if err := domain.ValidateAmount("amount", amount); err != nil {
		return nil, nil, err
	}
	if fromAccountID == toAccountID {
		return nil, nil, fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	}

	var from, to domain.Account
	err := runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		locked, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, userID, []string{fromAccountID, toAccountID})
		if err != nil {
			return err
		}
		from, to = locked[fromAccountID], locked[toAccountID]

		if from.Balance.LessThan(amount) {
			return fmt.Errorf("%w: account %s has %s, transfer needs %s", apperrors.ErrInsufficientFunds, from.AccountID, from.Balance, amount)
		}

		now := s.clock()
		changes := []domain.BalanceChange{
			domain.Debit(fromAccountID, amount, true),
			domain.Credit(toAccountID, amount),
		}
		if err := s.accountRepo.ApplyBalanceChangesInTx(ctx, tx, userID, changes, now); err != nil {
			return err
		}

		from.Balance = from.Balance.Sub(amount)
		from.Touch(userID, now)
		to.Balance = to.Balance.Add(amount)
		to.Touch(userID, now)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to transfer",
				slog.String("from_account_id", fromAccountID),
				slog.String("to_account_id", toAccountID))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("from_account_id", fromAccountID),
		slog.String("to_account_id", toAccountID),
		slog.String("amount", amount.String()))
	return &from, &to, nil
}
