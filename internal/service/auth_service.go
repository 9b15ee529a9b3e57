package service

import (
	"context"
	"fmt"
	"time"

	"loyalty-platform/internal/core/domain"
	"loyalty-platform/internal/core/ports"
	"loyalty-platform/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AuthServiceImpl implements ports.AuthService. Each role has its own
// credential store; login resolves the account through the requested role
// and never falls through to another one.
type AuthServiceImpl struct {
	merchantRepo ports.MerchantRepository
	workerRepo   ports.WorkerRepository
	adminRepo    ports.AdminRepository
	hashSvc      ports.HashService
	tokenSvc     ports.TokenService
	log          zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	merchantRepo ports.MerchantRepository,
	workerRepo ports.WorkerRepository,
	adminRepo ports.AdminRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		merchantRepo: merchantRepo,
		workerRepo:   workerRepo,
		adminRepo:    adminRepo,
		hashSvc:      hashSvc,
		tokenSvc:     tokenSvc,
		log:          log,
	}
}

// RegisterMerchant creates a merchant account in pending state. The account
// cannot log in until an admin approves it.
func (s *AuthServiceImpl) RegisterMerchant(ctx context.Context, req ports.RegisterMerchantRequest) (*domain.Merchant, error) {
	existing, err := s.merchantRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check existing merchant: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrEmailExists()
	}

	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	now := time.Now().UTC()
	merchant := &domain.Merchant{
		ID:                uuid.New(),
		BusinessName:      req.BusinessName,
		BusinessAddress:   req.BusinessAddress,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		PasswordHash:      passwordHash,
		CommissionPercent: decimal.Zero,
		Status:            domain.MerchantStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create merchant: %w", err))
	}

	s.log.Info().
		Str("merchant_id", merchant.ID.String()).
		Str("business_name", merchant.BusinessName).
		Msg("merchant registered, pending approval")

	return merchant, nil
}

// Login authenticates an account of the given role and issues a token for it.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string, role domain.Role) (*ports.LoginResult, error) {
	var (
		principal    domain.Principal
		passwordHash string
	)

	switch role {
	case domain.RoleMerchant:
		merchant, err := s.merchantRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("get merchant: %w", err))
		}
		if merchant == nil {
			return nil, apperror.ErrInvalidCredentials()
		}
		if !merchant.CanLogin() {
			return nil, apperror.ErrAccountInactive("Account is not approved yet")
		}
		principal = domain.Principal{ID: merchant.ID, Role: domain.RoleMerchant}
		passwordHash = merchant.PasswordHash

	case domain.RoleWorker:
		worker, err := s.workerRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("get worker: %w", err))
		}
		if worker == nil {
			return nil, apperror.ErrInvalidCredentials()
		}
		if !worker.IsActive() {
			return nil, apperror.ErrAccountInactive("Account is inactive")
		}
		principal = domain.Principal{ID: worker.ID, Role: domain.RoleWorker}
		passwordHash = worker.PasswordHash

	case domain.RoleAdmin:
		admin, err := s.adminRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("get admin: %w", err))
		}
		if admin == nil {
			return nil, apperror.ErrInvalidCredentials()
		}
		principal = domain.Principal{ID: admin.ID, Role: domain.RoleAdmin}
		passwordHash = admin.PasswordHash

	default:
		return nil, apperror.Validation(fmt.Sprintf("unknown role %q", role))
	}

	match, err := s.hashSvc.Verify(password, passwordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !match {
		return nil, apperror.ErrInvalidCredentials()
	}

	token, expiresAt, err := s.tokenSvc.Generate(principal)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	s.log.Info().
		Str("principal_id", principal.ID.String()).
		Str("role", string(principal.Role)).
		Msg("login successful")

	return &ports.LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Principal: principal,
	}, nil
}
