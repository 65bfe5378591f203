package service

import (
	"context"
	"errors"

	"ticketbari-api/internal/auth"
	"ticketbari-api/internal/cache"
	"ticketbari-api/internal/database"
	"ticketbari-api/internal/model"
	"ticketbari-api/internal/repository"
	apperrors "ticketbari-api/pkg/app_errors"
	"ticketbari-api/pkg/logger"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserService interface {
	// Register is idempotent: re-registering an existing email returns the
	// stored record untouched, with created = false.
	Register(ctx context.Context, req model.RegisterUserRequest) (*model.User, bool, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	SetRole(ctx context.Context, email string, role model.Role) (*model.User, error)
	FlagFraud(ctx context.Context, email string) error
	IssueToken(ctx context.Context, email string) (string, error)
}

type UserServiceImpl struct {
	repo       repository.UserRepository
	ticketRepo repository.TicketRepository
	txm        database.TxManager
	tokens     *auth.TokenManager
	listings   cache.ListingCache
}

func NewUserService(
	repo repository.UserRepository,
	ticketRepo repository.TicketRepository,
	txm database.TxManager,
	tokens *auth.TokenManager,
	listings cache.ListingCache,
) UserService {
	return &UserServiceImpl{
		repo:       repo,
		ticketRepo: ticketRepo,
		txm:        txm,
		tokens:     tokens,
		listings:   listings,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req model.RegisterUserRequest) (*model.User, bool, error) {
	user := &model.User{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			existing, findErr := s.repo.FindByEmail(ctx, req.Email)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return created, true, nil
}

func (s *UserServiceImpl) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserServiceImpl) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

func (s *UserServiceImpl) SetRole(ctx context.Context, email string, role model.Role) (*model.User, error) {
	if !role.IsValid() {
		return nil, apperrors.ErrInvalidRole
	}
	return s.repo.UpdateRole(ctx, email, role)
}

// FlagFraud marks the user and hides every ticket the vendor owns in one
// transaction, so the directory flag and the denormalized ticket copies can
// never diverge. Re-flagging is a no-op with the same end state.
func (s *UserServiceImpl) FlagFraud(ctx context.Context, email string) error {
	err := s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.SetFraud(ctx, tx, email); err != nil {
			return err
		}
		return s.ticketRepo.HideByVendor(ctx, tx, email)
	})
	if err != nil {
		return err
	}

	if err := s.listings.Invalidate(ctx); err != nil {
		logger.WithComponent("user_service").Warn("failed to invalidate listing cache", zap.Error(err))
	}

	return nil
}

// IssueToken signs a credential for the email's current directory role. A
// missing record falls back to the user role; that silent default can mask a
// skipped registration, so it is logged.
func (s *UserServiceImpl) IssueToken(ctx context.Context, email string) (string, error) {
	role := model.RoleUser

	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		role = user.Role
	case errors.Is(err, apperrors.ErrUserNotFound):
		logger.WithComponent("user_service").Warn("issuing token for unregistered email",
			zap.String("email", email))
	default:
		return "", err
	}

	return s.tokens.Issue(email, role)
}
