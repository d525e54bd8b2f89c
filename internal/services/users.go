package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/doclocker/internal/common"
	"github.com/dmitrijs2005/doclocker/internal/cryptox"
	"github.com/dmitrijs2005/doclocker/internal/dbx"
	"github.com/dmitrijs2005/doclocker/internal/logging"
	"github.com/dmitrijs2005/doclocker/internal/models"
	"github.com/dmitrijs2005/doclocker/internal/repositories/repomanager"
)

// RegisterRequest carries the fields of a new account. Surrounding whitespace
// is trimmed from every field except the password.
type RegisterRequest struct {
	Username string `validate:"required,min=3,max=64,nospace"`
	Email    string `validate:"required,email"`
	Password []byte `validate:"required,min=1"`
	FullName string `validate:"required" label:"full name"`
	Phone    string
}

// UserService is the credential store.
//
// Register fails with common.ErrUsernameTaken or common.ErrEmailTaken when
// either value is already in use, and with a *common.ValidationError when the
// request is malformed. Authenticate returns common.ErrUnauthorized for any
// bad pair, whether or not the username exists.
type UserService interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, username string, password []byte) (*models.User, error)
}

type userService struct {
	db       *sql.DB
	rm       repomanager.RepositoryManager
	verifier cryptox.PasswordVerifier
	validate *validator.Validate
	log      logging.Logger

	dummyOnce sync.Once
	dummy     string

	now func() time.Time
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, verifier cryptox.PasswordVerifier,
	validate *validator.Validate, log logging.Logger) UserService {
	return &userService{
		db:       db,
		rm:       rm,
		verifier: verifier,
		validate: validate,
		log:      log,
		now:      time.Now,
	}
}

func (s *userService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.rm.Users(s.db).UsernameExists(ctx, strings.TrimSpace(username))
}

func (s *userService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.rm.Users(s.db).EmailExists(ctx, strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)

	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, validationError(err)
	}

	encoded, err := s.verifier.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  encoded,
		FullName:  req.FullName,
		Phone:     req.Phone,
		CreatedAt: storedTime(s.now()),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Users(tx)

		taken, err := repo.UsernameExists(ctx, user.Username)
		if err != nil {
			return err
		}
		if taken {
			return common.ErrUsernameTaken
		}

		taken, err = repo.EmailExists(ctx, user.Email)
		if err != nil {
			return err
		}
		if taken {
			return common.ErrEmailTaken
		}

		user, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, username string, password []byte) (*models.User, error) {
	user, err := s.rm.Users(s.db).GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Spend the same effort as a real check.
			_, _ = s.verifier.Verify(s.dummyCredential(), password)
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}

	ok, err := s.verifier.Verify(user.Password, password)
	if err != nil {
		s.log.Warn(ctx, "stored credential could not be checked", "user_id", user.ID, "error", err)
		return nil, common.ErrUnauthorized
	}
	if !ok {
		return nil, common.ErrUnauthorized
	}

	return user, nil
}

func (s *userService) dummyCredential() string {
	s.dummyOnce.Do(func() {
		s.dummy, _ = s.verifier.Hash([]byte("doclocker-dummy-password"))
	})
	return s.dummy
}
