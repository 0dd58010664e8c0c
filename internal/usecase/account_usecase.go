package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/foodpulse/foodpulse/internal/domain/entity"
	"github.com/foodpulse/foodpulse/internal/domain/repository"
)

// RegisterInput sign-up form.
type RegisterInput struct {
	Name            string
	Email           string
	AccountType     string
	Password        string
	ConfirmPassword string
}

// AccountUseCase registration, login and profile completion
type AccountUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, error)
	CompleteProfile(ctx context.Context, userID int64, address, phone string) (*entity.User, error)
	GetUser(ctx context.Context, userID int64) (*entity.User, error)
}

type accountUseCase struct {
	users repository.UserRepository
	cost  int
}

// NewAccountUseCase hashes passwords with bcrypt.DefaultCost.
func NewAccountUseCase(users repository.UserRepository) AccountUseCase {
	return &accountUseCase{users: users, cost: bcrypt.DefaultCost}
}

func (u *accountUseCase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}
	accountType, err := entity.ParseAccountType(in.AccountType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		AccountType:  accountType,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *accountUseCase) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (u *accountUseCase) CompleteProfile(ctx context.Context, userID int64, address, phone string) (*entity.User, error) {
	address = strings.TrimSpace(address)
	phone = strings.TrimSpace(phone)
	if address == "" || phone == "" {
		return nil, fmt.Errorf("%w: address and phone number are required", ErrInvalidInput)
	}
	if err := u.users.UpdateProfile(ctx, userID, address, phone); err != nil {
		return nil, err
	}
	return u.users.GetByID(ctx, userID)
}

func (u *accountUseCase) GetUser(ctx context.Context, userID int64) (*entity.User, error) {
	return u.users.GetByID(ctx, userID)
}
