package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]*Account, error)
	UpdateAccount(ctx context.Context, a *Account) error
	DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name    string
	Kind    Kind
	Balance int64
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Account, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("account name is required")
	}

	kind := params.Kind
	if kind == "" {
		kind = KindChecking
	}

	switch kind {
	case KindChecking, KindSavings, KindCredit, KindCash:
	default:
		return nil, fmt.Errorf("unknown account kind %q", kind)
	}

	a := &Account{
		OwnerID: ownerID,
		Name:    name,
		Kind:    kind,
		Balance: params.Balance,
	}
	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, a *Account) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("account name is required")
	}

	return s.repo.UpdateAccount(ctx, a)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteAccount(ctx, ownerID, id)
}
