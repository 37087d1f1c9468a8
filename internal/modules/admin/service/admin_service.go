package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hara-desu/ForestOnchain/internal/modules/admin/domain"
	adminout "github.com/hara-desu/ForestOnchain/internal/modules/admin/port/out"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
)

type AdminService struct {
	gateway adminout.AdminGateway
}

func NewAdminService(gateway adminout.AdminGateway) *AdminService {
	return &AdminService{gateway: gateway}
}

func (s *AdminService) Overview(ctx context.Context) (domain.Overview, error) {
	var out domain.Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		owner, err := s.gateway.Owner(gctx)
		if err != nil {
			return fmt.Errorf("read contract owner: %w", err)
		}
		out.Owner = owner
		return nil
	})
	g.Go(func() error {
		cost, err := s.gateway.CostPerTree(gctx)
		if err != nil {
			return fmt.Errorf("read cost per tree: %w", err)
		}
		out.CostPerTree = cost
		return nil
	})
	g.Go(func() error {
		balance, err := s.gateway.Balance(gctx)
		if err != nil {
			return fmt.Errorf("read contract balance: %w", err)
		}
		out.Balance = balance
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Overview{}, err
	}
	return out, nil
}

// RequireOwner fails with ErrNotOwner unless account owns the contract.
func (s *AdminService) RequireOwner(ctx context.Context, account string) error {
	owner, err := s.gateway.Owner(ctx)
	if err != nil {
		return fmt.Errorf("read contract owner: %w", err)
	}
	if !domain.IsOwner(account, owner) {
		return apperrors.Rejected(apperrors.ErrNotOwner, "account", "You are not the contract owner. Admin actions are restricted.")
	}
	return nil
}

func (s *AdminService) IsAddress(addr string) bool {
	return s.gateway.IsAddress(addr)
}
