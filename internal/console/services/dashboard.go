package services

import (
	"context"

	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"golang.org/x/sync/errgroup"
)

// Summary is the landing view's counters.
type Summary struct {
	Orders    int `json:"orders" yaml:"orders"`
	Assembly  int `json:"assembly" yaml:"assembly"`
	Completed int `json:"completed" yaml:"completed"`
}

type DashboardService interface {
	Summary(ctx context.Context) (Summary, error)
}

type dashboardService struct {
	orders   OrderService
	assembly AssemblyService
}

func NewDashboardService(orders OrderService, assembly AssemblyService) DashboardService {
	return &dashboardService{orders: orders, assembly: assembly}
}

// Summary fetches the three lists concurrently. The first failure cancels
// the others and is returned.
func (s *dashboardService) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orders, err := s.orders.List(ctx, models.DateRange{})
		sum.Orders = len(orders)
		return err
	})
	g.Go(func() error {
		orders, err := s.assembly.List(ctx, models.DateRange{})
		sum.Assembly = len(orders)
		return err
	})
	g.Go(func() error {
		orders, err := s.assembly.Completed(ctx)
		sum.Completed = len(orders)
		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return sum, nil
}
