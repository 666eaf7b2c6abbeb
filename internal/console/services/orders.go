package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/wmsconsole/internal/common"
	"github.com/dmitrijs2005/wmsconsole/internal/console/client"
	"github.com/dmitrijs2005/wmsconsole/internal/console/messages"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/validation"
)

// OrderService covers the orders table and its detail view.
// A period filter is sent only when both dates are given.
type OrderService interface {
	List(ctx context.Context, period models.DateRange) ([]models.Order, error)
	Details(ctx context.Context, id int64) (models.OrderDetails, error)
	Update(ctx context.Context, id int64, order models.Order) error
	Delete(ctx context.Context, id int64) error
}

type orderService struct {
	gw client.Gateway
}

func NewOrderService(gw client.Gateway) OrderService {
	return &orderService{gw: gw}
}

func (s *orderService) List(ctx context.Context, period models.DateRange) ([]models.Order, error) {
	if err := validation.DateRange(period.Start, period.End); err != nil {
		return nil, err
	}
	var orders []models.Order
	err := s.gw.Do(ctx, client.Request{
		Method: http.MethodGet,
		Path:   "/orders",
		Query:  period.Query(),
		Op:     messages.LoadOrders,
	}, &orders)
	return orders, err
}

func (s *orderService) Details(ctx context.Context, id int64) (models.OrderDetails, error) {
	if id <= 0 {
		return models.OrderDetails{}, fmt.Errorf("order id %d: %w", id, common.ErrorInvalidID)
	}
	var d models.OrderDetails
	err := s.gw.Do(ctx, client.Request{
		Method: http.MethodGet,
		Path:   "/order/find/id/",
		Query:  url.Values{"id": {strconv.FormatInt(id, 10)}},
		Op:     messages.LoadOrder,
	}, &d)
	return d, err
}

func (s *orderService) Update(ctx context.Context, id int64, order models.Order) error {
	if id <= 0 {
		return fmt.Errorf("order id %d: %w", id, common.ErrorInvalidID)
	}
	order.ID = id
	return s.gw.Do(ctx, client.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/orders/%d", id),
		Body:   order,
		Op:     messages.UpdateOrder,
	}, nil)
}

func (s *orderService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("order id %d: %w", id, common.ErrorInvalidID)
	}
	return s.gw.Do(ctx, client.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/orders/%d", id),
		Op:     messages.DeleteOrder,
	}, nil)
}

// AssemblyService lists picking jobs: the ones in progress and the finished.
type AssemblyService interface {
	List(ctx context.Context, period models.DateRange) ([]models.AssemblyOrder, error)
	Completed(ctx context.Context) ([]models.AssemblyOrder, error)
}

type assemblyService struct {
	gw client.Gateway
}

func NewAssemblyService(gw client.Gateway) AssemblyService {
	return &assemblyService{gw: gw}
}

func (s *assemblyService) List(ctx context.Context, period models.DateRange) ([]models.AssemblyOrder, error) {
	if err := validation.DateRange(period.Start, period.End); err != nil {
		return nil, err
	}
	var orders []models.AssemblyOrder
	err := s.gw.Do(ctx, client.Request{
		Method: http.MethodGet,
		Path:   "/assembly-orders",
		Query:  period.Query(),
		Op:     messages.LoadAssembly,
	}, &orders)
	return orders, err
}

func (s *assemblyService) Completed(ctx context.Context) ([]models.AssemblyOrder, error) {
	var orders []models.AssemblyOrder
	err := s.gw.Do(ctx, client.Request{
		Method: http.MethodGet,
		Path:   "/completed-orders",
		Op:     messages.LoadCompleted,
	}, &orders)
	return orders, err
}
