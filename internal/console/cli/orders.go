package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wmsconsole/internal/common"
	"github.com/dmitrijs2005/wmsconsole/internal/console/listing"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/console/render"
	"github.com/dmitrijs2005/wmsconsole/internal/console/viewscope"
	"github.com/dmitrijs2005/wmsconsole/internal/validation"
	"github.com/shopspring/decimal"
)

// periodArgs reads the optional [start end] arguments of a list command.
func periodArgs(args []string) (models.DateRange, error) {
	var start, end string
	switch len(args) {
	case 0:
	case 2:
		start, end = args[0], args[1]
	default:
		return models.DateRange{}, errors.New("give both dates or none, e.g. 01.03.2024 31.03.2024")
	}

	period, err := models.ParseDateRange(start, end)
	if err != nil {
		return models.DateRange{}, err
	}
	if err := validation.DateRange(period.Start, period.End); err != nil {
		return models.DateRange{}, err
	}
	return period, nil
}

// idArg parses args[0] as an id.
func idArg(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	return common.ParseID(args[0])
}

func (a *App) ListOrders(ctx context.Context, args []string) error {
	period, err := periodArgs(args)
	if err != nil {
		return err
	}
	return a.protected(ctx, "/orders", func(s *viewscope.Scope) error {
		return showList(a, s, a.ordersView, func(ctx context.Context) ([]models.Order, error) {
			return a.orderService.List(ctx, period)
		})
	})
}

func (a *App) ListAssembly(ctx context.Context, args []string) error {
	period, err := periodArgs(args)
	if err != nil {
		return err
	}
	return a.protected(ctx, "/assembly", func(s *viewscope.Scope) error {
		return showList(a, s, a.assemblyView, func(ctx context.Context) ([]models.AssemblyOrder, error) {
			return a.assemblyService.List(ctx, period)
		})
	})
}

func (a *App) ListCompleted(ctx context.Context) error {
	return a.protected(ctx, "/completed", func(s *viewscope.Scope) error {
		return showList(a, s, a.completedView, a.assemblyService.Completed)
	})
}

// showList loads a list inside the scope, makes it the current view and
// prints its first page.
func showList[T listing.Row](a *App, s *viewscope.Scope, v *listView[T], load func(ctx context.Context) ([]T, error)) error {
	err := viewscope.Run(s, load, func(items []T) {
		a.mu.Lock()
		defer a.mu.Unlock()
		v.Reset(items)
		a.current = v
	})
	if err != nil {
		return err
	}
	return a.printList(v)
}

func (a *App) printList(v pagedView) error {
	d, page := v.Dataset()
	if err := render.Render(a.out, a.format, d); err != nil {
		return err
	}
	if a.format == render.Table {
		a.println(pageFooter(page, v.Term()))
	}
	return nil
}

func (a *App) ShowOrder(ctx context.Context, args []string) error {
	id, err := idArg(args, "order <id>")
	if err != nil {
		return err
	}
	return a.protected(ctx, "/orders/"+args[0], func(s *viewscope.Scope) error {
		var d models.OrderDetails
		err := viewscope.Run(s, func(ctx context.Context) (models.OrderDetails, error) {
			return a.orderService.Details(ctx, id)
		}, func(v models.OrderDetails) { d = v })
		if err != nil {
			return err
		}

		if a.format == render.JSON || a.format == render.YAML {
			return render.Render(a.out, a.format, render.Dataset{Value: d})
		}
		if err := render.Render(a.out, a.format, render.Record(orderDetailHeaders, a.orderDetailValues(d), d)); err != nil {
			return err
		}
		a.println()
		return render.Render(a.out, a.format, render.Dataset{Headers: orderLineHeaders, Rows: a.orderLineRows(d.Lines)})
	})
}

// UpdateOrder edits the header of an order. Values of the loaded orders list
// are offered as defaults.
func (a *App) UpdateOrder(ctx context.Context, args []string) error {
	id, err := idArg(args, "order-update <id>")
	if err != nil {
		return err
	}
	return a.protected(ctx, "/orders/"+args[0]+"/edit", func(s *viewscope.Scope) error {
		order, err := lookup(a, s, a.ordersView, func(ctx context.Context) ([]models.Order, error) {
			return a.orderService.List(ctx, models.DateRange{})
		}, func(o models.Order) bool { return o.ID == id })
		if err != nil {
			return fmt.Errorf("order %d: %w", id, err)
		}

		fields := []struct {
			prompt string
			dst    *string
		}{
			{"Number", &order.Number},
			{"Date", &order.Date},
			{"Client code", &order.ClientCode},
			{"Client name", &order.ClientName},
			{"Driver", &order.Driver},
		}
		for _, f := range fields {
			if *f.dst, err = GetDefaultText(a.reader, f.prompt, *f.dst, a.out); err != nil {
				return err
			}
		}

		current := ""
		if !order.Amount.IsZero() {
			current = order.Amount.String()
		}
		amount, err := GetDefaultText(a.reader, "Amount", current, a.out)
		if err != nil {
			return err
		}
		if amount != "" {
			if order.Amount, err = decimal.NewFromString(amount); err != nil {
				return validation.Errors{"amount": "must be a number"}
			}
		}

		err = viewscope.Run(s, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, a.orderService.Update(ctx, id, order)
		}, func(struct{}) {})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Order %d updated\n", id)
		return nil
	})
}

func (a *App) DeleteOrder(ctx context.Context, args []string) error {
	id, err := idArg(args, "order-delete <id>")
	if err != nil {
		return err
	}
	return a.protected(ctx, "/orders/"+args[0]+"/delete", func(s *viewscope.Scope) error {
		ok, err := Confirm(a.reader, fmt.Sprintf("Delete order %d?", id), a.out)
		if err != nil || !ok {
			return err
		}
		err = viewscope.Run(s, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, a.orderService.Delete(ctx, id)
		}, func(struct{}) {})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Order %d deleted\n", id)
		return nil
	})
}
