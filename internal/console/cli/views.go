package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/wmsconsole/internal/common"
	"github.com/dmitrijs2005/wmsconsole/internal/console/listing"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/console/render"
	"github.com/dmitrijs2005/wmsconsole/internal/console/viewscope"
)

// pagedView is a list the search, page and rows commands work on.
type pagedView interface {
	Name() string
	Search(term string)
	Term() string
	SetPage(index int)
	SetRowsPerPage(n int)
	Dataset() (render.Dataset, listing.Page)
}

type listView[T listing.Row] struct {
	*listing.Table[T]
	name    string
	headers []string
	row     func(T) []string
}

func newListView[T listing.Row](name string, rowsPerPage int, headers []string, row func(T) []string) *listView[T] {
	return &listView[T]{Table: listing.NewTable[T](rowsPerPage), name: name, headers: headers, row: row}
}

func (v *listView[T]) Name() string { return v.name }

// Dataset renders the current page.
func (v *listView[T]) Dataset() (render.Dataset, listing.Page) {
	items, page := v.Rows()
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, v.row(it))
	}
	return render.Dataset{Headers: v.headers, Rows: rows, Value: items}, page
}

// find returns the first loaded item that matches, hidden by a search or not.
func (v *listView[T]) find(match func(T) bool) (T, bool) {
	return findItem(v.Items(), match)
}

func findItem[T any](items []T, match func(T) bool) (T, bool) {
	for _, it := range items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// lookup returns the loaded item that matches, fetching the list when it
// was never loaded or no longer holds the item. A miss after the fetch is
// common.ErrorNotFound.
func lookup[T listing.Row](a *App, s *viewscope.Scope, v *listView[T], fetch func(ctx context.Context) ([]T, error), match func(T) bool) (T, error) {
	a.mu.Lock()
	it, ok := v.find(match)
	a.mu.Unlock()
	if ok {
		return it, nil
	}

	var fresh []T
	if err := viewscope.Run(s, fetch, func(items []T) { fresh = items }); err != nil {
		var zero T
		return zero, err
	}
	if it, ok := findItem(fresh, match); ok {
		return it, nil
	}
	var zero T
	return zero, common.ErrorNotFound
}

var (
	orderHeaders    = []string{"ID", "Number", "Date", "Client code", "Client", "Amount", "Driver"}
	assemblyHeaders = []string{"ID", "Date", "Assembler", "Started", "Finished", "Sum", "Weight", "Status"}
	reportHeaders   = []string{"ID", "Name", "Description"}
	employeeHeaders = []string{"ID", "Email", "First name", "Last name", "Phone", "INN", "Blocked"}
)

func (a *App) orderRow(o models.Order) []string {
	return []string{
		strconv.FormatInt(o.ID, 10), o.Number, render.FormatDate(o.Date),
		o.ClientCode, o.ClientName, render.FormatPrice(o.Amount, a.config.Locale), o.Driver,
	}
}

func (a *App) assemblyRow(o models.AssemblyOrder) []string {
	return []string{
		strconv.FormatInt(o.ID, 10), render.FormatDate(o.DateDoc), strconv.FormatInt(o.UserID, 10),
		render.FormatDateTime(o.StartAt), render.FormatDateTime(o.FinishAt),
		render.FormatPrice(o.SumDoc, a.config.Locale), o.WeightDoc.String(), o.Status().String(),
	}
}

func reportRow(r models.Report) []string {
	return []string{strconv.Itoa(r.ID), r.Name, r.Description}
}

func employeeRow(u models.User) []string {
	return []string{
		strconv.FormatInt(u.ID, 10), u.Email, u.Firstname, u.Lastname, u.Phone, u.INN, render.YesNo(u.Blocked),
	}
}

var userHeaders = []string{"ID", "Email", "First name", "Last name", "INN", "Phone", "Role", "Blocked", "Avatar"}

func userValues(u models.User) []string {
	return []string{
		strconv.FormatInt(u.ID, 10), u.Email, u.Firstname, u.Lastname, u.INN, u.Phone,
		u.Role, render.YesNo(u.Blocked), u.Avatar,
	}
}

var (
	orderDetailHeaders = []string{"ID", "UID", "Number", "Date", "Sum", "Driver", "Agent", "Client ID", "Client", "Address"}
	orderLineHeaders   = []string{"Article", "Name", "Qty", "Assembled", "Price", "Discount", "Sum"}
)

func (a *App) orderDetailValues(d models.OrderDetails) []string {
	return []string{
		strconv.FormatInt(d.ID, 10), d.OrderUID, d.UniqueNumber, render.FormatDate(d.OrderDate),
		render.FormatPrice(d.OrderSum, a.config.Locale), d.Driver, d.Agent, d.ClientID, d.ClientName, d.ClientAddress,
	}
}

func (a *App) orderLineRows(lines []models.OrderLine) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{
			l.Articul, l.NameArticul, formatQty(l.Qty), formatQty(l.QtyAssembled),
			render.FormatPrice(l.Price, a.config.Locale), l.Discount.String(), render.FormatPrice(l.Sum, a.config.Locale),
		})
	}
	return rows
}

func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func pageFooter(p listing.Page, term string) string {
	s := fmt.Sprintf("Page %d of %d, %d row(s)", p.Index+1, p.Count(), p.Total)
	if term != "" {
		s += fmt.Sprintf(", search %q", term)
	}
	return s
}
