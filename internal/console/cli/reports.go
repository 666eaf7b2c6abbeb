package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/console/render"
	"github.com/dmitrijs2005/wmsconsole/internal/console/services"
	"github.com/dmitrijs2005/wmsconsole/internal/console/viewscope"
)

func (a *App) ListReports(ctx context.Context) error {
	return a.protected(ctx, "/reports", func(s *viewscope.Scope) error {
		return showList(a, s, a.reportsView, a.reportService.List)
	})
}

var reportParamHeaders = []string{"Report", "Format", "Warehouse", "Assembler", "Project", "Client", "From", "To"}

// PrepareReport collects the parameters of a report and checks them.
// Generating the file is left to the backend's report service.
func (a *App) PrepareReport(ctx context.Context, args []string) error {
	usage := "report <id>"
	if len(args) == 0 {
		return fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("usage: %s", usage)
	}

	return a.protected(ctx, "/reports/"+args[0], func(*viewscope.Scope) error {
		form := models.ReportForm{ReportID: id}
		format, err := GetDefaultText(a.reader, "Format ("+strings.Join(models.ReportFormats, ", ")+")", models.ReportFormats[0], a.out)
		if err != nil {
			return err
		}
		form.Format = format

		fields := []struct {
			prompt string
			dst    *string
		}{
			{"Warehouse (empty for all)", &form.Warehouse},
			{"Assembler (empty for all)", &form.Assembler},
			{"Project (empty for all)", &form.Project},
			{"Client (empty for all)", &form.Client},
		}
		for _, f := range fields {
			if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
				return err
			}
		}

		start, err := getSimpleText(a.reader, "Period start (empty for none)", a.out)
		if err != nil {
			return err
		}
		end, err := getSimpleText(a.reader, "Period end (empty for none)", a.out)
		if err != nil {
			return err
		}
		if form.Period, err = models.ParseDateRange(start, end); err != nil {
			return err
		}

		form, err = a.reportService.Prepare(form)
		if err != nil {
			return err
		}

		name := strconv.Itoa(form.ReportID)
		if r, ok := a.reportsView.find(func(r models.Report) bool { return r.ID == form.ReportID }); ok {
			name = r.Name
		}
		values := []string{name, form.Format, orAll(form.Warehouse), orAll(form.Assembler),
			orAll(form.Project), orAll(form.Client), periodEnd(form.Period.Start), periodEnd(form.Period.End)}

		a.println("Report parameters accepted")
		return render.Render(a.out, a.format, render.Record(reportParamHeaders, values, form))
	})
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

func periodEnd(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02.01.2006")
}

// Dashboard shows how many orders are in each list.
func (a *App) Dashboard(ctx context.Context) error {
	return a.protected(ctx, HomeView, func(s *viewscope.Scope) error {
		var sum services.Summary
		if err := viewscope.Run(s, a.dashboardService.Summary, func(v services.Summary) { sum = v }); err != nil {
			return err
		}
		values := []string{strconv.Itoa(sum.Orders), strconv.Itoa(sum.Assembly), strconv.Itoa(sum.Completed)}
		return render.Render(a.out, a.format, render.Record([]string{"Orders", "In assembly", "Completed"}, values, sum))
	})
}
