package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/wmsconsole/internal/console/client"
	"github.com/dmitrijs2005/wmsconsole/internal/console/messages"
	"github.com/dmitrijs2005/wmsconsole/internal/console/models"
	"github.com/dmitrijs2005/wmsconsole/internal/validation"
)

// ReportService lists the report catalog and checks report parameters.
// Report generation itself happens outside the console.
type ReportService interface {
	List(ctx context.Context) ([]models.Report, error)
	Prepare(form models.ReportForm) (models.ReportForm, error)
}

type reportService struct {
	gw client.Gateway
}

func NewReportService(gw client.Gateway) ReportService {
	return &reportService{gw: gw}
}

// List falls back to the built-in catalog when the backend has none.
func (s *reportService) List(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	err := s.gw.Do(ctx, client.Request{Method: http.MethodGet, Path: "/reports", Op: messages.LoadReports}, &reports)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return append([]models.Report(nil), models.DefaultReports...), nil
	}
	return reports, nil
}

func (s *reportService) Prepare(form models.ReportForm) (models.ReportForm, error) {
	if err := validation.Struct(form); err != nil {
		return models.ReportForm{}, err
	}
	if err := validation.DateRange(form.Period.Start, form.Period.End); err != nil {
		return models.ReportForm{}, err
	}
	return form, nil
}
