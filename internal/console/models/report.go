package models

import "strconv"

// Report is an entry of the report catalog.
type Report struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

func (r Report) Fields() []string {
	return []string{strconv.Itoa(r.ID), r.Name, r.Description}
}

// DefaultReports is shown when the backend returns an empty catalog.
var DefaultReports = []Report{
	{ID: 1, Name: "Assembler report", Description: "Performance of assemblers."},
	{ID: 2, Name: "Period report", Description: "Data for the selected period."},
	{ID: 3, Name: "Warehouse report", Description: "State of the warehouses."},
	{ID: 4, Name: "Average assembly time", Description: "Average time spent assembling orders."},
	{ID: 5, Name: "Project report", Description: "Current and finished projects."},
	{ID: 6, Name: "Client report", Description: "Client base and activity."},
}

// Report output formats offered by the report form.
var ReportFormats = []string{"Excel", "PDF", "CSV", "JSON"}

// ReportForm holds the parameters picked for a report. Filters left empty
// mean "all".
type ReportForm struct {
	ReportID  int       `json:"reportId" validate:"gt=0"`
	Format    string    `json:"format" validate:"required,oneof=Excel PDF CSV JSON"`
	Warehouse string    `json:"warehouse,omitempty"`
	Assembler string    `json:"assembler,omitempty"`
	Project   string    `json:"project,omitempty"`
	Client    string    `json:"client,omitempty"`
	Period    DateRange `json:"-" validate:"-"`
}
