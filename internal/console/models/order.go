package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Order is a row of the orders table.
type Order struct {
	ID         int64           `json:"id" yaml:"id"`
	Number     string          `json:"number" yaml:"number"`
	Date       string          `json:"date" yaml:"date"`
	ClientCode string          `json:"clientCode" yaml:"clientCode"`
	ClientName string          `json:"clientName" yaml:"clientName"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
	Driver     string          `json:"driver" yaml:"driver"`
}

func (o Order) Fields() []string {
	return []string{
		strconv.FormatInt(o.ID, 10),
		o.Number, o.Date, o.ClientCode, o.ClientName, o.Amount.String(), o.Driver,
	}
}

// OrderLine is one article of an order.
type OrderLine struct {
	ID           int64           `json:"ID" yaml:"id"`
	Articul      string          `json:"articul" yaml:"articul"`
	NameArticul  string          `json:"name_articul" yaml:"name_articul"`
	Qty          float64         `json:"qty" yaml:"qty"`
	QtyAssembled float64         `json:"qty_sbor" yaml:"qty_sbor"`
	Price        decimal.Decimal `json:"cena" yaml:"cena"`
	Discount     decimal.Decimal `json:"discount" yaml:"discount"`
	Sum          decimal.Decimal `json:"sum_artucul" yaml:"sum_artucul"`
}

// OrderDetails is the full order returned by /order/find/id/.
type OrderDetails struct {
	ID            int64           `json:"ID" yaml:"id"`
	OrderUID      string          `json:"order_uid" yaml:"order_uid"`
	UniqueNumber  string          `json:"unicum_num" yaml:"unicum_num"`
	OrderDate     string          `json:"order_date" yaml:"order_date"`
	OrderSum      decimal.Decimal `json:"order_sum" yaml:"order_sum"`
	Driver        string          `json:"driver" yaml:"driver"`
	Agent         string          `json:"agent" yaml:"agent"`
	ClientID      string          `json:"client_Id" yaml:"client_id"`
	ClientName    string          `json:"client_name" yaml:"client_name"`
	ClientAddress string          `json:"client_address" yaml:"client_address"`
	Lines         []OrderLine     `json:"order_details" yaml:"order_details"`
}

// AssemblyOrder tracks the picking of an order by an assembler.
type AssemblyOrder struct {
	ID           int64           `json:"ID" yaml:"id"`
	DateDoc      string          `json:"date_doc" yaml:"date_doc"`
	UserID       int64           `json:"user_id" yaml:"user_id"`
	StartAt      string          `json:"start_at" yaml:"start_at"`
	FinishAt     string          `json:"finish_at" yaml:"finish_at"`
	SumDoc       decimal.Decimal `json:"sum_doc" yaml:"sum_doc"`
	WeightDoc    decimal.Decimal `json:"weight_doc" yaml:"weight_doc"`
	StatusID     int             `json:"status_id" yaml:"status_id"`
	OrderDetails *OrderDetails   `json:"order,omitempty" yaml:"order,omitempty"`
}

func (a AssemblyOrder) Fields() []string {
	return []string{
		strconv.FormatInt(a.ID, 10),
		a.DateDoc, strconv.FormatInt(a.UserID, 10), a.StartAt, a.FinishAt,
		a.SumDoc.String(), a.WeightDoc.String(), a.Status().String(),
	}
}

// AssemblyStatus is the picking state reported in status_id.
type AssemblyStatus int

const (
	AssemblyNew AssemblyStatus = iota + 1
	AssemblyInProgress
	AssemblyCompleted
	AssemblyCancelled
)

func (a AssemblyOrder) Status() AssemblyStatus { return AssemblyStatus(a.StatusID) }

func (s AssemblyStatus) String() string {
	switch s {
	case AssemblyNew:
		return "new"
	case AssemblyInProgress:
		return "in progress"
	case AssemblyCompleted:
		return "completed"
	case AssemblyCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
