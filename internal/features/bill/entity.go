package bill

import (
	"time"

	"github.com/Aym0707/aymstore/internal/features/cart"
	"github.com/Aym0707/aymstore/internal/money"
	"github.com/google/uuid"
)

type CustomerInfo struct {
	Name    string `json:"name" validate:"required,notblank"`
	Phone   string `json:"phone" validate:"required,notblank"`
	Address string `json:"address" validate:"required,notblank"`
}

// BillLine is one numbered row of a bill, priced through the same lossy
// parse the cart totals use.
type BillLine struct {
	No        int    `json:"no"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unitPrice"`
	LineTotal int    `json:"lineTotal"`
}

// Bill is a completed order: the cart lines frozen at checkout, the
// customer they were sold to and a human-facing serial alongside the
// machine-facing order id.
type Bill struct {
	OrderID   uuid.UUID    `json:"orderId"`
	Serial    string       `json:"serial"`
	IssuedAt  time.Time    `json:"issuedAt"`
	Customer  CustomerInfo `json:"customer"`
	Lines     []BillLine   `json:"lines"`
	Total     int          `json:"total"`
	TotalText string       `json:"totalText"`
}

// LinesFromItems numbers and prices cart items into bill lines, returning
// the summed total alongside.
func LinesFromItems(items []cart.CartItem) ([]BillLine, int) {
	lines := make([]BillLine, 0, len(items))
	total := 0

	for i, item := range items {
		lineTotal := item.LineTotal()
		total += lineTotal

		lines = append(lines, BillLine{
			No:        i + 1,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: money.ParsePrice(item.Price),
			LineTotal: lineTotal,
		})
	}

	return lines, total
}
