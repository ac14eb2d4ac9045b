package bill

import (
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Aym0707/aymstore/internal/features/cart"
	"github.com/Aym0707/aymstore/internal/money"
	"github.com/Aym0707/aymstore/internal/servererrors"
	"github.com/Aym0707/aymstore/internal/storage"
	"github.com/google/uuid"
)

// SupportPhone is the storefront's support line as customers dial it.
const SupportPhone = "۰۷۸۹۲۸۱۷۷۰"

// carter is the cart slice the bill needs: the checkout attempt itself and
// the live items as a share fallback.
type carter interface {
	Checkout() (*cart.CheckoutResult, error)
	Items() []cart.CartItem
}

// snapshotLoader reads the checkout-time cart snapshot back from the local
// cache for re-sharing.
type snapshotLoader interface {
	Load(key string, dest any) (bool, error)
}

// service issues bills for completed checkouts and renders the WhatsApp
// order message. It remembers the last bill of the process; there is no
// order history beyond that.
type service struct {
	cart           carter
	cache          snapshotLoader
	whatsappNumber string

	now     func() time.Time
	randInt func(n int) int

	mu       sync.Mutex
	lastBill *Bill
}

func NewService(cartService carter, cache snapshotLoader, whatsappNumber string) *service {
	return &service{
		cart:           cartService,
		cache:          cache,
		whatsappNumber: whatsappNumber,
		now:            time.Now,
		randInt:        rand.Intn,
	}
}

// Serial builds the human-facing bill serial: month, a four digit random
// part and the day, all zero-padded.
func (s *service) Serial(at time.Time) string {
	return fmt.Sprintf(
		"AYM-%02d-%04d-%02d",
		int(at.Month()),
		s.randInt(10000),
		at.Day(),
	)
}

// Build freezes cart items into a bill for the given customer. It mints the
// serial and order id but mutates nothing.
func (s *service) Build(customer CustomerInfo, items []cart.CartItem) *Bill {
	issuedAt := s.now()
	lines, total := LinesFromItems(items)

	return &Bill{
		OrderID:   uuid.New(),
		Serial:    s.Serial(issuedAt),
		IssuedAt:  issuedAt,
		Customer:  customer,
		Lines:     lines,
		Total:     total,
		TotalText: money.FormatPrice(total),
	}
}

// Checkout runs the cart checkout and, when every line fit, issues a bill
// for it. An out-of-stock result comes back with a nil bill; the caller
// relays the offending names.
func (s *service) Checkout(customer CustomerInfo) (*cart.CheckoutResult, *Bill, error) {
	result, err := s.cart.Checkout()
	if err != nil {
		return nil, nil, err
	}

	if !result.Success {
		return result, nil, nil
	}

	newBill := s.Build(customer, result.Items)

	s.mu.Lock()
	s.lastBill = newBill
	s.mu.Unlock()

	return result, newBill, nil
}

// LastBill returns the bill of the most recent successful checkout.
func (s *service) LastBill() (*Bill, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastBill == nil {
		return nil, false
	}

	billCopy := *s.lastBill

	return &billCopy, true
}

// Share renders the WhatsApp order message for the last bill. The bill's
// own lines are authoritative: the cached order snapshot is written
// asynchronously, so reading it back right after a checkout can surface the
// previous order under the new serial. The snapshot and the live cart serve
// only as fallbacks.
func (s *service) Share() (*ShareResponse, error) {
	lastBill, ok := s.LastBill()
	if !ok {
		return nil, servererrors.ErrNoBillYet
	}

	lines := lastBill.Lines

	if len(lines) == 0 {
		var items []cart.CartItem
		if _, err := s.cache.Load(storage.OriginalCartKey, &items); err != nil {
			return nil, err
		}

		if len(items) == 0 {
			items = s.cart.Items()
		}

		lines, _ = LinesFromItems(items)
	}

	if len(lines) == 0 {
		return nil, servererrors.ErrCartEmpty
	}

	message := s.Text(lastBill, lines)

	return &ShareResponse{
		Message:  message,
		ShareURL: "https://wa.me/" + s.whatsappNumber + "?text=" + url.QueryEscape(message),
	}, nil
}

// Text renders the WhatsApp order message for a bill over the given lines.
func (s *service) Text(lastBill *Bill, lines []BillLine) string {
	customerName := orDefault(lastBill.Customer.Name, "مشتری")
	customerPhone := orDefault(lastBill.Customer.Phone, "بدون شماره")
	customerAddress := orDefault(lastBill.Customer.Address, "بدون آدرس")

	var itemsText strings.Builder
	total := 0
	for _, line := range lines {
		total += line.LineTotal

		fmt.Fprintf(
			&itemsText,
			"%d. %s - %d عدد - %s افغانی\n",
			line.No,
			line.Name,
			line.Quantity,
			money.FormatWithCommas(line.LineTotal),
		)
	}

	now := s.now()

	return fmt.Sprintf(
		`📱 *سفارش جدید از فروشگاه آنلاین AYM*

🔖 *شماره بل:* %s

👤 *مشتری:* %s
📞 *شماره تماس:* %s
📍 *آدرس:* %s

🛒 *اقلام سفارش:*
%s

💰 *مبلغ کل:* %s افغانی

📅 *تاریخ:* %s
⏰ *زمان:* %s

_لطفاً پس از بررسی موجودی، سفارش را تایید کنید._`,
		lastBill.Serial,
		customerName,
		customerPhone,
		customerAddress,
		itemsText.String(),
		money.FormatWithCommas(total),
		now.Format("2006/01/02"),
		now.Format("15:04:05"),
	)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}

	return s
}
