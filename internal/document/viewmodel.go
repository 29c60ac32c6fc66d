// Package document renders a priced budget into the printable quote
// shown to the customer. The same HTML feeds the browser preview and
// the PDF export, so the two can never disagree on a single figure.
package document

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jana-studio/taller/internal/budgets"
)

// FallbackClientName covers budgets with no client reference (walk-ins).
const FallbackClientName = "Cliente General"

// fallbackProductName covers line items whose catalogue reference no
// longer resolves. The stored snapshot still prices the line.
const fallbackProductName = "(producto eliminado)"

var moneyPrinter = message.NewPrinter(language.Spanish)

// FormatMoney renders an amount the way the printed quote shows it.
// Every money figure in the document goes through here.
func FormatMoney(amount float64) string {
	return moneyPrinter.Sprintf("$ %.2f", amount)
}

// Line is one row of the document's item table, fully formatted.
type Line struct {
	Description string
	Quantity    int
	UnitPrice   string
	Subtotal    string
}

// Data is everything the template needs, pre-formatted. The builder
// resolves names and formats figures; the template only places them.
type Data struct {
	BrandName     string
	LogoDataURL   string
	ContactNumber string

	ShortID    string
	Date       string
	ClientName string

	Lines []Line

	Subtotal      string
	DiscountLabel string
	Discount      string
	HasDiscount   bool
	Total         string
}

// Build assembles the view model from a budget and its stored breakdown.
// Totals come from the breakdown untouched; this layer never prices.
func Build(b budgets.Budget, breakdown budgets.PriceBreakdown, clientName string, productNames map[string]string, brandName, logoDataURL, contactNumber string) Data {
	if clientName == "" {
		clientName = FallbackClientName
	}

	lines := make([]Line, 0, len(b.Items))
	for _, item := range b.Items {
		name := productNames[item.ProductID]
		if name == "" {
			name = fallbackProductName
		}
		lines = append(lines, Line{
			Description: name,
			Quantity:    item.Quantity,
			UnitPrice:   FormatMoney(item.UnitCost),
			Subtotal:    FormatMoney(item.Subtotal),
		})
	}

	discountLabel := b.Discount.Label()
	if discountLabel == "" {
		discountLabel = "Descuento"
	}

	return Data{
		BrandName:     brandName,
		LogoDataURL:   logoDataURL,
		ContactNumber: contactNumber,
		ShortID:       b.ShortID(),
		Date:          b.Date.Format("02/01/2006"),
		ClientName:    clientName,
		Lines:         lines,
		Subtotal:      FormatMoney(breakdown.SubtotalWithMargin),
		DiscountLabel: discountLabel,
		Discount:      FormatMoney(breakdown.DiscountAmount),
		HasDiscount:   breakdown.DiscountAmount != 0,
		Total:         FormatMoney(breakdown.FinalTotal),
	}
}

// Filename builds the download name for the exported PDF.
func Filename(clientName string, date time.Time) string {
	if clientName == "" {
		clientName = FallbackClientName
	}
	return fmt.Sprintf("presupuesto-%s-%s.pdf", slug(clientName), date.Format("2006-01-02"))
}

func slug(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case sb.Len() > 0 && !strings.HasSuffix(sb.String(), "-"):
			sb.WriteRune('-')
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
