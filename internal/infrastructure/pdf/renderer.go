// Package pdf renders invoices and proforma invoices as A4 documents
// using Maroto v2.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Company name + GSTIN   │  Number + Date + Due date │
//	│  ───────────────────────────────────────────────────────── │
//	│  BILL TO: recipient + GSTIN     │  Place of supply          │
//	│  ───────────────────────────────────────────────────────── │
//	│  TABLE: # | Description | HSN | Qty | Rate | Tax% | Amount  │
//	│  ───────────────────────────────────────────────────────── │
//	│  TOTALS: Subtotal / Discount / CGST+SGST or IGST / TOTAL    │
//	│  Amount in words                                            │
//	│  FOOTER: bank details + terms + notes                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"gstbill/internal/domain/billing"
	"gstbill/internal/domain/catalogs/company"
	"gstbill/internal/domain/invoice"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Options control per-user rendering preferences (from settings).
type Options struct {
	ShowHSNCode     bool
	ShowBankDetails bool
	DateFormat      string
}

// Renderer builds invoice PDFs.
type Renderer struct{}

// NewRenderer constructs a PDF renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// RenderInvoice generates the PDF and returns its bytes.
func (r *Renderer) RenderInvoice(
	_ context.Context,
	inv *invoice.Invoice,
	comp *company.Company,
	opts Options,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title(inv.Type)+" "+inv.Number, true).
		WithAuthor(comp.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv, comp, opts))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(opts))
	for _, itemRow := range tableItemRows(inv.Items, opts) {
		m.AddRows(itemRow)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, totalRow := range totalsRows(inv) {
		m.AddRows(totalRow)
	}

	m.AddRows(amountInWordsRow(inv))

	for _, footerRow := range footerRows(inv, comp, opts) {
		m.AddRows(footerRow)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func title(t invoice.Type) string {
	if t == invoice.TypeProforma {
		return "PROFORMA INVOICE"
	}
	return "TAX INVOICE"
}

func headerRow(inv *invoice.Invoice, comp *company.Company, opts Options) core.Row {
	addr := fmt.Sprintf("%s, %s, %s - %s",
		comp.Address.Street, comp.Address.City, comp.Address.State, comp.Address.Pincode)

	leftLines := []core.Component{
		text.New(comp.Name, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
		}),
		text.New("GSTIN: "+comp.GSTIN, props.Text{Size: 9, Top: 9, Color: colorGray}),
		text.New(addr, props.Text{Size: 8, Top: 14, Color: colorGray}),
	}

	return row.New(22).Add(
		col.New(7).Add(leftLines...),
		col.New(5).Add(
			text.New(title(inv.Type), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+billing.FormatDate(inv.Date, opts.DateFormat), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
			text.New("Due: "+billing.FormatDate(inv.DueDate, opts.DateFormat), props.Text{
				Size: 8, Align: align.Right, Top: 18, Color: colorGray,
			}),
		),
	)
}

func billToRow(inv *invoice.Invoice) core.Row {
	contact := inv.BillTo.Mobile
	if inv.BillTo.Email != "" {
		if contact != "" {
			contact += "   |   "
		}
		contact += inv.BillTo.Email
	}

	gstin := inv.BillTo.GSTIN
	if gstin == "" {
		gstin = "Unregistered"
	}

	return row.New(18).Add(
		col.New(8).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.BillTo.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("GSTIN: "+gstin, props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(contact, props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Place of Supply", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.PlaceOfSupply, props.Text{Size: 9, Align: align.Right, Top: 6}),
		),
	)
}

// Column widths out of Maroto's 12-unit grid. Hiding the HSN column
// gives its units back to the description.
func columnWidths(opts Options) (desc, hsn int) {
	if opts.ShowHSNCode {
		return 4, 2
	}
	return 6, 0
}

func tableHeaderRow(opts Options) core.Row {
	descW, hsnW := columnWidths(opts)

	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}

	cols := []core.Col{
		h("#", 1, align.Center),
		h("Description", descW, align.Left),
	}
	if opts.ShowHSNCode {
		cols = append(cols, h("HSN/SAC", hsnW, align.Center))
	}
	cols = append(cols,
		h("Qty", 1, align.Center),
		h("Rate", 2, align.Right),
		h("Tax", 1, align.Center),
		h("Amount", 2, align.Right),
	)

	return row.New(8).Add(cols...)
}

func tableItemRows(items []billing.LineItem, opts Options) []core.Row {
	descW, hsnW := columnWidths(opts)

	result := make([]core.Row, 0, len(items))
	for i, item := range items {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
			}))
		}

		cols := []core.Col{
			cell(strconv.Itoa(i+1), 1, align.Center),
			cell(item.Description, descW, align.Left),
		}
		if opts.ShowHSNCode {
			hsn := item.HSNCode
			if hsn == "" {
				hsn = "-"
			}
			cols = append(cols, cell(hsn, hsnW, align.Center))
		}
		cols = append(cols,
			cell(item.Quantity.String()+" "+item.Unit, 1, align.Center),
			cell(billing.FormatINR(item.Rate), 2, align.Right),
			cell(item.TaxRate.String()+"%", 1, align.Center),
			cell(billing.FormatINR(item.Amount), 2, align.Right),
		)

		result = append(result, row.New(7).Add(cols...))
	}
	return result
}

func totalsRows(inv *invoice.Invoice) []core.Row {
	type entry struct {
		label string
		value string
		grand bool
	}

	entries := []entry{
		{label: "Subtotal", value: billing.FormatINR(inv.Subtotal)},
	}
	if !inv.DiscountAmount.IsZero() {
		entries = append(entries, entry{label: "Discount", value: "-" + billing.FormatINR(inv.DiscountAmount)})
	}
	if !inv.IGST.IsZero() {
		entries = append(entries, entry{label: "IGST", value: billing.FormatINR(inv.IGST)})
	} else {
		entries = append(entries,
			entry{label: "CGST", value: billing.FormatINR(inv.CGST)},
			entry{label: "SGST", value: billing.FormatINR(inv.SGST)},
		)
	}
	if !inv.ChargesTotal.IsZero() {
		entries = append(entries, entry{label: "Additional Charges", value: billing.FormatINR(inv.ChargesTotal)})
	}
	entries = append(entries, entry{label: "TOTAL", value: "Rs. " + billing.FormatINR(inv.Total), grand: true})

	if !inv.AmountPaid.IsZero() {
		entries = append(entries,
			entry{label: "Amount Paid", value: billing.FormatINR(inv.AmountPaid)},
			entry{label: "Balance Due", value: billing.FormatINR(inv.BalanceDue()), grand: true},
		)
	}

	rows := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		size, style, color := 9.0, fontstyle.Normal, (*props.Color)(nil)
		if e.grand {
			size, style, color = 10.0, fontstyle.Bold, colorPrimary
		}

		rows = append(rows, row.New(5).Add(
			col.New(7),
			col.New(3).Add(text.New(e.label+":", props.Text{
				Style: fontstyle.Bold, Size: size, Align: align.Right,
				Color: color, Right: 2,
			})),
			col.New(2).Add(text.New(e.value, props.Text{
				Style: style, Size: size, Align: align.Right,
				Color: color, Right: 1,
			})),
		))
	}

	return rows
}

func amountInWordsRow(inv *invoice.Invoice) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Amount in words:", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
		text.New(billing.AmountInWords(inv.Total), props.Text{
			Style: fontstyle.Italic, Size: 9, Top: 6,
		}),
	))
}

func footerRows(inv *invoice.Invoice, comp *company.Company, opts Options) []core.Row {
	var rows []core.Row

	rows = append(rows, line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	if opts.ShowBankDetails && comp.BankDetails != nil {
		b := comp.BankDetails
		rows = append(rows, row.New(14).Add(col.New(12).Add(
			text.New("BANK DETAILS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   A/C: %s   |   IFSC: %s   |   %s",
				b.BankName, b.AccountNumber, b.IFSCCode, b.AccountHolderName,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		)))
	}

	if inv.Terms != "" {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New("Terms & Conditions", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Terms, props.Text{Size: 7.5, Top: 6, Color: colorGray}),
		)))
	}

	if inv.Notes != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New(inv.Notes, props.Text{Size: 7.5, Top: 2, Color: colorGray}),
		)))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("This is a computer generated document and does not require a signature.",
			props.Text{Size: 6.5, Align: align.Center, Color: colorGray, Top: 3}),
	)))

	return rows
}
