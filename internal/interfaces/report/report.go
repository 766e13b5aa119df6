package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"supersimplestocks/internal/application/service/exchange"

	"github.com/shopspring/decimal"
)

const (
	FormatText = "text"
	FormatJSON = "json"

	// decimal places shown for prices and ratios
	places = 4
	na     = "n/a"
)

type quoteView struct {
	Symbol             string           `json:"symbol"`
	Kind               string           `json:"kind"`
	ParValue           decimal.Decimal  `json:"par_value"`
	Dividend           decimal.Decimal  `json:"dividend"`
	TickerPrice        *decimal.Decimal `json:"ticker_price,omitempty"`
	DividendYield      *decimal.Decimal `json:"dividend_yield,omitempty"`
	PriceEarningsRatio *decimal.Decimal `json:"pe_ratio,omitempty"`
	Price              *decimal.Decimal `json:"price,omitempty"`
	Trades             int              `json:"trades"`
}

type summaryView struct {
	At            time.Time        `json:"at"`
	Quotes        []quoteView      `json:"quotes"`
	AllShareIndex *decimal.Decimal `json:"all_share_index,omitempty"`
}

// Render writes summary to w as a text table or a JSON document.
func Render(w io.Writer, summary exchange.Summary, format string) error {
	view := newSummaryView(summary)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case FormatText, "":
		return renderText(w, view)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

func newSummaryView(s exchange.Summary) summaryView {
	view := summaryView{
		At:            s.At,
		Quotes:        make([]quoteView, 0, len(s.Quotes)),
		AllShareIndex: toDecimal(s.AllShareIndex),
	}
	for _, q := range s.Quotes {
		view.Quotes = append(view.Quotes, quoteView{
			Symbol:             q.Symbol.String(),
			Kind:               q.Kind.String(),
			ParValue:           decimal.NewFromFloat(q.ParValue).Round(places),
			Dividend:           decimal.NewFromFloat(q.Dividend).Round(places),
			TickerPrice:        toDecimal(q.TickerPrice),
			DividendYield:      toDecimal(q.DividendYield),
			PriceEarningsRatio: toDecimal(q.PriceEarningsRatio),
			Price:              toDecimal(q.Price),
			Trades:             q.Trades,
		})
	}
	return view
}

func toDecimal(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v).Round(places)
	return &d
}

func renderText(w io.Writer, view summaryView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "SYMBOL\tKIND\tPAR\tDIVIDEND\tTICKER\tYIELD\tP/E\tVWAP\tTRADES\t\n")
	for _, q := range view.Quotes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t\n",
			q.Symbol,
			q.Kind,
			q.ParValue.StringFixed(2),
			q.Dividend.StringFixed(2),
			fixed(q.TickerPrice),
			fixed(q.DividendYield),
			fixed(q.PriceEarningsRatio),
			fixed(q.Price),
			q.Trades,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nGBCE all share index at %s: %s\n", view.At.Format(time.RFC3339), fixed(view.AllShareIndex))
	return err
}

func fixed(d *decimal.Decimal) string {
	if d == nil {
		return na
	}
	return d.StringFixed(places)
}
