// internal/app/output.go
package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/application"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// shortDate keeps the calendar part of an ISO-8601 timestamp.
func shortDate(iso string) string {
	if len(iso) >= 10 {
		return iso[:10]
	}
	return iso
}

func usageError(usage string) error {
	return fmt.Errorf("usage: storefront %s", usage)
}

// explain turns service errors into something a shopper can act on.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, application.ErrLoginRequired):
		return errors.New("please login first: storefront login <email> <password>")
	case errors.Is(err, domain.ErrNetwork):
		return errors.New(application.MsgNetworkError)
	}
	return err
}

func printAmounts(out io.Writer, a domain.Amounts) {
	tw := newTable(out)
	fmt.Fprintf(tw, "Subtotal\t%s\n", money(a.Subtotal))
	fmt.Fprintf(tw, "Shipping\t%s\n", money(a.Shipping))
	fmt.Fprintf(tw, "Tax\t%s\n", money(a.Tax))
	fmt.Fprintf(tw, "Total\t%s\n", money(a.Total))
	tw.Flush()
}

func bulletList(out io.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", title)
	for _, l := range lines {
		fmt.Fprintf(out, "  - %s\n", strings.TrimSpace(l))
	}
}
