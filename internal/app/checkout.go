// internal/app/checkout.go
package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/application"
	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

const dateLayout = "2006-01-02"

func runSlots(out io.Writer) error {
	for i, slot := range application.DefaultTimeSlots {
		fmt.Fprintf(out, "%d. %s\n", i+1, slot)
	}
	return nil
}

// resolveSlot accepts a slot label or its 1-based number from `slots`.
func resolveSlot(s string) string {
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(application.DefaultTimeSlots) {
		return application.DefaultTimeSlots[n-1]
	}
	return s
}

func runCheckout(ctx context.Context, sf *Storefront, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(out)
	service := fs.String("service", string(domain.ServiceHome), "home or clinic")
	date := fs.String("date", "", "appointment date, YYYY-MM-DD")
	slot := fs.String("slot", "", "time slot label or its number from the slots command")
	name := fs.String("name", "", "full name (defaults to the signed-in user)")
	street := fs.String("street", "", "street address")
	city := fs.String("city", "", "city")
	state := fs.String("state", "", "state")
	zip := fs.String("zip", "", "zip code")
	phone := fs.String("phone", "", "contact phone (defaults to the signed-in user)")
	payment := fs.String("payment", application.PaymentCashOnDelivery, "payment method")
	dryRun := fs.Bool("dry-run", false, "validate and price the order without placing it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	co := sf.NewCheckout()
	if err := co.SetServiceType(domain.ServiceType(*service)); err != nil {
		return err
	}

	var day time.Time
	if *date != "" {
		var err error
		day, err = time.Parse(dateLayout, *date)
		if err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", *date)
		}
	}
	if err := co.SetSchedule(day, resolveSlot(*slot)); err != nil {
		return err
	}

	addr := co.Address()
	overrides := []struct {
		dst *string
		val string
	}{
		{&addr.FullName, *name},
		{&addr.Street, *street},
		{&addr.City, *city},
		{&addr.State, *state},
		{&addr.ZipCode, *zip},
		{&addr.Phone, *phone},
	}
	for _, o := range overrides {
		if o.val != "" {
			*o.dst = o.val
		}
	}
	if err := co.SetAddress(addr); err != nil {
		return err
	}
	if err := co.SetPaymentMethod(*payment); err != nil {
		return err
	}

	if *dryRun {
		printAmounts(out, co.Summary())
		if err := co.Validate(); err != nil {
			return err
		}
		fmt.Fprintln(out, "\nReady to place the order.")
		return nil
	}

	conf, err := co.Submit(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Order placed! Order ID: %s\n", conf.DisplayOrderID())
	fmt.Fprintf(out, "%s service on %s, %s\n", conf.ServiceType, conf.Date.Format(dateLayout), conf.TimeSlot)
	fmt.Fprintf(out, "Payment: %s\n\n", application.PaymentLabel(*payment))
	printAmounts(out, conf.Amounts)
	return nil
}
