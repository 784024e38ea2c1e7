// internal/app/account.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

func runOrders(ctx context.Context, sf *Storefront, out io.Writer) error {
	orders, err := sf.Account.Orders(ctx)
	if err != nil {
		return explain(err)
	}
	if len(orders) == 0 {
		fmt.Fprintln(out, "No orders yet.")
		return nil
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ORDER\tDATE\tSERVICE\tSTATUS\tITEMS\tTOTAL")
	for _, o := range orders {
		items := 0
		for _, line := range o.Products {
			items += line.Quantity
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			o.OrderID, shortDate(o.Booking.Date), o.Booking.ServiceType, o.Status, items, money(o.Amounts.Total))
	}
	return tw.Flush()
}

func runBookings(ctx context.Context, sf *Storefront, out io.Writer) error {
	bookings, err := sf.Account.Bookings(ctx)
	if err != nil {
		return explain(err)
	}
	if len(bookings) == 0 {
		fmt.Fprintln(out, "No bookings yet.")
		return nil
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "BOOKING\tORDER\tDATE\tSLOT\tSERVICE\tSTATUS")
	for _, b := range bookings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.OrderID, shortDate(b.Booking.Date), b.Booking.TimeSlot, b.Booking.ServiceType, b.Status)
	}
	return tw.Flush()
}

func runCancelBooking(ctx context.Context, sf *Storefront, args []string, out io.Writer) error {
	if len(args) < 1 {
		return usageError("cancel-booking <bookingId>")
	}
	err := sf.Account.CancelBooking(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("booking %q not found", args[0])
	}
	if err != nil {
		return explain(err)
	}
	fmt.Fprintf(out, "Booking %s cancelled.\n", args[0])
	return nil
}

// runEnrollments falls back to the local enrollment cache when the backend
// cannot be reached.
func runEnrollments(ctx context.Context, sf *Storefront, out io.Writer) error {
	enrollments, err := sf.Account.Enrollments(ctx)
	if errors.Is(err, domain.ErrNetwork) {
		enrollments = sf.Account.CachedEnrollments(ctx)
		fmt.Fprintln(out, "Backend unreachable, showing saved enrollments.")
	} else if err != nil {
		return explain(err)
	}
	if len(enrollments) == 0 {
		fmt.Fprintln(out, "No enrollments yet.")
		return nil
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "COURSE\tNAME\tENROLLED\tPROGRESS\tSTATUS")
	for _, e := range enrollments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d%%\t%s\n",
			e.CourseID, e.CourseName, shortDate(e.EnrollmentDate), e.Progress, e.Status)
	}
	return tw.Flush()
}

func runEnroll(ctx context.Context, sf *Storefront, args []string, out io.Writer) error {
	if len(args) < 1 {
		return usageError("enroll <courseId>")
	}
	course, err := sf.Catalog.Course(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("course %q not found", args[0])
	}
	if err != nil {
		return explain(err)
	}

	enrolled, err := sf.Account.IsEnrolled(ctx, course.ID)
	if err != nil {
		return explain(err)
	}
	if enrolled {
		fmt.Fprintf(out, "You are already enrolled in %s.\n", course.Name)
		return nil
	}
	if _, err := sf.Account.Enroll(ctx, *course); err != nil {
		return explain(err)
	}
	fmt.Fprintf(out, "Enrolled in %s.\n", course.Name)
	return nil
}

func runReferral(ctx context.Context, sf *Storefront, out io.Writer) error {
	status, err := sf.Account.ReferralStatus(ctx)
	if err != nil {
		return explain(err)
	}
	tw := newTable(out)
	fmt.Fprintf(tw, "Referral code\t%s\n", status.ReferralCode)
	fmt.Fprintf(tw, "Friends referred\t%d\n", status.TotalReferrals)
	fmt.Fprintf(tw, "Successful referrals\t%d\n", status.SuccessfulReferrals)
	fmt.Fprintf(tw, "Coins earned\t%d\n", status.CoinsEarned)
	fmt.Fprintf(tw, "Coins pending\t%d\n", status.PendingCoins)
	return tw.Flush()
}
