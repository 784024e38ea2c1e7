// internal/app/session.go
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

func runLogin(ctx context.Context, sf *Storefront, args []string, out io.Writer) error {
	if len(args) < 2 {
		return usageError("login <email> <password>")
	}
	outcome := sf.Session.Login(ctx, args[0], args[1])
	if !outcome.Success {
		return errors.New(outcome.Message)
	}
	user := sf.Session.User()
	fmt.Fprintf(out, "Logged in as %s (%s).\n", user.FullName(), user.Email)
	return nil
}

func runRegister(ctx context.Context, sf *Storefront, args []string, out io.Writer) error {
	var reg domain.Registration
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&reg.FirstName, "first", "", "first name (required)")
	fs.StringVar(&reg.LastName, "last", "", "last name")
	fs.StringVar(&reg.Email, "email", "", "email address (required)")
	fs.StringVar(&reg.Password, "password", "", "password, at least 6 characters (required)")
	fs.StringVar(&reg.ConfirmPassword, "confirm", "", "repeat the password")
	fs.StringVar(&reg.Phone, "phone", "", "phone number")
	fs.StringVar(&reg.Age, "age", "", "age")
	fs.StringVar(&reg.Gender, "gender", "", "gender")
	fs.StringVar(&reg.ReferralCode, "referral", "", "referral code of a friend")
	if err := fs.Parse(args); err != nil {
		return err
	}

	outcome := sf.Session.Register(ctx, reg)
	if !outcome.Success {
		return errors.New(outcome.Message)
	}
	user := sf.Session.User()
	fmt.Fprintf(out, "Welcome, %s! Your account is ready.\n", user.FullName())
	if user.ReferralCode != "" {
		fmt.Fprintf(out, "Share your referral code %s with friends.\n", user.ReferralCode)
	}
	return nil
}

func runLogout(ctx context.Context, sf *Storefront, out io.Writer) error {
	sf.Session.Logout(ctx)
	fmt.Fprintln(out, "Logged out.")
	return nil
}

func runWhoami(sf *Storefront, out io.Writer) error {
	if !sf.Session.IsAuthenticated() {
		fmt.Fprintln(out, "Not logged in.")
		return nil
	}
	user := sf.Session.User()
	tw := newTable(out)
	fmt.Fprintf(tw, "Name\t%s\n", user.FullName())
	fmt.Fprintf(tw, "Email\t%s\n", user.Email)
	if user.Phone != "" {
		fmt.Fprintf(tw, "Phone\t%s\n", user.Phone)
	}
	fmt.Fprintf(tw, "User ID\t%s\n", user.ID)
	if user.ReferralCode != "" {
		fmt.Fprintf(tw, "Referral code\t%s\n", user.ReferralCode)
	}
	if exp, ok := sf.Session.ExpiresAt(); ok {
		fmt.Fprintf(tw, "Session expires\t%s\n", exp.Local().Format(time.RFC1123))
	}
	return tw.Flush()
}
