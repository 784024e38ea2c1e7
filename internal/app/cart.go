// internal/app/cart.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

func runCart(ctx context.Context, sf *Storefront, args []string, out io.Writer) error {
	action := "show"
	if len(args) > 0 {
		action, args = args[0], args[1:]
	}

	switch action {
	case "show":
	case "add":
		if len(args) < 1 {
			return usageError("cart add <productId>")
		}
		p, err := sf.Catalog.AddToCart(ctx, sf.Cart, args[0])
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("product %q not found", args[0])
		}
		if err != nil {
			return explain(err)
		}
		fmt.Fprintf(out, "Added %s to your cart.\n\n", p.Name)
	case "remove":
		if len(args) < 1 {
			return usageError("cart remove <productId>")
		}
		sf.Cart.RemoveItem(ctx, args[0])
	case "set":
		if len(args) < 2 {
			return usageError("cart set <productId> <quantity>")
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		sf.Cart.SetQuantity(ctx, args[0], qty)
	case "clear":
		sf.Cart.Clear(ctx)
	default:
		return fmt.Errorf("unknown cart action %q (want show, add, remove, set or clear)", action)
	}

	printCart(sf, out)
	return nil
}

func printCart(sf *Storefront, out io.Writer) {
	if sf.Cart.IsEmpty() {
		fmt.Fprintln(out, "Your cart is empty.")
		return
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tTITLE\tQTY\tPRICE\tLINE")
	items := sf.Cart.Items()
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			item.ProductID, item.Title, item.Quantity,
			money(item.UnitPrice), money(item.UnitPrice*float64(item.Quantity)))
	}
	tw.Flush()

	fmt.Fprintf(out, "\n%d item(s)\n", sf.Cart.Count())
	printAmounts(out, sf.CartPricing.CartSummary(items))
}
