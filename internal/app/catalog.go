// internal/app/catalog.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

func runProducts(ctx context.Context, sf *Storefront, out io.Writer) error {
	products, err := sf.Catalog.Products(ctx)
	if err != nil {
		return explain(err)
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tDURATION\tPRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, p.Duration, money(p.Price))
	}
	return tw.Flush()
}

func runProduct(ctx context.Context, sf *Storefront, args []string, out io.Writer) error {
	if len(args) < 1 {
		return usageError("product <id>")
	}
	p, err := sf.Catalog.Product(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("product %q not found", args[0])
	}
	if err != nil {
		return explain(err)
	}

	fmt.Fprintf(out, "%s [%s]\n", p.Name, p.ID)
	price := money(p.Price)
	if p.OriginalPrice > p.Price {
		price += fmt.Sprintf(" (was %s)", money(p.OriginalPrice))
	}
	fmt.Fprintf(out, "Price: %s\n", price)
	if p.Category != "" {
		fmt.Fprintf(out, "Category: %s\n", strings.TrimSpace(p.Category+" "+p.SubCategory))
	}
	if p.Duration != "" {
		fmt.Fprintf(out, "Duration: %s\n", p.Duration)
	}
	if p.Rating > 0 {
		fmt.Fprintf(out, "Rating: %.1f (%d reviews)\n", p.Rating, p.Reviews)
	}
	if p.Description != "" {
		fmt.Fprintf(out, "\n%s\n\n", p.Description)
	}
	bulletList(out, "Benefits", p.Benefits)
	bulletList(out, "Things to know", p.ThingsToKnow)
	bulletList(out, "Precautions", p.Precautions)
	for _, f := range p.FAQs {
		fmt.Fprintf(out, "Q: %s\nA: %s\n", f.Question, f.Answer)
	}

	related, err := sf.Catalog.RelatedProducts(ctx)
	if err != nil {
		sf.logger.Debug("skipping related products", slog.String("error", err.Error()))
		return nil
	}
	var names []string
	for _, r := range related {
		if r.ID != p.ID {
			names = append(names, fmt.Sprintf("%s [%s] %s", r.Name, r.ID, money(r.Price)))
		}
	}
	bulletList(out, "You may also like", names)
	return nil
}

func runCourses(ctx context.Context, sf *Storefront, out io.Writer) error {
	courses, err := sf.Catalog.Courses(ctx)
	if err != nil {
		return explain(err)
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tNAME\tLEVEL\tDURATION\tPRICE")
	for _, c := range courses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Level, c.Duration, money(c.Price))
	}
	return tw.Flush()
}

func runCourse(ctx context.Context, sf *Storefront, args []string, out io.Writer) error {
	if len(args) < 1 {
		return usageError("course <id>")
	}
	c, err := sf.Catalog.Course(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("course %q not found", args[0])
	}
	if err != nil {
		return explain(err)
	}

	fmt.Fprintf(out, "%s [%s]\n", c.Name, c.ID)
	fmt.Fprintf(out, "Price: %s\n", money(c.Price))
	if c.InstructorName != "" {
		fmt.Fprintf(out, "Instructor: %s\n", c.InstructorName)
	}
	fmt.Fprintf(out, "Level: %s, %s, %d students\n", c.Level, c.Duration, c.Students)
	if c.Certificate {
		fmt.Fprintln(out, "Includes a certificate")
	}
	if c.Description != "" {
		fmt.Fprintf(out, "\n%s\n\n", c.Description)
	}
	bulletList(out, "What you will learn", c.WhatYouWillLearn)
	bulletList(out, "Prerequisites", c.Prerequisites)
	for _, w := range c.Curriculum {
		fmt.Fprintf(out, "Week %d: %s\n", w.Week, w.Description)
	}
	return nil
}

func runPackages(ctx context.Context, sf *Storefront, out io.Writer) error {
	packages, err := sf.Catalog.Packages(ctx)
	if err != nil {
		return explain(err)
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tNAME\tSERVICES\tPRICE")
	for _, p := range packages {
		names := make([]string, 0, len(p.Services))
		for _, s := range p.Services {
			names = append(names, s.Name)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, strings.Join(names, ", "), money(p.Price))
	}
	return tw.Flush()
}

func runBanners(ctx context.Context, sf *Storefront, out io.Writer) error {
	banners, err := sf.Catalog.Banners(ctx)
	if err != nil {
		return explain(err)
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "SECTION\tTITLE\tLINK")
	for _, b := range banners {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Section, b.Title, b.NavigateTo)
	}
	return tw.Flush()
}

func runRefresh(ctx context.Context, sf *Storefront, out io.Writer) error {
	if err := sf.Catalog.Invalidate(ctx); err != nil {
		return fmt.Errorf("failed to clear catalog cache: %w", err)
	}
	fmt.Fprintln(out, "Catalog cache cleared.")
	return nil
}
