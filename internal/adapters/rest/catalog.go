// internal/adapters/rest/catalog.go
package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

func (c *Client) get(ctx context.Context, endpoint, path, token string) (*response, error) {
	return c.fetch(ctx, request{
		endpoint: endpoint,
		method:   http.MethodGet,
		url:      c.apiBase + path,
		token:    token,
	})
}

func (c *Client) listProducts(ctx context.Context, endpoint, path string) ([]domain.Product, error) {
	resp, err := c.get(ctx, endpoint, path, "")
	if err != nil {
		return nil, err
	}
	wire, err := decodeList[wireProduct](endpoint, resp)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(wire))
	for _, w := range wire {
		products = append(products, c.norm.product(w))
	}
	return products, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return c.listProducts(ctx, "products.list", "/products")
}

func (c *Client) ListRelatedProducts(ctx context.Context) ([]domain.Product, error) {
	return c.listProducts(ctx, "products.related", "/products/related")
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	resp, err := c.get(ctx, "products.get", "/products/"+url.PathEscape(id), "")
	if err != nil {
		return nil, err
	}
	var w wireProduct
	if err := decode("products.get", resp, &w); err != nil {
		return nil, err
	}
	p := c.norm.product(w)
	return &p, nil
}

func (c *Client) ListCourses(ctx context.Context) ([]domain.Course, error) {
	resp, err := c.get(ctx, "courses.list", "/courses", "")
	if err != nil {
		return nil, err
	}
	wire, err := decodeList[wireCourse]("courses.list", resp)
	if err != nil {
		return nil, err
	}
	courses := make([]domain.Course, 0, len(wire))
	for _, w := range wire {
		courses = append(courses, c.norm.course(w))
	}
	return courses, nil
}

func (c *Client) GetCourse(ctx context.Context, id string) (*domain.Course, error) {
	resp, err := c.get(ctx, "courses.get", "/courses/"+url.PathEscape(id), "")
	if err != nil {
		return nil, err
	}
	var w wireCourse
	if err := decode("courses.get", resp, &w); err != nil {
		return nil, err
	}
	course := c.norm.course(w)
	return &course, nil
}

func (c *Client) ListPackages(ctx context.Context) ([]domain.Package, error) {
	resp, err := c.get(ctx, "packages.list", "/packages", "")
	if err != nil {
		return nil, err
	}
	wire, err := decodeList[wirePackage]("packages.list", resp)
	if err != nil {
		return nil, err
	}
	packages := make([]domain.Package, 0, len(wire))
	for _, w := range wire {
		packages = append(packages, c.norm.pkg(w))
	}
	return packages, nil
}

func (c *Client) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	resp, err := c.get(ctx, "banners.list", "/banners", "")
	if err != nil {
		return nil, err
	}
	wire, err := decodeList[wireBanner]("banners.list", resp)
	if err != nil {
		return nil, err
	}
	banners := make([]domain.Banner, 0, len(wire))
	for _, w := range wire {
		banners = append(banners, c.norm.banner(w))
	}
	return banners, nil
}
