package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/jana-studio/taller/internal/budgets"
	"github.com/jana-studio/taller/internal/catalog/products"
	"github.com/jana-studio/taller/internal/clients"
	"github.com/jana-studio/taller/internal/platform/httpx"
	"github.com/jana-studio/taller/internal/settings"
	"github.com/jana-studio/taller/report"
)

// Renderer turns HTML into PDF bytes. Satisfied by report.Client.
type Renderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

type Service struct {
	budgets   *budgets.Service
	clients   clients.Repository
	products  products.Repository
	settings  *settings.Service
	renderer  Renderer
	brandName string
	contact   string
}

func NewService(budgetSvc *budgets.Service, clientRepo clients.Repository, productRepo products.Repository, settingsSvc *settings.Service, renderer *report.Client, brandName, contactNumber string) *Service {
	return &Service{
		budgets:   budgetSvc,
		clients:   clientRepo,
		products:  productRepo,
		settings:  settingsSvc,
		renderer:  renderer,
		brandName: brandName,
		contact:   contactNumber,
	}
}

// Document is a rendered quote plus the metadata its download needs.
type Document struct {
	HTML       string
	ClientName string
	Filename   string
}

// BuildHTML resolves every reference the quote shows and renders it.
// Missing client or product references degrade to fallbacks; only a
// missing budget or a store failure is an error.
func (s *Service) BuildHTML(ctx context.Context, budgetID string) (*Document, error) {
	b, err := s.budgets.Get(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	clientName := ""
	if b.ClientID != nil {
		c, err := s.clients.Get(ctx, *b.ClientID)
		switch {
		case err == nil:
			clientName = c.Name
		case errors.Is(err, httpx.ErrNotFound):
			// Deleted client; the document falls back to the walk-in label.
		default:
			return nil, err
		}
	}

	catalogue, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(catalogue))
	for _, p := range catalogue {
		names[p.ID] = p.Name
	}

	brandName := s.brandName
	logo := ""
	contact := s.contact
	if s.settings != nil {
		if brand, err := s.settings.Get(ctx); err == nil {
			if brand.LogoDataURL != "" {
				logo = brand.LogoDataURL
			}
			if brand.ContactNumber != "" {
				contact = brand.ContactNumber
			}
		}
	}

	data := Build(*b, budgets.PriceOf(*b), clientName, names, brandName, logo, contact)
	html, err := Render(data)
	if err != nil {
		return nil, err
	}

	return &Document{
		HTML:       html,
		ClientName: data.ClientName,
		Filename:   Filename(clientName, b.Date),
	}, nil
}

// ExportPDF renders the quote and converts it through Gotenberg.
func (s *Service) ExportPDF(ctx context.Context, budgetID string) (*Document, []byte, error) {
	doc, err := s.BuildHTML(ctx, budgetID)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := s.renderer.RenderHTML(ctx, doc.HTML)
	if err != nil {
		return nil, nil, fmt.Errorf("document: export pdf: %w", err)
	}
	return doc, pdf, nil
}
