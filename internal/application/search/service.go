package search

import (
	"context"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/catalog"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/telemetry"
)

// Page size bounds for product search
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Service provides catalog-backed search: substring product matching,
// prefix suggestions from an in-memory index, and facet listing. There is
// no external search engine behind it.
type Service struct {
	products catalog.ProductRepository
	index    *SuggestionIndex
	metrics  *telemetry.BusinessMetrics
}

// NewService creates a search Service with an empty suggestion index
func NewService(products catalog.ProductRepository) *Service {
	return &Service{
		products: products,
		index:    NewSuggestionIndex(),
	}
}

// SetBusinessMetrics sets the business metrics collector. Optional; when
// unset no metrics are recorded.
func (s *Service) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.metrics = bm
}

// DocumentCount reports how many suggestion terms are indexed for a tenant.
func (s *Service) DocumentCount(_ context.Context, tenantID string) (int64, error) {
	return int64(s.index.TermCount(tenantID)), nil
}

// Products runs a normalized substring search over product name, brand and
// SKU. Page is 1-based; out-of-range values fall back to defaults.
func (s *Service) Products(ctx context.Context, tenantID, query string, page, pageSize int) (*ProductsResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "search", "products")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID,
		telemetry.SpanAttrQuery, query,
		telemetry.SpanAttrLimit, pageSize,
	)

	normalized := Normalize(query)
	offset := (page - 1) * pageSize

	matches, total, err := s.products.Search(ctx, tenantID, normalized, pageSize, offset)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	results := make([]ProductResult, 0, len(matches))
	for i := range matches {
		results = append(results, toProductResult(&matches[i]))
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrResultCount, len(results))

	if s.metrics != nil {
		s.metrics.RecordSearch(ctx, tenantID)
	}

	return &ProductsResponse{
		Query:    query,
		Results:  results,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Suggestions returns type-ahead completions for the given prefix from the
// tenant's suggestion index. An unindexed tenant gets an empty list, not an
// error; the caller is expected to reindex.
func (s *Service) Suggestions(ctx context.Context, tenantID, query string) (*SuggestionsResponse, error) {
	return &SuggestionsResponse{
		Query:       query,
		Suggestions: s.index.Lookup(tenantID, query),
	}, nil
}

// Filters returns the tenant's filterable facets: distinct brands and
// categories of active products.
func (s *Service) Filters(ctx context.Context, tenantID string) (*FiltersResponse, error) {
	brands, err := s.products.Brands(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	categories, err := s.products.Categories(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &FiltersResponse{
		Brands:     brands,
		Categories: categories,
	}, nil
}

// Reindex rebuilds the tenant's suggestion index from its active catalog.
// Names and brands become suggestion terms; SKUs are searchable but not
// suggested.
func (s *Service) Reindex(ctx context.Context, tenantID string) (*ReindexResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "search", "reindex")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrTenantID, tenantID)

	// Reindexing walks the whole active catalog, so keep it attributable
	// in CPU profiles.
	var resp *ReindexResponse
	var opErr error
	labels := telemetry.OperationLabels("search_reindex", map[string]string{
		telemetry.ProfilingLabelTenantID: tenantID,
	})
	telemetry.WithProfilingLabels(ctx, labels, func(c context.Context) {
		products, err := s.products.FindActive(c, tenantID)
		if err != nil {
			telemetry.RecordError(span, err)
			opErr = err
			return
		}

		terms := make([]string, 0, len(products)*2)
		for i := range products {
			terms = append(terms, products[i].Name)
			if products[i].Brand != "" {
				terms = append(terms, products[i].Brand)
			}
		}

		indexed := s.index.Rebuild(tenantID, terms)
		telemetry.AddEvent(span, "index_rebuilt", telemetry.SpanAttrResultCount, indexed)

		if s.metrics != nil {
			s.metrics.RecordIndexDocuments(c, tenantID, int64(indexed))
		}

		resp = &ReindexResponse{
			IndexedTerms: indexed,
			Products:     len(products),
		}
	})
	if opErr != nil {
		return nil, opErr
	}
	return resp, nil
}
