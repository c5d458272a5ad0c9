package search

import (
	"github.com/shopspring/decimal"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/catalog"
)

// ProductResult is a catalog product as returned by product search
type ProductResult struct {
	ID       string          `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Brand    string          `json:"brand,omitempty"`
	Category string          `json:"category,omitempty"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"imageUrl,omitempty"`
}

// ProductsResponse carries a page of search results
type ProductsResponse struct {
	Query    string          `json:"query"`
	Results  []ProductResult `json:"results"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

// SuggestionsResponse carries type-ahead completions for a prefix
type SuggestionsResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// FiltersResponse carries the tenant's filterable facets
type FiltersResponse struct {
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
}

// ReindexResponse reports a completed suggestion index rebuild
type ReindexResponse struct {
	IndexedTerms int `json:"indexedTerms"`
	Products     int `json:"products"`
}

// toProductResult maps a catalog product into the search result shape
func toProductResult(p *catalog.Product) ProductResult {
	return ProductResult{
		ID:       p.ID.String(),
		SKU:      p.SKU,
		Name:     p.Name,
		Brand:    p.Brand,
		Category: p.Category,
		Price:    p.Price,
		ImageURL: p.ImageURL,
	}
}
