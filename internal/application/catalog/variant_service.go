package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/catalog"
	"github.com/adebold/Commerce-Studio-sub022/internal/domain/shared"
	"github.com/adebold/Commerce-Studio-sub022/internal/infrastructure/telemetry"
)

// VariantService handles product variant operations. Every operation
// verifies the parent product within the tenant before touching variants.
type VariantService struct {
	variants catalog.VariantRepository
	products catalog.ProductRepository
}

// NewVariantService creates a new VariantService
func NewVariantService(variants catalog.VariantRepository, products catalog.ProductRepository) *VariantService {
	return &VariantService{
		variants: variants,
		products: products,
	}
}

// requireProduct verifies the product exists in the tenant's catalog
func (s *VariantService) requireProduct(ctx context.Context, tenantID string, productID uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, tenantID, productID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return err
	}
	return nil
}

// List returns all variants of a product
func (s *VariantService) List(ctx context.Context, tenantID string, productID uuid.UUID) ([]VariantResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "variant", "list")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID,
		telemetry.SpanAttrProductID, productID.String(),
	)

	if err := s.requireProduct(ctx, tenantID, productID); err != nil {
		return nil, err
	}

	variants, err := s.variants.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := make([]VariantResponse, 0, len(variants))
	for i := range variants {
		result = append(result, toVariantResponse(&variants[i]))
	}
	return result, nil
}

// Get returns a single variant, verifying it belongs to the given product
func (s *VariantService) Get(ctx context.Context, tenantID string, productID, variantID uuid.UUID) (*VariantResponse, error) {
	variant, err := s.variants.FindByID(ctx, tenantID, variantID)
	if err != nil {
		return nil, err
	}
	if variant.ProductID != productID {
		// A variant of another product is not found, not forbidden
		return nil, shared.ErrNotFound
	}

	resp := toVariantResponse(variant)
	return &resp, nil
}

// Create adds a variant to a product. Variant SKUs are unique per tenant
// across all products.
func (s *VariantService) Create(ctx context.Context, tenantID string, productID uuid.UUID, req CreateVariantRequest) (*VariantResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "variant", "create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID,
		telemetry.SpanAttrProductID, productID.String(),
		telemetry.SpanAttrProductSKU, req.SKU,
	)

	if err := s.requireProduct(ctx, tenantID, productID); err != nil {
		return nil, err
	}

	exists, err := s.variants.ExistsBySKU(ctx, tenantID, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Variant with this SKU already exists")
	}

	variant, err := catalog.NewVariant(tenantID, productID, req.SKU, req.Price)
	if err != nil {
		return nil, err
	}

	if req.Color != "" || req.Size != "" {
		if err := variant.SetOptions(req.Color, req.Size); err != nil {
			return nil, err
		}
	}
	if req.Stock > 0 {
		if err := variant.SetStock(req.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.variants.Save(ctx, variant); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := toVariantResponse(variant)
	return &resp, nil
}

// Delete removes a variant from a product
func (s *VariantService) Delete(ctx context.Context, tenantID string, productID, variantID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "variant", "delete")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrTenantID, tenantID,
		telemetry.SpanAttrProductID, productID.String(),
	)

	variant, err := s.variants.FindByID(ctx, tenantID, variantID)
	if err != nil {
		return err
	}
	if variant.ProductID != productID {
		return shared.ErrNotFound
	}

	return s.variants.Delete(ctx, tenantID, variantID)
}
