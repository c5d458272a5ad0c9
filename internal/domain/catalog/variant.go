package catalog

import (
	"strings"
	"time"

	"github.com/adebold/Commerce-Studio-sub022/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant represents a purchasable variation of a product, such as a
// specific color and size combination with its own SKU, price, and stock.
type Variant struct {
	shared.TenantEntity
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU       string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_variant_tenant_sku,priority:2"`
	Color     string          `gorm:"type:varchar(50)"`
	Size      string          `gorm:"type:varchar(50)"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stock     int             `gorm:"not null;default:0"`
	Active    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Variant) TableName() string {
	return "product_variants"
}

// NewVariant creates a new variant of the given product
func NewVariant(tenantID string, productID uuid.UUID, sku string, price decimal.Decimal) (*Variant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Variant requires a product")
	}
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Variant{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ProductID:    productID,
		SKU:          strings.ToUpper(sku),
		Price:        price,
		Active:       true,
	}, nil
}

// SetOptions sets the variant's distinguishing options
func (v *Variant) SetOptions(color, size string) error {
	if len(color) > 50 {
		return shared.NewDomainError("INVALID_OPTION", "Color cannot exceed 50 characters")
	}
	if len(size) > 50 {
		return shared.NewDomainError("INVALID_OPTION", "Size cannot exceed 50 characters")
	}

	v.Color = color
	v.Size = size
	v.UpdatedAt = time.Now()

	return nil
}

// SetPrice sets the variant's price
func (v *Variant) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	v.Price = price
	v.UpdatedAt = time.Now()

	return nil
}

// SetStock sets the on-hand stock count
func (v *Variant) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	v.Stock = stock
	v.UpdatedAt = time.Now()

	return nil
}

// Deactivate hides the variant from storefront surfaces
func (v *Variant) Deactivate() {
	v.Active = false
	v.UpdatedAt = time.Now()
}

// Activate makes the variant purchasable again
func (v *Variant) Activate() {
	v.Active = true
	v.UpdatedAt = time.Now()
}

// InStock returns true when the variant has stock available
func (v *Variant) InStock() bool {
	return v.Stock > 0
}
