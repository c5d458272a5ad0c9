// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"gorm.io/gorm"
)

// GormCatalogMetricsProvider implements CatalogMetricsProvider using GORM.
// It queries the products table directly for aggregated metrics.
type GormCatalogMetricsProvider struct {
	db *gorm.DB
}

// NewGormCatalogMetricsProvider creates a new GormCatalogMetricsProvider.
func NewGormCatalogMetricsProvider(db *gorm.DB) *GormCatalogMetricsProvider {
	return &GormCatalogMetricsProvider{db: db}
}

// CountActiveProducts returns the number of active products for a tenant.
func (p *GormCatalogMetricsProvider) CountActiveProducts(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("products").
		Where("tenant_id = ? AND status = ?", tenantID, "active").
		Count(&count).Error

	return count, err
}

// GormTenantProvider implements TenantProvider using GORM.
type GormTenantProvider struct {
	db *gorm.DB
}

// NewGormTenantProvider creates a new GormTenantProvider.
func NewGormTenantProvider(db *gorm.DB) *GormTenantProvider {
	return &GormTenantProvider{db: db}
}

// ActiveTenants returns the distinct tenants that currently have products.
func (p *GormTenantProvider) ActiveTenants(ctx context.Context) ([]string, error) {
	var tenants []string
	err := p.db.WithContext(ctx).
		Table("products").
		Distinct().
		Order("tenant_id ASC").
		Pluck("tenant_id", &tenants).Error

	return tenants, err
}
