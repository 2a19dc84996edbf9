// Package catalog holds the immutable brand/product configuration.
//
// The catalog is loaded once at process start and shared read-only by all
// requests; orchestration code receives it by dependency injection and never
// mutates it.
package catalog

import (
	"strings"

	id "onboarding/pkg/domain"
	dErrors "onboarding/pkg/domain-errors"
)

// FeatureConfig marks a feature as enabled and carries its execution
// priority. Lower priority runs earlier. A feature absent from the product
// is disabled.
type FeatureConfig struct {
	Priority int `yaml:"priority" json:"priority"`
}

// SubFeatures are the online-banking add-ons a product may bundle.
type SubFeatures struct {
	TelephoneBanking bool `yaml:"telephoneBanking" json:"telephoneBanking"`
	SMSNotifications bool `yaml:"smsNotifications" json:"smsNotifications"`
	EmailAlerts      bool `yaml:"emailAlerts" json:"emailAlerts"`
}

// OnlineBankingFeature extends FeatureConfig with optional sub-feature flags.
type OnlineBankingFeature struct {
	Priority    int          `yaml:"priority" json:"priority"`
	SubFeatures *SubFeatures `yaml:"subFeatures,omitempty" json:"subFeatures,omitempty"`
}

// Features declares which onboarding features a product enables. Presence of
// a pointer means enabled; this is the single authoritative schema for both
// customer-type policies.
type Features struct {
	Schufa         *FeatureConfig        `yaml:"schufa,omitempty" json:"schufa,omitempty"`
	AccountOpening *FeatureConfig        `yaml:"accountOpening,omitempty" json:"accountOpening,omitempty"`
	PINActivation  *FeatureConfig        `yaml:"pinActivation,omitempty" json:"pinActivation,omitempty"`
	OnlineBanking  *OnlineBankingFeature `yaml:"onlineBankingActivation,omitempty" json:"onlineBankingActivation,omitempty"`
}

// Product is one sellable product within a brand.
type Product struct {
	Name        string   `yaml:"name" json:"name"`
	ProductCode string   `yaml:"productCode" json:"productCode"`
	Features    Features `yaml:"features" json:"features"`
}

// SchufaEnabled reports whether the identity check is configured.
func (p *Product) SchufaEnabled() bool { return p.Features.Schufa != nil }

// AccountOpeningEnabled reports whether account opening is configured.
func (p *Product) AccountOpeningEnabled() bool { return p.Features.AccountOpening != nil }

// PINActivationEnabled reports whether PIN activation is configured.
func (p *Product) PINActivationEnabled() bool { return p.Features.PINActivation != nil }

// OnlineBankingEnabled reports whether online banking activation is configured.
func (p *Product) OnlineBankingEnabled() bool { return p.Features.OnlineBanking != nil }

// OnlineBankingSubFeatures returns the sub-feature flags, defaulting every
// flag to false when the product declares none.
func (p *Product) OnlineBankingSubFeatures() SubFeatures {
	if p.Features.OnlineBanking == nil || p.Features.OnlineBanking.SubFeatures == nil {
		return SubFeatures{}
	}
	return *p.Features.OnlineBanking.SubFeatures
}

// Catalog maps brand names to their product lists.
type Catalog struct {
	brands map[string][]Product
}

// New builds a catalog from a brand map. The map is not copied; callers hand
// over ownership at construction.
func New(brands map[string][]Product) *Catalog {
	if brands == nil {
		brands = map[string][]Product{}
	}
	return &Catalog{brands: brands}
}

// Product resolves a product by brand and product code. Product codes match
// case-insensitively, mirroring how the channel systems send them.
//
// Errors: CodeNotFound for an unknown brand or unknown product; these are
// configuration rejections, never escalated to case management.
func (c *Catalog) Product(key id.ProductKey) (*Product, error) {
	products, ok := c.brands[key.Brand]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "unsupported brand: %s", key.Brand)
	}
	for i := range products {
		if strings.EqualFold(products[i].ProductCode, key.ProductCode) {
			return &products[i], nil
		}
	}
	return nil, dErrors.Newf(dErrors.CodeNotFound, "unsupported product for brand %s: %s", key.Brand, key.ProductCode)
}

// Brands returns a copy of the brand map for read-only exposure, such as the
// catalog endpoint.
func (c *Catalog) Brands() map[string][]Product {
	out := make(map[string][]Product, len(c.brands))
	for brand, products := range c.brands {
		cp := make([]Product, len(products))
		copy(cp, products)
		out[brand] = cp
	}
	return out
}
