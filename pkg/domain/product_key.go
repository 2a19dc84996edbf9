package domain

import (
	"fmt"
	"strings"

	dErrors "onboarding/pkg/domain-errors"
)

// ProductKey identifies a product within a brand catalog. The wire form is
// the composite code "Brand-Product" (e.g. "BrandA-BCA") supplied by the
// channel systems.
type ProductKey struct {
	Brand       string
	ProductCode string
}

// ParseProductKey splits a composite product code into its brand and product
// parts.
//
// Errors: returns CodeBadRequest when the composite is not exactly
// "Brand-Product"; catalog membership is checked separately.
func ParseProductKey(composite string) (ProductKey, error) {
	parts := strings.Split(composite, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ProductKey{}, dErrors.New(dErrors.CodeBadRequest,
			"invalid product format, expected BrandName-ProductCode")
	}
	return ProductKey{Brand: parts[0], ProductCode: parts[1]}, nil
}

// String returns the composite wire form.
func (k ProductKey) String() string {
	return fmt.Sprintf("%s-%s", k.Brand, k.ProductCode)
}
