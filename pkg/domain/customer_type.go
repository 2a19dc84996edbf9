package domain

import dErrors "onboarding/pkg/domain-errors"

// CustomerType identifies which onboarding policy applies to a request.
// Invariant: the value must be one of the supported customer types.
//
// Usage: construct via ParseCustomerTypeCode at trust boundaries; the wire
// format is the numeric code used by the channel systems.
type CustomerType string

// Supported customer types.
const (
	CustomerTypeNaturalPerson CustomerType = "natural_person"
	CustomerTypeLegalEntity   CustomerType = "legal_entity"
)

// Wire codes assigned by the channel systems. 2 is reserved for joint
// accounts, which this service does not onboard.
const (
	customerCodeNaturalPerson = 1
	customerCodeLegalEntity   = 3
)

// ParseCustomerTypeCode constructs a CustomerType from its numeric wire code.
//
// Errors: returns CodeInvalidInput for unsupported codes; no other errors are
// expected.
func ParseCustomerTypeCode(code int) (CustomerType, error) {
	switch code {
	case customerCodeNaturalPerson:
		return CustomerTypeNaturalPerson, nil
	case customerCodeLegalEntity:
		return CustomerTypeLegalEntity, nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "invalid customer type code: %d", code)
	}
}

// IsValid checks if the customer type is one of the supported enum values.
func (c CustomerType) IsValid() bool {
	return c == CustomerTypeNaturalPerson || c == CustomerTypeLegalEntity
}

// String returns the string representation of the customer type.
func (c CustomerType) String() string {
	return string(c)
}
