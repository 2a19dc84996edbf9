package domain

// FeatureKind names one onboarding sub-step that calls an upstream service.
// The set is closed: policies and the dispatch registry switch exhaustively
// on these four values.
type FeatureKind string

const (
	FeatureSchufaCheck   FeatureKind = "schufa-check"
	FeatureAccountOpen   FeatureKind = "account-opening"
	FeaturePINActivation FeatureKind = "activate-pin"
	FeatureOnlineBanking FeatureKind = "activate-online-banking"
)

// AllFeatureKinds lists the feature kinds in their declared precedence. The
// order builder uses this order to break priority ties, so it must stay
// stable.
var AllFeatureKinds = []FeatureKind{
	FeatureSchufaCheck,
	FeatureAccountOpen,
	FeaturePINActivation,
	FeatureOnlineBanking,
}

// IsValid checks if the feature kind is one of the four known values.
func (f FeatureKind) IsValid() bool {
	switch f {
	case FeatureSchufaCheck, FeatureAccountOpen, FeaturePINActivation, FeatureOnlineBanking:
		return true
	}
	return false
}

// String returns the string representation of the feature kind.
func (f FeatureKind) String() string {
	return string(f)
}
