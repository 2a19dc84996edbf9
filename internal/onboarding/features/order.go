package features

import (
	"sort"

	"onboarding/internal/catalog"
	id "onboarding/pkg/domain"
)

// Gates are the per-request switches that remove individual features from
// the execution order. The customer-type policy sets IncludeSchufa; the
// opt-in flags come straight from the request.
type Gates struct {
	IncludeSchufa      bool
	PINSet             bool
	OnlineBankingOptIn bool
}

type orderedFeature struct {
	kind     id.FeatureKind
	priority int
	rank     int
}

// BuildOrder derives the execution sequence for a product: enabled features
// pass their gates, then sort ascending by configured priority. Equal
// priorities fall back to the declared feature precedence, so the order is
// deterministic for any catalog.
func BuildOrder(product *catalog.Product, gates Gates) []id.FeatureKind {
	entries := make([]orderedFeature, 0, len(id.AllFeatureKinds))

	if gates.IncludeSchufa && product.SchufaEnabled() {
		entries = append(entries, entry(id.FeatureSchufaCheck, product.Features.Schufa.Priority))
	}
	if product.AccountOpeningEnabled() {
		entries = append(entries, entry(id.FeatureAccountOpen, product.Features.AccountOpening.Priority))
	}
	if gates.PINSet && product.PINActivationEnabled() {
		entries = append(entries, entry(id.FeaturePINActivation, product.Features.PINActivation.Priority))
	}
	if gates.OnlineBankingOptIn && product.OnlineBankingEnabled() {
		entries = append(entries, entry(id.FeatureOnlineBanking, product.Features.OnlineBanking.Priority))
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority < entries[j].priority
		}
		return entries[i].rank < entries[j].rank
	})

	order := make([]id.FeatureKind, len(entries))
	for i, e := range entries {
		order[i] = e.kind
	}
	return order
}

func entry(kind id.FeatureKind, priority int) orderedFeature {
	rank := 0
	for i, k := range id.AllFeatureKinds {
		if k == kind {
			rank = i
			break
		}
	}
	return orderedFeature{kind: kind, priority: priority, rank: rank}
}
