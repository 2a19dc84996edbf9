package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboarding/internal/audit"
	auditmem "onboarding/internal/audit/store/memory"
	"onboarding/internal/catalog"
	"onboarding/internal/escalation"
	"onboarding/internal/onboarding/features"
	"onboarding/internal/onboarding/models"
	"onboarding/internal/onboarding/store/idempotency"
	"onboarding/internal/upstream"
	id "onboarding/pkg/domain"
	dErrors "onboarding/pkg/domain-errors"
)

// routingCaller answers 200 for every endpoint except those containing
// failTarget, and records the called URLs in order.
type routingCaller struct {
	calledURLs []string
	failTarget string
	failStatus int
}

func (c *routingCaller) Post(_ context.Context, url string, _ map[string]any) (upstream.Response, error) {
	c.calledURLs = append(c.calledURLs, url)
	if c.failTarget != "" && strings.Contains(url, c.failTarget) {
		return upstream.Response{StatusCode: c.failStatus, Body: "simulated failure"}, nil
	}
	return upstream.Response{StatusCode: 200, Body: `{"status":"success"}`}, nil
}

func (c *routingCaller) calledFeatures() []string {
	out := make([]string, 0, len(c.calledURLs))
	for _, url := range c.calledURLs {
		out = append(out, strings.TrimPrefix(url, "https://upstream.api/"))
	}
	return out
}

type capturingNotifier struct {
	records   []escalation.CaseRecord
	returnErr error
}

func (n *capturingNotifier) Notify(_ context.Context, record escalation.CaseRecord) (string, error) {
	n.records = append(n.records, record)
	return "", n.returnErr
}

func testCatalog() *catalog.Catalog {
	return catalog.New(map[string][]catalog.Product{
		"BrandA": {
			{
				Name:        "Basic Checking Account",
				ProductCode: "BCA",
				Features: catalog.Features{
					Schufa:         &catalog.FeatureConfig{Priority: 1},
					AccountOpening: &catalog.FeatureConfig{Priority: 2},
					PINActivation:  &catalog.FeatureConfig{Priority: 3},
					OnlineBanking:  &catalog.OnlineBankingFeature{Priority: 4},
				},
			},
		},
	})
}

type fixture struct {
	service  *Service
	caller   *routingCaller
	notifier *capturingNotifier
}

func newFixture(t *testing.T, caller *routingCaller, notifier *capturingNotifier) fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auditor := audit.NewService(auditmem.New(), logger)

	registry := features.NewRegistry(
		features.NewSchufaExecutor(caller, auditor, "https://upstream.api", logger),
		features.NewAccountOpeningExecutor(caller, auditor, "https://upstream.api", logger),
		features.NewPINActivationExecutor(caller, auditor, "https://upstream.api", logger),
		features.NewOnlineBankingExecutor(caller, auditor, "https://upstream.api", logger),
	)
	esc := escalation.NewBuilder(notifier, logger)

	svc := New(testCatalog(), idempotency.NewMemoryGuard(), nil, logger,
		NewNaturalPersonPolicy(registry, esc, nil, logger),
		NewLegalEntityPolicy(registry, esc, nil, logger),
	)
	return fixture{service: svc, caller: caller, notifier: notifier}
}

func optedInRequest(txn string, customerType id.CustomerType) models.RequestContext {
	reqCtx := models.NewRequestContext(txn, "fkn-1", "BrandA", "BCA", customerType)
	reqCtx.PINSet = true
	reqCtx.OnlineBankingOptIn = true
	return reqCtx
}

func TestOnboardNaturalPerson(t *testing.T) {
	f := newFixture(t, &routingCaller{}, &capturingNotifier{})

	result, err := f.service.Onboard(context.Background(), optedInRequest("tx-1", id.CustomerTypeNaturalPerson))
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, result.Status)
	assert.Empty(t, result.CaseID)
	assert.Equal(t, []id.FeatureKind{
		id.FeatureSchufaCheck,
		id.FeatureAccountOpen,
		id.FeaturePINActivation,
		id.FeatureOnlineBanking,
	}, result.Executed)
	assert.Empty(t, f.notifier.records, "completed runs must not open cases")
}

func TestOnboardLegalEntitySkipsSchufa(t *testing.T) {
	f := newFixture(t, &routingCaller{}, &capturingNotifier{})

	result, err := f.service.Onboard(context.Background(), optedInRequest("tx-1", id.CustomerTypeLegalEntity))
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, result.Status)
	assert.NotContains(t, result.Executed, id.FeatureSchufaCheck)
	assert.NotContains(t, f.caller.calledFeatures(), id.FeatureSchufaCheck.String())
}

func TestOnboardOptInGates(t *testing.T) {
	t.Run("unset pin skips pin activation", func(t *testing.T) {
		f := newFixture(t, &routingCaller{}, &capturingNotifier{})
		reqCtx := optedInRequest("tx-1", id.CustomerTypeNaturalPerson)
		reqCtx.PINSet = false

		result, err := f.service.Onboard(context.Background(), reqCtx)
		require.NoError(t, err)
		assert.NotContains(t, result.Executed, id.FeaturePINActivation)
	})

	t.Run("missing opt-in skips online banking", func(t *testing.T) {
		f := newFixture(t, &routingCaller{}, &capturingNotifier{})
		reqCtx := optedInRequest("tx-1", id.CustomerTypeNaturalPerson)
		reqCtx.OnlineBankingOptIn = false

		result, err := f.service.Onboard(context.Background(), reqCtx)
		require.NoError(t, err)
		assert.NotContains(t, result.Executed, id.FeatureOnlineBanking)
	})
}

func TestOnboardFailFast(t *testing.T) {
	caller := &routingCaller{failTarget: id.FeatureAccountOpen.String(), failStatus: 503}
	f := newFixture(t, caller, &capturingNotifier{})

	reqCtx := optedInRequest("tx-1", id.CustomerTypeNaturalPerson)
	reqCtx.SimulateFailure = id.FailureServiceUnavailable
	reqCtx.FailureTarget = id.FeatureAccountOpen.String()

	result, err := f.service.Onboard(context.Background(), reqCtx)
	require.NoError(t, err)

	assert.Equal(t, models.StatusEscalated, result.Status)
	assert.NotEmpty(t, result.CaseID)
	assert.Equal(t, []id.FeatureKind{id.FeatureSchufaCheck}, result.Executed)

	// Features after the failing one must never be dispatched.
	assert.Equal(t, []string{
		id.FeatureSchufaCheck.String(),
		id.FeatureAccountOpen.String(),
	}, f.caller.calledFeatures())

	require.Len(t, f.notifier.records, 1, "exactly one case per failed run")
	record := f.notifier.records[0]
	assert.Equal(t, "tx-1", record.TransactionID)
	assert.Equal(t, id.SeverityHigh, record.Severity)
	assert.Contains(t, record.ErrorMessage, id.FeatureAccountOpen.String())
}

func TestOnboardConfigRejections(t *testing.T) {
	t.Run("unknown brand", func(t *testing.T) {
		f := newFixture(t, &routingCaller{}, &capturingNotifier{})
		reqCtx := optedInRequest("tx-1", id.CustomerTypeNaturalPerson)
		reqCtx.Brand = "NoSuchBrand"

		_, err := f.service.Onboard(context.Background(), reqCtx)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		assert.Empty(t, f.notifier.records, "configuration rejections must not open cases")
		assert.Empty(t, f.caller.calledURLs)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newFixture(t, &routingCaller{}, &capturingNotifier{})
		reqCtx := optedInRequest("tx-1", id.CustomerTypeNaturalPerson)
		reqCtx.ProductCode = "XYZ"

		_, err := f.service.Onboard(context.Background(), reqCtx)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		assert.Empty(t, f.notifier.records)
	})
}

func TestOnboardReplayedTransaction(t *testing.T) {
	f := newFixture(t, &routingCaller{}, &capturingNotifier{})
	reqCtx := optedInRequest("tx-1", id.CustomerTypeNaturalPerson)

	_, err := f.service.Onboard(context.Background(), reqCtx)
	require.NoError(t, err)

	_, err = f.service.Onboard(context.Background(), reqCtx)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

type brokenGuard struct{}

func (brokenGuard) MarkSeen(context.Context, string) (bool, error) {
	return false, errors.New("redis: connection pool timeout")
}

func TestOnboardGuardFailsOpen(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	caller := &routingCaller{}
	auditor := audit.NewService(auditmem.New(), logger)
	registry := features.NewRegistry(
		features.NewSchufaExecutor(caller, auditor, "https://upstream.api", logger),
		features.NewAccountOpeningExecutor(caller, auditor, "https://upstream.api", logger),
		features.NewPINActivationExecutor(caller, auditor, "https://upstream.api", logger),
		features.NewOnlineBankingExecutor(caller, auditor, "https://upstream.api", logger),
	)
	esc := escalation.NewBuilder(&capturingNotifier{}, logger)

	svc := New(testCatalog(), brokenGuard{}, nil, logger,
		NewNaturalPersonPolicy(registry, esc, nil, logger),
	)

	result, err := svc.Onboard(context.Background(), optedInRequest("tx-1", id.CustomerTypeNaturalPerson))
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, result.Status)
}

func TestOnboardEscalationFailure(t *testing.T) {
	caller := &routingCaller{failTarget: id.FeatureSchufaCheck.String(), failStatus: 500}
	notifier := &capturingNotifier{returnErr: errors.New("case management down")}
	f := newFixture(t, caller, notifier)

	_, err := f.service.Onboard(context.Background(), optedInRequest("tx-1", id.CustomerTypeNaturalPerson))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}
