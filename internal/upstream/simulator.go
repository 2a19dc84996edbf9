package upstream

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "onboarding/pkg/domain"
)

// Simulator is a Caller that never leaves the process. It honors the
// failure-injection tokens carried in the payload: when failureTarget matches
// the endpoint, the call fails with the status implied by simulateFailure;
// otherwise each known endpoint answers with a canned success body.
//
// Used in local and test deployments where the real upstream gateway is not
// reachable.
type Simulator struct {
	logger *slog.Logger
}

// NewSimulator builds a simulating caller.
func NewSimulator(logger *slog.Logger) *Simulator {
	return &Simulator{logger: logger}
}

// Post simulates one upstream call.
func (s *Simulator) Post(ctx context.Context, url string, payload map[string]any) (Response, error) {
	simulateFailure, _ := payload["simulateFailure"].(string)
	failureTarget, _ := payload["failureTarget"].(string)

	if failureTarget != "" && failureTarget != id.FailureNone && strings.Contains(url, failureTarget) {
		s.logger.InfoContext(ctx, "simulating upstream failure",
			"target", failureTarget, "mode", simulateFailure)
		switch strings.ToUpper(simulateFailure) {
		case id.FailureServiceUnavailable:
			return failureResponse(http.StatusServiceUnavailable, "service unavailable", failureTarget), nil
		case id.FailureBadRequest:
			return failureResponse(http.StatusBadRequest, "bad request", failureTarget), nil
		default:
			// NETWORK_ERROR and any unrecognized mode degrade to a 500.
			return failureResponse(http.StatusInternalServerError, "network error", failureTarget), nil
		}
	}

	switch {
	case strings.Contains(url, id.FeatureSchufaCheck.String()):
		return successResponse("SCHUFA check passed successfully"), nil
	case strings.Contains(url, id.FeatureAccountOpen.String()):
		return successResponse("account opened successfully"), nil
	case strings.Contains(url, id.FeaturePINActivation.String()):
		return successResponse("PIN activated"), nil
	case strings.Contains(url, id.FeatureOnlineBanking.String()):
		return successResponse("online banking activated"), nil
	case strings.Contains(url, "case-management"):
		return successResponse("case management notified successfully"), nil
	}

	return Response{
		StatusCode: http.StatusNotFound,
		Body:       `{"status":"error","message":"unknown endpoint"}`,
	}, nil
}

func successResponse(message string) Response {
	return Response{
		StatusCode: http.StatusOK,
		Body:       fmt.Sprintf(`{"status":"success","message":"%s"}`, message),
	}
}

func failureResponse(status int, kind, target string) Response {
	return Response{
		StatusCode: status,
		Body:       fmt.Sprintf(`{"status":"error","message":"simulated %s for %s"}`, kind, target),
	}
}
