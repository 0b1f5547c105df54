package errors

import (
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"strings"
	"testing"
)

func TestWithDetail_DoesNotMutateOriginal(t *testing.T) {
	base := ErrInvalidArgument("bad input").WithDetail("field", "transcript")
	derived := base.WithDetail("reason", "empty")

	if _, ok := base.Details["reason"]; ok {
		t.Fatalf("base error was mutated: %v", base.Details)
	}
	if derived.Details["field"] != "transcript" || derived.Details["reason"] != "empty" {
		t.Fatalf("unexpected details %v", derived.Details)
	}
}

func TestPaymentRequired_CarriesURL(t *testing.T) {
	err := ErrPaymentRequired("https://pay.example.com/buy")
	if err.HTTPCode != http.StatusPaymentRequired {
		t.Fatalf("expected 402 got %d", err.HTTPCode)
	}
	if err.Details["paymentUrl"] != "https://pay.example.com/buy" {
		t.Fatalf("payment url missing: %v", err.Details)
	}
}

func TestAppError_UnwrapAndFormat(t *testing.T) {
	cause := stdErrors.New("connection reset")
	err := ErrAIAnalysisFailed(cause)

	if !stdErrors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the cause")
	}
	if !strings.Contains(err.Error(), "AI_ANALYSIS_FAILED") || !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestErrorCode_MarshalsByName(t *testing.T) {
	b, err := json.Marshal(map[string]ErrorCode{"code": ErrorCode_LICENSE_KEY_REDEEMED})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"code":"LICENSE_KEY_REDEEMED"}` {
		t.Fatalf("unexpected json %s", b)
	}
	if ErrorCode(-1).String() != "UNKNOWN" {
		t.Fatalf("unknown code should render UNKNOWN")
	}
}
