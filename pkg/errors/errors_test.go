package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code   Code
		status int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeNoOpenRegister, http.StatusUnprocessableEntity},
		{CodeInsufficientStock, http.StatusConflict},
		{CodePaymentsMismatch, http.StatusUnprocessableEntity},
		{CodeCreditLimitExceeded, http.StatusUnprocessableEntity},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("code %s: expected status %d, got %d", tc.code, tc.status, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestAsUnwrapsThroughChain(t *testing.T) {
	t.Parallel()

	base := New(CodeInsufficientStock, "item short").WithDetails(map[string]any{"item": "SKU-1"})
	wrapped := fmt.Errorf("posting sale: %w", base)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeInsufficientStock {
		t.Fatalf("unexpected code %s", typed.Code())
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["item"] != "SKU-1" {
		t.Fatalf("unexpected details %v", typed.Details())
	}
}

func TestAsReturnsNilForPlainErrors(t *testing.T) {
	t.Parallel()

	if typed := As(errors.New("plain")); typed != nil {
		t.Fatalf("expected nil, got %v", typed)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("row missing")
	err := Wrap(CodeNotFound, cause, "product not found")
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to survive unwrap")
	}

	dump := Dump(err)
	if dump.Code != CodeNotFound {
		t.Fatalf("unexpected dump code %s", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected chain with cause, got %v", dump.Chain)
	}
}
