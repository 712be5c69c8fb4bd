package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestHasKind(t *testing.T) {
	base := New(KindProvider, "rate limited by %s", "openrouter")

	if !HasKind(base, KindProvider) {
		t.Fatal("expected provider kind on fresh error")
	}
	if HasKind(base, KindSchema) {
		t.Fatal("did not expect schema kind")
	}
}

func TestWrapfPreservesKind(t *testing.T) {
	base := New(KindSchema, "confidence out of range")
	wrapped := Wrapf(base, "intent classification")
	wrapped = Wrapf(wrapped, "respond")

	if !HasKind(wrapped, KindSchema) {
		t.Fatal("schema kind lost through Wrapf layers")
	}
	if !strings.Contains(wrapped.Error(), "confidence out of range") {
		t.Fatalf("inner message lost: %s", wrapped.Error())
	}
}

func TestWrapKindAddsOuterKind(t *testing.T) {
	inner := fmt.Errorf("connection reset")
	err := WrapKind(KindProvider, inner, "chat completion failed")

	if !HasKind(err, KindProvider) {
		t.Fatal("expected provider kind")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrapf(nil, "context") != nil {
		t.Fatal("Wrapf(nil) must return nil")
	}
	if WrapKind(KindProvider, nil, "context") != nil {
		t.Fatal("WrapKind(nil) must return nil")
	}
}

func TestErrorIncludesCaller(t *testing.T) {
	err := New(KindInvalidRequest, "last message must be from the user")
	if !strings.Contains(err.Error(), "errors_test.go") {
		t.Fatalf("expected file name in message, got %s", err.Error())
	}
}
