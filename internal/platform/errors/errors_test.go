package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeAlreadyInstalled, "item is already installed")
	wrapped := fmt.Errorf("validate: %w", WithMetadata(CodeAlreadyInstalled, "other message", map[string]string{"Item": "Fangs"}))

	if !stderrors.Is(wrapped, sentinel) {
		t.Fatal("expected errors.Is to match by code")
	}
	if stderrors.Is(wrapped, New(CodeTypeMismatch, "x")) {
		t.Fatal("expected different codes not to match")
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := Wrap(CodeTransientIOFailure, "update actor", stderrors.New("disk full"))
	if got, want := err.Error(), "update actor: disk full"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if !stderrors.Is(err, err.Cause) {
		t.Fatal("expected cause to be reachable")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: stderrors.New("boom"), want: CodeUnknown},
		{name: "domain", err: New(CodeLookupNotFound, "missing table"), want: CodeLookupNotFound},
		{name: "wrapped", err: fmt.Errorf("ctx: %w", New(CodeNotFound, "actor")), want: CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Fatalf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeNotACybermod, codes.InvalidArgument},
		{CodeAlreadyInstalled, codes.FailedPrecondition},
		{CodeSlicksocketRequired, codes.FailedPrecondition},
		{CodeInstallationPending, codes.Aborted},
		{CodeInstallationCancelled, codes.Canceled},
		{CodeLookupNotFound, codes.NotFound},
		{CodeTransientIOFailure, codes.Unavailable},
		{CodeInternal, codes.Internal},
		{Code("SOMETHING_NEW"), codes.Internal},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.want {
			t.Errorf("%s.GRPCCode() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestValidationAndRetryableClassification(t *testing.T) {
	if !CodeMissingPrerequisites.IsValidation() {
		t.Fatal("expected missing prerequisites to be a validation code")
	}
	if CodeTransientIOFailure.IsValidation() {
		t.Fatal("expected transient failure not to be a validation code")
	}
	if !CodeLookupNotFound.IsRetryable() || !CodeTransientIOFailure.IsRetryable() {
		t.Fatal("expected lookup and io failures to be retryable")
	}
	if CodeTypeMismatch.IsRetryable() {
		t.Fatal("expected type mismatch not to be retryable")
	}
}

func TestGRPCStatusRoundTrip(t *testing.T) {
	domainErr := WithMetadata(CodeMissingPrerequisites, "prerequisites unmet", map[string]string{"Missing": "Bras cybernétique"})

	err := domainErr.ToGRPCStatus("fr-FR", "Prérequis manquants : Bras cybernétique")
	st, ok := status.FromError(err)
	if !ok {
		t.Fatal("expected grpc status")
	}
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("status code = %v, want %v", st.Code(), codes.FailedPrecondition)
	}

	recovered, userMessage, ok := FromGRPCStatus(err)
	if !ok {
		t.Fatal("expected domain error in status details")
	}
	if recovered.Code != CodeMissingPrerequisites {
		t.Fatalf("code = %q, want %q", recovered.Code, CodeMissingPrerequisites)
	}
	if recovered.Metadata["Missing"] != "Bras cybernétique" {
		t.Fatalf("metadata = %v", recovered.Metadata)
	}
	if userMessage != "Prérequis manquants : Bras cybernétique" {
		t.Fatalf("user message = %q", userMessage)
	}
}

func TestFromGRPCStatusIgnoresForeignErrors(t *testing.T) {
	if _, _, ok := FromGRPCStatus(stderrors.New("plain")); ok {
		t.Fatal("expected plain error to be rejected")
	}
	if _, _, ok := FromGRPCStatus(status.Error(codes.Internal, "no details")); ok {
		t.Fatal("expected status without details to be rejected")
	}
}

func TestUserMessageLocalizes(t *testing.T) {
	err := fmt.Errorf("install: %w", WithMetadata(CodeAlreadyInstalled, "installed", map[string]string{"Item": "Fangs"}))
	if got := UserMessage(err, "en-US"); got != "Fangs is already installed." {
		t.Fatalf("UserMessage(en-US) = %q", got)
	}
	if got := UserMessage(err, "fr-FR"); got != "Fangs est déjà installé." {
		t.Fatalf("UserMessage(fr-FR) = %q", got)
	}
	if got := UserMessage(stderrors.New("nil pointer"), "en-US"); got != "Unexpected error." {
		t.Fatalf("UserMessage(plain) = %q", got)
	}
}
