package postgres

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/docbench/internal/domain"
)

func TestTranslateParam_NumericThreshold(t *testing.T) {
	q := domain.BenchmarkQuery{
		Intent:      domain.IntentNumericGreater,
		Description: "att0 greater than 500",
		PGParam:     "500",
	}

	arg, err := translateParam(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if arg != 500.0 {
		t.Fatalf("expected 500.0, got %v (%T)", arg, arg)
	}
}

func TestTranslateParam_NonNumericThreshold(t *testing.T) {
	q := domain.BenchmarkQuery{
		Intent:      domain.IntentNumericGreater,
		Description: "broken threshold",
		PGParam:     "not-a-number",
	}

	_, err := translateParam(q)
	if !errors.Is(err, domain.ErrTranslation) {
		t.Fatalf("expected ErrTranslation, got %v", err)
	}
}

func TestTranslateParam_Passthrough(t *testing.T) {
	q := domain.BenchmarkQuery{
		Intent:  domain.IntentTagContains,
		PGParam: `["rust"]`,
	}

	arg, err := translateParam(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if arg != `["rust"]` {
		t.Fatalf("expected raw param passthrough, got %v", arg)
	}
}

func TestStatementFor_SharedShapes(t *testing.T) {
	cases := map[domain.Intent]string{
		domain.IntentTagContains:     stmtTagContains,
		domain.IntentAbsentTag:       stmtTagContains,
		domain.IntentAttributeExists: stmtAttrExists,
		domain.IntentOptionalExists:  stmtAttrExists,
		domain.IntentNestedEquals:    stmtNestedEquals,
		domain.IntentNumericGreater:  stmtNumericGreater,
	}
	for intent, want := range cases {
		if got := statementFor(intent); got != want {
			t.Errorf("statementFor(%s) = %q, want %q", intent, got, want)
		}
	}
}
