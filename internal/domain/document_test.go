package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func testDocument(t *testing.T, optionalKey string) Document {
	t.Helper()
	attrs := Attributes{
		Att0: 742,
		Att1: "streamline mission-critical deliverables",
		Att2: Nested{NestedKey: "com", NestedBool: true},
		Att3: []string{"alpha", "beta"},
	}
	if optionalKey != "" {
		attrs.OptionalKey = optionalKey
		attrs.OptionalValue = "synergy"
	}
	return Document{
		Title:      "benchmark corpus entry",
		Content:    "free text body",
		CreatedAt:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Tags:       []string{"rust", "jsonb", "rust"},
		Attributes: attrs,
	}
}

func TestEncode_OptionalKeyAbsent(t *testing.T) {
	doc := testDocument(t, "")

	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(data), "att_opt_") {
		t.Fatalf("absent optional key leaked into JSON: %s", data)
	}
	if strings.Contains(string(data), "null") {
		t.Fatalf("absent optional key must be missing, not null: %s", data)
	}
}

func TestEncode_OptionalKeyPresent(t *testing.T) {
	doc := testDocument(t, "att_opt_2")

	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	attrs, ok := m["attributes"].(map[string]any)
	if !ok {
		t.Fatalf("attributes is not an object: %v", m["attributes"])
	}
	if attrs["att_opt_2"] != "synergy" {
		t.Fatalf("expected att_opt_2=synergy, got %v", attrs["att_opt_2"])
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	original := testDocument(t, "att_opt_4")

	data, err := original.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded Document
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(decoded.Tags) != 3 || decoded.Tags[0] != "rust" || decoded.Tags[2] != "rust" {
		t.Fatalf("tag sequence not preserved (duplicates included): %v", decoded.Tags)
	}
	if decoded.Attributes.Att0 != 742 {
		t.Fatalf("expected att0=742, got %d", decoded.Attributes.Att0)
	}
	if decoded.Attributes.Att2.NestedKey != "com" || !decoded.Attributes.Att2.NestedBool {
		t.Fatalf("nested attribute not preserved: %+v", decoded.Attributes.Att2)
	}
	if decoded.Attributes.OptionalKey != "att_opt_4" {
		t.Fatalf("expected optional key att_opt_4, got %q", decoded.Attributes.OptionalKey)
	}
}

func TestDocument_RoundTrip_AbsentStaysAbsent(t *testing.T) {
	original := testDocument(t, "")

	data, err := original.Encode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded Document
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Attributes.OptionalKey != "" {
		t.Fatalf("expected no optional key, got %q", decoded.Attributes.OptionalKey)
	}
}

func TestAttributes_Unmarshal_MissingMandatoryKey(t *testing.T) {
	var attrs Attributes
	err := json.Unmarshal([]byte(`{"att0":1,"att1":"x","att2":{"nested_key":"a","nested_bool":false}}`), &attrs)
	if err == nil {
		t.Fatal("expected error for missing att3")
	}
}
