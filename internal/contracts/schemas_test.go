package contracts

import (
	"strings"
	"testing"
)

func TestValidateEvent_ValidPropertyView(t *testing.T) {
	body := []byte(`{
		"property_id": "0b0f1a2c-3d4e-5f60-7182-93a4b5c6d7e8",
		"session_id": "sess-1",
		"ip_address": "203.0.113.7",
		"user_agent": "Mozilla/5.0",
		"viewed_at": "2025-06-01T12:00:00Z"
	}`)
	if err := ValidateEvent("PropertyViewEvent", "1.0.0", body); err != nil {
		t.Fatalf("expected valid event, got %v", err)
	}
}

func TestValidateEvent_MissingRequiredField(t *testing.T) {
	body := []byte(`{"viewed_at": "2025-06-01T12:00:00Z"}`)
	if err := ValidateEvent("PropertyViewEvent", "1.0.0", body); err == nil {
		t.Fatal("expected validation failure for missing property_id")
	}
}

func TestValidateEvent_UnknownField(t *testing.T) {
	body := []byte(`{
		"property_id": "0b0f1a2c-3d4e-5f60-7182-93a4b5c6d7e8",
		"viewed_at": "2025-06-01T12:00:00Z",
		"extra": true
	}`)
	if err := ValidateEvent("PropertyViewEvent", "1.0.0", body); err == nil {
		t.Fatal("expected validation failure for unknown field")
	}
}

func TestValidateEvent_MalformedJSON(t *testing.T) {
	err := ValidateEvent("PropertyViewEvent", "1.0.0", []byte(`{not json`))
	if err == nil || !strings.Contains(err.Error(), "not a valid JSON") {
		t.Fatalf("expected JSON parse error, got %v", err)
	}
}

func TestValidateEvent_UnknownEventType(t *testing.T) {
	err := ValidateEvent("NoSuchEvent", "1.0.0", []byte(`{}`))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected schema lookup failure, got %v", err)
	}
}

func TestGenerateKeyFromPath(t *testing.T) {
	if got := generateKeyFromPath("events/property-view/v1.json"); got != "PropertyViewEvent/1.0.0" {
		t.Fatalf("unexpected key: %q", got)
	}
	if got := generateKeyFromPath("events/bad.json"); got != "" {
		t.Fatalf("expected empty key for malformed path, got %q", got)
	}
}
