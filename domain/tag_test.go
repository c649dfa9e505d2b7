package domain

import (
	"encoding/json"
	"testing"
)

func TestParseClanTag(t *testing.T) {
	tag, err := ParseClanTag("#2PP")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if tag != ClanTag("#2PP") {
		t.Fatalf("got %q", tag)
	}

	for _, raw := range []string{"", "2PP", "no-sigil"} {
		_, err := ParseClanTag(raw)
		if err == nil {
			t.Errorf("ParseClanTag(%q): expected error", raw)
			continue
		}
		if !IsDomainError(err, ErrCodeValidation) {
			t.Errorf("ParseClanTag(%q): expected VALIDATION code, got %v", raw, err)
		}
	}
}

func TestTag_JSONDecode(t *testing.T) {
	type payload struct {
		Inner ClanTag `json:"inner"`
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"inner":"#Testing"}`), &p); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Inner != ClanTag("#Testing") {
		t.Fatalf("got %q", p.Inner)
	}

	if err := json.Unmarshal([]byte(`{"inner":"Testing"}`), &p); err == nil {
		t.Fatal("expected error for tag without sigil")
	}
}

func TestTag_JSONMapKey(t *testing.T) {
	in := map[PlayerTag]string{"#AAA": "Alice", "#BBB": "Bob"}

	encoded, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[PlayerTag]string
	if err := json.Unmarshal(encoded, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 || out["#AAA"] != "Alice" || out["#BBB"] != "Bob" {
		t.Fatalf("round trip mismatch: %v", out)
	}

	if err := json.Unmarshal([]byte(`{"no-sigil":"x"}`), &out); err == nil {
		t.Fatal("expected error for map key without sigil")
	}
}
