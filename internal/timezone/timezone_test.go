package timezone

import "testing"

func TestIsValid(t *testing.T) {
	if !IsValid("Europe/Moscow") {
		t.Fatal("expected Europe/Moscow to be valid")
	}
	if IsValid("") || IsValid("Mars/Olympus") {
		t.Fatal("expected empty and unknown zones to be invalid")
	}
}

func TestLocationFallsBackToDefault(t *testing.T) {
	if got := Location("Mars/Olympus"); got.String() != DefaultTimezone {
		t.Fatalf("expected fallback to %s, got %s", DefaultTimezone, got)
	}
	if got := Location("America/Sao_Paulo"); got.String() != "America/Sao_Paulo" {
		t.Fatalf("expected requested zone, got %s", got)
	}
}
