package docai

import "testing"

func TestLocationOf(t *testing.T) {
	loc, err := locationOf("projects/career/locations/eu/processors/abc123")
	if err != nil {
		t.Fatalf("locationOf: %v", err)
	}
	if loc != "eu" {
		t.Fatalf("expected eu, got %q", loc)
	}

	versioned, err := locationOf("projects/career/locations/us/processors/abc123/processorVersions/pretrained")
	if err != nil || versioned != "us" {
		t.Fatalf("expected us for a versioned processor, got %q %v", versioned, err)
	}

	for _, bad := range []string{"", "abc123", "projects/career/locations//processors/x", "projects/p/regions/us/processors/x"} {
		if _, err := locationOf(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
