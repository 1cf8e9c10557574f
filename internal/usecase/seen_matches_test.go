package usecase

import (
	"fmt"
	"testing"
)

func TestSeenMatches_ClaimIsExact(t *testing.T) {
	t.Parallel()

	// Undersized on purpose: a lossy set would start reporting fresh ids as seen.
	seen := NewSeenMatches(1)
	for i := 0; i < 5000; i++ {
		id := fmt.Sprintf("NA1_%d", i)
		if !seen.Claim(id) {
			t.Fatalf("fresh id %s reported as seen", id)
		}
	}
	for i := 0; i < 5000; i++ {
		if seen.Claim(fmt.Sprintf("NA1_%d", i)) {
			t.Fatalf("id NA1_%d claimed twice", i)
		}
	}
}

func TestSeenMatches_NilClaimsEverything(t *testing.T) {
	t.Parallel()

	var seen *SeenMatches
	if !seen.Claim("NA1_1") || !seen.Claim("NA1_1") {
		t.Fatalf("nil set must not dedupe")
	}
}
