package rolegate

import (
	"testing"

	"github.com/google/uuid"
)

func TestClaimsGateHasAnyRole(t *testing.T) {
	gate := ClaimsGate{}
	rep := Actor{ID: uuid.New(), Role: RoleClassRepresentative}

	if !gate.HasAnyRole(rep, RoleClassRepresentative, RoleAdmin) {
		t.Fatal("expected class representative to match submit role set")
	}
	if gate.HasAnyRole(rep, RoleAdmin) {
		t.Fatal("class representative must not pass an admin-only check")
	}
	if gate.HasAnyRole(rep) {
		t.Fatal("empty role set must never grant")
	}
}

func TestParseRole(t *testing.T) {
	if _, ok := ParseRole("class_representative"); !ok {
		t.Fatal("expected class_representative to parse")
	}
	if _, ok := ParseRole("teacher"); ok {
		t.Fatal("unknown role must not parse")
	}
}
