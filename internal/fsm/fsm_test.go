package fsm

import (
	"testing"

	"portalBack/internal/models"
)

func TestCanTransitionResponse(t *testing.T) {
	if !CanTransitionResponse(models.ResponseInterested, models.ResponseAccepted) {
		t.Fatal("expected INTERESTED -> ACCEPTED to be allowed")
	}
	if !CanTransitionResponse(models.ResponseOffered, models.ResponseAccepted) {
		t.Fatal("expected OFFERED -> ACCEPTED to be allowed")
	}
	if !CanTransitionResponse(models.ResponseInterested, models.ResponseDeclined) {
		t.Fatal("expected INTERESTED -> declined to be allowed")
	}
	if CanTransitionResponse(models.ResponseAccepted, models.ResponseDeclined) {
		t.Fatal("unexpected ACCEPTED -> declined allowed")
	}
	if CanTransitionResponse(models.ResponseDeclined, models.ResponseAccepted) {
		t.Fatal("unexpected declined -> ACCEPTED allowed")
	}
	if !CanTransitionResponse(models.ResponseAccepted, models.ResponseAccepted) {
		t.Fatal("expected same-status transition to be a no-op success")
	}
}

func TestCanTransitionRequest(t *testing.T) {
	if !CanTransitionRequest("available", "booked") {
		t.Fatal("expected available -> booked to be allowed")
	}
	if !CanTransitionRequest("booked", "completed") {
		t.Fatal("expected booked -> completed to be allowed")
	}
	if CanTransitionRequest("completed", "available") {
		t.Fatal("unexpected completed -> available allowed")
	}
	if CanTransitionRequest("available", "completed") {
		t.Fatal("unexpected available -> completed allowed")
	}
}

func TestStatusArrayQuotesElements(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{[]string{models.ResponseInterested, models.ResponseOffered}, `{"INTERESTED","OFFERED"}`},
		{[]string{"a,b"}, `{"a,b"}`},
		{[]string{`say "hi"`}, `{"say \"hi\""}`},
		{[]string{`back\slash`}, `{"back\\slash"}`},
		{nil, "{}"},
	}
	for _, c := range cases {
		if got := statusArray(c.in); got != c.want {
			t.Fatalf("statusArray(%v) = %s, want %s", c.in, got, c.want)
		}
	}
}
