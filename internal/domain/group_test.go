package domain

import (
	"errors"
	"testing"
	"time"
)

func TestGroupStartInstant(t *testing.T) {
	g := &Group{StartDate: "2030-06-15", StartTime: "18:30"}
	got, err := g.StartInstant()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2030, 6, 15, 18, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGroupStartInstant_Unparseable(t *testing.T) {
	cases := []Group{
		{StartDate: "2030-06-15", StartTime: "noonish"},
		{StartDate: "soon", StartTime: "18:30"},
		{},
	}
	for _, g := range cases {
		if _, err := g.StartInstant(); err == nil {
			t.Fatalf("expected parse error for %q %q", g.StartDate, g.StartTime)
		}
	}
}

func TestGroupPatchEmpty(t *testing.T) {
	if !(GroupPatch{}).Empty() {
		t.Fatal("zero patch should be empty")
	}
	title := "New"
	if (GroupPatch{Title: &title}).Empty() {
		t.Fatal("patch with a field set should not be empty")
	}
}

func TestValidateID(t *testing.T) {
	if err := ValidateID("0d8d6bc7-2f5a-4e52-9f39-8d29a563bd1c"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range []string{"", "garbage", "12345"} {
		if err := ValidateID(id); !errors.Is(err, ErrInvalidID) {
			t.Fatalf("expected ErrInvalidID for %q, got %v", id, err)
		}
	}
}
