package model

import "testing"

func TestParseParty(t *testing.T) {
	tests := []struct {
		input string
		want  Party
		ok    bool
	}{
		{"D", Democrat, true},
		{"dem", Democrat, true},
		{" Democrat ", Democrat, true},
		{"R", Republican, true},
		{"republicans", Republican, true},
		{"I", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseParty(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseParty(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPartyOther(t *testing.T) {
	if Democrat.Other() != Republican {
		t.Errorf("Democrat.Other() = %q, want %q", Democrat.Other(), Republican)
	}
	if Republican.Other() != Democrat {
		t.Errorf("Republican.Other() = %q, want %q", Republican.Other(), Democrat)
	}
}

func TestControlMarketName(t *testing.T) {
	if got := ControlMarketName(Democrat, House); got != "Dem House Control" {
		t.Errorf("ControlMarketName(D, house) = %q, want %q", got, "Dem House Control")
	}
	if got := ControlMarketName(Republican, Senate); got != "Rep Senate Control" {
		t.Errorf("ControlMarketName(R, senate) = %q, want %q", got, "Rep Senate Control")
	}
}

func TestQuoteHasSuffix(t *testing.T) {
	q := Quote{Ticker: "CONTROLH-2026-D"}

	if !q.HasSuffix("-D") {
		t.Error("expected -D suffix match")
	}
	if !q.HasSuffix("-d") {
		t.Error("suffix match should ignore case")
	}
	if q.HasSuffix("-R") {
		t.Error("unexpected -R suffix match")
	}
}
