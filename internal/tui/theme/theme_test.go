package theme

import "testing"

func TestByName(t *testing.T) {
	if got := ByName("Tokyo-Night").Name; got != "tokyo-night" {
		t.Fatalf("ByName(Tokyo-Night) = %q", got)
	}
	if got := ByName("nope").Name; got != FlexokiDark.Name {
		t.Fatalf("unknown theme should fall back to %q, got %q", FlexokiDark.Name, got)
	}
}

func TestValidAndNames(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("Names() returned %d names, want %d", len(names), len(All))
	}
	for _, n := range names {
		if !Valid(n) {
			t.Fatalf("Valid(%q) = false", n)
		}
	}
	if Valid("solarized") {
		t.Fatal("Valid(solarized) = true")
	}
}

func TestStatusColor(t *testing.T) {
	th := FlexokiDark
	cases := map[string]string{
		"Profit":    string(th.Green),
		"BreakEven": string(th.Yellow),
		"Loss":      string(th.Red),
		"":          string(th.TextMuted),
	}
	for status, want := range cases {
		if got := string(th.StatusColor(status)); got != want {
			t.Fatalf("StatusColor(%q) = %s, want %s", status, got, want)
		}
	}
}

func TestSetActive(t *testing.T) {
	defer SetActive(FlexokiDark.Name)
	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Fatalf("Active = %q, want terminal", Active.Name)
	}
}
