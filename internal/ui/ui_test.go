package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/idilsaglam/grocery/internal/model"
)

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(1, 4, 8); got != "██░░░░░░  25%" {
		t.Fatalf("unexpected bar: %q", got)
	}
	if got := ProgressBar(0, 0, 5); got != "░░░░░   0%" {
		t.Fatalf("empty list bar: %q", got)
	}
}

func TestPanelPadsToWidestLine(t *testing.T) {
	var out bytes.Buffer
	SetOutput(&out, &out)
	defer SetOutput(os.Stdout, os.Stderr)
	SetColorForcing(false, true)
	defer SetColorForcing(false, false)
	SetTheme("mono")
	defer SetTheme("classic")

	Panel([]string{"ab", "abcd"})
	want := "+------+\n| ab   |\n| abcd |\n+------+\n"
	if out.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestOKAndFail(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(os.Stdout, os.Stderr)

	OK("added")
	Fail("nope")
	if !strings.Contains(out.String(), "added") || out.String() != stripANSI(out.String()) {
		t.Fatalf("stdout: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "✖ nope") {
		t.Fatalf("stderr: %q", errOut.String())
	}
}

func TestAgo(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := map[time.Duration]string{
		10 * time.Second:    "just now",
		5 * time.Minute:     "5m ago",
		3 * time.Hour:       "3h ago",
		50 * time.Hour:      "2d ago",
		40 * 24 * time.Hour: "2024-04-22",
	}
	for d, want := range cases {
		if got := Ago(now.Add(-d), now); got != want {
			t.Fatalf("%v: got %q want %q", d, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Strawberries", 8); got != "Straw..." {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("Milk", 8); got != "Milk" {
		t.Fatalf("got %q", got)
	}
}

func TestEveryCategoryHasIcon(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range model.Categories() {
		icon := CategoryIcon(c)
		if icon == "?" || seen[icon] {
			t.Fatalf("%s: missing or duplicate icon %q", c, icon)
		}
		seen[icon] = true
	}
}
