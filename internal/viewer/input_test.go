package viewer

import (
	"testing"
	"time"

	"cataloghub/pkg/models"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		key     string
		command Command
		consume bool
	}{
		{KeyArrowLeft, CmdPrev, false},
		{KeyArrowRight, CmdNext, false},
		{KeySpace, CmdNext, true},
		{KeyEscape, CmdClose, false},
		{"a", CmdNone, false},
		{"Enter", CmdNone, false},
	}

	for _, tc := range tests {
		got := TranslateKey(tc.key)
		if got.Command != tc.command {
			t.Errorf("TranslateKey(%q).Command = %v, want %v", tc.key, got.Command, tc.command)
		}
		if got.ConsumeDefault != tc.consume {
			t.Errorf("TranslateKey(%q).ConsumeDefault = %v, want %v", tc.key, got.ConsumeDefault, tc.consume)
		}
	}
}

func TestSwipeTracker(t *testing.T) {
	tests := []struct {
		name   string
		startX float64
		endX   float64
		want   Command
	}{
		{"long left swipe", 300, 200, CmdNext},
		{"long right swipe", 100, 220, CmdPrev},
		{"exact threshold left", 150, 100, CmdNext},
		{"small drag is a tap", 150, 120, CmdNone},
		{"no movement", 80, 80, CmdNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var tracker SwipeTracker
			tracker.Start(tc.startX)
			if got := tracker.End(tc.endX); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSwipeTrackerWithoutStart(t *testing.T) {
	var tracker SwipeTracker
	if got := tracker.End(500); got != CmdNone {
		t.Errorf("End without Start = %v, want CmdNone", got)
	}
}

func TestSwipeTrackerCustomThreshold(t *testing.T) {
	tracker := SwipeTracker{Threshold: 10}
	tracker.Start(100)
	if got := tracker.End(85); got != CmdNext {
		t.Errorf("got %v, want CmdNext with lowered threshold", got)
	}
}

func TestButtonsAtBoundaries(t *testing.T) {
	m, clock := newTestMachine(3, ModeSingle)

	b := Buttons(m)
	if b.PrevEnabled || !b.NextEnabled {
		t.Errorf("at start: prev=%v next=%v, want false/true", b.PrevEnabled, b.NextEnabled)
	}

	m.Next()
	clock.Advance(DefaultLock + time.Millisecond)
	b = Buttons(m)
	if !b.PrevEnabled || !b.NextEnabled {
		t.Errorf("mid-book: prev=%v next=%v, want true/true", b.PrevEnabled, b.NextEnabled)
	}

	m.Next()
	clock.Advance(DefaultLock + time.Millisecond)
	b = Buttons(m)
	if !b.PrevEnabled || b.NextEnabled {
		t.Errorf("at end: prev=%v next=%v, want true/false", b.PrevEnabled, b.NextEnabled)
	}
}

func TestClickIndicator(t *testing.T) {
	m, _ := newTestMachine(5, ModeSingle)

	if !ClickIndicator(m, 3) {
		t.Fatal("indicator click failed")
	}
	if m.PageIndex() != 3 {
		t.Fatalf("index = %d, want 3", m.PageIndex())
	}
}

func TestApply(t *testing.T) {
	m, clock := newTestMachine(3, ModeSingle)

	if !Apply(m, CmdNext) {
		t.Fatal("apply next failed")
	}
	clock.Advance(DefaultLock + time.Millisecond)
	if !Apply(m, CmdPrev) {
		t.Fatal("apply prev failed")
	}
	if Apply(m, CmdNone) {
		t.Error("CmdNone must not change state")
	}

	Apply(m, CmdClose)
	if m.Status() != StatusClosed {
		t.Errorf("status = %s after CmdClose", m.Status())
	}
}

func TestDeepLink(t *testing.T) {
	companyPage := models.FlatPage{Type: models.PageCompany, CompanySlug: "acme"}
	if got := DeepLink("jarni-katalog", companyPage); got != "/portals/jarni-katalog/companies/acme" {
		t.Errorf("DeepLink = %q", got)
	}

	introPage := models.FlatPage{Type: models.PageIntro}
	if got := DeepLink("jarni-katalog", introPage); got != "" {
		t.Errorf("intro page link = %q, want empty", got)
	}
}
