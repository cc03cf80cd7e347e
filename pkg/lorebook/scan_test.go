package lorebook

import (
	"reflect"
	"testing"

	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/settings"
)

func TestFoldText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Dragon", "dragon"},
		{"  Salt   Flats!! ", "salt flats"},
		{"D'Arcy", "d arcy"},
		{"", ""},
		{"?!", ""},
	}
	for _, tc := range cases {
		if got := foldText(tc.in); got != tc.want {
			t.Fatalf("foldText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestScanActivations(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	dragons := reg.Create("Dragons", "", "")
	harbor := reg.Create("Harbor", "", "")
	reg.AddKeywords(dragons, []string{"dragon", "wyrm"})
	reg.AddKeywords(harbor, []string{"harbor"})

	got := reg.ScanActivations("The DRAGON circled the harbor at dusk.")
	if !reflect.DeepEqual(got, []string{dragons, harbor}) {
		t.Fatalf("unexpected activations: %v", got)
	}

	got = reg.ScanActivations("A wyrm stirred.")
	if !reflect.DeepEqual(got, []string{dragons}) {
		t.Fatalf("unexpected activations: %v", got)
	}

	if got = reg.ScanActivations("Nothing notable happened."); got != nil {
		t.Fatalf("expected no activations, got %v", got)
	}
}

func TestScanActivationsWholeWordsOnly(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	id := reg.Create("Dragons", "", "")
	reg.AddKeywords(id, []string{"dragon", "ash"})

	if got := reg.ScanActivations("Dragonfire lit the flashback."); got != nil {
		t.Fatalf("keywords must not match inside words, got %v", got)
	}
	if got := reg.ScanActivations("Ash drifted down."); !reflect.DeepEqual(got, []string{id}) {
		t.Fatalf("expected whole-word match, got %v", got)
	}
}

func TestScanActivationsMultiwordKeyword(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	id := reg.Create("Wastes", "", "")
	reg.AddKeywords(id, []string{"salt flats"})

	got := reg.ScanActivations("They crossed the Salt Flats at dawn.")
	if !reflect.DeepEqual(got, []string{id}) {
		t.Fatalf("expected multiword keyword to activate, got %v", got)
	}
}

func TestScanActivationsFollowDisplayOrder(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	first := reg.Create("First", "", "")
	second := reg.Create("Second", "", "")
	reg.AddKeywords(first, []string{"alpha"})
	reg.AddKeywords(second, []string{"beta"})
	reg.Reorder([]string{second, first})

	got := reg.ScanActivations("beta before alpha")
	if !reflect.DeepEqual(got, []string{second, first}) {
		t.Fatalf("expected activations in display order, got %v", got)
	}
}

func TestScanActivationsSharedKeyword(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	one := reg.Create("One", "", "")
	two := reg.Create("Two", "", "")
	reg.AddKeywords(one, []string{"dragon"})
	reg.AddKeywords(two, []string{"Dragon"})

	got := reg.ScanActivations("A dragon!")
	if !reflect.DeepEqual(got, []string{one, two}) {
		t.Fatalf("expected both campaigns to activate, got %v", got)
	}
}

func TestScanActivationsEmptyInputs(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	if got := reg.ScanActivations("anything"); got != nil {
		t.Fatalf("expected nil with no campaigns, got %v", got)
	}
	id := reg.Create("NoKeywords", "", "")
	if got := reg.ScanActivations("anything"); got != nil {
		t.Fatalf("expected nil with no keywords, got %v", got)
	}
	reg.AddKeywords(id, []string{"word"})
	if got := reg.ScanActivations("   "); got != nil {
		t.Fatalf("expected nil for blank text, got %v", got)
	}
}

func TestSuggestKeywords(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	id := reg.Create("Obsidian Keep", "", "")
	reg.AddKeywords(id, []string{"dragon"})

	text := "Obsidian ramparts rose over the pass. The obsidian gate gleamed. " +
		"Beneath the obsidian, a dragon slept."
	got := reg.SuggestKeywords(id, text)

	if len(got) == 0 || got[0] != "Obsidian" {
		t.Fatalf("expected most frequent word first, got %v", got)
	}
	for _, kw := range got {
		if kw == "dragon" {
			t.Fatalf("existing keywords must not be suggested: %v", got)
		}
	}
	found := false
	for _, kw := range got {
		if kw == "ramparts" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'ramparts' among suggestions, got %v", got)
	}
}

func TestSuggestKeywordsUnknownCampaign(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	if got := reg.SuggestKeywords("missing", "some text"); got != nil {
		t.Fatalf("expected nil for unknown campaign, got %v", got)
	}
}
