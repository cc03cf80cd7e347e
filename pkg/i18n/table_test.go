package i18n

import (
	"reflect"
	"testing"
)

func TestTranslationFallbackChain(t *testing.T) {
	table := NewTable()
	if err := table.Load("en", []byte(`{"save":"Save","cancel":"Cancel"}`)); err != nil {
		t.Fatalf("Failed to load en table: %v", err)
	}
	if err := table.Load("de", []byte(`{"save":"Speichern"}`)); err != nil {
		t.Fatalf("Failed to load de table: %v", err)
	}

	if !table.SetLanguage("de") {
		t.Fatal("expected de to be reported as loaded")
	}

	if got := table.T("save"); got != "Speichern" {
		t.Fatalf("expected selected-language hit, got %q", got)
	}
	// Missing in de, present in en.
	if got := table.T("cancel"); got != "Cancel" {
		t.Fatalf("expected English fallback, got %q", got)
	}
	// Missing everywhere: the key itself comes back.
	if got := table.T("quest.title"); got != "quest.title" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}

func TestSetLanguageBeforeLoad(t *testing.T) {
	table := NewTable()
	table.Load("en", []byte(`{"save":"Save"}`))

	if table.SetLanguage("fr") {
		t.Fatal("expected fr to be reported as not loaded")
	}
	if got := table.Language(); got != "fr" {
		t.Fatalf("selection should stick anyway, got %q", got)
	}
	if got := table.T("save"); got != "Save" {
		t.Fatalf("expected English fallback while fr is empty, got %q", got)
	}
}

func TestEmptyValueCountsAsMissing(t *testing.T) {
	table := NewTable()
	table.Load("en", []byte(`{"save":"Save"}`))
	table.Load("de", []byte(`{"save":""}`))
	table.SetLanguage("de")

	if got := table.T("save"); got != "Save" {
		t.Fatalf("empty translation must fall through, got %q", got)
	}
}

func TestLoadRejectsMalformedTable(t *testing.T) {
	table := NewTable()
	table.Load("en", []byte(`{"save":"Save"}`))

	if err := table.Load("en", []byte(`{"save": 42}`)); err == nil {
		t.Fatal("expected error for non-string values")
	}
	// The previous table survives a failed load.
	if got := table.T("save"); got != "Save" {
		t.Fatalf("expected old table intact, got %q", got)
	}

	if err := table.Load("", []byte(`{}`)); err == nil {
		t.Fatal("expected error for empty language code")
	}
}

func TestLanguageCodeNormalization(t *testing.T) {
	table := NewTable()
	if err := table.Load("EN_us", []byte(`{"save":"Save"}`)); err != nil {
		t.Fatalf("Failed to load table: %v", err)
	}
	if !table.SetLanguage("en-US") {
		t.Fatal("expected normalized codes to meet")
	}
	if got := table.T("save"); got != "Save" {
		t.Fatalf("unexpected translation: %q", got)
	}
}

func TestLanguages(t *testing.T) {
	table := NewTable()
	table.Load("de", []byte(`{}`))
	table.Load("en", []byte(`{}`))
	if got := table.Languages(); !reflect.DeepEqual(got, []string{"de", "en"}) {
		t.Fatalf("unexpected language list: %v", got)
	}
}
