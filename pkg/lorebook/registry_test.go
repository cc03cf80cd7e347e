package lorebook

import (
	"reflect"
	"testing"

	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/settings"
)

func campaignNames(r *Registry) []string {
	var names []string
	for _, c := range r.Campaigns() {
		names = append(names, c.Name)
	}
	return names
}

func TestCreateAppendsToOrder(t *testing.T) {
	reg := NewRegistry(settings.NewStore())

	id1 := reg.Create("Dragons of the North", "🐉", "#aa3311")
	id2 := reg.Create("Harbor District", "", "")
	if id1 == "" || id2 == "" || id1 == id2 {
		t.Fatalf("expected two distinct ids, got %q and %q", id1, id2)
	}

	campaigns := reg.Campaigns()
	if len(campaigns) != 2 {
		t.Fatalf("expected two campaigns, got %d", len(campaigns))
	}
	if campaigns[0].ID != id1 || campaigns[1].ID != id2 {
		t.Fatalf("expected creation order preserved, got %v", campaigns)
	}
	if campaigns[0].Name != "Dragons of the North" || campaigns[0].Icon != "🐉" || campaigns[0].Color != "#aa3311" {
		t.Fatalf("unexpected campaign: %+v", campaigns[0])
	}

	got, ok := reg.Get(id2)
	if !ok || got.Name != "Harbor District" || got.ID != id2 {
		t.Fatalf("unexpected campaign from Get: %+v ok=%v", got, ok)
	}
}

func TestCreateDefaultName(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	id := reg.Create("   ", "", "")
	got, _ := reg.Get(id)
	if got.Name != "New Campaign" {
		t.Fatalf("expected default name, got %q", got.Name)
	}
}

func TestUpdate(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	id := reg.Create("Old", "", "")

	if !reg.Update(id, "Renamed", "🐉", "#aa3311") {
		t.Fatal("expected Update to succeed")
	}
	got, _ := reg.Get(id)
	if got.Name != "Renamed" || got.Icon != "🐉" || got.Color != "#aa3311" {
		t.Fatalf("unexpected campaign after update: %+v", got)
	}

	// Blank name keeps the old one; icon and color are replaced as given.
	if !reg.Update(id, "  ", "", "") {
		t.Fatal("expected Update to succeed")
	}
	got, _ = reg.Get(id)
	if got.Name != "Renamed" || got.Icon != "" {
		t.Fatalf("unexpected campaign after blank update: %+v", got)
	}

	if reg.Update("missing", "X", "", "") {
		t.Fatal("expected Update of unknown id to report false")
	}
}

func TestDeleteRemovesFromOrder(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	id1 := reg.Create("A", "", "")
	id2 := reg.Create("B", "", "")

	if !reg.Delete(id1) {
		t.Fatal("expected Delete to succeed")
	}
	if reg.Delete(id1) {
		t.Fatal("expected second Delete to report false")
	}

	campaigns := reg.Campaigns()
	if len(campaigns) != 1 || campaigns[0].ID != id2 {
		t.Fatalf("unexpected campaigns after delete: %v", campaigns)
	}
}

func TestReorder(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	idA := reg.Create("A", "", "")
	idB := reg.Create("B", "", "")
	idC := reg.Create("C", "", "")

	// Unknown ids drop out; missing campaigns append in previous order.
	reg.Reorder([]string{idC, idA, "bogus", idC})

	var order []string
	for _, c := range reg.Campaigns() {
		order = append(order, c.ID)
	}
	if !reflect.DeepEqual(order, []string{idC, idA, idB}) {
		t.Fatalf("unexpected order: %v (want C, A, B)", order)
	}
}

func TestAttachDetachBook(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	id := reg.Create("A", "", "")

	if !reg.AttachBook(id, "world-lore.json") {
		t.Fatal("expected AttachBook to succeed")
	}
	if reg.AttachBook(id, "world-lore.json") {
		t.Fatal("expected duplicate attach to be a no-op")
	}
	if reg.AttachBook(id, "   ") {
		t.Fatal("expected blank book name to be rejected")
	}
	if reg.AttachBook("missing", "x.json") {
		t.Fatal("expected attach to unknown campaign to report false")
	}

	got, _ := reg.Get(id)
	if !reflect.DeepEqual(got.Books, []string{"world-lore.json"}) {
		t.Fatalf("unexpected books: %v", got.Books)
	}

	if !reg.DetachBook(id, "world-lore.json") {
		t.Fatal("expected DetachBook to succeed")
	}
	if reg.DetachBook(id, "world-lore.json") {
		t.Fatal("expected second detach to report false")
	}
	got, _ = reg.Get(id)
	if len(got.Books) != 0 {
		t.Fatalf("expected no books, got %v", got.Books)
	}
}

func TestKeywords(t *testing.T) {
	reg := NewRegistry(settings.NewStore())
	id := reg.Create("A", "", "")

	if !reg.AddKeywords(id, []string{"Dragon", "  ", "dragon", "wyrm"}) {
		t.Fatal("expected AddKeywords to succeed")
	}
	got, _ := reg.Get(id)
	if !reflect.DeepEqual(got.Keywords, []string{"Dragon", "wyrm"}) {
		t.Fatalf("unexpected keywords: %v", got.Keywords)
	}

	if !reg.RemoveKeyword(id, "DRAGON") {
		t.Fatal("expected case-insensitive RemoveKeyword to succeed")
	}
	got, _ = reg.Get(id)
	if !reflect.DeepEqual(got.Keywords, []string{"wyrm"}) {
		t.Fatalf("unexpected keywords after remove: %v", got.Keywords)
	}

	if reg.AddKeywords("missing", []string{"x"}) {
		t.Fatal("expected AddKeywords to unknown campaign to report false")
	}
}

func TestCampaignsHealsUnorderedEntries(t *testing.T) {
	store := settings.NewStore()
	reg := NewRegistry(store)
	reg.Create("Ordered", "", "")

	// A host-written record can hold a campaign the order list never saw.
	store.Mutate(func(st *settings.Settings) {
		st.Lorebook.Campaigns["stray-id"] = settings.Campaign{ID: "stray-id", Name: "Stray"}
	})

	names := campaignNames(reg)
	if !reflect.DeepEqual(names, []string{"Ordered", "Stray"}) {
		t.Fatalf("expected stray campaign appended, got %v", names)
	}
}
