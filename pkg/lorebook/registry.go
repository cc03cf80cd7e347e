// Package lorebook organizes the host's lorebook files into campaigns and
// decides which campaigns a chat message activates. Campaigns are stored in
// the settings record under uuid keys with an explicit display order; the
// lorebook files themselves stay host-owned and are referenced by name only.
package lorebook

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/settings"
)

// Registry exposes campaign operations over the shared settings store.
// Thread-safe for concurrent WASM callbacks.
type Registry struct {
	store *settings.Store
}

// NewRegistry creates a campaign registry bound to the settings store.
func NewRegistry(store *settings.Store) *Registry {
	return &Registry{store: store}
}

// Create adds a campaign and appends it to the display order. Returns the
// new campaign's id.
func (r *Registry) Create(name, icon, color string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "New Campaign"
	}
	id := uuid.NewString()
	r.store.Mutate(func(st *settings.Settings) {
		if st.Lorebook.Campaigns == nil {
			st.Lorebook.Campaigns = make(map[string]settings.Campaign)
		}
		st.Lorebook.Campaigns[id] = settings.Campaign{ID: id, Name: name, Icon: icon, Color: color}
		st.Lorebook.CampaignOrder = append(st.Lorebook.CampaignOrder, id)
	})
	return id
}

// Update replaces a campaign's display properties. A blank name keeps the
// old one so a campaign can never become nameless; icon and color are
// replaced as given.
func (r *Registry) Update(id, name, icon, color string) bool {
	updated := false
	r.store.Mutate(func(st *settings.Settings) {
		campaign, ok := st.Lorebook.Campaigns[id]
		if !ok {
			return
		}
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			campaign.Name = trimmed
		}
		campaign.Icon = icon
		campaign.Color = color
		st.Lorebook.Campaigns[id] = campaign
		updated = true
	})
	return updated
}

// Delete removes a campaign from the map and the display order.
func (r *Registry) Delete(id string) bool {
	deleted := false
	r.store.Mutate(func(st *settings.Settings) {
		if _, ok := st.Lorebook.Campaigns[id]; !ok {
			return
		}
		delete(st.Lorebook.Campaigns, id)
		order := st.Lorebook.CampaignOrder[:0]
		for _, existing := range st.Lorebook.CampaignOrder {
			if existing != id {
				order = append(order, existing)
			}
		}
		st.Lorebook.CampaignOrder = order
		deleted = true
	})
	return deleted
}

// Reorder replaces the display order. Unknown ids are dropped; known
// campaigns missing from the new order are appended in their previous
// relative order, so the order always covers exactly the existing campaigns.
func (r *Registry) Reorder(order []string) {
	r.store.Mutate(func(st *settings.Settings) {
		seen := make(map[string]bool, len(order))
		next := make([]string, 0, len(st.Lorebook.Campaigns))
		for _, id := range order {
			if seen[id] {
				continue
			}
			if _, ok := st.Lorebook.Campaigns[id]; !ok {
				continue
			}
			seen[id] = true
			next = append(next, id)
		}
		for _, id := range st.Lorebook.CampaignOrder {
			if seen[id] {
				continue
			}
			if _, ok := st.Lorebook.Campaigns[id]; !ok {
				continue
			}
			seen[id] = true
			next = append(next, id)
		}
		st.Lorebook.CampaignOrder = next
	})
}

// AttachBook references a host lorebook file from a campaign. Duplicate
// attachments are no-ops.
func (r *Registry) AttachBook(id, book string) bool {
	book = strings.TrimSpace(book)
	if book == "" {
		return false
	}
	attached := false
	r.store.Mutate(func(st *settings.Settings) {
		campaign, ok := st.Lorebook.Campaigns[id]
		if !ok {
			return
		}
		for _, existing := range campaign.Books {
			if existing == book {
				return
			}
		}
		campaign.Books = append(campaign.Books, book)
		st.Lorebook.Campaigns[id] = campaign
		attached = true
	})
	return attached
}

// DetachBook removes a lorebook file reference from a campaign.
func (r *Registry) DetachBook(id, book string) bool {
	detached := false
	r.store.Mutate(func(st *settings.Settings) {
		campaign, ok := st.Lorebook.Campaigns[id]
		if !ok {
			return
		}
		books := campaign.Books[:0]
		for _, existing := range campaign.Books {
			if existing == book {
				detached = true
				continue
			}
			books = append(books, existing)
		}
		campaign.Books = books
		st.Lorebook.Campaigns[id] = campaign
	})
	return detached
}

// AddKeywords appends activation keywords to a campaign, skipping blanks and
// case-insensitive duplicates.
func (r *Registry) AddKeywords(id string, keywords []string) bool {
	added := false
	r.store.Mutate(func(st *settings.Settings) {
		campaign, ok := st.Lorebook.Campaigns[id]
		if !ok {
			return
		}
		have := make(map[string]bool, len(campaign.Keywords))
		for _, kw := range campaign.Keywords {
			have[strings.ToLower(kw)] = true
		}
		for _, kw := range keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" || have[strings.ToLower(kw)] {
				continue
			}
			have[strings.ToLower(kw)] = true
			campaign.Keywords = append(campaign.Keywords, kw)
			added = true
		}
		st.Lorebook.Campaigns[id] = campaign
	})
	return added
}

// RemoveKeyword deletes one activation keyword, case-insensitively.
func (r *Registry) RemoveKeyword(id, keyword string) bool {
	target := strings.ToLower(strings.TrimSpace(keyword))
	removed := false
	r.store.Mutate(func(st *settings.Settings) {
		campaign, ok := st.Lorebook.Campaigns[id]
		if !ok {
			return
		}
		keywords := campaign.Keywords[:0]
		for _, kw := range campaign.Keywords {
			if strings.ToLower(kw) == target {
				removed = true
				continue
			}
			keywords = append(keywords, kw)
		}
		campaign.Keywords = keywords
		st.Lorebook.Campaigns[id] = campaign
	})
	return removed
}

// Get returns one campaign.
func (r *Registry) Get(id string) (settings.Campaign, bool) {
	var out settings.Campaign
	found := false
	r.store.View(func(st *settings.Settings) {
		campaign, ok := st.Lorebook.Campaigns[id]
		if !ok {
			return
		}
		out = cloneCampaign(campaign)
		found = true
	})
	return out, found
}

// Campaigns returns all campaigns in display order. Campaigns missing from
// the order (host-written records) are appended sorted by name.
func (r *Registry) Campaigns() []settings.Campaign {
	var out []settings.Campaign
	r.store.View(func(st *settings.Settings) {
		seen := make(map[string]bool, len(st.Lorebook.Campaigns))
		for _, id := range st.Lorebook.CampaignOrder {
			campaign, ok := st.Lorebook.Campaigns[id]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, cloneCampaign(campaign))
		}
		var stragglers []settings.Campaign
		for id, campaign := range st.Lorebook.Campaigns {
			if seen[id] {
				continue
			}
			stragglers = append(stragglers, cloneCampaign(campaign))
		}
		sort.Slice(stragglers, func(i, j int) bool {
			if stragglers[i].Name != stragglers[j].Name {
				return stragglers[i].Name < stragglers[j].Name
			}
			return stragglers[i].ID < stragglers[j].ID
		})
		out = append(out, stragglers...)
	})
	return out
}

func cloneCampaign(c settings.Campaign) settings.Campaign {
	out := c
	out.Books = append([]string(nil), c.Books...)
	out.Keywords = append([]string(nil), c.Keywords...)
	return out
}
