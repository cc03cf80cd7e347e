// Package tracker owns the generated and committed tracker data records and
// their lifecycle. A parsed model reply becomes the generated record; sending
// a new message commits it as the baseline for the next prompt. Swiping never
// commits.
package tracker

import (
	"encoding/json"

	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/settings"
)

// Data is one tracker snapshot. The generated and committed records share
// this shape; lockedItems in the settings record mirrors it with booleans.
type Data struct {
	Quests            settings.QuestState `json:"quests"`
	InfoBox           map[string]string   `json:"infoBox"`
	CharacterThoughts map[string]string   `json:"characterThoughts"`
	HTML              string              `json:"html"`
}

// NewData returns an empty record with every map initialized.
func NewData() *Data {
	return &Data{
		Quests:            settings.QuestState{Optional: []string{}},
		InfoBox:           map[string]string{},
		CharacterThoughts: map[string]string{},
	}
}

// Clone returns a deep copy via JSON round-trip.
func (d *Data) Clone() *Data {
	if d == nil {
		return NewData()
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return NewData()
	}
	out := new(Data)
	if err := json.Unmarshal(raw, out); err != nil {
		return NewData()
	}
	return out
}

// PresentCharacters returns the character names carried by this record, the
// join key against the known-character roster.
func (d *Data) PresentCharacters() []string {
	if d == nil || len(d.CharacterThoughts) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.CharacterThoughts))
	for name := range d.CharacterThoughts {
		names = append(names, name)
	}
	return names
}
