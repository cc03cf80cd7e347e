//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"
	"unicode/utf8"

	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/internal/store"
	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/i18n"
	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/lorebook"
	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/pool"
	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/preset"
	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/prompt"
	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/roster"
	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/settings"
	"github.com/DangerDaza/Dooms-Enhancement-Suite-sub001/pkg/tracker"
)

// Version info
const Version = "0.5.0" // Campaign Lorebooks + i18n

// Global state
var settingsStore *settings.Store  // Live settings record
var sqlStore *store.SQLiteStore    // SQLite persistent store
var trackerState *tracker.State    // Generated/committed tracker records
var rosterSvc *roster.Service      // Character roster + mention scanning
var presetMgr *preset.Manager      // Tracker config presets
var campaignReg *lorebook.Registry // Lorebook campaign grouping
var i18nTable *i18n.Table          // UI string translations

func main() {
	settingsStore = settings.NewStore()
	rosterSvc = roster.NewService(settingsStore)
	presetMgr = preset.NewManager(settingsStore)
	campaignReg = lorebook.NewRegistry(settingsStore)
	i18nTable = i18n.NewTable()

	var err error
	sqlStore, err = store.NewSQLiteStore()
	if err != nil {
		fmt.Println("[DoomsCore] FATAL: Failed to initialize SQLite store:", err.Error())
		trackerState = tracker.NewState(nil)
	} else {
		trackerState = tracker.NewState(sqlStore)
	}

	fmt.Println("[DoomsCore] WASM Ready v" + Version)

	// Register exports
	js.Global().Set("DoomsCore", js.ValueOf(map[string]interface{}{
		"version": js.FuncOf(getVersion),
		// Settings API
		"settingsGet":    js.FuncOf(settingsGet),
		"settingsSet":    js.FuncOf(settingsSet),
		"settingsUpdate": js.FuncOf(settingsUpdate),
		"settingsReset":  js.FuncOf(settingsReset),
		// Tracker Data API (generated vs committed record)
		"generatedGet":    js.FuncOf(generatedGet),
		"generatedSet":    js.FuncOf(generatedSet),
		"generatedUpdate": js.FuncOf(generatedUpdate),
		"committedGet":    js.FuncOf(committedGet),
		"committedSet":    js.FuncOf(committedSet),
		"committedUpdate": js.FuncOf(committedUpdate),
		// Tracker Lifecycle API (host chat events)
		"onMessageSent":   js.FuncOf(onMessageSent),
		"onSwipe":         js.FuncOf(onSwipe),
		"onChatLoad":      js.FuncOf(onChatLoad),
		"trackerParse":    js.FuncOf(trackerParse),
		"trackerWasSwipe": js.FuncOf(trackerWasSwipe),
		// Prompt Builder API
		"promptQuests":     js.FuncOf(promptQuests),
		"promptInfoBox":    js.FuncOf(promptInfoBox),
		"promptCharacters": js.FuncOf(promptCharacters),
		"promptFull":       js.FuncOf(promptFull),
		// Roster API
		"rosterSetAvatar":       js.FuncOf(rosterSetAvatar),
		"rosterSetColor":        js.FuncOf(rosterSetColor),
		"rosterAddKnown":        js.FuncOf(rosterAddKnown),
		"rosterForgetKnown":     js.FuncOf(rosterForgetKnown),
		"rosterKnown":           js.FuncOf(rosterKnown),
		"rosterRemoved":         js.FuncOf(rosterRemoved),
		"rosterMarkRemoved":     js.FuncOf(rosterMarkRemoved),
		"rosterRestore":         js.FuncOf(rosterRestore),
		"rosterPresence":        js.FuncOf(rosterPresence),
		"rosterMentions":        js.FuncOf(rosterMentions),
		"rosterDiscover":        js.FuncOf(rosterDiscover),
		"rosterIgnoreCandidate": js.FuncOf(rosterIgnoreCandidate),
		// Preset API
		"presetSave":       js.FuncOf(presetSave),
		"presetApply":      js.FuncOf(presetApply),
		"presetApplyFor":   js.FuncOf(presetApplyFor),
		"presetDelete":     js.FuncOf(presetDelete),
		"presetRename":     js.FuncOf(presetRename),
		"presetAssociate":  js.FuncOf(presetAssociate),
		"presetDissociate": js.FuncOf(presetDissociate),
		"presetResolve":    js.FuncOf(presetResolve),
		"presetSetActive":  js.FuncOf(presetSetActive),
		"presetSetDefault": js.FuncOf(presetSetDefault),
		"presetList":       js.FuncOf(presetList),
		// Campaign API
		"campaignCreate":          js.FuncOf(campaignCreate),
		"campaignUpdate":          js.FuncOf(campaignUpdate),
		"campaignDelete":          js.FuncOf(campaignDelete),
		"campaignReorder":         js.FuncOf(campaignReorder),
		"campaignAttachBook":      js.FuncOf(campaignAttachBook),
		"campaignDetachBook":      js.FuncOf(campaignDetachBook),
		"campaignAddKeywords":     js.FuncOf(campaignAddKeywords),
		"campaignRemoveKeyword":   js.FuncOf(campaignRemoveKeyword),
		"campaignList":            js.FuncOf(campaignList),
		"campaignScan":            js.FuncOf(campaignScan),
		"campaignSuggestKeywords": js.FuncOf(campaignSuggestKeywords),
		// i18n API
		"i18nLoad":        js.FuncOf(i18nLoad),
		"i18nSetLanguage": js.FuncOf(i18nSetLanguage),
		"i18nT":           js.FuncOf(i18nT),
		"i18nFetch":       js.FuncOf(i18nFetch),
		// Store Export/Import (OPFS sync)
		"storeExport": js.FuncOf(storeExport),
		"storeImport": js.FuncOf(storeImport),
	}))

	select {}
}

// getVersion returns the module version
func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// makePromise creates a JS Promise and returns it along with resolve/reject functions.
func makePromise() (promise js.Value, resolve js.Value, reject js.Value) {
	var resolveFn, rejectFn js.Value
	handler := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		resolveFn = args[0]
		rejectFn = args[1]
		return nil
	})
	defer handler.Release()

	promise = js.Global().Get("Promise").New(handler)
	return promise, resolveFn, rejectFn
}

// byteToRuneOffset converts a byte offset in a string to a rune (character)
// offset. JavaScript indexes strings by UTF-16 code units, Go by bytes; the
// conversion matters whenever chat text carries smart quotes, accents or
// other multi-byte characters.
func byteToRuneOffset(s string, byteOff int) int {
	return utf8.RuneCountInString(s[:byteOff])
}

// =============================================================================
// Settings API
// =============================================================================

// settingsGet returns the full settings record.
// Args: []
func settingsGet(this js.Value, args []js.Value) interface{} {
	bytes, err := json.Marshal(settingsStore.Snapshot())
	if err != nil {
		return errorResult(err.Error())
	}
	return string(bytes)
}

// settingsSet replaces the whole settings record. No validation: the host is
// trusted to supply a shape-compatible record.
// Args: [settingsJSON string]
func settingsSet(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("settingsSet requires 1 arg: settingsJSON")
	}
	if err := settingsStore.SetJSON([]byte(args[0].String())); err != nil {
		return errorResult(err.Error())
	}
	return successResult("settings replaced")
}

// settingsUpdate shallow-merges top-level keys into the settings record.
// A nested object in the partial fully replaces the stored one.
// Args: [partialJSON string]
func settingsUpdate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("settingsUpdate requires 1 arg: partialJSON")
	}
	if err := settingsStore.UpdateJSON([]byte(args[0].String())); err != nil {
		return errorResult(err.Error())
	}
	return successResult("settings updated")
}

// settingsReset restores the default settings record.
// Args: []
func settingsReset(this js.Value, args []js.Value) interface{} {
	settingsStore.Set(settings.DefaultSettings())
	fmt.Println("[DoomsCore] Settings reset to defaults")
	return successResult("settings reset")
}

// =============================================================================
// Tracker Data API
// =============================================================================

// generatedGet returns the last generated tracker record.
// Args: []
func generatedGet(this js.Value, args []js.Value) interface{} {
	bytes, err := json.Marshal(trackerState.Generated())
	if err != nil {
		return errorResult(err.Error())
	}
	return string(bytes)
}

// generatedSet replaces the generated record wholesale.
// Args: [dataJSON string]
func generatedSet(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("generatedSet requires 1 arg: dataJSON")
	}
	var data tracker.Data
	if err := json.Unmarshal([]byte(args[0].String()), &data); err != nil {
		return errorResult("invalid data json: " + err.Error())
	}
	trackerState.SetGenerated(&data)
	return successResult("generated data set")
}

// generatedUpdate shallow-merges top-level keys into the generated record,
// same contract as settingsUpdate.
// Args: [partialJSON string]
func generatedUpdate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("generatedUpdate requires 1 arg: partialJSON")
	}
	var partial map[string]json.RawMessage
	if err := json.Unmarshal([]byte(args[0].String()), &partial); err != nil {
		return errorResult("invalid partial json: " + err.Error())
	}
	if err := trackerState.UpdateGenerated(partial); err != nil {
		return errorResult(err.Error())
	}
	return successResult("generated data updated")
}

// committedGet returns the committed tracker record (the accepted baseline).
// Args: []
func committedGet(this js.Value, args []js.Value) interface{} {
	bytes, err := json.Marshal(trackerState.Committed())
	if err != nil {
		return errorResult(err.Error())
	}
	return string(bytes)
}

// committedSet replaces the committed record wholesale.
// Args: [dataJSON string]
func committedSet(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("committedSet requires 1 arg: dataJSON")
	}
	var data tracker.Data
	if err := json.Unmarshal([]byte(args[0].String()), &data); err != nil {
		return errorResult("invalid data json: " + err.Error())
	}
	trackerState.SetCommitted(&data)
	return successResult("committed data set")
}

// committedUpdate shallow-merges top-level keys into the committed record.
// Args: [partialJSON string]
func committedUpdate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("committedUpdate requires 1 arg: partialJSON")
	}
	var partial map[string]json.RawMessage
	if err := json.Unmarshal([]byte(args[0].String()), &partial); err != nil {
		return errorResult("invalid partial json: " + err.Error())
	}
	if err := trackerState.UpdateCommitted(partial); err != nil {
		return errorResult(err.Error())
	}
	return successResult("committed data updated")
}

// =============================================================================
// Tracker Lifecycle API
// =============================================================================

// onMessageSent commits the generated record as the accepted baseline and
// persists the snapshot for the chat. Sending after a swipe accepts the
// swiped-in reply, so it commits too.
// Args: [chatId string]
func onMessageSent(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("onMessageSent requires 1 arg: chatId")
	}
	if err := trackerState.OnMessageSent(args[0].String()); err != nil {
		return errorResult(err.Error())
	}
	return successResult("committed")
}

// onSwipe records a swipe/regeneration. Committed data is never touched.
// Args: []
func onSwipe(this js.Value, args []js.Value) interface{} {
	trackerState.OnSwipe()
	return successResult("swipe recorded")
}

// onChatLoad restores the committed baseline for a chat and returns it.
// An absent or corrupt snapshot resets to the zero record.
// Args: [chatId string]
func onChatLoad(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("onChatLoad requires 1 arg: chatId")
	}
	if err := trackerState.OnChatLoad(args[0].String()); err != nil {
		return errorResult(err.Error())
	}
	bytes, err := json.Marshal(trackerState.Committed())
	if err != nil {
		return errorResult(err.Error())
	}
	return string(bytes)
}

// trackerParse parses a raw model reply into the generated record and
// journals it. On parse failure the previous generated record survives and
// the error is reported to the host.
// Args: [chatId string, raw string]
func trackerParse(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("trackerParse requires 2 args: chatId, raw")
	}
	data, err := trackerState.ParseAndStore(args[0].String(), args[1].String())
	if err != nil {
		return errorResult(err.Error())
	}
	bytes, err := json.Marshal(data)
	if err != nil {
		return errorResult(err.Error())
	}
	return string(bytes)
}

// trackerWasSwipe reports whether the last lifecycle action was a swipe, so
// the host can badge tracker data that is not committed yet.
// Args: []
func trackerWasSwipe(this js.Value, args []js.Value) interface{} {
	return map[string]interface{}{
		"success": true,
		"swipe":   trackerState.LastActionWasSwipe(),
	}
}

// =============================================================================
// Prompt Builder API
// =============================================================================

// promptQuests returns the quest instruction block.
// Args: []
func promptQuests(this js.Value, args []js.Value) interface{} {
	return prompt.BuildQuestsJSONInstruction()
}

// promptInfoBox returns the info box instruction block for the current
// widget configuration.
// Args: []
func promptInfoBox(this js.Value, args []js.Value) interface{} {
	return prompt.BuildInfoBoxJSONInstruction(settingsStore.Snapshot())
}

// promptCharacters returns the per-character instruction block for the
// current field configuration.
// Args: []
func promptCharacters(this js.Value, args []js.Value) interface{} {
	return prompt.BuildCharactersJSONInstruction(settingsStore.Snapshot())
}

// promptFull assembles the complete tracker instruction: all three category
// blocks, the baseline state, and the lock admonition when any lock is set.
// The committed record is the default baseline.
// Args: [stateJSON string (optional baseline override)]
func promptFull(this js.Value, args []js.Value) interface{} {
	baseline := ""
	if len(args) > 0 && args[0].String() != "" && args[0].String() != "null" {
		baseline = args[0].String()
	} else if bytes, err := json.Marshal(trackerState.Committed()); err == nil {
		baseline = string(bytes)
	}
	return prompt.BuildTrackerPrompt(settingsStore.Snapshot(), baseline)
}

// =============================================================================
// Roster API
// =============================================================================

// rosterSetAvatar records an avatar override for a character. An empty url
// clears the override.
// Args: [name string, url string]
func rosterSetAvatar(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("rosterSetAvatar requires 2 args: name, url")
	}
	rosterSvc.SetAvatar(args[0].String(), args[1].String())
	return successResult("avatar set")
}

// rosterSetColor records a highlight color for a character. An empty color
// clears the override.
// Args: [name string, color string]
func rosterSetColor(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("rosterSetColor requires 2 args: name, color")
	}
	rosterSvc.SetColor(args[0].String(), args[1].String())
	return successResult("color set")
}

// rosterAddKnown adds a character to the roster, un-removing it if needed.
// Args: [name string]
func rosterAddKnown(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("rosterAddKnown requires 1 arg: name")
	}
	added := rosterSvc.AddKnown(args[0].String())
	return map[string]interface{}{
		"success": true,
		"added":   added,
	}
}

// rosterForgetKnown drops a character from the roster entirely. Avatar and
// color overrides survive in case the character comes back.
// Args: [name string]
func rosterForgetKnown(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("rosterForgetKnown requires 1 arg: name")
	}
	forgot := rosterSvc.ForgetKnown(args[0].String())
	return map[string]interface{}{
		"success": true,
		"removed": forgot,
	}
}

// rosterKnown returns the known character list.
// Args: []
func rosterKnown(this js.Value, args []js.Value) interface{} {
	known := rosterSvc.Known()
	if known == nil {
		known = []string{}
	}
	bytes, _ := json.Marshal(known)
	return string(bytes)
}

// rosterRemoved returns the removed character list.
// Args: []
func rosterRemoved(this js.Value, args []js.Value) interface{} {
	removed := rosterSvc.Removed()
	if removed == nil {
		removed = []string{}
	}
	bytes, _ := json.Marshal(removed)
	return string(bytes)
}

// rosterMarkRemoved moves a character from the roster to the removed list.
// Args: [name string]
func rosterMarkRemoved(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("rosterMarkRemoved requires 1 arg: name")
	}
	marked := rosterSvc.MarkRemoved(args[0].String())
	return map[string]interface{}{
		"success": true,
		"marked":  marked,
	}
}

// rosterRestore moves a character from the removed list back to the roster.
// Args: [name string]
func rosterRestore(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("rosterRestore requires 1 arg: name")
	}
	restored := rosterSvc.RestoreRemoved(args[0].String())
	return map[string]interface{}{
		"success":  true,
		"restored": restored,
	}
}

// rosterPresence classifies roster members against the characters listed in
// the latest generated state: PRESENT, ABSENT, NEW or REMOVED.
// Args: []
func rosterPresence(this js.Value, args []js.Value) interface{} {
	present := trackerState.Generated().PresentCharacters()
	states := rosterSvc.Presence(present)
	out := make(map[string]string, len(states))
	for name, state := range states {
		out[name] = state.String()
	}
	bytes, _ := json.Marshal(out)
	return string(bytes)
}

// rosterMentions scans chat text for roster character names.
// Args: [text string]
// Returns: JSON array of mention spans with RUNE offsets (not byte offsets)
func rosterMentions(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("rosterMentions requires 1 arg: text")
	}
	text := args[0].String()

	mentions, err := rosterSvc.Mentions(text)
	if err != nil {
		return errorResult(err.Error())
	}

	spans := make([]map[string]interface{}, 0, len(mentions))
	for _, m := range mentions {
		span := pool.GetMap()
		span["name"] = m.Name
		span["from"] = byteToRuneOffset(text, m.Start)
		span["to"] = byteToRuneOffset(text, m.End)
		span["text"] = m.Text
		spans = append(spans, span)
	}
	bytes, _ := json.Marshal(spans)
	for _, span := range spans {
		pool.PutMap(span)
	}
	return string(bytes)
}

// rosterDiscover feeds chat text to the candidate scanner and returns the
// current candidate list, repeated names first.
// Args: [text string]
func rosterDiscover(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("rosterDiscover requires 1 arg: text")
	}
	rosterSvc.Observe(args[0].String())

	candidates := rosterSvc.Candidates()
	if candidates == nil {
		candidates = []roster.Candidate{}
	}
	bytes, _ := json.Marshal(candidates)
	return string(bytes)
}

// rosterIgnoreCandidate suppresses a discovered name for good.
// Args: [name string]
func rosterIgnoreCandidate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("rosterIgnoreCandidate requires 1 arg: name")
	}
	rosterSvc.IgnoreCandidate(args[0].String())
	return successResult("candidate ignored")
}

// =============================================================================
// Preset API
// =============================================================================

// presetSave snapshots the live tracker configuration under a new preset and
// makes it active.
// Args: [name string]
func presetSave(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("presetSave requires 1 arg: name")
	}
	id := presetMgr.Save(args[0].String())
	return map[string]interface{}{
		"success": true,
		"id":      id,
	}
}

// presetApply replaces the live tracker configuration with a preset's
// snapshot. Unknown ids leave everything untouched.
// Args: [id string]
func presetApply(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("presetApply requires 1 arg: id")
	}
	applied := presetMgr.Apply(args[0].String())
	return map[string]interface{}{
		"success": true,
		"applied": applied,
	}
}

// presetApplyFor resolves a character's preset and applies it.
// Args: [character string]
func presetApplyFor(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("presetApplyFor requires 1 arg: character")
	}
	applied := presetMgr.ApplyFor(args[0].String())
	return map[string]interface{}{
		"success": true,
		"applied": applied,
	}
}

// presetDelete removes a preset and detaches its associations and
// active/default markers.
// Args: [id string]
func presetDelete(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("presetDelete requires 1 arg: id")
	}
	deleted := presetMgr.Delete(args[0].String())
	return map[string]interface{}{
		"success": true,
		"deleted": deleted,
	}
}

// presetRename changes a preset's display name.
// Args: [id string, name string]
func presetRename(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("presetRename requires 2 args: id, name")
	}
	renamed := presetMgr.Rename(args[0].String(), args[1].String())
	return map[string]interface{}{
		"success": true,
		"renamed": renamed,
	}
}

// presetAssociate ties a character to a preset.
// Args: [character string, id string]
func presetAssociate(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("presetAssociate requires 2 args: character, id")
	}
	associated := presetMgr.Associate(args[0].String(), args[1].String())
	return map[string]interface{}{
		"success":    true,
		"associated": associated,
	}
}

// presetDissociate removes a character's preset association.
// Args: [character string]
func presetDissociate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("presetDissociate requires 1 arg: character")
	}
	removed := presetMgr.Dissociate(args[0].String())
	return map[string]interface{}{
		"success": true,
		"removed": removed,
	}
}

// presetResolve returns the preset id that applies to a character:
// association, then default, then "".
// Args: [character string]
func presetResolve(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("presetResolve requires 1 arg: character")
	}
	return map[string]interface{}{
		"success": true,
		"id":      presetMgr.ResolveFor(args[0].String()),
	}
}

// presetSetActive marks a preset as selected without applying its config.
// An empty id clears the selection.
// Args: [id string]
func presetSetActive(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("presetSetActive requires 1 arg: id")
	}
	set := presetMgr.SetActive(args[0].String())
	return map[string]interface{}{
		"success": true,
		"set":     set,
	}
}

// presetSetDefault marks a preset as the fallback for characters without an
// association. An empty id clears the default.
// Args: [id string]
func presetSetDefault(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("presetSetDefault requires 1 arg: id")
	}
	set := presetMgr.SetDefault(args[0].String())
	return map[string]interface{}{
		"success": true,
		"set":     set,
	}
}

// presetList returns all presets sorted by name, with active/default flags.
// Args: []
func presetList(this js.Value, args []js.Value) interface{} {
	list := presetMgr.List()
	if list == nil {
		list = []preset.Summary{}
	}
	bytes, _ := json.Marshal(list)
	return string(bytes)
}

// =============================================================================
// Campaign API
// =============================================================================

// campaignCreate adds a lorebook campaign.
// Args: [name string, icon string (optional), color string (optional)]
func campaignCreate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("campaignCreate requires 1+ args: name, [icon], [color]")
	}
	icon, color := "", ""
	if len(args) > 1 {
		icon = args[1].String()
	}
	if len(args) > 2 {
		color = args[2].String()
	}
	id := campaignReg.Create(args[0].String(), icon, color)
	return map[string]interface{}{
		"success": true,
		"id":      id,
	}
}

// campaignUpdate replaces a campaign's display properties. A blank name
// keeps the old one.
// Args: [id string, name string, icon string, color string]
func campaignUpdate(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return errorResult("campaignUpdate requires 4 args: id, name, icon, color")
	}
	updated := campaignReg.Update(args[0].String(), args[1].String(), args[2].String(), args[3].String())
	return map[string]interface{}{
		"success": true,
		"updated": updated,
	}
}

// campaignDelete removes a campaign from the map and the display order.
// Args: [id string]
func campaignDelete(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("campaignDelete requires 1 arg: id")
	}
	deleted := campaignReg.Delete(args[0].String())
	return map[string]interface{}{
		"success": true,
		"deleted": deleted,
	}
}

// campaignReorder replaces the display order. Unknown ids are dropped and
// unmentioned campaigns keep their previous relative order.
// Args: [orderJSON string] - JSON array of campaign ids
func campaignReorder(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("campaignReorder requires 1 arg: orderJSON")
	}
	var order []string
	if err := json.Unmarshal([]byte(args[0].String()), &order); err != nil {
		return errorResult("invalid order json: " + err.Error())
	}
	campaignReg.Reorder(order)
	return successResult("order updated")
}

// campaignAttachBook references a host lorebook file from a campaign.
// Args: [id string, book string]
func campaignAttachBook(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("campaignAttachBook requires 2 args: id, book")
	}
	attached := campaignReg.AttachBook(args[0].String(), args[1].String())
	return map[string]interface{}{
		"success":  true,
		"attached": attached,
	}
}

// campaignDetachBook drops a lorebook file reference from a campaign.
// Args: [id string, book string]
func campaignDetachBook(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("campaignDetachBook requires 2 args: id, book")
	}
	detached := campaignReg.DetachBook(args[0].String(), args[1].String())
	return map[string]interface{}{
		"success":  true,
		"detached": detached,
	}
}

// campaignAddKeywords adds activation keywords to a campaign, deduplicated
// case-insensitively.
// Args: [id string, keywordsJSON string] - JSON array of keywords
func campaignAddKeywords(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("campaignAddKeywords requires 2 args: id, keywordsJSON")
	}
	var keywords []string
	if err := json.Unmarshal([]byte(args[1].String()), &keywords); err != nil {
		return errorResult("invalid keywords json: " + err.Error())
	}
	added := campaignReg.AddKeywords(args[0].String(), keywords)
	return map[string]interface{}{
		"success": true,
		"added":   added,
	}
}

// campaignRemoveKeyword removes one activation keyword, case-insensitively.
// Args: [id string, keyword string]
func campaignRemoveKeyword(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("campaignRemoveKeyword requires 2 args: id, keyword")
	}
	removed := campaignReg.RemoveKeyword(args[0].String(), args[1].String())
	return map[string]interface{}{
		"success": true,
		"removed": removed,
	}
}

// campaignList returns all campaigns in display order.
// Args: []
func campaignList(this js.Value, args []js.Value) interface{} {
	campaigns := campaignReg.Campaigns()
	if campaigns == nil {
		campaigns = []settings.Campaign{}
	}
	bytes, _ := json.Marshal(campaigns)
	return string(bytes)
}

// campaignScan matches chat text against every campaign's activation
// keywords and returns the ids of activated campaigns in display order.
// Args: [text string]
func campaignScan(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("campaignScan requires 1 arg: text")
	}
	activated := campaignReg.ScanActivations(args[0].String())
	if activated == nil {
		activated = []string{}
	}
	bytes, _ := json.Marshal(activated)
	return string(bytes)
}

// campaignSuggestKeywords proposes activation keywords for a campaign from
// sample text, skipping stopwords and keywords already attached.
// Args: [id string, text string]
func campaignSuggestKeywords(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("campaignSuggestKeywords requires 2 args: id, text")
	}
	suggestions := campaignReg.SuggestKeywords(args[0].String(), args[1].String())
	if suggestions == nil {
		suggestions = []string{}
	}
	bytes, _ := json.Marshal(suggestions)
	return string(bytes)
}

// =============================================================================
// i18n API
// =============================================================================

// i18nLoad installs a language table from its JSON bytes.
// Args: [lang string, tableJSON string]
func i18nLoad(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("i18nLoad requires 2 args: lang, tableJSON")
	}
	if err := i18nTable.Load(args[0].String(), []byte(args[1].String())); err != nil {
		return errorResult(err.Error())
	}
	return successResult("loaded " + args[0].String())
}

// i18nSetLanguage selects the display language. The selection sticks even
// when the table is not loaded yet; T falls back until it arrives.
// Args: [lang string]
func i18nSetLanguage(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("i18nSetLanguage requires 1 arg: lang")
	}
	loaded := i18nTable.SetLanguage(args[0].String())
	return map[string]interface{}{
		"success": true,
		"loaded":  loaded,
	}
}

// i18nT translates one key: current language, then en, then the key itself.
// Args: [key string]
func i18nT(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("i18nT requires 1 arg: key")
	}
	return i18nTable.T(args[0].String())
}

// i18nFetch retrieves <baseURL>/i18n/<lang>.json with the browser fetch and
// selects the language. A failed fetch falls back to en before erroring.
// Args: [baseURL string, lang string]
// Returns: Promise<JSON>
func i18nFetch(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("i18nFetch requires 2 args: baseURL, lang")
	}
	baseURL := args[0].String()
	lang := args[1].String()

	promise, resolve, reject := makePromise()

	go func() {
		loaded := lang
		if err := i18nTable.FetchAndLoad(baseURL, lang); err != nil {
			fmt.Printf("[DoomsCore] i18n fetch for %s failed: %v\n", lang, err)
			if strings.EqualFold(lang, "en") {
				reject.Invoke(js.Global().Get("Error").New(fmt.Sprintf("i18nFetch: %v", err)))
				return
			}
			if err := i18nTable.FetchAndLoad(baseURL, "en"); err != nil {
				reject.Invoke(js.Global().Get("Error").New(fmt.Sprintf("i18nFetch: %v", err)))
				return
			}
			loaded = "en"
		}
		i18nTable.SetLanguage(loaded)

		jsonBytes, _ := json.Marshal(map[string]interface{}{
			"success":  true,
			"language": loaded,
		})
		resolve.Invoke(string(jsonBytes))
	}()

	return promise
}

// =============================================================================
// Store Export/Import (OPFS Sync)
// =============================================================================

// storeExport serializes the whole chat-metadata store to a Uint8Array for
// host persistence.
// Args: []
// Returns: Uint8Array of store bytes
func storeExport(this js.Value, args []js.Value) interface{} {
	if sqlStore == nil {
		return errorResult("store not initialized")
	}

	data, err := sqlStore.Export()
	if err != nil {
		return errorResult("export failed: " + err.Error())
	}

	// Create a Uint8Array in JS and copy bytes over
	jsArray := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(jsArray, data)

	fmt.Printf("[DoomsCore] ✅ Exported %d bytes\n", len(data))
	return jsArray
}

// storeImport restores the chat-metadata store from a Uint8Array.
// Args: [data Uint8Array]
func storeImport(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("storeImport requires 1 arg: data (Uint8Array)")
	}
	if sqlStore == nil {
		return errorResult("store not initialized")
	}

	jsArray := args[0]
	length := jsArray.Get("length").Int()
	data := make([]byte, length)
	js.CopyBytesToGo(data, jsArray)

	if err := sqlStore.Import(data); err != nil {
		return errorResult("import failed: " + err.Error())
	}

	fmt.Printf("[DoomsCore] ✅ Imported %d bytes\n", length)
	return successResult(fmt.Sprintf("imported %d bytes", length))
}
