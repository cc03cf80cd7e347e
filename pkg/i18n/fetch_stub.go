//go:build !js && !wasm
// +build !js,!wasm

package i18n

import "fmt"

// FetchAndLoad is a stub for non-WASM builds; Load still works with bytes
// the caller supplies.
func (t *Table) FetchAndLoad(_, _ string) error {
	return fmt.Errorf("i18n: fetch requires WASM environment")
}
