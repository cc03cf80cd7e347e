//go:build js && wasm
// +build js,wasm

package i18n

import (
	"fmt"
	"strings"
	"syscall/js"
)

// langURL builds the language file URL from the extension's asset base.
func langURL(baseURL, lang string) string {
	return fmt.Sprintf("%s/i18n/%s.json", strings.TrimSuffix(baseURL, "/"), normalizeLang(lang))
}

// FetchAndLoad retrieves <baseURL>/i18n/<lang>.json with the browser's fetch
// and loads it into the table.
func (t *Table) FetchAndLoad(baseURL, lang string) error {
	data, err := fetchText(langURL(baseURL, lang))
	if err != nil {
		return fmt.Errorf("i18n: fetching %s table: %w", lang, err)
	}
	return t.Load(lang, []byte(data))
}

// fetchText performs a GET via the host's fetch and returns the body text.
func fetchText(url string) (string, error) {
	fetch := js.Global().Get("fetch")
	if fetch.IsUndefined() {
		return "", fmt.Errorf("fetch not available")
	}

	promise := fetch.Invoke(url)

	resultCh := make(chan struct {
		body string
		err  error
	})

	then := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		response := args[0]

		status := response.Get("status").Int()
		if !response.Get("ok").Bool() {
			resultCh <- struct {
				body string
				err  error
			}{body: "", err: fmt.Errorf("HTTP %d", status)}
			return nil
		}

		textPromise := response.Call("text")
		var textThen js.Func
		textThen = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			// Fires once, after the enclosing callback has returned, so it
			// has to release itself.
			defer textThen.Release()
			resultCh <- struct {
				body string
				err  error
			}{body: args[0].String(), err: nil}
			return nil
		})
		textPromise.Call("then", textThen)
		return nil
	})
	defer then.Release()

	catch := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		errMsg := args[0].Get("message").String()
		resultCh <- struct {
			body string
			err  error
		}{body: "", err: fmt.Errorf("%s", errMsg)}
		return nil
	})
	defer catch.Release()

	promise.Call("then", then).Call("catch", catch)

	result := <-resultCh
	return result.body, result.err
}
