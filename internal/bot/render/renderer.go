// Package render produces localized user-visible copy for the bot. All
// strings shown to members live in per-language message catalogs; domain
// packages reference them by key.
package render

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Renderer localizes message keys for one language.
type Renderer struct {
	printer *message.Printer
}

// New returns a renderer for the default (English) catalog.
func New() *Renderer {
	return &Renderer{printer: message.NewPrinter(language.English)}
}

// Text returns the localized copy for key. A nil renderer or an unknown key
// degrades to the key itself so a missing catalog entry never blanks a
// member-facing message.
func (r *Renderer) Text(key message.Reference, args ...any) string {
	if r == nil || r.printer == nil {
		if asString, ok := key.(string); ok {
			return asString
		}
		return ""
	}
	value := strings.TrimSpace(r.printer.Sprintf(key, args...))
	if value == "" {
		if asString, ok := key.(string); ok {
			return asString
		}
	}
	return value
}
