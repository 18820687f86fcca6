// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clipboard captures clipboard payload snapshots and prepares HTML
// fragments for classification and conversion.
package clipboard

import (
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/pdiddy/pastemd/pkg/types"
)

// Reader is the capability that captures the current clipboard payload set.
// Implementations wrap the platform clipboard APIs; the core only sees the
// snapshot value.
type Reader interface {
	// Read captures plain-text and HTML payloads at a point in time.
	Read() (types.ClipboardSnapshot, error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func() (types.ClipboardSnapshot, error)

// Read implements Reader.
func (f ReaderFunc) Read() (types.ClipboardSnapshot, error) { return f() }

// Static returns a Reader that always yields the given payloads with a
// fresh capture timestamp. Used by the one-shot CLI path and tests.
func Static(plain, html string) Reader {
	return ReaderFunc(func() (types.ClipboardSnapshot, error) {
		return types.ClipboardSnapshot{
			PlainText:  plain,
			HTML:       html,
			CapturedAt: time.Now(),
		}, nil
	})
}

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func sanitizePolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowTables()
		p.AllowElements("del", "s", "sub", "sup", "u")
		policy = p
	})
	return policy
}

// Sanitize strips scripts, event handlers, and style payloads from a
// clipboard HTML fragment before it reaches the converter. Chat UIs put
// heavily decorated HTML on the clipboard; only the document structure
// matters downstream.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	clean := sanitizePolicy().Sanitize(html)
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' && r != '\t' && r != '\r' {
			return -1
		}
		return r
	}, clean)
}
