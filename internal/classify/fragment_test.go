// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainFragment(t *testing.T) {
	cases := []struct {
		name string
		html string
		want bool
	}{
		{"empty", "  ", true},
		{"span shell", `<span>hello world</span>`, true},
		{"nested wrappers", `<span><strong>x</strong><br></span>`, true},
		{"paragraph", `<p>hello</p>`, false},
		{"table", `<table><tr><td>1</td></tr></table>`, false},
		{"heading", `<h2>Title</h2>`, false},
		{"list", `<ul><li>a</li></ul>`, false},
		{"envelope only", `<html><head></head><body>plain</body></html>`, true},
		{"comment stripped", `<!-- <p>not real</p> --><span>x</span>`, true},
		{
			"markdown source in div",
			"<div>**bold** and `code` here\n# heading</div>",
			true,
		},
		{"prose in div", `<div>just a normal sentence here.</div>`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PlainFragment(tc.html))
		})
	}
}
