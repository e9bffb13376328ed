package scrape_test

import (
	"testing"

	"github.com/mini-maxit/acick/internal/scrape"
	customErr "github.com/mini-maxit/acick/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const submitHTML = `<html><body>
<form>
  <input type="hidden" name="csrf_token" value="abc=="/>
  <div id="select-lang">
    <select>
      <option value="4001">C (GCC 9.2.1)</option>
      <option value="4003">C++ (GCC 9.2.1)</option>
      <option value="4006">Python (3.8.2)</option>
    </select>
  </div>
</form>
<p class="multi">Hello, <b>acick</b>
 world</p>
</body></html>`

func TestExtractCsrfToken(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
		err      error
	}{
		{name: "Found", html: submitHTML, expected: "abc=="},
		{name: "Missing", html: `<html><body><form></form></body></html>`, err: customErr.ErrMissingCsrf},
		{name: "Missing value", html: `<input name="csrf_token">`, err: customErr.ErrMissingCsrf},
		{name: "Empty", html: `<input name="csrf_token" value="">`, err: customErr.ErrEmptyCsrf},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := scrape.Parse([]byte(tt.html))
			require.NoError(t, err)

			token, err := scrape.ExtractCsrfToken(doc.Selection)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}

func TestExtractLangID(t *testing.T) {
	doc, err := scrape.Parse([]byte(submitHTML))
	require.NoError(t, err)

	id, ok := scrape.ExtractLangID(doc.Selection, "#select-lang select option", "C++ (GCC 9.2.1)")
	assert.True(t, ok)
	assert.Equal(t, "4003", id)

	_, ok = scrape.ExtractLangID(doc.Selection, "#select-lang select option", "C++")
	assert.False(t, ok)
}

func TestFindFirstAndInnerText(t *testing.T) {
	doc, err := scrape.Parse([]byte(submitHTML))
	require.NoError(t, err)

	elem, ok := scrape.FindFirst(doc.Selection, "p.multi")
	require.True(t, ok)
	assert.Equal(t, "Hello, acick\n world", scrape.InnerText(elem))

	text, ok := scrape.FirstText(doc.Selection, "option")
	require.True(t, ok)
	assert.Equal(t, "C (GCC 9.2.1)", text)

	_, ok = scrape.FindFirst(doc.Selection, ".contest-title")
	assert.False(t, ok)
}

func TestParseZenkakuDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		valid    bool
	}{
		{input: "0", expected: 0, valid: true},
		{input: "12", expected: 12, valid: true},
		{input: "１", expected: 1, valid: true},
		{input: "１０", expected: 10, valid: true},
		{input: "", valid: false},
		{input: "1０", valid: false},
		{input: "a", valid: false},
		{input: "-1", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := scrape.ParseZenkakuDigits(tt.input)
			if !tt.valid {
				assert.ErrorIs(t, err, customErr.ErrInvalidDigits)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestParseZenkakuDigits_AllSpellings(t *testing.T) {
	for n := 0; n <= 1000; n++ {
		got, err := scrape.ParseZenkakuDigits(scrape.ToZenkakuDigits(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
}
