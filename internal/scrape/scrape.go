package scrape

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	customErr "github.com/mini-maxit/acick/pkg/errors"
)

// Parse parses an HTML document.
func Parse(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not parse html: %w", err)
	}
	return doc, nil
}

// FindFirst returns the first element under sel matching selector.
func FindFirst(sel *goquery.Selection, selector string) (*goquery.Selection, bool) {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, false
	}
	return found, true
}

// InnerText concatenates all text nodes under sel without normalizing whitespace.
func InnerText(sel *goquery.Selection) string {
	return sel.Text()
}

// FirstText returns the trimmed inner text of the first element matching selector.
func FirstText(sel *goquery.Selection, selector string) (string, bool) {
	found, ok := FindFirst(sel, selector)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(InnerText(found)), true
}

// ExtractCsrfToken reads the value of the first element named csrf_token.
func ExtractCsrfToken(sel *goquery.Selection) (string, error) {
	elem, ok := FindFirst(sel, `[name="csrf_token"]`)
	if !ok {
		return "", customErr.ErrMissingCsrf
	}
	token, ok := elem.Attr("value")
	if !ok {
		return "", fmt.Errorf("%w: could not find value attribute", customErr.ErrMissingCsrf)
	}
	if token == "" {
		return "", customErr.ErrEmptyCsrf
	}
	return token, nil
}

// ExtractLangID finds the option under optionSelector whose visible text is langName
// and returns its value.
func ExtractLangID(sel *goquery.Selection, optionSelector, langName string) (string, bool) {
	var (
		id    string
		found bool
	)
	sel.Find(optionSelector).EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		if InnerText(opt) != langName {
			return true
		}
		id, found = opt.Attr("value")
		return !found
	})
	return id, found
}

// ParseZenkakuDigits parses a non-negative decimal integer written in ASCII or full-width digits.
func ParseZenkakuDigits(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%w %q: negative number", customErr.ErrInvalidDigits, s)
		}
		return n, nil
	}
	if s == "" {
		return 0, fmt.Errorf("%w %q: %w", customErr.ErrInvalidDigits, s, err)
	}
	var b strings.Builder
	for _, r := range s {
		if r < '０' || r > '９' {
			return 0, fmt.Errorf("%w %q: %w", customErr.ErrInvalidDigits, s, err)
		}
		b.WriteRune('0' + (r - '０'))
	}
	n, err = strconv.Atoi(b.String())
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", customErr.ErrInvalidDigits, s, err)
	}
	return n, nil
}

// ToZenkakuDigits spells a non-negative integer in full-width digits.
func ToZenkakuDigits(n int) string {
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		if r >= '0' && r <= '9' {
			b.WriteRune('０' + (r - '0'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
