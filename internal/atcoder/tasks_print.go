package atcoder

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/scrape"
	"github.com/mini-maxit/acick/pkg/constants"
	"github.com/mini-maxit/acick/pkg/model"
)

type headingPattern struct {
	input  *regexp.Regexp
	output *regexp.Regexp
}

var headingPatterns = []headingPattern{
	{
		input:  regexp.MustCompile(`(?s)\A\s*Sample Input\s?([0-9０-９]{1,2}).*\z`),
		output: regexp.MustCompile(`(?s)\A\s*Sample Output\s?([0-9０-９]{1,2}).*\z`),
	},
	{
		input:  regexp.MustCompile(`(?s)\A\s*入力例\s*([0-9０-９]{1,2}).*\z`),
		output: regexp.MustCompile(`(?s)\A\s*出力例\s*([0-9０-９]{1,2}).*\z`),
	},
}

// Statement layouts, newest first. Older contests use one of the later ones.
var sampleSelectors = []string{
	"span.lang > span.lang-ja > div.part > section > h3, span.lang > span.lang-ja > div.part > section > pre",
	"span.lang > span.lang-en > div.part > section > h3, span.lang > span.lang-en > div.part > section > pre",
	"div.part > section > h3, div.part > section > pre",
	"div.part > h3, div.part > section > pre",
	"h3, section > pre",
	"section > h3, section > pre",
	"span.lang > span.lang-ja > section > h3, span.lang > span.lang-ja > section > pre",
	"span.lang > span.lang-ja > div.part > h3, span.lang > span.lang-ja > div.part > section > pre",
	"h3, pre",
}

type TasksPrintPage struct {
	page
}

type TasksPrintPageBuilder struct {
	pages     pages
	contestID model.ContestID
}

func (b TasksPrintPageBuilder) Build(ctx context.Context, cnsl *console.Console) (*TasksPrintPage, error) {
	u, err := b.pages.contestURL(constants.AtcoderTasksPrintPath, b.contestID)
	if err != nil {
		return nil, err
	}
	p, err := b.pages.fetchRestricted(ctx, u, cnsl)
	if err != nil {
		return nil, err
	}
	return &TasksPrintPage{page: *p}, nil
}

// ExtractSamplesMap returns the samples of every problem on the page keyed by
// the normalized problem id.
func (p *TasksPrintPage) ExtractSamplesMap() (map[string][]model.Sample, error) {
	samplesMap := make(map[string][]model.Sample)
	var extractErr error
	p.root().Find("#main-container > .row > .col-sm-12:not(.next-page)").EachWithBreak(
		func(_ int, elem *goquery.Selection) bool {
			id, _, err := extractIDName(elem)
			if err != nil {
				extractErr = err
				return false
			}
			statement, ok := scrape.FindFirst(elem, "#task-statement")
			if !ok {
				extractErr = fmt.Errorf("could not find task statement of problem %s", id)
				return false
			}
			samplesMap[id.Normalize()] = extractSamples(statement)
			return true
		})
	if extractErr != nil {
		return nil, extractErr
	}
	return samplesMap, nil
}

func extractIDName(elem *goquery.Selection) (model.ProblemID, string, error) {
	title, ok := scrape.FindFirst(elem, ".h2")
	if !ok {
		return "", "", fmt.Errorf("could not find problem title")
	}
	id, name, found := strings.Cut(scrape.InnerText(title), "-")
	if !found {
		return "", "", fmt.Errorf("could not find problem name in title %q", scrape.InnerText(title))
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "", fmt.Errorf("could not find problem id in title %q", scrape.InnerText(title))
	}
	return model.ProblemID(id), strings.TrimSpace(name), nil
}

func extractSamples(statement *goquery.Selection) []model.Sample {
	for _, selector := range sampleSelectors {
		for _, pattern := range headingPatterns {
			if samples := tryExtractSamples(statement, selector, pattern); len(samples) > 0 {
				return samples
			}
		}
	}
	return []model.Sample{}
}

type pending struct {
	isInput bool
	n       int
}

func tryExtractSamples(statement *goquery.Selection, selector string, pattern headingPattern) []model.Sample {
	inputs := make(map[int]string)
	outputs := make(map[int]string)
	var next *pending

	statement.Find(selector).Each(func(_ int, elem *goquery.Selection) {
		switch goquery.NodeName(elem) {
		case "h3":
			text := scrape.InnerText(elem)
			if n, ok := matchHeading(pattern.input, text); ok {
				next = &pending{isInput: true, n: n}
			} else if n, ok := matchHeading(pattern.output, text); ok {
				next = &pending{isInput: false, n: n}
			}
		case "pre", "section":
			if next != nil {
				if next.isInput {
					inputs[next.n] = scrape.InnerText(elem)
				} else {
					outputs[next.n] = scrape.InnerText(elem)
				}
			}
			next = nil
		}
	})

	indices := make([]int, 0, len(inputs))
	for n := range inputs {
		if _, ok := outputs[n]; ok {
			indices = append(indices, n)
		}
	}
	sort.Ints(indices)

	samples := make([]model.Sample, 0, len(indices))
	for _, n := range indices {
		samples = append(samples, model.NewSample(strconv.Itoa(n), inputs[n], outputs[n]))
	}
	return samples
}

func matchHeading(re *regexp.Regexp, text string) (int, bool) {
	caps := re.FindStringSubmatch(text)
	if caps == nil {
		return 0, false
	}
	n, err := scrape.ParseZenkakuDigits(caps[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
