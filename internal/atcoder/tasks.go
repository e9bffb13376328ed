package atcoder

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mini-maxit/acick/internal/console"
	"github.com/mini-maxit/acick/internal/scrape"
	"github.com/mini-maxit/acick/pkg/constants"
	"github.com/mini-maxit/acick/pkg/model"
)

type TasksPage struct {
	page
}

type TasksPageBuilder struct {
	pages     pages
	contestID model.ContestID
}

func (b TasksPageBuilder) Build(ctx context.Context, cnsl *console.Console) (*TasksPage, error) {
	u, err := b.pages.contestURL(constants.AtcoderTasksPath, b.contestID)
	if err != nil {
		return nil, err
	}
	p, err := b.pages.fetchRestricted(ctx, u, cnsl)
	if err != nil {
		return nil, err
	}
	return &TasksPage{page: *p}, nil
}

// ExtractProblems reads the problem table. Limits that cannot be parsed are
// reported on cnsl and left unknown.
func (p *TasksPage) ExtractProblems(cnsl *console.Console) ([]model.Problem, error) {
	var (
		problems []model.Problem
		rowErr   error
	)
	p.root().Find("#main-container .panel table tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		problem, err := p.extractProblem(row, cnsl)
		if err != nil {
			rowErr = err
			return false
		}
		problems = append(problems, problem)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return problems, nil
}

func (p *TasksPage) extractProblem(row *goquery.Selection, cnsl *console.Console) (model.Problem, error) {
	cells := row.Find("td")
	cell := func(i int) (string, bool) {
		if i >= cells.Length() {
			return "", false
		}
		return strings.TrimSpace(scrape.InnerText(cells.Eq(i))), true
	}

	id, ok := cell(0)
	if !ok || id == "" {
		return model.Problem{}, fmt.Errorf("could not find problem id")
	}
	name, ok := cell(1)
	if !ok {
		return model.Problem{}, fmt.Errorf("could not find name of problem %s", id)
	}

	var timeLimit *model.Duration
	if text, ok := cell(2); ok {
		if d, err := model.ParseDuration(text); err == nil {
			timeLimit = &d
		} else {
			cnsl.Warn(fmt.Sprintf("Could not parse time limit of problem %s: %q", id, text))
		}
	} else {
		cnsl.Warn(fmt.Sprintf("Could not find time limit of problem %s", id))
	}

	var memoryLimit *model.Bytes
	if text, ok := cell(3); ok {
		if b, err := model.ParseBytes(text); err == nil {
			memoryLimit = &b
		} else {
			cnsl.Warn(fmt.Sprintf("Could not parse memory limit of problem %s: %q", id, text))
		}
	} else {
		cnsl.Warn(fmt.Sprintf("Could not find memory limit of problem %s", id))
	}

	link, ok := scrape.FindFirst(row, "a")
	if !ok {
		return model.Problem{}, fmt.Errorf("could not find link to problem %s", id)
	}
	href, _ := link.Attr("href")
	problemURL, err := p.url.Parse(href)
	if err != nil || href == "" {
		return model.Problem{}, fmt.Errorf("could not parse url of problem %s: %q", id, href)
	}
	urlName := path.Base(problemURL.Path)
	if urlName == "/" || urlName == "." {
		return model.Problem{}, fmt.Errorf("could not parse url name of problem %s: %q", id, href)
	}

	return model.NewProblem(model.ProblemID(id), name, urlName, timeLimit, memoryLimit, model.CompareDefault, nil), nil
}
