package config

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/iancoleman/strcase"
	"github.com/mini-maxit/acick/pkg/model"
)

// TargetContext is available to path and command templates, e.g. "{{ .Service }}/{{ .Contest }}/{{ lower .Problem }}".
type TargetContext struct {
	Service model.ServiceKind
	Contest model.ContestID
	Problem model.ProblemID
}

// ProblemContext is available to source templates, e.g. "{{ .Contest.ID }} {{ .Problem.Name }}".
type ProblemContext struct {
	Service model.Service
	Contest model.Contest
	Problem model.Problem
}

// CmdContext is available to shell templates as "{{ .Command }}".
type CmdContext struct {
	Command string
}

func caseFunc(convert func(string) string) func(v interface{}) string {
	return func(v interface{}) string {
		return convert(fmt.Sprint(v))
	}
}

var templateFuncs = template.FuncMap{
	"lower":  caseFunc(strings.ToLower),
	"upper":  caseFunc(strings.ToUpper),
	"snake":  caseFunc(strcase.ToSnake),
	"kebab":  caseFunc(strcase.ToKebab),
	"camel":  caseFunc(strcase.ToLowerCamel),
	"pascal": caseFunc(strcase.ToCamel),
}

// renderer caches parsed templates by their text for the lifetime of the process.
var renderer = struct {
	sync.Mutex
	templates map[string]*template.Template
}{templates: map[string]*template.Template{}}

func lookupTemplate(text string) (*template.Template, error) {
	renderer.Lock()
	defer renderer.Unlock()
	if t, ok := renderer.templates[text]; ok {
		return t, nil
	}
	t, err := template.New(text).Funcs(templateFuncs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("could not parse template %q: %w", text, err)
	}
	renderer.templates[text] = t
	return t, nil
}

// Expand renders the template text with data.
func Expand(text string, data interface{}) (string, error) {
	t, err := lookupTemplate(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("could not expand template %q with %+v: %w", text, data, err)
	}
	return buf.String(), nil
}

// ExpandAll renders every template in texts with data.
func ExpandAll(texts []string, data interface{}) ([]string, error) {
	expanded := make([]string, 0, len(texts))
	for _, text := range texts {
		s, err := Expand(text, data)
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, s)
	}
	return expanded, nil
}
