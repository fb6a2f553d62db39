package content

import (
	"math/rand"
	"strings"
	"text/template"
	"time"
	"unicode"
)

// Generator produces file contents for names. It is safe to reuse but not
// for concurrent use, since it shares one random source.
type Generator struct {
	rnd *rand.Rand
	now func() time.Time
}

// New returns a Generator. A nil rnd is seeded with the current time and a
// nil clock uses time.Now.
func New(rnd *rand.Rand, now func() time.Time) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rnd: rnd, now: now}
}

// Generate returns text for the named file. It never fails.
func (g *Generator) Generate(name string) string {
	kind, ok := Classify(name)
	if !ok {
		set := Fallbacks(name)
		kind = set[g.rnd.Intn(len(set))]
	}
	return g.Render(kind, name)
}

// Render runs the generator for kind directly.
func (g *Generator) Render(kind Kind, name string) string {
	tmpl, ok := generators[kind]
	if !ok {
		tmpl = generators[KindGeneric]
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, newTemplateData(parseName(name), g.now())); err != nil {
		return genericFallback(name)
	}
	return b.String()
}

type templateData struct {
	File      string
	Name      string
	Lower     string
	Upper     string
	Interface string
	Context   string
	Hook      string
	Year      int
	Now       string
}

func newTemplateData(f fileName, now time.Time) templateData {
	name := f.stem
	if name == "" {
		name = strings.TrimPrefix(f.base, ".")
		name, _, _ = strings.Cut(name, ".")
	}
	contextName := strings.Replace(name, "Provider", "", 1) + "Context"
	return templateData{
		File:      f.base,
		Name:      name,
		Lower:     strings.ToLower(name),
		Upper:     strings.ToUpper(name),
		Interface: "I" + capitalize(name),
		Context:   contextName,
		Hook:      "use" + strings.Replace(contextName, "Context", "", 1),
		Year:      now.Year(),
		Now:       now.UTC().Format(time.RFC3339),
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func genericFallback(name string) string {
	return "// " + name + "\n"
}

var funcs = template.FuncMap{
	"bt": func() string { return "`" },
}

var generators = func() map[Kind]*template.Template {
	out := make(map[Kind]*template.Template, len(templateSources))
	for kind, src := range templateSources {
		out[kind] = template.Must(template.New(kind.String()).Delims("[[", "]]").Funcs(funcs).Parse(src))
	}
	return out
}()
