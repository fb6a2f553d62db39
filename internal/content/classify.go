// Package content generates plausible file contents from file names.
package content

import (
	"path"
	"strings"
	"unicode"
)

// Kind is the closed set of content generators.
type Kind int

const (
	KindGeneric Kind = iota
	KindComponent
	KindContext
	KindLayout
	KindForm
	KindList
	KindDashboard
	KindHook
	KindSlice
	KindStore
	KindService
	KindTypeDefinition
	KindUtility
	KindStyle
	KindJSON
	KindHTML
	KindSQL
	KindYAML
	KindEnv
	KindMarkdown
	KindPackageJSON
	KindTSConfig
	KindGitIgnore
)

var kindNames = map[Kind]string{
	KindGeneric:        "generic",
	KindComponent:      "component",
	KindContext:        "context",
	KindLayout:         "layout",
	KindForm:           "form",
	KindList:           "list",
	KindDashboard:      "dashboard",
	KindHook:           "hook",
	KindSlice:          "slice",
	KindStore:          "store",
	KindService:        "service",
	KindTypeDefinition: "types",
	KindUtility:        "utility",
	KindStyle:          "style",
	KindJSON:           "json",
	KindHTML:           "html",
	KindSQL:            "sql",
	KindYAML:           "yaml",
	KindEnv:            "env",
	KindMarkdown:       "markdown",
	KindPackageJSON:    "package.json",
	KindTSConfig:       "tsconfig.json",
	KindGitIgnore:      "gitignore",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

type rule struct {
	kind  Kind
	match func(f fileName) bool
}

type fileName struct {
	full string
	base string
	stem string
	ext  string
}

func parseName(p string) fileName {
	base := path.Base(p)
	stem, _, _ := strings.Cut(base, ".")
	ext := ""
	if i := strings.LastIndex(base, "."); i >= 0 {
		ext = strings.ToLower(base[i+1:])
	}
	return fileName{full: p, base: base, stem: stem, ext: ext}
}

func exact(name string) func(fileName) bool {
	return func(f fileName) bool { return f.base == name }
}

func extIn(exts ...string) func(fileName) bool {
	return func(f fileName) bool {
		for _, e := range exts {
			if f.ext == e {
				return true
			}
		}
		return false
	}
}

func both(a, b func(fileName) bool) func(fileName) bool {
	return func(f fileName) bool { return a(f) && b(f) }
}

func stemSuffix(suffixes ...string) func(fileName) bool {
	return func(f fileName) bool {
		for _, s := range suffixes {
			if strings.HasSuffix(f.stem, s) {
				return true
			}
		}
		return false
	}
}

var (
	isReact  = extIn("tsx", "jsx")
	isScript = extIn("ts", "js")
)

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{KindPackageJSON, exact("package.json")},
	{KindTSConfig, exact("tsconfig.json")},
	{KindGitIgnore, exact(".gitignore")},

	{KindContext, both(isReact, stemSuffix("Context", "Provider"))},
	{KindLayout, both(isReact, stemSuffix("Layout"))},
	{KindForm, both(isReact, stemSuffix("Form"))},
	{KindList, both(isReact, stemSuffix("List", "Table"))},

	{KindHook, both(isScript, func(f fileName) bool {
		rest, found := strings.CutPrefix(f.stem, "use")
		return found && rest != "" && unicode.IsUpper([]rune(rest)[0])
	})},
	{KindSlice, both(isScript, stemSuffix("Slice", "Reducer"))},
	{KindStore, both(isScript, stemSuffix("Store"))},
	{KindService, both(isScript, func(f fileName) bool {
		return strings.Contains(f.stem, "API") || strings.Contains(f.stem, "Service") || strings.Contains(f.full, "api/")
	})},
	{KindTypeDefinition, both(isScript, stemSuffix("Types", "Interface"))},

	{KindStyle, extIn("css", "scss", "less")},
	{KindJSON, extIn("json")},
	{KindHTML, extIn("html")},
	{KindSQL, extIn("sql")},
	{KindYAML, extIn("yml", "yaml")},
	{KindEnv, extIn("env")},
	{KindMarkdown, extIn("md")},
}

// fallbacks are the random choices for script files no rule recognizes.
var fallbacks = map[string][]Kind{
	"tsx": {KindComponent, KindForm, KindList, KindDashboard},
	"jsx": {KindComponent, KindForm, KindList, KindDashboard},
	"ts":  {KindUtility, KindTypeDefinition, KindService},
	"js":  {KindUtility, KindTypeDefinition, KindService},
}

// Classify resolves a file name (optionally with a slash separated path) to
// a generator. ok is false when the name only narrows the choice to a random
// fallback set; kind is then the first member of that set.
func Classify(name string) (kind Kind, ok bool) {
	f := parseName(name)
	for _, r := range rules {
		if r.match(f) {
			return r.kind, true
		}
	}
	if set, found := fallbacks[f.ext]; found {
		return set[0], false
	}
	return KindGeneric, true
}

// Fallbacks returns the random choices for an unmatched name, or nil.
func Fallbacks(name string) []Kind {
	set := fallbacks[parseName(name).ext]
	if set == nil {
		return nil
	}
	return append([]Kind(nil), set...)
}
