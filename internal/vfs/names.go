package vfs

import (
	"fmt"
	"math/rand"
	"strings"
)

var (
	componentNames = []string{"Header", "Footer", "Button", "Modal", "Card", "Input", "Table", "Sidebar", "Navbar", "Dropdown", "Tooltip", "Avatar", "Badge", "Alert", "Skeleton"}
	hookNames      = []string{"useAuth", "useTheme", "useFetch", "useWindowSize", "useLocalStorage", "useDebounce", "useToggle", "useOnClickOutside"}
	utilNames      = []string{"dateUtils", "stringHelpers", "validation", "formatters", "apiClient", "storage", "constants", "types", "mapper"}
	serviceNames   = []string{"user", "auth", "product", "order", "payment"}
	genericFiles   = []string{"setupTests.ts", "global.d.ts", ".eslintrc.json", "README.md", "CHANGELOG.md"}
	testSuffixes   = []string{".test", ".spec"}
	styleSuffixes  = []string{".module.css", ".scss", ".styled.ts"}
	folderNames    = []string{"components", "hooks", "utils", "services", "contexts", "assets", "styles", "types", "config", "NewFeature", "OldCode", "Legacy"}
)

// DefaultFolderFile is the file every generated folder starts with.
const DefaultFolderFile = "index.ts"

func pick(rnd *rand.Rand, items []string) string {
	return items[rnd.Intn(len(items))]
}

// fileNameFor picks a file name that fits the parent folder.
func fileNameFor(rnd *rand.Rand, parentName string) string {
	parent := strings.ToLower(parentName)
	switch {
	case strings.Contains(parent, "component") || parent == "src" || strings.Contains(parent, "feature"):
		base := pick(rnd, componentNames)
		roll := rnd.Float64()
		if roll < 0.3 {
			return base + pick(rnd, styleSuffixes)
		}
		if roll < 0.5 {
			return base + pick(rnd, testSuffixes) + ".tsx"
		}
		return base + ".tsx"
	case strings.Contains(parent, "hook") || parent == "lib":
		return pick(rnd, hookNames) + ".ts"
	case strings.Contains(parent, "util") || strings.Contains(parent, "helper"):
		return pick(rnd, utilNames) + ".ts"
	case strings.Contains(parent, "api") || strings.Contains(parent, "service"):
		return pick(rnd, serviceNames) + "Service.ts"
	default:
		return pick(rnd, genericFiles)
	}
}

func folderNameFor(rnd *rand.Rand) string {
	name := pick(rnd, folderNames)
	if name == "NewFeature" {
		name = fmt.Sprintf("Feature%d", rnd.Intn(100))
	}
	return name
}

func uniqueFolderName(parent *Node, name string) string {
	final := name
	for i := 1; hasChild(parent, final); i++ {
		final = fmt.Sprintf("%s%d", name, i)
	}
	return final
}

func uniqueFileName(parent *Node, name string) string {
	final := name
	for i := 1; hasChild(parent, final); i++ {
		final = fmt.Sprintf("Copy%d_%s", i, name)
	}
	return final
}

// RenameStrategy rewrites the base of a file name.
type RenameStrategy int

const (
	RenameVersion RenameStrategy = iota
	RenameLegacy
	RenameTest
	RenameUsePrefix
	RenameUnderscore
	RenameController
)

// RenameStrategies lists every strategy in draw order.
var RenameStrategies = []RenameStrategy{
	RenameVersion,
	RenameLegacy,
	RenameTest,
	RenameUsePrefix,
	RenameUnderscore,
	RenameController,
}

func (s RenameStrategy) String() string {
	switch s {
	case RenameVersion:
		return "version"
	case RenameLegacy:
		return "legacy"
	case RenameTest:
		return "test"
	case RenameUsePrefix:
		return "use"
	case RenameUnderscore:
		return "underscore"
	case RenameController:
		return "controller"
	default:
		return fmt.Sprintf("RenameStrategy(%d)", int(s))
	}
}

// SplitName splits a file name at its first dot.
func SplitName(name string) (base, ext string) {
	base, ext, _ = strings.Cut(name, ".")
	return base, ext
}

// ApplyRename applies strategy to name, keeping the extension.
func ApplyRename(name string, strategy RenameStrategy) string {
	base, ext := SplitName(name)
	switch strategy {
	case RenameVersion:
		base += "V2"
	case RenameLegacy:
		base += ".legacy"
	case RenameTest:
		base += ".test"
	case RenameUsePrefix:
		base = "Use" + base
	case RenameUnderscore:
		base = "_" + base
	case RenameController:
		base += "Controller"
	}
	if ext == "" {
		return base
	}
	return base + "." + ext
}
