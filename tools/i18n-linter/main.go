// Copyright (c) 2026 Aumiao Team
// Aumiao - command-line client for codemao.cn
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks that every message ID passed to i18n.T exists in the
// primary locale, that every locale defines the same IDs, and that
// translations agree on their fmt verbs.
//
// Run it from the repository root:
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
)

var (
	callRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)
	verbRe = regexp.MustCompile(`%[-+# 0]*[0-9]*(?:\.[0-9]+)?[a-zA-Z%]`)
)

// report is the outcome of one lint run.
type report struct {
	Undefined []string            // used in code, absent from the primary locale
	Missing   map[string][]string // locale file -> IDs it lacks
	Verbs     map[string][]string // locale file -> IDs whose verbs differ
	Orphaned  []string            // defined in the primary locale, never used
}

func (r report) failed() bool {
	return len(r.Undefined) > 0 || len(r.Missing) > 0 || len(r.Verbs) > 0
}

func main() {
	r, err := lint(".", localesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "i18n-linter: %v\n", err)
		os.Exit(1)
	}
	writeReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, locales string) (report, error) {
	r := report{Missing: map[string][]string{}, Verbs: map[string][]string{}}

	used, err := findUsedKeys(root)
	if err != nil {
		return r, fmt.Errorf("scan sources: %w", err)
	}
	primary, err := loadLocale(filepath.Join(locales, primaryLocale))
	if err != nil {
		return r, fmt.Errorf("load %s: %w", primaryLocale, err)
	}

	for id := range used {
		if _, ok := primary[id]; !ok {
			r.Undefined = append(r.Undefined, id)
		}
	}
	for id := range primary {
		if _, ok := used[id]; !ok {
			r.Orphaned = append(r.Orphaned, id)
		}
	}
	sort.Strings(r.Undefined)
	sort.Strings(r.Orphaned)

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, file := range files {
		name := filepath.Base(file)
		if name == primaryLocale {
			continue
		}
		other, err := loadLocale(file)
		if err != nil {
			return r, fmt.Errorf("load %s: %w", name, err)
		}
		for id, text := range primary {
			translated, ok := other[id]
			if !ok {
				r.Missing[name] = append(r.Missing[name], id)
				continue
			}
			if !sameVerbs(text, translated) {
				r.Verbs[name] = append(r.Verbs[name], id)
			}
		}
		sort.Strings(r.Missing[name])
		sort.Strings(r.Verbs[name])
		if len(r.Missing[name]) == 0 {
			delete(r.Missing, name)
		}
		if len(r.Verbs[name]) == 0 {
			delete(r.Verbs, name)
		}
	}
	return r, nil
}

func writeReport(w io.Writer, r report) {
	section := func(title string, ids []string) {
		if len(ids) == 0 {
			return
		}
		fmt.Fprintf(w, "%s:\n", title)
		for _, id := range ids {
			fmt.Fprintf(w, "  - %s\n", id)
		}
	}
	section("Used but not defined in "+primaryLocale, r.Undefined)
	for _, name := range sortedKeys(r.Missing) {
		section("Missing from "+name, r.Missing[name])
	}
	for _, name := range sortedKeys(r.Verbs) {
		section("Format verbs differ in "+name, r.Verbs[name])
	}
	section("Defined but never used (warning)", r.Orphaned)
	if !r.failed() {
		fmt.Fprintln(w, "All translation files are consistent.")
	}
}

// findUsedKeys collects the literal IDs passed to i18n.T in non-test Go
// sources below root.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (d.Name() == "tools" || strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range callRe.FindAllStringSubmatch(string(content), -1) {
			keys[m[1]] = struct{}{}
		}
		return nil
	})
	return keys, err
}

// loadLocale reads a locale file into a flat ID -> text map. Nested maps
// are joined with dots, the way go-i18n resolves them.
func loadLocale(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	flatten("", data, out)
	return out, nil
}

func flatten(prefix string, node any, out map[string]string) {
	switch v := node.(type) {
	case map[string]any:
		for k, val := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, val, out)
		}
	default:
		if prefix != "" {
			out[prefix] = fmt.Sprint(v)
		}
	}
}

func sameVerbs(a, b string) bool {
	va, vb := verbRe.FindAllString(a, -1), verbRe.FindAllString(b, -1)
	if len(va) != len(vb) {
		return false
	}
	for i := range va {
		if va[i] != vb[i] {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
