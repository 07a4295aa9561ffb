package domain

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// RuleKind names a category of content check. Built-in kinds match the keys
// used in the schema's validations section.
type RuleKind string

const (
	RuleNotNull         RuleKind = "not_null"
	RuleDateFormat      RuleKind = "date_format"
	RuleMaxStringLength RuleKind = "string_length"
)

// builtinKinds lists the built-in rule kinds in evaluation order.
var builtinKinds = []RuleKind{RuleNotNull, RuleDateFormat, RuleMaxStringLength}

// DefaultDatePattern is the ISO YYYY-MM-DD grammar. It checks syntax only:
// 2021-02-30 is accepted.
const DefaultDatePattern = `^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`

// Params holds rule-specific scalars declared next to a target column.
type Params map[string]any

// Int returns the named parameter as an int. YAML decodes integers as int,
// JSON (the schema cache) as float64; both are accepted when integral.
func (p Params) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	}
	return 0, false
}

// String returns the named parameter as a string.
func (p Params) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// RuleTarget is one column a rule applies to, with its parameters.
type RuleTarget struct {
	Column string `json:"column"`
	Params Params `json:"params,omitempty"`
}

// RuleSpec is one declared rule and the columns it targets.
type RuleSpec struct {
	Kind    RuleKind     `json:"kind"`
	Targets []RuleTarget `json:"targets"`
}

// Schema is the typed, validated form of a schema mapping. It is built once
// by BuildSchema and shared read-only by every check.
type Schema struct {
	Filename            string     `json:"filename,omitempty"`
	FileExtension       string     `json:"file_extension,omitempty"`
	Separator           rune       `json:"separator"`
	Encoding            string     `json:"encoding,omitempty"`
	ExpectedColumnCount int        `json:"expected_column_count"`
	ExpectedColumns     []string   `json:"expected_columns"`
	Rules               []RuleSpec `json:"rules"`

	// Set by the schema reader, not by BuildSchema.
	Source      string `json:"source,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// HasColumn reports whether name (already normalized) is declared.
func (s *Schema) HasColumn(name string) bool {
	for _, c := range s.ExpectedColumns {
		if c == name {
			return true
		}
	}
	return false
}

// RuleCount returns the number of rule x target pairs the schema declares.
func (s *Schema) RuleCount() int {
	n := 0
	for _, r := range s.Rules {
		n += len(r.Targets)
	}
	return n
}

// NormalizeColumn returns the canonical form of a column name: Unicode NFC,
// surrounding space trimmed, upper case. A Caser keeps state, so one is
// made per call.
func NormalizeColumn(name string) string {
	return cases.Upper(language.Und).String(norm.NFC.String(strings.TrimSpace(name)))
}

// NormalizeHeader normalizes every name of a dataset header.
func NormalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = NormalizeColumn(h)
	}
	return out
}

// BuildSchema turns a parsed schema mapping into a Schema. Any problem is
// returned as a *ConfigurationError.
func BuildSchema(raw map[string]any) (*Schema, error) {
	if len(raw) == 0 {
		return nil, configError("", "schema is empty")
	}
	meta, ok := asMapping(raw["metadata"])
	if !ok || len(meta) == 0 {
		return nil, configError("metadata", "section is missing")
	}

	// 1. Required sections
	var missing []Issue
	file, ok := asMapping(meta["file"])
	if !ok {
		missing = append(missing, Issue{Path: "metadata.file", Message: "section is missing"})
	}
	structure, ok := asMapping(meta["structure"])
	if !ok {
		missing = append(missing, Issue{Path: "metadata.structure", Message: "section is missing"})
	}
	columns, ok := meta["columns"].([]any)
	if !ok || len(columns) == 0 {
		missing = append(missing, Issue{Path: "metadata.columns", Message: "section is missing or empty"})
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Issues: missing}
	}

	s := &Schema{Separator: ','}
	var issues []Issue
	add := func(path, format string, args ...any) {
		issues = append(issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	// 2. File descriptor
	s.Filename = scalarString(file["filename"])
	s.FileExtension = strings.TrimPrefix(scalarString(file["extension"]), ".")
	s.Encoding = scalarString(file["encoding"])
	if sep, present := file["separator"]; present && sep != nil {
		str := scalarString(sep)
		if utf8.RuneCountInString(str) != 1 {
			add("metadata.file.separator", "must be a single character, got %q", str)
		} else if r, _ := utf8.DecodeRuneInString(str); !validSeparator(r) {
			add("metadata.file.separator", "%q cannot separate fields", str)
		} else {
			s.Separator = r
		}
	}

	// 3. Column count
	count, ok := Params(structure).Int("num_columns")
	if !ok || count <= 0 {
		add("metadata.structure.num_columns", "must be a positive integer, got %v", structure["num_columns"])
	}
	s.ExpectedColumnCount = count

	// 4. Columns, normalized once
	seen := make(map[string]int, len(columns))
	for i, c := range columns {
		path := fmt.Sprintf("metadata.columns[%d]", i)
		name, ok := entryName(c)
		if !ok {
			add(path+".name", "must be a non-empty string")
			continue
		}
		if prev, dup := seen[name]; dup {
			add(path+".name", "duplicate column %q (also at index %d)", name, prev)
			continue
		}
		seen[name] = i
		s.ExpectedColumns = append(s.ExpectedColumns, name)
	}
	if count > 0 && len(columns) != count {
		add("metadata.structure.num_columns", "declares %d columns but %d are listed", count, len(columns))
	}

	// 5. Rules
	section, path := meta, "metadata"
	if v, ok := asMapping(meta["validations"]); ok {
		section, path = v, "metadata.validations"
	}
	for _, kind := range ruleKinds(section, path == "metadata.validations") {
		entries, present := section[string(kind)]
		if !present || entries == nil {
			continue
		}
		kindPath := path + "." + string(kind)
		list, ok := entries.([]any)
		if !ok {
			add(kindPath, "must be a sequence of {name: ...} entries")
			continue
		}
		spec := RuleSpec{Kind: kind}
		for i, e := range list {
			entryPath := fmt.Sprintf("%s[%d]", kindPath, i)
			target, ok := buildTarget(e)
			if !ok {
				add(entryPath+".name", "must be a non-empty string")
				continue
			}
			if _, declared := seen[target.Column]; !declared {
				add(entryPath+".name", "column %q is not declared in metadata.columns", target.Column)
				continue
			}
			if msg := checkBuiltinParams(kind, target.Params); msg != "" {
				add(entryPath, "%s", msg)
				continue
			}
			spec.Targets = append(spec.Targets, target)
		}
		if len(spec.Targets) > 0 {
			s.Rules = append(s.Rules, spec)
		}
	}

	if len(issues) > 0 {
		return nil, &ConfigurationError{Issues: issues}
	}
	return s, nil
}

// ruleKinds returns the kinds to read from a rules section: built-ins first,
// then (only under validations) any other key in lexical order.
func ruleKinds(section map[string]any, extensible bool) []RuleKind {
	kinds := append([]RuleKind(nil), builtinKinds...)
	if !extensible {
		return kinds
	}
	var extra []string
	for k := range section {
		if !isBuiltin(RuleKind(k)) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		kinds = append(kinds, RuleKind(k))
	}
	return kinds
}

func isBuiltin(k RuleKind) bool {
	for _, b := range builtinKinds {
		if b == k {
			return true
		}
	}
	return false
}

func checkBuiltinParams(kind RuleKind, p Params) string {
	switch kind {
	case RuleMaxStringLength:
		n, ok := p.Int("length")
		if !ok || n < 0 {
			return fmt.Sprintf("length must be a non-negative integer, got %v", p["length"])
		}
	case RuleDateFormat:
		if raw, present := p["pattern"]; present {
			pattern, ok := raw.(string)
			if !ok || pattern == "" {
				return fmt.Sprintf("pattern must be a non-empty string, got %v", raw)
			}
			if _, err := regexp.Compile(pattern); err != nil {
				return fmt.Sprintf("pattern does not compile: %v", err)
			}
		}
	}
	return ""
}

func buildTarget(entry any) (RuleTarget, bool) {
	m, ok := asMapping(entry)
	if !ok {
		return RuleTarget{}, false
	}
	name, ok := entryName(m)
	if !ok {
		return RuleTarget{}, false
	}
	t := RuleTarget{Column: name}
	for k, v := range m {
		if k == "name" {
			continue
		}
		if t.Params == nil {
			t.Params = Params{}
		}
		t.Params[k] = v
	}
	return t, true
}

func entryName(entry any) (string, bool) {
	m, ok := asMapping(entry)
	if !ok {
		return "", false
	}
	name := NormalizeColumn(scalarString(m["name"]))
	return name, name != ""
}

func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

// validSeparator mirrors the delimiters a CSV reader accepts: no quote, no
// line break, no NUL and no invalid rune.
func validSeparator(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError && utf8.ValidRune(r)
}
