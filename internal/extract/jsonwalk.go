package extract

import (
	"encoding/json"
	"reflect"
	"regexp"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const (
	jsonWalkMaxTitles = 200
	jsonWalkMaxDepth  = 8
)

// titleRule is one typed field-extraction probe. Rules run in priority
// order; the first matching string field supplies the title. Generic "name"
// fields are a weaker signal, so that rule carries a length window.
type titleRule struct {
	key    string
	minLen int
	maxLen int
}

var jsonTitleRules = []titleRule{
	{key: "jobTitle"},
	{key: "title"},
	{key: "positionTitle"},
	{key: "position_title"},
	{key: "jobOpeningTitle"},
	{key: "JobTitle"},
	{key: "Position"},
	{key: "JobOpeningTitle"},
	{key: "jobRequisitionTitle"},
	{key: "JobRequisitionTitle"},
	{key: "RequisitionTitle"},
	{key: "requisitionTitle"},
	{key: "name", minLen: 6, maxLen: 120},
}

// Numeric id-like fields that mark an object as a job record.
var jsonIDKeys = []string{"jobId", "job_id", "requisitionId", "requisition_id", "JobOpeningId", "id"}

var requisitionNumberRe = regexp.MustCompile(`\b\d{5,7}\b`)
var allDigitsRe = regexp.MustCompile(`^\d+$`)

func titleFromRules(obj map[string]any, rules []titleRule) string {
	for _, r := range rules {
		s, ok := obj[r.key].(string)
		if !ok || s == "" {
			continue
		}
		if r.minLen > 0 && len(s) < r.minLen {
			continue
		}
		if r.maxLen > 0 && len(s) > r.maxLen {
			continue
		}
		return s
	}
	return ""
}

func hasNumericID(obj map[string]any) bool {
	for _, key := range jsonIDKeys {
		switch v := obj[key].(type) {
		case float64:
			return true
		case json.Number:
			return true
		case string:
			if key == "JobOpeningId" && allDigitsRe.MatchString(v) {
				return true
			}
		}
	}
	return false
}

// hasJobSignal guards against picking up unrelated "title"/"name" fields on
// non-job objects: require an id-like field, a 5-7 digit requisition-looking
// number somewhere in the serialized object, or a plausible location string.
func hasJobSignal(obj map[string]any) bool {
	if hasNumericID(obj) {
		return true
	}
	if raw, err := json.Marshal(obj); err == nil {
		if len(raw) > 5000 {
			raw = raw[:5000]
		}
		if requisitionNumberRe.Match(raw) {
			return true
		}
	}
	if loc, ok := obj["location"].(string); ok && len(loc) > 2 {
		return true
	}
	return false
}

// nodeIdentity returns an identity key for maps and slices so the walk can
// skip nodes it has already visited. Keyed by reference, not value equality.
func nodeIdentity(node any) (uintptr, bool) {
	rv := reflect.ValueOf(node)
	switch rv.Kind() {
	case reflect.Map:
		return rv.Pointer(), !rv.IsNil()
	case reflect.Slice:
		return rv.Pointer(), rv.Len() > 0
	default:
		return 0, false
	}
}

// CollectJSONTitles walks an arbitrary decoded JSON value depth-first and
// gathers raw title candidates from objects that look like job records.
// Bounded to depth 8 and 200 titles, with reference-identity cycle
// protection for self-referential structures.
func CollectJSONTitles(input any) []string {
	var out []string
	visited := mapset.NewThreadUnsafeSet[uintptr]()

	var walk func(node any, depth int)
	walk = func(node any, depth int) {
		if len(out) >= jsonWalkMaxTitles || depth > jsonWalkMaxDepth || node == nil {
			return
		}
		if id, ok := nodeIdentity(node); ok {
			if visited.Contains(id) {
				return
			}
			visited.Add(id)
		}

		switch n := node.(type) {
		case []any:
			for _, item := range n {
				walk(item, depth+1)
			}
		case map[string]any:
			if title := titleFromRules(n, jsonTitleRules); title != "" && hasJobSignal(n) {
				out = append(out, title)
			}
			// Sorted keys keep the output order deterministic.
			for _, k := range sortedKeys(n) {
				walk(n[k], depth+1)
			}
		}
	}

	walk(input, 0)
	return out
}
