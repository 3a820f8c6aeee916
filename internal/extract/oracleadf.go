package extract

import (
	"strconv"

	"go-jobwatch-engine/internal/jobs"
)

// Oracle HCM recruitingCEJobRequisitions responses nest the actual postings:
// items[0] is usually the finder/search metadata, and the requisitions live
// in items[0].requisitionList (an array, or an object wrapping an items /
// requisitionList array). Key casing varies across tenants.

const oracleADFMaxDepth = 5

var oracleTitleRules = []titleRule{
	{key: "RequisitionTitle"},
	{key: "requisitionTitle"},
	{key: "title"},
	{key: "Title"},
	{key: "JobTitle"},
	{key: "jobTitle"},
}

var oracleIDKeys = []string{"RequisitionId", "requisitionId", "Id", "id"}

var oracleListKeys = []string{"requisitionList", "RequisitionList", "requisitions", "results"}

type oracleCollector struct {
	titles  []string
	records []jobs.JobRecord
}

func (c *oracleCollector) pushTitle(rec map[string]any) {
	title := titleFromRules(rec, oracleTitleRules)
	if title == "" {
		// Nested Information.RequisitionTitle shape.
		if info, ok := rec["Information"].(map[string]any); ok {
			title, _ = info["RequisitionTitle"].(string)
		}
	}
	if title == "" || len(title) < 2 || len(title) > 300 {
		return
	}
	c.titles = append(c.titles, title)

	var id string
	for _, key := range oracleIDKeys {
		switch v := rec[key].(type) {
		case string:
			id = v
		case float64:
			id = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if id != "" {
			break
		}
	}
	if id != "" {
		c.records = append(c.records, jobs.JobRecord{Title: title, ID: id})
	} else {
		c.records = append(c.records, jobs.JobRecord{Title: title})
	}
}

func hasTitleKey(obj map[string]any) bool {
	for _, k := range []string{"RequisitionTitle", "requisitionTitle", "title", "JobTitle"} {
		if _, ok := obj[k]; ok {
			return true
		}
	}
	return false
}

func (c *oracleCollector) walk(data any, depth int) {
	if depth > oracleADFMaxDepth {
		return
	}
	if arr, ok := data.([]any); ok {
		for _, elem := range arr {
			c.walk(elem, depth+1)
		}
		return
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return
	}

	if items, ok := obj["items"].([]any); ok {
		for _, item := range items {
			rec, ok := item.(map[string]any)
			if !ok {
				continue
			}
			c.pushTitle(rec)

			var reqList any
			for _, key := range oracleListKeys {
				if v, ok := rec[key]; ok && v != nil {
					reqList = v
					break
				}
			}
			switch rl := reqList.(type) {
			case []any:
				for _, req := range rl {
					if reqObj, ok := req.(map[string]any); ok {
						c.pushTitle(reqObj)
						c.walkChildren(reqObj, depth+1)
					}
				}
			case map[string]any:
				inner, ok := rl["items"].([]any)
				if !ok {
					inner, ok = rl["requisitionList"].([]any)
				}
				if ok {
					for _, req := range inner {
						if reqObj, ok := req.(map[string]any); ok {
							c.pushTitle(reqObj)
						}
					}
				} else {
					c.walk(rl, depth+1)
				}
			}

			// Any other array property on this item might hold the
			// requisitions under an unexpected key casing.
			for _, key := range sortedKeys(rec) {
				if key == "requisitionList" || key == "RequisitionList" || key == "requisitions" || key == "results" {
					continue
				}
				arr, ok := rec[key].([]any)
				if !ok || len(arr) == 0 {
					continue
				}
				first, ok := arr[0].(map[string]any)
				if !ok || !hasTitleKey(first) {
					continue
				}
				for _, req := range arr {
					if reqObj, ok := req.(map[string]any); ok {
						c.pushTitle(reqObj)
					}
				}
			}
		}
		return
	}

	if reqList, ok := obj["requisitionList"].([]any); ok {
		for _, req := range reqList {
			if reqObj, ok := req.(map[string]any); ok {
				c.pushTitle(reqObj)
			}
		}
		return
	}
	if reqList, ok := obj["RequisitionList"].([]any); ok {
		for _, req := range reqList {
			if reqObj, ok := req.(map[string]any); ok {
				c.pushTitle(reqObj)
			}
		}
		return
	}

	if _, ok := obj["RequisitionTitle"].(string); ok {
		c.pushTitle(obj)
	} else if _, ok := obj["requisitionTitle"].(string); ok {
		c.pushTitle(obj)
	}

	c.walkChildren(obj, depth)
}

// walkChildren recurses into nested objects and arrays without re-inspecting
// the node itself (which the caller has already pushed or ruled out).
func (c *oracleCollector) walkChildren(obj map[string]any, depth int) {
	if depth > oracleADFMaxDepth {
		return
	}
	for _, key := range sortedKeys(obj) {
		if key == "Information" {
			continue // already consulted by pushTitle
		}
		switch v := obj[key].(type) {
		case map[string]any:
			c.walk(v, depth+1)
		case []any:
			for _, elem := range v {
				if elemObj, ok := elem.(map[string]any); ok {
					c.walk(elemObj, depth+1)
				}
			}
		}
	}
}

// OracleADFTitles extracts requisition titles (and ids when present) from an
// Oracle ADF recruitingCEJobRequisitions response, in document order.
func OracleADFTitles(data any) ([]string, []jobs.JobRecord) {
	c := &oracleCollector{}
	c.walk(data, 0)
	return c.titles, c.records
}
