package directory

import (
	"math"
	"strconv"
	"strings"

	"staff_reviews/internal/domain"
)

// Directory deployments disagree on field names; first match wins.
var employeeAliases = map[string][]string{
	"id":        {"id", "employee_id", "employeeId"},
	"name":      {"name", "full_name", "fullName", "display_name"},
	"job_title": {"job_title", "jobTitle", "title", "position"},
}

// mapEmployee reads an employee from a bare object or a {"data": {...}} envelope.
func mapEmployee(p map[string]any) (domain.Employee, bool) {
	if inner, ok := p["data"].(map[string]any); ok {
		p = inner
	}
	id := firstInt64Flexible(p, employeeAliases["id"]...)
	if id == nil {
		return domain.Employee{}, false
	}
	return domain.Employee{
		ID:       *id,
		Name:     firstNonEmpty(p, employeeAliases["name"]...),
		JobTitle: firstNonEmpty(p, employeeAliases["job_title"]...),
	}, true
}

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func firstNonEmpty(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if s, ok := lookupAny(m, p).(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// firstInt64Flexible: int64 from several paths (float64/int/string).
// Floats with a fraction or outside the int64 range are not ids.
func firstInt64Flexible(m map[string]any, paths ...string) *int64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
				continue
			}
			x := int64(v)
			return &x
		case int:
			x := int64(v)
			return &x
		case int64:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}
