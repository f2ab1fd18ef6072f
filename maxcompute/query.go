package maxcompute

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Params carries values for the {name} placeholders of a query.
type Params map[string]string

// placeholderPattern matches {name} placeholders. The double-brace
// alternative captures scheduler macros like {{ .DSTART }} so they pass
// through untouched.
var placeholderPattern = regexp.MustCompile(`\{\{[^{}]*\}\}|\{([A-Za-z_]\w*)\}`)

// Format substitutes every {name} placeholder in query with its value from
// params. A placeholder with no value fails, catching typos before the query
// reaches the warehouse.
func Format(query string, params Params) (string, error) {
	var missing []string
	seen := make(map[string]bool)
	out := placeholderPattern.ReplaceAllStringFunc(query, func(m string) string {
		if strings.HasPrefix(m, "{{") {
			return m
		}
		name := m[1 : len(m)-1]
		if val, ok := params[name]; ok {
			return val
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return m
	})
	if len(missing) > 0 {
		return "", errors.Errorf("unbound query parameters: %s", strings.Join(missing, ", "))
	}
	return out, nil
}

var (
	stmtSplitPattern = regexp.MustCompile(`;(\n+|$)`)
	commentPattern   = regexp.MustCompile(`(?m)\s*--.*\n?`)
	setStmtPattern   = regexp.MustCompile(`(?i)^set`)
)

// SeparateHeadersAndQuery splits the set statements off the top of a script
// from the producing query, so an INSERT wrapper lands around the query only.
func SeparateHeadersAndQuery(query string) (string, string) {
	query = strings.TrimSpace(query)

	headers := []string{}
	remaining := []string{}
	for _, stmt := range stmtSplitPattern.Split(query, -1) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if setStmtPattern.MatchString(commentPattern.ReplaceAllString(stmt, "")) {
			headers = append(headers, stmt)
		} else {
			remaining = append(remaining, stmt)
		}
	}

	headerStr := ""
	if len(headers) > 0 {
		headerStr = strings.Join(headers, ";\n") + ";"
	}
	return headerStr, strings.Join(remaining, ";\n")
}

// ConstructQueryWithOrderedColumns wraps the query so its projection follows
// the destination's column order. Reserved keywords get backtick quotes.
func ConstructQueryWithOrderedColumns(query string, orderedColumns []string) string {
	columns := make([]string, len(orderedColumns))
	for i, col := range orderedColumns {
		columns[i] = sanitizeColumnName(col)
	}
	return "SELECT " + strings.Join(columns, ", ") + " FROM (\n" + query + "\n)"
}
