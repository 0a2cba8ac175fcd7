package waygate

import (
	"net/url"
	"sort"
	"strings"
)

// BuildURL merges a destination path and a parameter mapping into a single
// request target. With no params the path is returned unchanged. Pairs are
// percent-encoded and appended with "?", or "&" when the path already has
// a query component. Keys are emitted in sorted order so the result is
// deterministic.
func BuildURL(path string, params Params) string {
	if len(params) == 0 {
		return path
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(path)
	if strings.Contains(path, "?") {
		sb.WriteByte('&')
	} else {
		sb.WriteByte('?')
	}
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(params[k].encode()))
	}
	return sb.String()
}
