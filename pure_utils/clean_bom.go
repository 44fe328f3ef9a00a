package pure_utils

import "strings"

const utf8Bom = "\uFEFF"

// TrimBom drops a leading UTF-8 byte order mark, as found in documents saved by some editors.
func TrimBom(s string) string {
	return strings.TrimPrefix(s, utf8Bom)
}
