package client

import "strings"

// resourcePath joins the optional path prefix, the resource-kind segment, and
// the optional path suffix with single separators. Empty segments contribute
// nothing.
func resourcePath(prefix, kind, suffix string) string {
	segments := make([]string, 0, 3)

	for _, segment := range []string{prefix, kind, suffix} {
		segment = strings.Trim(segment, "/")
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	return strings.Join(segments, "/")
}
