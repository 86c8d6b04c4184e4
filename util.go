package web

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
)

// ByteSizeToFriendlyString returns the provided byte length as a human-friendly
// string e.g. 1024 => 1.00 kB.
func ByteSizeToFriendlyString(length int64) string {
	floatLength := float64(length)

	prefixes := []string{"B", "kB", "MB", "GB", "TB"}
	prefixIndex := 0

	for floatLength >= 1024 && prefixIndex < len(prefixes)-1 {
		floatLength /= 1024
		prefixIndex++
	}

	return fmt.Sprintf("%.2f %v", floatLength, prefixes[prefixIndex])
}

// UnmarshalFromResponse unmarshals the body of an http.Response to a model.
func UnmarshalFromResponse(res *http.Response, model interface{}) error {
	raw, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, model)
}

// normalizePath converts backslashes to slashes, drops empty and blank
// segments, and returns the remaining segments joined by single slashes with
// no leading or trailing slash.
func normalizePath(path string) string {
	parts := strings.Split(strings.ReplaceAll(path, "\\", "/"), "/")
	segments := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			segments = append(segments, part)
		}
	}

	return strings.Join(segments, "/")
}

func joinPath(prefix, path string) string {
	return normalizePath(prefix + "/" + path)
}

// purifyPath returns the path in the form expected by mux, i.e. with a single
// leading slash.
func purifyPath(path string) string {
	return "/" + normalizePath(path)
}
