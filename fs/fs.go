// Package fs stores crawled documents as YAML files on disk.
package fs

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// URLToPath converts a lecture URL to a relative file path under a
// directory named after the host. The file name keeps the page extension
// and a query string adds a short hash, so distinct pages get distinct files.
// Example: http://curric.example.com/r13/lectures/loops.html → curric.example.com/r13/lectures/loops.html.yaml
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	host := strings.ReplaceAll(u.Host, ":", "_")
	if host == "" {
		host = "_"
	}

	// Cleaning a rooted path drops any ".." segments.
	p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	if p == "" || strings.HasSuffix(u.Path, "/") {
		p = path.Join(p, "index")
	}
	if u.RawQuery != "" {
		p += "-" + shortHash(u.RawQuery)
	}

	return path.Join(host, p) + ".yaml", nil
}

// withHash inserts a short hash of key before the .yaml extension.
func withHash(relPath, key string) string {
	return strings.TrimSuffix(relPath, ".yaml") + "-" + shortHash(key) + ".yaml"
}

func shortHash(s string) string {
	return fmt.Sprintf("%08x", uint32(xxhash.Sum64String(s)))
}
