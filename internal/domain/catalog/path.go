package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kailas-cloud/iconhub/internal/domain"
)

// AssetsPrefix is the leading part of every icon asset path.
const AssetsPrefix = "/assets/"

// AssetPath joins URL segments into an icon asset path.
// Empty segments are dropped.
func AssetPath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return AssetsPrefix + strings.Join(parts, "/")
}

// GithubURL maps an asset path to its raw file URL under base.
func GithubURL(base, assetPath string) string {
	if base == "" {
		base = domain.DefaultAssetsBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	clean := strings.TrimPrefix(assetPath, AssetsPrefix)
	clean = strings.TrimPrefix(clean, "/")
	return base + clean
}

// Segment returns the i-th "/"-delimited part of path, counting the empty
// leading part as 0. Out-of-range indexes yield "".
// Segment("/rounded/action", 1) → "rounded"
func Segment(path string, i int) string {
	parts := strings.Split(path, "/")
	if i < 0 || i >= len(parts) {
		return ""
	}
	return parts[i]
}

// depthOf counts the non-empty segments of a canonical node path.
func depthOf(path string) (int, error) {
	if !strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") {
		return 0, fmt.Errorf("%w: %q must start and not end with /", domain.ErrInvalidPath, path)
	}
	parts := strings.Split(path[1:], "/")
	for _, p := range parts {
		if p == "" {
			return 0, fmt.Errorf("%w: %q has an empty segment", domain.ErrInvalidPath, path)
		}
	}
	return len(parts), nil
}

// ID derivations are deterministic so re-imports keep references stable.
func nodeID(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("iconhub:node:"+path)).String()
}

func iconID(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("iconhub:icon:"+path)).String()
}

// NodeID returns the identifier a node with the given path receives.
func NodeID(path string) string { return nodeID(path) }
