package generator

import (
	"path/filepath"
	"sort"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// collectThemeAssets lists the asset files declared by a theme selection,
// variant entries overriding the base manifest by key.
func collectThemeAssets(selection *gotheme.Selection) []string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}

	assets := selection.Manifest.Assets.Files
	if variant := strings.TrimSpace(selection.Variant); variant != "" {
		if v, ok := selection.Manifest.Variants[variant]; ok && len(v.Assets.Files) > 0 {
			merged := make(map[string]string, len(selection.Manifest.Assets.Files)+len(v.Assets.Files))
			for key, file := range selection.Manifest.Assets.Files {
				merged[key] = file
			}
			for key, file := range v.Assets.Files {
				merged[key] = file
			}
			assets = merged
		}
	}

	seen := map[string]struct{}{}
	var out []string
	for _, asset := range assets {
		asset = strings.TrimPrefix(strings.TrimSpace(asset), "/")
		if asset == "" {
			continue
		}
		if _, ok := seen[asset]; ok {
			continue
		}
		seen[asset] = struct{}{}
		out = append(out, filepath.ToSlash(asset))
	}
	sort.Strings(out)
	return out
}

func detectAssetContentType(asset string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(asset), "."))
	switch ext {
	case "css":
		return "text/css"
	case "js":
		return "application/javascript"
	case "json":
		return "application/json"
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
