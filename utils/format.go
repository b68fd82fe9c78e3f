package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FormatTextureName turns a texture file name into its menu label:
// "ovals.png" becomes "OVALS".
func FormatTextureName(fileName string) string {
	name := filepath.Base(fileName)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return strings.ToUpper(name)
}

// FormatFileSize renders a byte count for the preview panel. Unknown or
// zero sizes print as an em dash.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes <= 0:
		return "—"
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}
