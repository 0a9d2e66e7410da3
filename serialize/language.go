package serialize

import (
	"path/filepath"
	"strings"
)

// languages maps file extensions to the tag printed next to the file name
// and used for code fences.
var languages = map[string]string{
	".c":     "c",
	".cpp":   "cpp",
	".cs":    "csharp",
	".css":   "css",
	".go":    "go",
	".h":     "c",
	".html":  "html",
	".java":  "java",
	".js":    "javascript",
	".json":  "json",
	".jsx":   "javascript",
	".kt":    "kotlin",
	".md":    "markdown",
	".php":   "php",
	".py":    "python",
	".rb":    "ruby",
	".rs":    "rust",
	".sh":    "shell",
	".sql":   "sql",
	".swift": "swift",
	".toml":  "toml",
	".ts":    "typescript",
	".tsx":   "typescript",
	".xml":   "xml",
	".yaml":  "yaml",
	".yml":   "yaml",
}

// Language infers the language tag from a file name's extension. Unknown
// extensions fall back to "text".
func Language(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if lang, ok := languages[ext]; ok {
		return lang
	}
	return "text"
}
