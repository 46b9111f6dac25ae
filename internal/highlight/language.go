package highlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// DetectLanguage returns the Chroma lexer alias for path, matched by file
// name and then by its lower-cased form. Rich (.ans) and plain text files
// and unknown types are "text", which Highlight leaves alone.
func DetectLanguage(path string) string {
	if path == "" {
		return "text"
	}
	base := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".ans", ".txt":
		return "text"
	}

	lex := lexers.Match(base)
	if lex == nil {
		lex = lexers.Match(strings.ToLower(base))
	}
	if lex == nil {
		return "text"
	}
	cfg := lex.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}
