// Package highlight colors editor text with Chroma lexers and derives the
// UI palette from a Chroma theme.
package highlight

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/lucasb-eyer/go-colorful"
)

const reset = "\x1b[0m"

// Highlight returns text with 24-bit SGR colors for language in theme.
// Every reset is followed by the bgHex background so the editor's
// background survives token boundaries. Unknown languages and "text" are
// returned unchanged.
func Highlight(text, language, theme, bgHex string) string {
	if language == "" || language == "text" {
		return text
	}
	lex := lexers.Get(language)
	if lex == nil {
		return text
	}
	it, err := chroma.Coalesce(lex).Tokenise(nil, text)
	if err != nil {
		return text
	}
	sty := styles.Get(theme)
	bg := backgroundSGR(bgHex)

	var b strings.Builder
	b.Grow(len(text) * 2)
	b.WriteString(bg)
	// Lexers may append a newline; emit exactly len(text) bytes.
	left := len(text)
	for tok := it(); tok != chroma.EOF && left > 0; tok = it() {
		v := tok.Value
		if len(v) > left {
			v = v[:left]
		}
		left -= len(v)
		sgr := tokenSGR(sty.Get(tok.Type))
		if sgr == "" {
			b.WriteString(v)
			continue
		}
		b.WriteString(sgr)
		b.WriteString(v)
		b.WriteString(reset)
		b.WriteString(bg)
	}
	return b.String()
}

func tokenSGR(e chroma.StyleEntry) string {
	var params []string
	if e.Bold == chroma.Yes {
		params = append(params, "1")
	}
	if e.Italic == chroma.Yes {
		params = append(params, "3")
	}
	if e.Underline == chroma.Yes {
		params = append(params, "4")
	}
	if e.Colour.IsSet() {
		params = append(params, fmt.Sprintf("38;2;%d;%d;%d", e.Colour.Red(), e.Colour.Green(), e.Colour.Blue()))
	}
	if len(params) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(params, ";") + "m"
}

// backgroundSGR converts "#rrggbb" to a 24-bit background sequence, or ""
// when hex is not a color.
func backgroundSGR(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return ""
	}
	r, g, b := c.RGB255()
	return "\x1b[48;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b)) + "m"
}

// lineCache keeps two generations of highlighted lines. A full current
// generation becomes the old one; hits in the old one are promoted.
type lineCache struct {
	mu       sync.Mutex
	cur, old map[string]string
	size     int
}

var cache = &lineCache{cur: make(map[string]string), size: 2000}

func (c *lineCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.cur[key]; ok {
		return v, true
	}
	v, ok := c.old[key]
	if ok {
		c.put(key, v)
	}
	return v, ok
}

// put requires c.mu.
func (c *lineCache) put(key, v string) {
	if len(c.cur) >= c.size {
		c.old, c.cur = c.cur, make(map[string]string, c.size)
	}
	c.cur[key] = v
}

// Cached is Highlight memoised per language, theme, background and text.
// The editor highlights the same visible lines on every frame.
func Cached(text, language, theme, bgHex string) string {
	key := strings.Join([]string{language, theme, bgHex, text}, "\x00")
	if v, ok := cache.get(key); ok {
		return v
	}
	v := Highlight(text, language, theme, bgHex)
	cache.mu.Lock()
	cache.put(key, v)
	cache.mu.Unlock()
	return v
}

var sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// SplitLines splits styled text into lines that each render on their own:
// the SGR state open at the end of a line is replayed at the start of the
// next.
func SplitLines(block string) []string {
	lines := strings.Split(block, "\n")
	var open []string
	for i, line := range lines {
		if i > 0 && len(open) > 0 {
			lines[i] = strings.Join(open, "") + line
		}
		for _, seq := range sgrPattern.FindAllString(line, -1) {
			if seq == "\x1b[m" || seq == reset {
				open = open[:0]
				continue
			}
			open = append(open, seq)
		}
	}
	return lines
}
