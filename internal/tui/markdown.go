package tui

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/yuin/goldmark"
)

// RenderMarkdown converts a markdown reply to colored terminal text.
// The markdown is first converted to HTML, then the HTML is rewritten
// with ANSI sequences. Fenced code blocks are pulled out before the
// conversion so their contents pass through chroma untouched.
func RenderMarkdown(markdown string) string {
	blocks := []codeBlock{}
	withPlaceholders := codeFenceRE.ReplaceAllStringFunc(markdown, func(fence string) string {
		m := codeFenceRE.FindStringSubmatch(fence)
		blocks = append(blocks, codeBlock{lang: m[1], code: m[2]})
		return fmt.Sprintf("\n{{CODE_BLOCK_%d}}\n", len(blocks)-1)
	})

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(withPlaceholders), &buf); err != nil {
		return markdown
	}
	out := formatHTML(buf.String())

	for i, b := range blocks {
		rendered := RenderCodeBlock(b.code, b.lang)
		out = strings.ReplaceAll(out, fmt.Sprintf("{{CODE_BLOCK_%d}}", i), rendered)
	}
	return strings.TrimRight(out, "\n") + "\n"
}

type codeBlock struct {
	lang string
	code string
}

var (
	codeFenceRE = regexp.MustCompile("(?s)```([a-zA-Z0-9_+-]*)\n(.*?)```")

	h1RE         = regexp.MustCompile(`(?s)<h1[^>]*>(.*?)</h1>`)
	h2RE         = regexp.MustCompile(`(?s)<h2[^>]*>(.*?)</h2>`)
	h3RE         = regexp.MustCompile(`(?s)<h[3-6][^>]*>(.*?)</h[3-6]>`)
	strongRE     = regexp.MustCompile(`(?s)<strong>(.*?)</strong>`)
	emRE         = regexp.MustCompile(`(?s)<em>(.*?)</em>`)
	inlineCodeRE = regexp.MustCompile(`(?s)<code>(.*?)</code>`)
	linkRE       = regexp.MustCompile(`(?s)<a href="([^"]*)"[^>]*>(.*?)</a>`)
	quoteRE      = regexp.MustCompile(`(?s)<blockquote>\s*<p>(.*?)</p>\s*</blockquote>`)
	liRE         = regexp.MustCompile(`(?s)<li>(.*?)</li>`)
	pRE          = regexp.MustCompile(`(?s)<p>(.*?)</p>`)
	hrRE         = regexp.MustCompile(`<hr\s*/?>`)
	tagRE        = regexp.MustCompile(`<[^>]+>`)
	blankRunRE   = regexp.MustCompile(`\n{3,}`)
)

func formatHTML(html string) string {
	s := html
	s = h1RE.ReplaceAllString(s, "\n\x1b[1;4m$1\x1b[0m\n")
	s = h2RE.ReplaceAllString(s, "\n\x1b[1m$1\x1b[0m\n")
	s = h3RE.ReplaceAllString(s, "\n\x1b[1m$1\x1b[0m\n")
	s = strongRE.ReplaceAllString(s, "\x1b[1m$1\x1b[0m")
	s = emRE.ReplaceAllString(s, "\x1b[3m$1\x1b[0m")
	s = inlineCodeRE.ReplaceAllString(s, "\x1b[38;5;212m$1\x1b[0m")
	s = linkRE.ReplaceAllString(s, "\x1b[4;38;5;117m$2\x1b[0m (\x1b[2m$1\x1b[0m)")
	s = quoteRE.ReplaceAllString(s, "\x1b[2m│ $1\x1b[0m\n")
	s = liRE.ReplaceAllString(s, "  • $1\n")
	s = hrRE.ReplaceAllString(s, strings.Repeat("─", 40)+"\n")
	s = pRE.ReplaceAllString(s, "$1\n\n")
	s = tagRE.ReplaceAllString(s, "")
	s = decodeHTMLEntities(s)
	s = blankRunRE.ReplaceAllString(s, "\n\n")
	return s
}

func decodeHTMLEntities(s string) string {
	r := strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
		"&#34;", `"`,
		"&nbsp;", " ",
	)
	return r.Replace(s)
}

// RenderCodeBlock syntax-highlights a code fence for a 256-color terminal.
func RenderCodeBlock(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}
