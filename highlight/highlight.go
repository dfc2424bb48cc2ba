// Package highlight renders paste content as syntax-highlighted HTML.
// All rendering is delegated to chroma; an unknown language tag or a
// tokeniser failure falls back to a plain <pre> block, never an error.
package highlight

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const styleName = "monokai"

var formatter = chromahtml.New(
	chromahtml.WithLineNumbers(true),
	chromahtml.WithClasses(true),
	chromahtml.WithLinkableLineNumbers(true, "L"),
)

var (
	cssOnce sync.Once
	css     template.CSS
)

func style() *chroma.Style {
	s := styles.Get(styleName)
	if s == nil {
		s = styles.Fallback
	}
	return s
}

// lexerFor picks a lexer for the language tag, guessing from content when
// the tag is empty and falling back to plain text for unknown tags.
func lexerFor(content, language string) chroma.Lexer {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	} else {
		lexer = lexers.Analyse(content)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// HTML renders content as highlighted markup for the given language tag.
func HTML(content []byte, language string) template.HTML {
	source := string(content)
	lexer := lexerFor(source, language)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return plain(source)
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style(), iterator); err != nil {
		return plain(source)
	}
	return template.HTML(buf.String())
}

// CSS returns the style sheet matching the markup produced by HTML.
func CSS() template.CSS {
	cssOnce.Do(func() {
		var buf bytes.Buffer
		if err := formatter.WriteCSS(&buf, style()); err != nil {
			return
		}
		css = template.CSS(buf.String())
	})
	return css
}

// LanguageName resolves a language tag to its display name, or "auto" when
// no tag was given.
func LanguageName(language string) string {
	if language == "" {
		return "auto"
	}
	if lexer := lexers.Get(language); lexer != nil {
		return lexer.Config().Name
	}
	return language
}

func plain(source string) template.HTML {
	var buf bytes.Buffer
	buf.WriteString("<pre><code>")
	template.HTMLEscape(&buf, []byte(source))
	buf.WriteString("</code></pre>")
	return template.HTML(buf.String())
}
