package index

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MaxTitleLength is the longest raw <title> content, in characters, that is
// still accepted as a display title.
const MaxTitleLength = 140

var separatorRe = regexp.MustCompile(`[-_]+`)

// ExtractTitle returns the content of the first <title> element in a page.
// Only the first opening tag is considered; tags inside comments and script
// or style bodies are not elements and are skipped. Its raw content must be
// between 1 and MaxTitleLength characters and must not contain markup.
// Entities are decoded and whitespace is collapsed.
func ExtractTitle(content []byte) (string, bool) {
	z := html.NewTokenizer(bytes.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return "", false
		case html.SelfClosingTagToken:
			if isTitleTag(z) {
				return "", false
			}
		case html.StartTagToken:
			if isTitleTag(z) {
				return readTitle(z)
			}
		}
	}
}

func isTitleTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	return atom.Lookup(name) == atom.Title
}

// readTitle consumes the element body right after an opening <title> tag.
// The tokenizer treats that body as text, so nested tags show up verbatim.
func readTitle(z *html.Tokenizer) (string, bool) {
	if z.Next() != html.TextToken {
		return "", false
	}
	raw := string(z.Raw())
	text := string(z.Text())
	if tt := z.Next(); tt != html.EndTagToken || !isTitleTag(z) {
		return "", false
	}

	if n := utf8.RuneCountInString(raw); n < 1 || n > MaxTitleLength {
		return "", false
	}
	if strings.ContainsRune(raw, '<') {
		return "", false
	}

	title := strings.Join(strings.Fields(text), " ")
	if title == "" {
		return "", false
	}
	return strings.ToValidUTF8(title, "\uFFFD"), true
}

// TitleFromFolder turns a folder name into a display title: runs of hyphens
// and underscores become one space and every word gets an upper-case first
// letter, e.g. "my-cool-app" becomes "My Cool App".
func TitleFromFolder(folder string) string {
	words := strings.Fields(separatorRe.ReplaceAllString(folder, " "))
	if len(words) == 0 {
		return folder
	}
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// DeriveTitle prefers the page's <title> and falls back to the folder name.
// A nil content means the page could not be read.
func DeriveTitle(content []byte, folder string) string {
	if title, ok := ExtractTitle(content); ok {
		return title
	}
	return TitleFromFolder(folder)
}
