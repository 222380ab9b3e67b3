package format

import "html"

const (
	htmlDocumentPrefix = "<html><body><pre>"
	htmlDocumentSuffix = "</pre></body></html>"

	markdownFenceOpen  = "```text\n"
	markdownFenceClose = "\n```"
)

// PlainFormatter emits the styled rendering unchanged.
type PlainFormatter struct{}

// Format returns the styled rendering as-is.
func (formatter PlainFormatter) Format(input Input) (string, error) {
	return input.Styled, nil
}

// HTMLFormatter wraps the escaped styled rendering in a minimal HTML document.
type HTMLFormatter struct{}

// Format returns the styled rendering as a preformatted HTML document.
func (formatter HTMLFormatter) Format(input Input) (string, error) {
	return htmlDocumentPrefix + html.EscapeString(input.Styled) + htmlDocumentSuffix, nil
}

// MarkdownFormatter wraps the styled rendering in a fenced code block so the
// connector glyphs survive Markdown rendering.
type MarkdownFormatter struct{}

// Format returns the styled rendering as a fenced Markdown block.
func (formatter MarkdownFormatter) Format(input Input) (string, error) {
	return markdownFenceOpen + input.Styled + markdownFenceClose, nil
}
