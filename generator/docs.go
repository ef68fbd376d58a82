package generator

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/erraggy/sdkgen/apimodel"
	"github.com/erraggy/sdkgen/internal/naming"
)

// paragraphToken stands in for a blank line while WrapMarkdown reflows text.
const paragraphToken = "@@@PARAGRAPH@@@"

// docWidth is the column limit for wrapped Python docstrings.
const docWidth = 72

// pendingDoc documents a parameter without a description.
const pendingDoc = "Documentation pending"

// docLines splits markdown into lines, stopping before the first line that
// starts with "###". Generated sections such as the data definition link
// begin with a level-3 heading.
func docLines(markdown string) []string {
	var lines []string
	for line := range strings.SplitSeq(markdown, "\n") {
		if strings.HasPrefix(line, "###") {
			break
		}
		lines = append(lines, line)
	}
	return lines
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// JavaDoc renders a "/** ... */" block for Java and TypeScript. Repeated
// blank lines collapse into one. returnDoc adds an @return tag and params
// add @param tags. The result is empty when there is nothing to document.
func JavaDoc(markdown string, indent int, returnDoc string, params []apimodel.ParameterField) string {
	if isBlank(markdown) && len(params) == 0 && isBlank(returnDoc) {
		return ""
	}

	prefix := strings.Repeat(" ", indent)
	var b strings.Builder
	b.WriteString(prefix + "/**\n")

	lastBlank := false
	if !isBlank(markdown) {
		for _, line := range docLines(strings.ReplaceAll(markdown, " & ", " and ")) {
			next := strings.TrimRight(prefix+" * "+line, " \t\r")
			if len(next) == indent+2 {
				if !lastBlank {
					b.WriteString(next + "\n")
				}
				lastBlank = true
				continue
			}
			b.WriteString(next + "\n")
			lastBlank = false
		}
	}

	if !lastBlank && (len(params) > 0 || !isBlank(returnDoc)) {
		b.WriteString(prefix + " *\n")
	}
	for _, p := range params {
		desc := strings.TrimSpace(naming.ToSingleLine(p.DescriptionMarkdown))
		if desc == "" {
			desc = pendingDoc
		}
		b.WriteString(prefix + " * @param " + p.Name + " " + desc + "\n")
	}
	if !isBlank(returnDoc) {
		b.WriteString(strings.TrimRight(prefix+" * @return "+naming.ToSingleLine(returnDoc), " ") + "\n")
	}

	b.WriteString(prefix + " */\n")
	return b.String()
}

// XMLDoc renders a C# "/// <summary>" block with HTML-escaped lines and one
// <param> entry per parameter.
func XMLDoc(markdown string, indent int, params []apimodel.ParameterField) string {
	if isBlank(markdown) {
		return ""
	}

	prefix := strings.Repeat(" ", indent) + "///"
	var b strings.Builder
	b.WriteString(prefix + " <summary>\n")
	for _, line := range docLines(markdown) {
		b.WriteString(strings.TrimRight(prefix+" "+html.EscapeString(line), " \t\r") + "\n")
	}
	b.WriteString(prefix + " </summary>\n")

	for _, p := range params {
		desc := html.EscapeString(strings.TrimSpace(naming.ToSingleLine(p.DescriptionMarkdown)))
		b.WriteString(prefix + ` <param name="` + p.Name + `">` + desc + "</param>\n")
	}
	return b.String()
}

// PythonDoc renders a triple-quoted docstring wrapped at 72 columns with a
// numpy-style Parameters section. typeOf names each parameter's type.
func PythonDoc(markdown string, indent int, params []apimodel.ParameterField, typeOf func(apimodel.ParameterField) string) string {
	if isBlank(markdown) {
		return ""
	}

	prefix := strings.Repeat(" ", indent)
	if pos := strings.Index(markdown, "### "); pos > 0 {
		markdown = markdown[:pos]
	}

	var b strings.Builder
	b.WriteString(prefix + `"""` + "\n")
	b.WriteString(WrapMarkdown(markdown, docWidth, prefix) + "\n")

	if len(params) > 0 {
		b.WriteString("\n")
		b.WriteString(prefix + "Parameters\n")
		b.WriteString(prefix + "----------\n")
		for _, p := range params {
			b.WriteString(prefix + p.Name + " : " + typeOf(p) + "\n")
			if wrapped := WrapMarkdown(p.DescriptionMarkdown, docWidth, prefix+"    "); wrapped != "" {
				b.WriteString(wrapped + "\n")
			}
		}
	}

	b.WriteString(prefix + `"""` + "\n")
	return b.String()
}

// RubyDoc renders an rdoc block opened by "##". hint names each parameter's
// type and varName its Ruby identifier.
func RubyDoc(markdown string, indent int, params []apimodel.ParameterField, hint, varName func(string) string) string {
	if isBlank(markdown) {
		return ""
	}

	prefix := strings.Repeat(" ", indent) + "#"
	var b strings.Builder
	b.WriteString(prefix + "#\n")
	for _, line := range docLines(markdown) {
		b.WriteString(strings.TrimRight(prefix+" "+line, " \t\r") + "\n")
	}
	for _, p := range params {
		line := prefix + " @param " + varName(p.Name) + " [" + hint(p.DataType) + "] " + naming.ToSingleLine(p.DescriptionMarkdown)
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	return b.String()
}

// WrapMarkdown reflows text into lines of at most width columns, each
// starting with prefix. Blank lines in the input separate paragraphs. A line
// is only broken once it is past half the width, so a long word such as a
// URL stays next to the text before it.
func WrapMarkdown(text string, width int, prefix string) string {
	text = strings.ReplaceAll(text, "\r\n\r\n", " "+paragraphToken+" ")
	text = strings.ReplaceAll(text, "\n\n", " "+paragraphToken+" ")
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	prefixLen := utf8.RuneCountInString(prefix)
	out := []byte(prefix)
	pos := prefixLen
	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		switch {
		case word == paragraphToken:
			out = append(trimSpaces(out), "\n\n"+prefix...)
			pos = prefixLen
		case pos > width/2 && pos+wordLen > width:
			out = append(trimSpaces(out), "\n"+prefix+word+" "...)
			pos = prefixLen + wordLen + 1
		default:
			out = append(out, word+" "...)
			pos += wordLen + 1
		}

		if pos > width {
			out = append(trimSpaces(out), "\n"+prefix...)
			pos = prefixLen
		}
	}
	return strings.TrimRight(string(out), " \t\r\n")
}

func trimSpaces(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == ' ' {
		b = b[:len(b)-1]
	}
	return b
}
