package domain

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DataLanguage is the only accepted language tag for the data block.
const DataLanguage = "json"

const backtickFence = "```"

// ExtractCodeBlock returns the inner text of the single fenced code block that
// makes up a data section.
//
// The region is parsed as CommonMark so fences nested in lists or quotes are
// counted too. The region must hold exactly one block, opened by a backtick
// fence tagged exactly "json" and closed by a backtick fence, with nothing but
// whitespace around it.
func ExtractCodeBlock(region string) (string, error) {
	src := []byte(region)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var blocks []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fcb, ok := n.(*ast.FencedCodeBlock); ok {
			blocks = append(blocks, fcb)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	switch {
	case len(blocks) == 0:
		return "", ErrNoCodeBlock
	case len(blocks) > 1:
		return "", fmt.Errorf("%w: found %d", ErrMultipleCodeBlocks, len(blocks))
	}

	block := blocks[0]
	if doc.ChildCount() != 1 || block.Parent() != doc {
		return "", ErrNonEmptyExtraContent
	}

	// Link reference definitions leave no node behind, so the text around the
	// block is checked as well.
	trimmed := strings.TrimLeftFunc(region, unicode.IsSpace)
	lead := len(region) - len(trimmed)
	nl := strings.IndexByte(trimmed, '\n')
	if nl < 0 {
		return "", fmt.Errorf("%w: unterminated fence", ErrNoCodeBlock)
	}

	opening := strings.TrimSpace(trimmed[:nl])
	if !strings.HasPrefix(opening, backtickFence) {
		if strings.HasPrefix(opening, "~~~") {
			return "", fmt.Errorf("%w: fence must use backticks", ErrNoCodeBlock)
		}
		return "", ErrNonEmptyExtraContent
	}
	fence := leadingRun(opening, '`')
	if tag := opening[len(fence):]; tag != DataLanguage {
		return "", fmt.Errorf("%w: got %q", ErrInvalidLanguageTag, tag)
	}

	var buf bytes.Buffer
	after := lead + nl + 1
	segs := block.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		buf.Write(seg.Value(src))
		after = seg.Stop
	}

	rest := strings.TrimSpace(region[after:])
	if rest == "" {
		return "", fmt.Errorf("%w: unterminated fence", ErrNoCodeBlock)
	}
	closing, tail, _ := strings.Cut(rest, "\n")
	if !isClosingFence(strings.TrimSpace(closing), len(fence)) || strings.TrimSpace(tail) != "" {
		return "", ErrNonEmptyExtraContent
	}
	return buf.String(), nil
}

// leadingRun returns the prefix of s made of c.
func leadingRun(s string, c byte) string {
	i := 0
	for i < len(s) && s[i] == c {
		i++
	}
	return s[:i]
}

// isClosingFence reports whether line is a backtick fence at least n long.
func isClosingFence(line string, n int) bool {
	run := leadingRun(line, '`')
	return len(run) >= n && len(run) == len(line)
}
