package wavefront

import (
	"fmt"
	"strconv"
	"strings"
)

// line is one non-blank, trimmed line of OBJ or MTL text.
type line struct {
	Number int // 1-based, blank lines are not counted
	Text   string
	Tokens []string
}

// Command returns the first token of the line.
func (l line) Command() string {
	if len(l.Tokens) == 0 {
		return ""
	}
	return l.Tokens[0]
}

// Args returns every token after the command.
func (l line) Args() []string {
	if len(l.Tokens) < 2 {
		return nil
	}
	return l.Tokens[1:]
}

// splitLines splits text on '\n', trims every line and drops blank ones.
func splitLines(data string) []line {
	raw := strings.Split(data, "\n")
	lines := make([]line, 0, len(raw))
	for _, text := range raw {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		lines = append(lines, line{
			Number: len(lines) + 1,
			Text:   text,
			Tokens: tokenize(text),
		})
	}
	return lines
}

// tokenize splits on single spaces and discards empty tokens, so runs of
// spaces are tolerated. Tabs are not separators.
func tokenize(text string) []string {
	parts := strings.Split(text, " ")
	tokens := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

func parseFloat(token string) (float32, error) {
	f, err := strconv.ParseFloat(token, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

// floatArgs parses between lo and hi float tokens. Missing optional
// values are taken from defaults; tokens past hi are ignored.
func floatArgs(args []string, lo, hi int, defaults ...float32) ([]float32, error) {
	if len(args) < lo {
		if lo == hi {
			return nil, fmt.Errorf("expected %d values, got %d", lo, len(args))
		}
		return nil, fmt.Errorf("expected %d to %d values, got %d", lo, hi, len(args))
	}
	out := make([]float32, hi)
	for i := 0; i < hi; i++ {
		if i >= len(args) {
			out[i] = defaults[i-lo]
			continue
		}
		f, err := parseFloat(args[i])
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a number", args[i])
		}
		out[i] = f
	}
	return out, nil
}
