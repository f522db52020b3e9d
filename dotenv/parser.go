// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package dotenv

import (
	"log/slog"
	"regexp"
	"strings"
)

// Entry is a single key value pair parsed from a dotenv source.
// Quote delimiters have already been removed from Value.
type Entry struct {
	Key   string
	Value string
}

// KEY = 'single' | "double" | unquoted [# comment]
//
// An unquoted value ends at the first # which is not preceded by a backslash.
var entryPattern = regexp.MustCompile(
	`^\s*([\w.\-]+)\s*=\s*('[^']*'|"(?:[^"\\]|\\[\s\S])*"|(?:[^#\\]|\\[\s\S]?)*)?\s*(#[\s\S]*)?$`,
)

type state int

const (
	stateIdle state = iota
	stateAccumulating
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateAccumulating:
		return "accumulating"
	default:
		return "unknown"
	}
}

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomePending
	outcomeComplete
	outcomeMalformed
)

// lineParser assembles physical lines into logical entries.
//
//	idle --blank/comment--> idle
//	idle --line--> complete | malformed | accumulating
//	accumulating --line--> complete | malformed | accumulating
//	accumulating --end of input--> malformed
type lineParser struct {
	state state
	buf   strings.Builder
	start int
}

func (p *lineParser) feed(lineNo int, line string) (Entry, outcome, *MalformedEntryError) {
	if p.state == stateIdle {
		if isBlank(line) || isComment(line) {
			return Entry{}, outcomeSkipped, nil
		}
		p.start = lineNo
	}

	p.buf.WriteString(line)
	text := p.buf.String()

	m := entryPattern.FindStringSubmatch(text)
	if m == nil {
		return Entry{}, outcomeMalformed, p.reject(text, ErrNoMatch)
	}

	key, value := m[1], strings.TrimSpace(m[2])
	if opensMultiline(value) {
		p.buf.WriteByte('\n')
		p.state = stateAccumulating
		return Entry{}, outcomePending, nil
	}
	if !balanced(value) {
		return Entry{}, outcomeMalformed, p.reject(text, ErrUnbalancedQuotes)
	}

	p.reset()
	return Entry{Key: key, Value: unquote(value)}, outcomeComplete, nil
}

func (p *lineParser) finish() *MalformedEntryError {
	if p.state != stateAccumulating {
		return nil
	}
	text := strings.TrimSuffix(p.buf.String(), "\n")
	return p.reject(text, ErrUnterminatedQuote)
}

func (p *lineParser) reject(text string, reason error) *MalformedEntryError {
	err := &MalformedEntryError{Line: p.start, Text: text, Reason: reason}
	p.reset()
	return err
}

func (p *lineParser) reset() {
	p.buf.Reset()
	p.state = stateIdle
}

// Parse turns physical lines into entries, preserving their order.
// Only the IgnoreIfMalformed and Logger options are used.
func Parse(lines []string, opts ...Option) ([]Entry, error) {
	return parse(lines, newOptions(opts...))
}

func parse(lines []string, o *options) ([]Entry, error) {
	var (
		p       lineParser
		entries []Entry
	)
	for i, line := range lines {
		e, out, merr := p.feed(i+1, line)
		switch out {
		case outcomeComplete:
			entries = append(entries, e)
		case outcomeMalformed:
			if o.failOnMalformed {
				return nil, *merr
			}
			o.logger.Warn(
				"dropping malformed dotenv entry",
				slog.Int("line", merr.Line),
				slog.String("reason", merr.Reason.Error()),
			)
		}
	}

	if merr := p.finish(); merr != nil {
		if o.failOnMalformed {
			return nil, *merr
		}
		o.logger.Warn(
			"dropping unterminated dotenv entry",
			slog.Int("line", merr.Line),
			slog.String("reason", merr.Reason.Error()),
		)
	}
	return entries, nil
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isComment(line string) bool {
	s := strings.TrimSpace(line)
	return strings.HasPrefix(s, "#") || strings.HasPrefix(s, "//")
}

// opensMultiline reports whether value starts a double quoted string
// which has not been closed yet.
func opensMultiline(value string) bool {
	return strings.HasPrefix(value, `"`) && closingQuote(value, 1) < 0
}

// closingQuote returns the index of the first unescaped double quote
// in value at or after from, or -1.
func closingQuote(value string, from int) int {
	for i := from; i < len(value); i++ {
		switch value[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// balanced reports whether value is fully wrapped in one pair of quotes
// or is unquoted and free of unescaped double quotes. Apostrophes inside
// an unquoted value are allowed, but not at either end.
func balanced(value string) bool {
	switch {
	case strings.HasPrefix(value, "'"):
		return len(value) >= 2 &&
			strings.HasSuffix(value, "'") &&
			!strings.Contains(value[1:len(value)-1], "'")
	case strings.HasPrefix(value, `"`):
		return closingQuote(value, 1) == len(value)-1
	default:
		return !strings.HasSuffix(value, "'") && closingQuote(value, 0) < 0
	}
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return strings.ReplaceAll(value, `\#`, "#")
}
