// Package parser converts the Unicode emoji-test.txt document into an ordered
// list of emote entries.
//
// The document is walked as a two-level tree: it is split on group markers,
// each group chunk is split on subgroup markers, and every data row inside a
// subgroup chunk becomes one entry unless its qualification excludes it.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"emotecat/types"

	"go.uber.org/zap"
)

const (
	groupMarker    = "# group: "
	subgroupMarker = "# subgroup: "
)

// ErrInvalidCodepoint is matched by every CodepointError.
var ErrInvalidCodepoint = errors.New("invalid codepoint")

// Data row: "<hex codepoints> ; <qualification> # <glyph> E<ver> <name>".
// The name class mirrors Unicode \w so names such as "piñata" survive.
var entryRegex = regexp.MustCompile(`([\dA-F ]+)\s*; ([\w\-]+)\s*#.*E\d+.\d\s([\p{L}\p{M}\p{Nd}\p{Pc} ]+)`)

// excluded qualifications are dropped from the catalog.
var excluded = map[string]bool{
	"minimally-qualified": true,
	"component":           true,
}

// CodepointError reports a codepoint token that is not a Unicode scalar value.
type CodepointError struct {
	Token string
	Row   string
	Err   error
}

func (e *CodepointError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid codepoint %q in row %q: %v", e.Token, e.Row, e.Err)
	}
	return fmt.Sprintf("invalid codepoint %q in row %q", e.Token, e.Row)
}

func (e *CodepointError) Unwrap() error { return e.Err }

func (e *CodepointError) Is(target error) bool { return target == ErrInvalidCodepoint }

// Option configures a parse.
type Option func(*options)

type options struct {
	skipInvalid bool
	logger      *zap.Logger
}

// WithSkipInvalid drops rows with undecodable codepoints instead of failing
// the parse. Each dropped row is logged as a warning.
func WithSkipInvalid(logger *zap.Logger) Option {
	return func(o *options) {
		o.skipInvalid = true
		if logger != nil {
			o.logger = logger
		}
	}
}

// Parse returns the fully-qualified entries of raw in document order.
// A document without group markers yields no entries.
func Parse(raw string, opts ...Option) ([]types.EmoteEntry, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	var entries []types.EmoteEntry

	for _, groupChunk := range splitAfterFirst(raw, groupMarker) {
		group, ok := headerName(groupChunk)
		if !ok {
			continue
		}

		for _, subgroupChunk := range splitAfterFirst(groupChunk, subgroupMarker) {
			subgroup, ok := headerName(subgroupChunk)
			if !ok {
				continue
			}

			for _, m := range entryRegex.FindAllStringSubmatch(subgroupChunk, -1) {
				if excluded[m[2]] {
					continue
				}

				text, err := DecodeCodepoints(m[1])
				if err != nil {
					var cpErr *CodepointError
					if errors.As(err, &cpErr) {
						cpErr.Row = strings.TrimSpace(m[0])
					}
					if !o.skipInvalid {
						return nil, err
					}
					o.logger.Warn("Skipping row with invalid codepoint",
						zap.String("group", group),
						zap.String("subgroup", subgroup),
						zap.Error(err))
					continue
				}
				// A match that captured only spaces is a malformed row.
				if text == "" {
					continue
				}

				entries = append(entries, types.EmoteEntry{
					Text:  text,
					Name:  m[3],
					Group: group,
					Tags:  []string{subgroup},
				})
			}
		}
	}

	return entries, nil
}

// DecodeCodepoints turns a whitespace separated list of hex codepoints into
// the string they spell.
func DecodeCodepoints(list string) (string, error) {
	var sb strings.Builder
	for _, tok := range strings.Fields(list) {
		v, err := strconv.ParseUint(tok, 16, 32)
		if err != nil {
			return "", &CodepointError{Token: tok, Err: err}
		}
		r := rune(v)
		if !utf8.ValidRune(r) {
			return "", &CodepointError{Token: tok}
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// splitAfterFirst splits s on sep and drops the text before the first sep.
func splitAfterFirst(s, sep string) []string {
	parts := strings.Split(s, sep)
	return parts[1:]
}

// headerName returns the first line that is neither blank nor a comment.
func headerName(chunk string) (string, bool) {
	for _, line := range strings.Split(chunk, "\n") {
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		return strings.TrimSpace(line), true
	}
	return "", false
}
