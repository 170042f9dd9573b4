package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// BlockKind identifies what kind of block a header introduces.
type BlockKind int

const (
	KindIf BlockKind = iota
	KindElse
	KindForEach
	KindWhile
	KindRepeat
	KindFunctionDef
)

func (k BlockKind) String() string {
	switch k {
	case KindIf:
		return "if"
	case KindElse:
		return "else"
	case KindForEach:
		return "for each"
	case KindWhile:
		return "while"
	case KindRepeat:
		return "repeat"
	case KindFunctionDef:
		return "function"
	default:
		return "unknown"
	}
}

// Header is the resolved form of a block header line: the kind tag plus the
// payload fields that kind uses. Unused fields stay zero.
type Header struct {
	Kind BlockKind

	Condition string // If, While: raw condition expression

	Binding string // ForEach: loop variable name
	Source  string // ForEach: list name

	Count int // Repeat: iteration count

	Name   string   // FunctionDef: function name
	Params []string // FunctionDef: parameter names, in order
}

// Header patterns are matched in priority order: more specific before more
// general, so ambiguous headers resolve deterministically.
var headerPatterns = []struct {
	re      *regexp.Regexp
	resolve func(m []string) (Header, error)
}{
	{
		re: regexp.MustCompile(`(?i)^else:$`),
		resolve: func(m []string) (Header, error) {
			return Header{Kind: KindElse}, nil
		},
	},
	{
		re: regexp.MustCompile(`(?i)^if (.+):$`),
		resolve: func(m []string) (Header, error) {
			return Header{Kind: KindIf, Condition: strings.TrimSpace(m[1])}, nil
		},
	},
	{
		re: regexp.MustCompile(`(?i)^while (.+):$`),
		resolve: func(m []string) (Header, error) {
			return Header{Kind: KindWhile, Condition: strings.TrimSpace(m[1])}, nil
		},
	},
	{
		re: regexp.MustCompile(`(?i)^for each (\w+) in list (\w+):$`),
		resolve: func(m []string) (Header, error) {
			return Header{Kind: KindForEach, Binding: m[1], Source: m[2]}, nil
		},
	},
	{
		re: regexp.MustCompile(`(?i)^repeat (\d+) times?:$`),
		resolve: func(m []string) (Header, error) {
			count, err := strconv.Atoi(m[1])
			if err != nil {
				return Header{}, err
			}
			return Header{Kind: KindRepeat, Count: count}, nil
		},
	},
	{
		re: regexp.MustCompile(`(?i)^define function (\w+) with (.+):$`),
		resolve: func(m []string) (Header, error) {
			params := splitParams(m[2])
			if err := checkDistinct(params); err != nil {
				return Header{}, err
			}
			return Header{Kind: KindFunctionDef, Name: m[1], Params: params}, nil
		},
	},
	{
		re: regexp.MustCompile(`(?i)^define function (\w+):$`),
		resolve: func(m []string) (Header, error) {
			return Header{Kind: KindFunctionDef, Name: m[1]}, nil
		},
	},
}

// blockStarters are the keyword prefixes that mark a line as a block header
// when it also ends with the opening marker. A line with one of these
// prefixes that fails full header resolution is a syntax error rather than
// an ordinary command.
var blockStarters = []string{
	"if ", "else", "for each ", "while ", "repeat ", "define function",
}

// IsBlockHeader reports whether the trimmed line claims to start a block:
// it ends with ':' and begins with a recognized block keyword.
func IsBlockHeader(text string) bool {
	if !strings.HasSuffix(text, ":") {
		return false
	}
	lower := strings.ToLower(text)
	for _, starter := range blockStarters {
		if strings.HasPrefix(lower, starter) {
			return true
		}
	}
	return false
}

// ResolveHeader classifies a block header line. The second return is false
// when the line is not a block header at all (an ordinary command). A line
// that claims to be a header but matches no pattern is a syntax error.
func ResolveHeader(text string) (Header, bool, error) {
	if !IsBlockHeader(text) {
		return Header{}, false, nil
	}
	for _, p := range headerPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		h, err := p.resolve(m)
		if err != nil {
			return Header{}, true, err
		}
		return h, true, nil
	}
	return Header{}, true, errUnrecognizedHeader
}

func splitParams(raw string) []string {
	var params []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			params = append(params, p)
		}
	}
	return params
}

func checkDistinct(params []string) error {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p] {
			return errDuplicateParam(p)
		}
		seen[p] = true
	}
	return nil
}
