// Package assistant produces canned complexity summaries and chat replies
// for a stored solution. Nothing here executes or parses the code: every
// decision is driven by lexical cues, evaluated through ordered rule tables.
package assistant

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	probeNestedLoop     = "nested-loop"
	probeLinearSearch   = "linear-search"
	probeHashCollection = "hash-collection"
	probeSort           = "sort"
	probeRecursion      = "recursion"
)

const (
	PatternHashTable = "Hash table optimization"
	PatternNested    = "Nested loops"
	PatternSorting   = "Sorting algorithm"
	PatternLinear    = "Linear search"
	PatternRecursion = "Recursion"

	defaultSuggestion = "Code looks efficient for the given approach"
)

// Analysis is the heuristic summary of one solution.
type Analysis struct {
	TimeComplexity  string
	SpaceComplexity string
	SpaceReason     string
	Explanation     string
	Patterns        []string
	Suggestions     []string
}

// SpaceSummary renders the space complexity together with its reason.
func (a Analysis) SpaceSummary() string {
	return a.SpaceComplexity + " - " + a.SpaceReason
}

type probe struct {
	name        string
	match       func(code string) bool
	suggestions []string
}

var (
	loopHeaderRe     = regexp.MustCompile(`^(?:for|while)\b|\.forEach\(`)
	linearSearchRe   = regexp.MustCompile(`\.(?:includes|indexOf|lastIndexOf)\(`)
	hashCollectionRe = regexp.MustCompile(`\bnew\s+\w*(?:Map|Set)\b` +
		`|\b(?:HashMap|HashSet|TreeMap|TreeSet|Dictionary|unordered_map|unordered_set|defaultdict|Counter)\b` +
		`|\bmake\(\s*map\[` +
		`|\bmap\[[^\]]+\][\w.*]+\{` +
		`|\b(?:set|dict)\(\s*\)`)
	sortRe      = regexp.MustCompile(`\.sort\(|\bsorted\(|\bsort\.(?:Ints|Strings|Slice|SliceStable|Sort)\(|\bslices\.Sort|\bstd::sort\(`)
	arrayCueRe  = regexp.MustCompile(`\[\]|\bArray\b|\bArrayList\b|\bvector\s*<|\blist\(|\.push\(|\bappend\(`)
	funcDefRe   = regexp.MustCompile(`\b(?:function|def|func)\s+(?:\([^)]*\)\s*)?([A-Za-z_]\w*)\s*\(`)
	methodDefRe = regexp.MustCompile(`\b(?:int|long|void|boolean|bool|double|float|char|String|auto)\s+([A-Za-z_]\w*)\s*\([^)]*\)\s*\{`)
	lambdaDefRe = regexp.MustCompile(`\b(?:const|let|var)\s+([A-Za-z_]\w*)\s*=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>|[A-Za-z_]\w*\s*=>)`)

	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
)

// probes are evaluated in order; every match contributes its suggestions.
var probes = []probe{
	{
		name:        probeNestedLoop,
		match:       hasNestedLoop,
		suggestions: []string{"Consider using hash maps for O(n) lookups", "Look for single-pass solutions"},
	},
	{
		name:        probeLinearSearch,
		match:       linearSearchRe.MatchString,
		suggestions: []string{"Use Set or Map for O(1) lookups", "Pre-process data into efficient structures"},
	},
	{
		name:        probeHashCollection,
		match:       hashCollectionRe.MatchString,
		suggestions: []string{"Excellent choice for fast lookups", "Consider space vs time tradeoffs"},
	},
	{
		name:        probeSort,
		match:       sortRe.MatchString,
		suggestions: []string{"Check if sorting is necessary", "Consider if partial sorting would work"},
	},
	{
		name:        probeRecursion,
		match:       hasSelfCall,
		suggestions: []string{"Add memoization if repeated subproblems", "Consider iterative alternative"},
	},
}

type approach struct {
	probe      string // empty matches unconditionally
	complexity string
	pattern    string
	narrative  string
}

// approaches picks the headline: first match wins.
var approaches = []approach{
	{probeHashCollection, "O(n)", PatternHashTable, "hash-based data structures for efficient lookups."},
	{probeNestedLoop, "O(n²)", PatternNested, "nested iteration which creates quadratic complexity."},
	{probeSort, "O(n log n)", PatternSorting, "a sorting-based approach."},
	{"", "O(n)", PatternLinear, "a linear scanning approach."},
}

type spaceRule struct {
	match      func(code string, hits map[string]bool) bool
	complexity string
	reason     string
}

var spaceRules = []spaceRule{
	{
		match:      func(code string, hits map[string]bool) bool { return hits[probeHashCollection] || arrayCueRe.MatchString(code) },
		complexity: "O(n)",
		reason:     "Additional data structures used",
	},
	{
		match:      func(_ string, hits map[string]bool) bool { return hits[probeRecursion] },
		complexity: "O(n)",
		reason:     "Recursive call stack",
	},
	{
		match:      func(string, map[string]bool) bool { return true },
		complexity: "O(1)",
		reason:     "Constant extra space",
	},
}

// Analyze summarizes code. It is total: any input, including the empty
// string, yields a complete Analysis.
func Analyze(code, problemTitle string) Analysis {
	hits := make(map[string]bool, len(probes))
	var suggestions []string
	seen := make(map[string]bool)
	for _, p := range probes {
		if !p.match(code) {
			continue
		}
		hits[p.name] = true
		for _, s := range p.suggestions {
			if !seen[s] {
				seen[s] = true
				suggestions = append(suggestions, s)
			}
		}
	}
	if len(suggestions) == 0 {
		suggestions = []string{defaultSuggestion}
	}

	var headline approach
	for _, a := range approaches {
		if a.probe == "" || hits[a.probe] {
			headline = a
			break
		}
	}
	patterns := []string{headline.pattern}
	if hits[probeRecursion] {
		patterns = append(patterns, PatternRecursion)
	}

	analysis := Analysis{
		TimeComplexity: headline.complexity,
		Explanation:    fmt.Sprintf("Your solution for %q uses %s", problemTitle, headline.narrative),
		Patterns:       patterns,
		Suggestions:    suggestions,
	}
	for _, rule := range spaceRules {
		if rule.match(code, hits) {
			analysis.SpaceComplexity = rule.complexity
			analysis.SpaceReason = rule.reason
			break
		}
	}
	return analysis
}

// HasPattern reports whether the analysis detected pattern.
func (a Analysis) HasPattern(pattern string) bool {
	for _, p := range a.Patterns {
		if p == pattern {
			return true
		}
	}
	return false
}

// hasNestedLoop reports whether a loop header appears inside the body of
// another loop. Bodies are delimited by brackets where the code has them and
// by indentation otherwise.
func hasNestedLoop(code string) bool {
	return bracketNestedLoop(code) || indentNestedLoop(code)
}

// loopBody is a loop body still open during a bracket scan. It closes when
// the depth drops below depth; a single-statement body also closes at the
// first ';' on its own depth.
type loopBody struct {
	depth int
	stmt  bool
}

func bracketNestedLoop(code string) bool {
	code = lineCommentRe.ReplaceAllString(blockCommentRe.ReplaceAllString(code, " "), "")
	var (
		bodies      []loopBody
		depth       int
		inHeader    bool
		headerDepth int
		awaitBody   bool
	)
	closeBodies := func(semicolon bool) {
		for len(bodies) > 0 {
			top := bodies[len(bodies)-1]
			if depth >= top.depth && !(semicolon && top.stmt && depth == top.depth) {
				return
			}
			bodies = bodies[:len(bodies)-1]
		}
	}

	for i := 0; i < len(code); {
		c := code[i]
		if awaitBody && !isSpace(c) {
			awaitBody = false
			switch c {
			case '{':
				depth++
				bodies = append(bodies, loopBody{depth: depth})
				i++
				continue
			case ':', ';':
				// Python suite or an empty body
				i++
				continue
			default:
				bodies = append(bodies, loopBody{depth: depth, stmt: true})
			}
		}

		if isIdentStart(c) && (i == 0 || !isIdent(code[i-1])) {
			word := identAt(code, i)
			i += len(word)
			if word != "for" && word != "while" {
				continue
			}
			if len(bodies) > 0 {
				return true
			}
			if j := skipSpace(code, i); j < len(code) && code[j] == '(' {
				inHeader, headerDepth = true, depth
				i = j
				continue
			}
			// Headers without parentheses (Go, Swift) open their body on
			// the same line.
			line := code[i:]
			if eol := strings.IndexByte(line, '\n'); eol >= 0 {
				line = line[:eol]
			}
			if k := strings.LastIndexByte(line, '{'); k >= 0 {
				i += k
				awaitBody = true
			}
			continue
		}

		if strings.HasPrefix(code[i:], ".forEach(") {
			if len(bodies) > 0 {
				return true
			}
			depth++
			bodies = append(bodies, loopBody{depth: depth})
			i += len(".forEach(")
			continue
		}

		switch c {
		case '"', '\'', '`':
			i = skipQuoted(code, i)
			continue
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
			closeBodies(false)
			if inHeader && c == ')' && depth == headerDepth {
				inHeader = false
				awaitBody = true
			}
		case ';':
			closeBodies(true)
		}
		i++
	}
	return false
}

// indentNestedLoop finds a loop header indented under another loop header.
func indentNestedLoop(code string) bool {
	var open []int // indentation of enclosing loop headers
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "{" {
			continue
		}
		indent := indentWidth(line)
		for len(open) > 0 && indent <= open[len(open)-1] {
			open = open[:len(open)-1]
		}
		if loopHeaderRe.MatchString(trimmed) {
			if len(open) > 0 {
				return true
			}
			open = append(open, indent)
		}
	}
	return false
}

func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

// hasSelfCall reports whether a function defined in code calls itself from
// inside its own body.
func hasSelfCall(code string) bool {
	for _, re := range []*regexp.Regexp{funcDefRe, methodDefRe} {
		for _, m := range re.FindAllStringSubmatchIndex(code, -1) {
			name := code[m[2]:m[3]]
			open := strings.IndexByte(code[m[3]:], '(')
			if open < 0 {
				continue
			}
			closing := matchBracket(code, m[3]+open)
			if closing < 0 {
				continue
			}
			start, end := blockAfter(code, closing+1, m[0])
			if callsName(code[start:end], name) {
				return true
			}
		}
	}
	for _, m := range lambdaDefRe.FindAllStringSubmatchIndex(code, -1) {
		start, end := lambdaBody(code, m[1])
		if callsName(code[start:end], code[m[2]:m[3]]) {
			return true
		}
	}
	return false
}

func callsName(body, name string) bool {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*\(`).MatchString(body)
}

// blockAfter locates the body following a parameter list that ends before
// from: a braced block, or the indented suite after a trailing ':'. An empty
// span means the definition has no body.
func blockAfter(code string, from, defStart int) (int, int) {
	for i := from; i < len(code); i++ {
		switch code[i] {
		case '{':
			if end := matchBracket(code, i); end >= 0 {
				return i + 1, end
			}
			return i + 1, len(code)
		case ':':
			rest := code[i+1:]
			if eol := strings.IndexByte(rest, '\n'); eol >= 0 {
				rest = rest[:eol]
			}
			if rest = strings.TrimSpace(rest); rest == "" || strings.HasPrefix(rest, "#") {
				return indentedSuite(code, i+1, defStart)
			}
		case ';':
			return from, from
		}
	}
	return from, from
}

// indentedSuite spans the lines after from that are indented deeper than
// the line holding defStart.
func indentedSuite(code string, from, defStart int) (int, int) {
	defIndent := indentWidth(code[strings.LastIndexByte(code[:defStart], '\n')+1:])
	nl := strings.IndexByte(code[from:], '\n')
	if nl < 0 {
		return from, from
	}
	start := from + nl + 1
	end := start
	for pos := start; pos < len(code); {
		lineEnd := len(code)
		if e := strings.IndexByte(code[pos:], '\n'); e >= 0 {
			lineEnd = pos + e
		}
		line := code[pos:lineEnd]
		if strings.TrimSpace(line) != "" && indentWidth(line) <= defIndent {
			break
		}
		end = lineEnd
		pos = lineEnd + 1
	}
	return start, end
}

// lambdaBody spans the body of a function expression whose definition ends
// at after: a braced block, or an arrow expression up to the end of its
// statement.
func lambdaBody(code string, after int) (int, int) {
	if strings.HasSuffix(code[:after], "function") {
		open := strings.IndexByte(code[after:], '(')
		if open < 0 {
			return after, after
		}
		closing := matchBracket(code, after+open)
		if closing < 0 {
			return after, after
		}
		return blockAfter(code, closing+1, after)
	}
	j := skipSpace(code, after)
	if j < len(code) && code[j] == '{' {
		if end := matchBracket(code, j); end >= 0 {
			return j + 1, end
		}
		return j + 1, len(code)
	}
	depth := 0
	for i := j; i < len(code); i++ {
		switch code[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				return j, i
			}
			depth--
		case ';', '\n':
			if depth == 0 {
				return j, i
			}
		}
	}
	return j, len(code)
}

// matchBracket returns the index of the bracket closing the one at open,
// or -1 when it is never closed.
func matchBracket(code string, open int) int {
	opener := code[open]
	closer := map[byte]byte{'(': ')', '[': ']', '{': '}'}[opener]
	depth := 0
	for i := open; i < len(code); {
		switch c := code[i]; c {
		case '"', '\'', '`':
			i = skipQuoted(code, i)
			continue
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
		i++
	}
	return -1
}

// skipQuoted returns the index just past the string literal starting at i.
// Literals never span lines, so a stray apostrophe costs at most one line.
func skipQuoted(code string, i int) int {
	quote := code[i]
	for j := i + 1; j < len(code); j++ {
		switch code[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		case '\n':
			return j
		}
	}
	return len(code)
}

func skipSpace(code string, i int) int {
	for i < len(code) && isSpace(code[i]) {
		i++
	}
	return i
}

func identAt(code string, i int) string {
	j := i
	for j < len(code) && isIdent(code[j]) {
		j++
	}
	return code[i:j]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdent(c byte) bool {
	return isIdentStart(c) || '0' <= c && c <= '9'
}
