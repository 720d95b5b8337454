package assistant

import (
	"fmt"
	"strings"
)

// Apology is returned when a reply cannot be produced.
const Apology = "I'm having trouble analyzing your code right now. Please try asking your question again."

const (
	IntentComplexity = "complexity"
	IntentExplain    = "explain"
	IntentOptimize   = "optimize"
	IntentDebug      = "debug"
	IntentOverview   = "overview"
)

// Turn is one prior message of a conversation.
type Turn struct {
	Message string
	IsAI    bool
}

// Prompt is everything a reply may draw on. ProblemDescription and History
// are accepted but do not influence the reply.
type Prompt struct {
	Message            string
	Solution           string
	ProblemTitle       string
	ProblemDescription string
	History            []Turn
}

type intent struct {
	name     string
	keywords []string
	render   func(p Prompt, a Analysis) string
}

// intents are matched in order against the lower-cased message.
var intents = []intent{
	{IntentComplexity, []string{"complexity", "time", "space"}, renderComplexity},
	{IntentExplain, []string{"explain", "understand", "code"}, renderExplain},
	{IntentOptimize, []string{"optimize", "improve", "better"}, renderOptimize},
	{IntentDebug, []string{"bug", "error", "debug"}, renderDebug},
}

// Classify names the reply template a message selects.
func Classify(message string) string {
	return match(message).name
}

func match(message string) intent {
	lower := strings.ToLower(message)
	for _, in := range intents {
		for _, kw := range in.keywords {
			if strings.Contains(lower, kw) {
				return in
			}
		}
	}
	return intent{name: IntentOverview, render: renderOverview}
}

// Respond builds a markdown reply. It never fails: a panic while rendering
// degrades to Apology.
func Respond(p Prompt) (reply string) {
	defer func() {
		if recover() != nil {
			reply = Apology
		}
	}()
	analysis := Analyze(p.Solution, p.ProblemTitle)
	return match(p.Message).render(p, analysis)
}

func bullets(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
}

func renderComplexity(p Prompt, a Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Looking at your solution for **%s**:\n\n", p.ProblemTitle)
	fmt.Fprintf(&b, "**Time Complexity:** %s\n", a.TimeComplexity)
	fmt.Fprintf(&b, "**Space Complexity:** %s\n\n", a.SpaceSummary())
	b.WriteString(a.Explanation)
	b.WriteString("\n\n**Key Insights:**\n")
	bullets(&b, a.Patterns)
	return strings.TrimRight(b.String(), "\n")
}

func renderExplain(p Prompt, a Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Let me break down your **%s** solution:\n\n", p.ProblemTitle)
	fmt.Fprintf(&b, "**Approach:** %s\n\n", a.Explanation)
	b.WriteString("**Step-by-step:**\n")
	b.WriteString(walkthrough(p.Solution))
	b.WriteString("\n\n**Key Concepts Used:**\n")
	bullets(&b, a.Patterns)
	return strings.TrimRight(b.String(), "\n")
}

func renderOptimize(p Prompt, a Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here are optimization suggestions for your **%s** solution:\n\n", p.ProblemTitle)
	fmt.Fprintf(&b, "**Current Complexity:** %s time, %s space\n\n", a.TimeComplexity, a.SpaceComplexity)
	b.WriteString("**Suggestions:**\n")
	bullets(&b, a.Suggestions)
	b.WriteString("\n")
	if a.TimeComplexity == "O(n²)" {
		b.WriteString("**Consider:** Using a hash map could reduce time complexity to O(n).")
	} else {
		b.WriteString("**Your solution is already well-optimized!**")
	}
	return b.String()
}

func renderDebug(p Prompt, a Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Let me help you debug your **%s** solution:\n\n", p.ProblemTitle)
	b.WriteString("**Common issues to check:**\n")
	checks := []string{
		"Edge cases: empty arrays, single elements, negative numbers",
		"Boundary conditions in loops",
		"Null/undefined checks",
	}
	if a.HasPattern(PatternHashTable) {
		checks = append(checks, "Hash map key collisions or missing entries")
	}
	if a.HasPattern(PatternNested) {
		checks = append(checks, "Inner loop bounds and index usage")
	}
	if a.HasPattern(PatternRecursion) {
		checks = append(checks, "A reachable base case for every recursive path")
	}
	bullets(&b, checks)
	b.WriteString("\n**Testing tip:** Try running your code with simple test cases first.")
	return b.String()
}

func renderOverview(p Prompt, a Analysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Great question about your **%s** solution!\n\n", p.ProblemTitle)
	b.WriteString(a.Explanation)
	b.WriteString("\n\n**Your approach:**\n")
	fmt.Fprintf(&b, "• Time: %s\n", a.TimeComplexity)
	fmt.Fprintf(&b, "• Space: %s\n\n", a.SpaceComplexity)
	b.WriteString("Feel free to ask about:\n")
	bullets(&b, []string{
		"Time/space complexity analysis",
		"Code explanation",
		"Optimization suggestions",
		"Debugging help",
	})
	return strings.TrimRight(b.String(), "\n")
}

type lineRule struct {
	match func(line string) bool
	text  string
}

var lineRules = []lineRule{
	{func(l string) bool { return strings.Contains(l, "for") && strings.Contains(l, "(") }, "Iterates through the data structure"},
	{func(l string) bool { return strings.Contains(l, "if") && strings.Contains(l, "(") }, "Checks condition for filtering/decision making"},
	{func(l string) bool { return strings.Contains(l, "return") }, "Returns the computed result"},
	{func(l string) bool { return strings.Contains(l, "Map") || strings.Contains(l, "Set") }, "Uses hash-based data structure for optimization"},
}

// walkthrough narrates the notable lines of code, numbered by their position
// among non-blank lines.
func walkthrough(code string) string {
	var steps []string
	n := 0
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		n++
		for _, rule := range lineRules {
			if rule.match(trimmed) {
				steps = append(steps, fmt.Sprintf("%d. %s", n, rule.text))
				break
			}
		}
	}
	if len(steps) == 0 {
		return "The code follows a structured approach to solve the problem step by step."
	}
	return strings.Join(steps, "\n")
}
