package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"leet_tracker/internal/app/assistant"
)

var (
	analyzeFormat string
	problemTitle  string
	askRaw        bool
)

type analysisReport struct {
	Title           string   `json:"title" yaml:"title"`
	TimeComplexity  string   `json:"timeComplexity" yaml:"time_complexity"`
	SpaceComplexity string   `json:"spaceComplexity" yaml:"space_complexity"`
	SpaceReason     string   `json:"spaceReason" yaml:"space_reason"`
	Patterns        []string `json:"patterns" yaml:"patterns"`
	Suggestions     []string `json:"suggestions" yaml:"suggestions"`
	Explanation     string   `json:"explanation" yaml:"explanation"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Print the complexity analysis of a solution file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var askCmd = &cobra.Command{
	Use:   "ask FILE MESSAGE",
	Short: "Ask the assistant about a solution file",
	Long: `Produce the same reply the chat endpoint would give for MESSAGE about
the solution in FILE, rendered as terminal markdown.`,
	Example: `  leetctl ask two_sum.js "what is the time complexity?"`,
	Args:    cobra.ExactArgs(2),
	RunE:    runAsk,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "json", "Output format (json or yaml)")
	for _, c := range []*cobra.Command{analyzeCmd, askCmd} {
		c.Flags().StringVarP(&problemTitle, "title", "t", "", "Problem title (default: derived from FILE)")
	}
	askCmd.Flags().BoolVar(&askRaw, "raw", false, "Print the markdown without rendering")
}

// readSolution returns the file content and the title to report it under.
func readSolution(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read solution: %w", err)
	}
	title := problemTitle
	if title == "" {
		base := filepath.Base(path)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return string(data), title, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	code, title, err := readSolution(args[0])
	if err != nil {
		return err
	}

	a := assistant.Analyze(code, title)
	report := analysisReport{
		Title:           title,
		TimeComplexity:  a.TimeComplexity,
		SpaceComplexity: a.SpaceComplexity,
		SpaceReason:     a.SpaceReason,
		Patterns:        a.Patterns,
		Suggestions:     a.Suggestions,
		Explanation:     a.Explanation,
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(analyzeFormat) {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(report)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", analyzeFormat)
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	code, title, err := readSolution(args[0])
	if err != nil {
		return err
	}

	reply := assistant.Respond(assistant.Prompt{
		Message:      args[1],
		Solution:     code,
		ProblemTitle: title,
	})

	out := cmd.OutOrStdout()
	if askRaw {
		fmt.Fprintln(out, reply)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	rendered, err := renderer.Render(reply)
	if err != nil {
		return fmt.Errorf("render reply: %w", err)
	}
	fmt.Fprint(out, rendered)
	return nil
}
