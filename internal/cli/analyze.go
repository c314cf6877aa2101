package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ekurganov/claimlens/internal/extract"
	"github.com/ekurganov/claimlens/internal/llm"
	"github.com/ekurganov/claimlens/internal/model"
	"github.com/ekurganov/claimlens/internal/pipeline"
	"github.com/ekurganov/claimlens/internal/util"
)

var (
	analyzeFile    string
	outJSON        string
	outMD          string
	analyzeTimeout time.Duration
	noCache        bool
	noFooter       bool
	llmProvider    string
	llmModel       string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze an LLM answer for epistemic risk",
	Long: `Analyze decomposes an answer into atomic claims, retrieves evidence
for each claim from the indexed corpus, and scores every claim:
- GROUNDED: strong evidence support, no contradiction
- WEAK: partial support
- HALLUCINATED: little or contradicting evidence

Run 'claimlens index' first to build the evidence corpus.

Example:
  claimlens analyze "Python 3.12 completely removed the GIL"
  claimlens analyze --file answer.txt --json report.json --md report.md
  claimlens analyze --file answer.txt --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "read answer text from file (.html is stripped to text)")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable retrieval cache")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider for claim extraction (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readAnswerText(args)
	if err != nil {
		return err
	}

	cfg, err := buildConfigWithFlags()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = store.Close() }()

	if chunks, _, err := store.Stats(); err == nil && chunks == 0 {
		fmt.Fprintln(os.Stderr, "Warning: corpus is empty; run 'claimlens index' first for evidence retrieval")
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("initialize LLM provider: %w", err)
	}
	if provider == nil && verbose {
		fmt.Fprintln(os.Stderr, "No LLM provider configured, using heuristic claim extraction")
	}

	extractor := extract.NewExtractor(provider, cfg.Extraction)
	p := pipeline.NewPipeline(cfg, extractor, store)

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %d characters...\n", len(text))
	}

	report, err := p.AnalyzeText(ctx, text)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Scored %d claims (overall risk %.2f)\n", len(report.Verdicts), report.OverallRisk)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfigWithFlags applies analyze-specific flag overrides
func buildConfigWithFlags() (*model.Config, error) {
	c, err := buildConfig()
	if err != nil {
		return nil, err
	}

	if noCache {
		c.Cache.Enabled = false
	}
	c.Output.IncludeFooter = !noFooter
	c.Output.Verbose = verbose
	if llmProvider != "" {
		c.LLM.Provider = llmProvider
		c.LLM.APIKey = "" // Flag changed the provider; re-resolve the key
	}
	if llmModel != "" {
		c.LLM.Model = llmModel
	}
	resolveAPIKey(c)

	return c, nil
}

// resolveAPIKey fills the provider API key from the environment when
// the config does not carry one.
func resolveAPIKey(c *model.Config) {
	if c.LLM.APIKey != "" {
		return
	}
	switch c.LLM.Provider {
	case "openai":
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		c.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" && c.LLM.BaseURL == "" {
			c.LLM.BaseURL = baseURL
		}
	}
}

func readAnswerText(args []string) (string, error) {
	if analyzeFile != "" {
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		text := string(data)
		if ext := strings.ToLower(filepath.Ext(analyzeFile)); ext == ".html" || ext == ".htm" {
			stripped, err := util.StripHTML(text)
			if err != nil {
				return "", fmt.Errorf("strip html: %w", err)
			}
			text = stripped
		}
		return text, nil
	}

	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	return "", fmt.Errorf("provide text as argument or use --file")
}
