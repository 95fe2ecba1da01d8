package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/policy-card/internal/fetch"
	"github.com/jonathan/policy-card/internal/llm"
	"github.com/jonathan/policy-card/internal/pipeline"
	"github.com/jonathan/policy-card/internal/resolver"
	"github.com/jonathan/policy-card/internal/summary"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a store's return policy and print the card",
	Long:  "Resolves the return-policy text for a storefront URL, summarizes it with the LLM, and prints the resulting card JSON.",
	RunE:  runCheck,
}

var (
	checkURL        string
	checkOutputDir  string
	checkAPIKey     string
	checkUseBrowser bool
	checkUserAgent  string
)

func init() {
	checkCmd.Flags().StringVarP(&checkURL, "url", "u", "", "Storefront URL (required)")
	checkCmd.Flags().StringVarP(&checkOutputDir, "out", "o", "", "Output directory (prints to stdout when omitted)")
	checkCmd.Flags().StringVar(&checkAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	checkCmd.Flags().BoolVar(&checkUseBrowser, "use-browser", false, "Render JS-heavy storefronts with a headless browser")
	checkCmd.Flags().StringVar(&checkUserAgent, "user-agent", "", "Override the browser identity sent to the store")

	if err := checkCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, _ []string) error {
	apiKey := checkAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key required: set --api-key flag or GEMINI_API_KEY environment variable")
	}

	ctx := context.Background()

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	summarizer, err := summary.NewSummarizer(client)
	if err != nil {
		return fmt.Errorf("failed to create summarizer: %w", err)
	}

	fetchOpts := fetch.DefaultOptions()
	if checkUserAgent != "" {
		fetchOpts.UserAgent = checkUserAgent
	}
	res := resolver.New(&resolver.Options{
		Fetch:      fetchOpts,
		UseBrowser: checkUseBrowser,
	})

	// Single-shot CLI invocation: no result cache.
	checker := pipeline.NewChecker(res, summarizer, nil)

	result, err := checker.Check(ctx, checkURL)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	cardJSON, err := json.MarshalIndent(result.Card, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal card to JSON: %w", err)
	}

	if checkOutputDir == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(cardJSON))
		return nil
	}

	if err := os.MkdirAll(checkOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", checkOutputDir, err)
	}

	cardPath := filepath.Join(checkOutputDir, "policy_card.json")
	if err := os.WriteFile(cardPath, cardJSON, 0644); err != nil {
		return fmt.Errorf("failed to write card file %s: %w", cardPath, err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Checked %s\n", result.Domain)
	_, _ = fmt.Fprintf(os.Stdout, "Card: %s\n", cardPath)

	return nil
}
