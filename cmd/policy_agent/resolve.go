package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/policy-card/internal/fetch"
	"github.com/jonathan/policy-card/internal/resolver"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Locate a store's return-policy text",
	Long:  "Runs only the policy text resolver for a URL: keyword-matched links first, then conventional storefront paths, then the page itself. Prints the text, or writes it to a directory.",
	RunE:  runResolve,
}

var (
	resolveURL        string
	resolveOutputDir  string
	resolveUseBrowser bool
	resolveUserAgent  string
)

func init() {
	resolveCmd.Flags().StringVarP(&resolveURL, "url", "u", "", "Storefront URL (required)")
	resolveCmd.Flags().StringVarP(&resolveOutputDir, "out", "o", "", "Output directory (prints to stdout when omitted)")
	resolveCmd.Flags().BoolVar(&resolveUseBrowser, "use-browser", false, "Render JS-heavy storefronts with a headless browser")
	resolveCmd.Flags().StringVar(&resolveUserAgent, "user-agent", "", "Override the browser identity sent to the store")

	if err := resolveCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(_ *cobra.Command, _ []string) error {
	fetchOpts := fetch.DefaultOptions()
	if resolveUserAgent != "" {
		fetchOpts.UserAgent = resolveUserAgent
	}

	res := resolver.New(&resolver.Options{
		Fetch:      fetchOpts,
		UseBrowser: resolveUseBrowser,
	})

	resolution, err := res.Resolve(context.Background(), resolveURL)
	if err != nil {
		return fmt.Errorf("failed to resolve policy text: %w", err)
	}

	if resolveOutputDir == "" {
		if resolution.Text == "" {
			_, _ = fmt.Fprintf(os.Stdout, "No policy text found for %s\n", resolution.Domain)
			return nil
		}
		_, _ = fmt.Fprintln(os.Stdout, resolution.Text)
		return nil
	}

	if err := os.MkdirAll(resolveOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", resolveOutputDir, err)
	}

	textPath := filepath.Join(resolveOutputDir, "policy_text.txt")
	if err := os.WriteFile(textPath, []byte(resolution.Text), 0644); err != nil {
		return fmt.Errorf("failed to write policy text file %s: %w", textPath, err)
	}

	metaPath := filepath.Join(resolveOutputDir, "policy_text.meta.json")
	metaJSON, err := json.MarshalIndent(map[string]any{
		"domain":   resolution.Domain,
		"text_len": len(resolution.Text),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file %s: %w", metaPath, err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Resolved %d chars of policy text for %s\n", len(resolution.Text), resolution.Domain)
	_, _ = fmt.Fprintf(os.Stdout, "Text: %s\n", textPath)
	_, _ = fmt.Fprintf(os.Stdout, "Meta: %s\n", metaPath)

	return nil
}
