// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// discover → load → parse → enrich (generate/tags) → render → write.
//
// It handles flag validation, renderer selection, and per-file error
// handling: one bad transcript never aborts a directory run.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/gaurav-prasanna/chatpipe/core"
	"github.com/gaurav-prasanna/chatpipe/core/config"
	"github.com/gaurav-prasanna/chatpipe/core/generate"
	"github.com/gaurav-prasanna/chatpipe/core/load"
	"github.com/gaurav-prasanna/chatpipe/core/meta"
	"github.com/gaurav-prasanna/chatpipe/core/normalize"
	"github.com/gaurav-prasanna/chatpipe/core/output"
	"github.com/gaurav-prasanna/chatpipe/core/parse"
	"github.com/gaurav-prasanna/chatpipe/core/render"
	"github.com/gaurav-prasanna/chatpipe/core/tags"
	"github.com/gaurav-prasanna/chatpipe/walk"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tmc/langchaingo/llms"
)

// Flag variables.
var (
	flagRecursive  bool
	flagMarkdown   bool
	flagJSON       bool
	flagPDF        bool
	flagEmbeddings bool
	flagModel      string
	flagChunkSize  int
	flagOutputDir  string
	flagConfig     string
	flagRename     bool
	flagDescribe   bool
	flagTags       bool
	flagKeepStyles bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file-or-directory>",
	Short: "Convert AIM HTML transcripts to the specified output format",
	Long: `Convert parses AIM HTML conversation logs, recovers the message sequence,
and renders it to the specified output format (Markdown by default).

Examples:
  chatpipe convert logs/2004-05-18\ \[Tuesday\].htm
  chatpipe convert logs/ --recursive --output_dir ./out
  chatpipe convert logs/ --rename --describe --tags --config config.yaml
  chatpipe convert logs/ --embeddings --model nomic-embed-text`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVarP(&flagRecursive, "recursive", "r", false, "Process directories recursively")
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: beside each source file)")

	// Output format flags (mutually exclusive, Markdown is the default).
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown (default)")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	convertCmd.Flags().BoolVar(&flagEmbeddings, "embeddings", false, "Output embeddings")

	// Embedding-specific flags.
	convertCmd.Flags().StringVar(&flagModel, "model", "", "Embedding model (required with --embeddings)")
	convertCmd.Flags().IntVar(&flagChunkSize, "chunk_size", 512, "Token chunk size for embeddings")

	// Generation and config flags.
	convertCmd.Flags().StringVar(&flagConfig, "config", "", "Tag/participant config file (default: config.yaml if present)")
	convertCmd.Flags().BoolVar(&flagRename, "rename", false, "Name outputs \"YYYY-MM-DD Title [participants]\" with a generated title")
	convertCmd.Flags().BoolVar(&flagDescribe, "describe", false, "Generate a description for the frontmatter")
	convertCmd.Flags().BoolVar(&flagTags, "tags", false, "Evaluate configured custom tags")

	convertCmd.Flags().BoolVar(&flagKeepStyles, "keep-styles", false, "Convert inline formatting to Markdown instead of stripping it")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := walk.Discover(args[0], flagRecursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no HTML transcripts found in %s", args[0])
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := context.Background()

	// The generation model is only dialed when a flag needs it, so plain
	// conversions run fully offline.
	var model llms.Model
	if flagRename || flagDescribe || flagTags {
		model, err = generate.NewGeminiModel(ctx, generate.Config{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  cfg.Gemini.Model,
		})
		if err != nil {
			return err
		}
	}

	p := pipeline{
		loader:    load.New(),
		parser:    parse.NewWithNormalizer(&normalize.Normalizer{KeepStyles: flagKeepStyles}),
		renderer:  renderer,
		writer:    writer,
		generator: generate.New(model),
		evaluator: tags.New(model, cfg),
	}

	var errCount int
	for i, file := range files {
		logrus.Infof("[%d/%d] Processing %s", i+1, len(files), file)
		if err := p.processFile(ctx, file); err != nil {
			logrus.Errorf("  %s: %v", file, err)
			errCount++
		}
	}

	if errCount > 0 {
		return fmt.Errorf("%d/%d transcripts failed", errCount, len(files))
	}
	return nil
}

// pipeline bundles the stages a conversion run shares across files.
type pipeline struct {
	loader    core.Loader
	parser    core.Parser
	renderer  core.Renderer
	writer    *output.Writer
	generator *generate.Generator
	evaluator *tags.Evaluator
}

// processFile runs a single transcript through the full pipeline.
func (p *pipeline) processFile(ctx context.Context, path string) error {
	result, err := p.loader.Load(path)
	if err != nil {
		return err
	}

	logrus.Debugf("  dialect: %s", parse.Dialect(result.Text))

	messages := p.parser.Parse(result.Text)
	if len(messages) == 0 {
		logrus.Warnf("  no messages found in %s, skipping", path)
		return nil
	}

	conv := &core.Conversation{
		Messages:   messages,
		SourcePath: path,
	}

	if date, err := parse.ExtractDate(filepath.Base(path)); err == nil {
		conv.Date = &date
	} else if errors.Is(err, parse.ErrInvalidDate) {
		logrus.Debugf("  undated conversation: %v", err)
	}

	m := meta.Extract(result.Text)
	conv.SourceTitle = m.Title

	handles := conv.Handles()
	// One-sided exports recover messages from a single sender; the export
	// header still names the buddy, so list them as a participant too.
	if m.Buddy != "" && !slices.Contains(handles, m.Buddy) {
		handles = append(handles, m.Buddy)
	}
	conv.Participants = p.evaluator.MapParticipants(handles)
	names := p.evaluator.DisplayNames(handles)

	if flagDescribe {
		desc, err := p.generator.Description(ctx, messages, names)
		if err != nil {
			return err
		}
		conv.Description = desc
	}

	if flagTags {
		conv.Tags = p.evaluator.Evaluate(ctx, messages)
	}

	name := output.DerivedName(path)
	if flagRename {
		title, err := p.generator.Title(ctx, messages, names)
		if err != nil {
			return err
		}
		name = output.GeneratedName(conv.Date, title, displayValues(handles, names))
	}

	data, err := p.renderer.Render(conv)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	written, err := p.writer.Write(path, name, data, p.renderer.Extension())
	if err != nil {
		return err
	}
	logrus.Infof("  ✓ Written: %s (%d messages)", written, len(messages))
	return nil
}

// displayValues resolves handles through the name mapping, keeping order.
func displayValues(handles []string, names map[string]string) []string {
	out := make([]string, 0, len(handles))
	for _, h := range handles {
		if n, ok := names[h]; ok && n != "" {
			out = append(out, n)
			continue
		}
		out = append(out, h)
	}
	return out
}

func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}
	return config.LoadDefault()
}

// validateFlags checks that at most one output format is chosen and that the
// flag combinations make sense together.
func validateFlags() error {
	formatCount := 0
	for _, f := range []bool{flagMarkdown, flagJSON, flagPDF, flagEmbeddings} {
		if f {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	// --model is required with --embeddings.
	if flagEmbeddings && flagModel == "" {
		return fmt.Errorf("--model is required when using --embeddings")
	}

	if flagKeepStyles && (flagJSON || flagPDF || flagEmbeddings) {
		return fmt.Errorf("--keep-styles only applies to Markdown output")
	}

	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
// Markdown is the default when no format flag is given.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	case flagEmbeddings:
		return render.NewEmbeddingsRenderer(flagModel, flagChunkSize), nil
	default:
		return &render.MarkdownRenderer{KeepInlineMarkdown: flagKeepStyles}, nil
	}
}
