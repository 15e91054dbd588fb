package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kerem-kaynak/mention-tokenizer/internal/config"
	"github.com/kerem-kaynak/mention-tokenizer/internal/observability"
	"github.com/kerem-kaynak/mention-tokenizer/pkg/directory"
	"github.com/kerem-kaynak/mention-tokenizer/pkg/markdown"
	"github.com/kerem-kaynak/mention-tokenizer/pkg/mention"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"
)

type fragmentJSON struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	Kind       string `json:"kind,omitempty"`
	Identifier string `json:"identifier,omitempty"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
}

type runner struct {
	md          goldmark.Markdown
	transformer *mention.Transformer
	dir         *directory.Directory
	format      string
}

func main() {
	configPath := flag.String("config", "", "TOML config file")
	format := flag.String("format", "html", "output format: html, fragments or ast")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = printUsage
	flag.Parse()

	observability.SetVerbose(*verbose)
	log := observability.Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("loading config", "error", err)
		os.Exit(1)
	}

	r, err := newRunner(cfg, *format)
	if err != nil {
		log.Error("initializing", "error", err)
		os.Exit(1)
	}
	defer r.Close()

	// If text provided as argument, transform and exit
	if flag.NArg() > 0 {
		if err := r.run(os.Stdout, strings.Join(flag.Args(), " ")); err != nil {
			log.Error("transforming", "error", err)
			os.Exit(1)
		}
		return
	}

	// Interactive mode
	fmt.Println("Mention tokenizer (interactive mode)")
	if r.dir != nil {
		fmt.Printf("Directory loaded: %d identifiers\n", r.dir.Count())
	}
	fmt.Println("Type a line of markdown, press Enter to transform. Ctrl+C to exit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		if err := r.run(os.Stdout, line); err != nil {
			log.Error("transforming", "error", err)
		}
		fmt.Println()
	}
}

func newRunner(cfg *config.Config, format string) (*runner, error) {
	switch format {
	case "html", "fragments", "ast":
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	mc, err := cfg.MentionConfig()
	if err != nil {
		return nil, err
	}
	tr, err := mention.NewTransformer(mc)
	if err != nil {
		return nil, err
	}

	r := &runner{transformer: tr, format: format}
	opts := []markdown.Option{markdown.WithTransformer(tr)}

	if cfg.LinkPrefix != "" {
		opts = append(opts, markdown.WithLinkFunc(markdown.PrefixLinkFunc(cfg.LinkPrefix)))
	}
	if cfg.Directory != "" {
		r.dir, err = directory.New(cfg.Directory)
		if err != nil {
			return nil, fmt.Errorf("loading directory %s: %w", cfg.Directory, err)
		}
		opts = append(opts, markdown.WithDirectory(r.dir))
		observability.WithFields("path", cfg.Directory).Debug("directory loaded", "count", r.dir.Count())
	}

	r.md = goldmark.New(goldmark.WithExtensions(markdown.New(opts...)))
	observability.Logger().Debug("ready", "format", format, "symbols", string(tr.Grammar().Symbols()), "cache", tr.CacheEnabled())
	return r, nil
}

func (r *runner) run(w io.Writer, input string) error {
	switch r.format {
	case "fragments":
		return r.writeFragments(w, input)
	case "ast":
		src := []byte(input)
		doc := r.md.Parser().Parse(text.NewReader(src))
		return markdown.Fprint(w, doc, src)
	default:
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(input), &buf); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
}

func (r *runner) writeFragments(w io.Writer, input string) error {
	frags, changed := r.transformer.Transform(input)
	if !changed {
		observability.Logger().Debug("no mentions", "length", len(input))
	}

	out := make([]fragmentJSON, 0, len(frags))
	for _, f := range frags {
		out = append(out, fragmentJSON{
			Type:       f.Type.String(),
			Text:       f.Text,
			Kind:       string(f.Kind),
			Identifier: f.Identifier,
			Start:      f.Start,
			End:        f.End,
		})
	}

	output, err := json.Marshal(out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", output)
	return err
}

func (r *runner) Close() error {
	if r.dir != nil {
		return r.dir.Close()
	}
	return nil
}

func printUsage() {
	fmt.Println("Usage: mentions [-config file.toml] [-format html|fragments|ast] [-v] [text]")
	fmt.Println("       mentions [flags]                 (interactive mode)")
	fmt.Println()
	flag.PrintDefaults()
}
