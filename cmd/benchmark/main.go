package main

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerem-kaynak/mention-tokenizer/internal/observability"
	"github.com/kerem-kaynak/mention-tokenizer/pkg/markdown"
	"github.com/kerem-kaynak/mention-tokenizer/pkg/mention"
	"github.com/yuin/goldmark"
)

const (
	iterations = 100000
	warmup     = 1000
	boxWidth   = 62
)

var (
	dimStyle   = lipgloss.NewStyle().Faint(true)
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	opsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	nsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	line = strings.Repeat("─", boxWidth)
)

func main() {
	log := observability.Logger()

	tr, err := mention.NewTransformer(mention.DefaultConfig())
	if err != nil {
		log.Error("creating transformer", "error", err)
		return
	}
	uncached, err := mention.NewTransformer(mention.Config{Symbols: mention.DefaultSymbols()})
	if err != nil {
		log.Error("creating transformer", "error", err)
		return
	}
	g := tr.Grammar()

	fmt.Printf("Iterations: %d (warmup: %d)\n", iterations, warmup)
	fmt.Println("Reference: 1 second = 1,000,000,000 ns")
	fmt.Println()

	// Test data
	plain := "meeting moved to 10:30, see the notes in room 4B"
	sentence := "thanks @:octo-cat: for the fix, moved to #:triage01: and pinged @:ops_bot=2:"
	dense := strings.Repeat("@:a1:#:b2:", 10)
	long := strings.Repeat("plain words without any token ", 30) + "@:tail:"

	printHeader("MATCHER")
	bench("Pre-check (reject)", func() { g.MayContain(plain) })
	bench("Scan (no tokens)", func() { g.Scan(plain) })
	bench("Scan (sentence)", func() { g.Scan(sentence) })
	bench("Scan (20 adjacent)", func() { g.Scan(dense) })
	bench("Scan (long, one token)", func() { g.Scan(long) })
	printFooter()
	fmt.Println()

	matches := g.Scan(sentence)
	printHeader("SPLICER + TRANSFORMER")
	bench("Splice (sentence)", func() { _, _ = g.Splice(sentence, matches) })
	bench("Transform (cache hit)", func() { tr.Transform(sentence) })
	bench("Transform (no cache)", func() { uncached.Transform(sentence) })
	bench("Transform (cache miss)", func() {
		tr.ClearCache()
		tr.Transform(sentence)
	})
	printFooter()
	fmt.Println()

	md := goldmark.New(goldmark.WithExtensions(markdown.New(markdown.WithTransformer(tr))))
	base := goldmark.New()
	src := []byte("# Triage\n\n" + sentence + "\n\n- " + dense + "\n")
	var buf bytes.Buffer

	printHeader("MARKDOWN")
	bench("goldmark (no extension)", func() {
		buf.Reset()
		_ = base.Convert(src, &buf)
	})
	bench("goldmark + mentions", func() {
		buf.Reset()
		_ = md.Convert(src, &buf)
	})
	printFooter()
}

func bench(name string, fn func()) {
	for i := 0; i < warmup; i++ {
		fn()
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn()
	}
	elapsed := time.Since(start)

	opsPerSec := float64(iterations) / elapsed.Seconds()
	nsPerOp := float64(elapsed.Nanoseconds()) / float64(iterations)

	// Truncate name if too long
	displayName := name
	if len(displayName) > 26 {
		displayName = displayName[:26]
	}

	// Build plain string for padding, colored for display
	plainRow := fmt.Sprintf("  %-26s %10.0f ops/sec %8.0f ns", displayName, opsPerSec, nsPerOp)
	padded := padLine(plainRow)

	colored := fmt.Sprintf("  %-26s %s ops/sec %s ns",
		displayName,
		opsStyle.Render(fmt.Sprintf("%10.0f", opsPerSec)),
		nsStyle.Render(fmt.Sprintf("%8.0f", nsPerOp)))

	if extraPad := len(padded) - len(plainRow); extraPad > 0 {
		colored += strings.Repeat(" ", extraPad)
	}

	fmt.Println(dimStyle.Render("│") + colored + dimStyle.Render("│"))
}

func padLine(content string) string {
	if len(content) >= boxWidth {
		return content[:boxWidth]
	}
	return content + strings.Repeat(" ", boxWidth-len(content))
}

func printHeader(title string) {
	fmt.Println(dimStyle.Render("┌" + line + "┐"))
	fmt.Println(dimStyle.Render("│") + titleStyle.Render(padLine("  "+title)) + dimStyle.Render("│"))
	fmt.Println(dimStyle.Render("├" + line + "┤"))
}

func printFooter() {
	fmt.Println(dimStyle.Render("└" + line + "┘"))
}
