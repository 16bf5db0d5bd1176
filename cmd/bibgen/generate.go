package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bibgen/internal/bibliography"
	"github.com/pdiddy/bibgen/internal/render"
	"github.com/pdiddy/bibgen/internal/tui"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a bibliography for a topic and print it",
	Long: `Generate queries Together, Serper and Crossref for the topic, merges the
results, removes duplicate titles and prints at most 50 sources. Progress and
per-source failures go to stderr; the bibliography goes to stdout.

With --style apa only Crossref works are listed, formatted as APA references.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := render.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		agg, err := newAggregator()
		if err != nil {
			return err
		}
		return runOnce(cmd.Context(), agg, topic, format, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	generateCmd.Flags().String("topic", "", "topic or problem to search for")
	generateCmd.Flags().String("format", "markdown", "output format: markdown, json or csl")

	rootCmd.AddCommand(generateCmd)
}

// runOnce validates topic, runs gen and writes the result to w. Notices go to errW.
func runOnce(ctx context.Context, gen tui.Generator, topic string, format render.Format, w, errW io.Writer) error {
	styles := render.StylesFor(errW)
	topic, err := bibliography.NormalizeTopic(topic)
	if err != nil {
		fmt.Fprintln(errW, styles.Error(render.MsgInvalidTopic))
		return err
	}

	fmt.Fprintln(errW, styles.Info(render.MsgGenerating))
	bib, err := gen.Generate(ctx, topic, &render.WriterNotifier{W: errW, Styles: styles})
	if err != nil {
		return err
	}
	if bib.IsEmpty() {
		fmt.Fprintln(errW, styles.Warn(render.MsgNoResults))
	}
	return render.Write(w, bib, format)
}
