package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cognicore/taglid/internal/render"
	"github.com/cognicore/taglid/pkg/taglid"
	"github.com/cognicore/taglid/pkg/taglid/internalerr"
)

type identifyFlags struct {
	text     []string
	simplify bool
	html     bool
}

func runIdentify(cmd *cobra.Command, g *globalFlags, id *identifyFlags) error {
	cfg, err := loadConfig(cmd, g)
	if err != nil {
		return err
	}
	if id.html {
		cfg.Classifier.StripMarkup = true
	}
	// single texts are never recorded
	cfg.Store.Path = ""

	log := newLogger(cmd, cfg)
	tg, err := taglid.Open(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer tg.Close()

	r, err := newRenderer(cmd, g)
	if err != nil {
		return err
	}
	label := func(text string) error {
		words, err := tg.LangIdentify(text)
		if err != nil {
			return err
		}
		if len(words) == 0 {
			return nil
		}
		if id.simplify {
			return r.Simplified(taglid.Simplify(words))
		}
		return r.Words(words)
	}

	if len(id.text) > 0 {
		return label(strings.Join(id.text, " "))
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return interactive(cmd.ErrOrStderr(), label)
	}
	return readLines(cmd.InOrStdin(), cmd.ErrOrStderr(), label)
}

func newRenderer(cmd *cobra.Command, g *globalFlags) (*render.Renderer, error) {
	out := cmd.OutOrStdout()
	f, _ := out.(*os.File)
	useColor, err := render.ColorEnabled(g.color, f)
	if err != nil {
		return nil, err
	}
	return render.New(out, useColor), nil
}

// interactive loops on a prompt until "exit" or an empty line (Ctrl-D).
func interactive(errOut io.Writer, label func(string) error) error {
	fmt.Fprintln(errOut, "type text to label; exit or Ctrl-D quits")

	history := []string{}
	for {
		in := prompt.Input("taglid> ", completer,
			prompt.OptionTitle("taglid"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
		)
		in = strings.TrimSpace(in)
		if in == "" || in == "exit" {
			return nil
		}
		history = append(history, in)
		if err := label(in); err != nil {
			if !errors.Is(err, internalerr.ErrInvalidInput) {
				return err
			}
			fmt.Fprintf(errOut, "skipped: %v\n", err)
		}
	}
}

func completer(in prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{{Text: "exit", Description: "leave taglid"}}
	return prompt.FilterHasPrefix(s, in.GetWordBeforeCursor(), true)
}

// readLines labels each non-blank line of r until EOF or "exit".
func readLines(r io.Reader, errOut io.Writer, label func(string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "exit" {
			return nil
		}
		if err := label(line); err != nil {
			if !errors.Is(err, internalerr.ErrInvalidInput) {
				return err
			}
			fmt.Fprintf(errOut, "skipped: %v\n", err)
		}
	}
	return sc.Err()
}
