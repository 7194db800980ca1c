package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/taglid/internal/logging"
	"github.com/cognicore/taglid/pkg/taglid/lexicon"
	"github.com/cognicore/taglid/pkg/taglid/morph"
)

// Source layout read by build-freqlist:
//
//	<src>/original/<lang>_freqlist.csv   raw word,count list
//	<src>/included/<lang>*.txt           words to boost or add
//	<src>/excluded/*.txt                 words to drop, for every language
const (
	originalDir = "original"
	includedDir = "included"
	excludedDir = "excluded"
)

type options struct {
	lang     string
	src      string
	out      string
	logLevel string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "build-freqlist",
		Short: "Regenerate the English and Tagalog frequency lists",
		Long: `build-freqlist merges a raw frequency list with include and exclude
word lists and writes <lang>_freqlist.csv sorted by count. Tagalog affixes
are always included so affix fragments of hyphenated words resolve.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logging.New(opts.logLevel, "text", cmd.ErrOrStderr())
			langs := lexicon.Languages[:]
			if opts.lang != "" {
				lang, err := lexicon.ParseLanguage(opts.lang)
				if err != nil {
					return err
				}
				langs = []lexicon.Language{lang}
			}
			for _, lang := range langs {
				path, n, err := generate(lang, opts.src, opts.out, log)
				if err != nil {
					return fmt.Errorf("%s: %w", lang, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d words to %s\n", n, path)
			}
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	f := cmd.Flags()
	f.StringVar(&opts.lang, "lang", "", "eng or tgl (default both)")
	f.StringVar(&opts.src, "src", "freqlist", "source directory")
	f.StringVar(&opts.out, "out", "resources", "output directory")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level")
	return cmd
}

func generate(lang lexicon.Language, src, outDir string, log *slog.Logger) (string, int, error) {
	base, err := lexicon.ReadFrequencyList(filepath.Join(src, originalDir, lang.String()+"_freqlist.csv"))
	if err != nil {
		return "", 0, err
	}

	included, err := readLists(filepath.Join(src, includedDir), lang.String())
	if err != nil {
		return "", 0, err
	}
	included = append(included, morph.Affixes()...)

	excluded, err := readLists(filepath.Join(src, excludedDir), "")
	if err != nil {
		return "", 0, err
	}

	entries := lexicon.MergeFrequencies(base, included, excluded)
	log.Info("frequency list merged",
		slog.String("lang", lang.String()),
		slog.Int("base", len(base)),
		slog.Int("included", len(included)),
		slog.Int("excluded", len(excluded)),
		slog.Int("result", len(entries)),
	)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", 0, err
	}
	path := filepath.Join(outDir, lang.String()+"_freqlist.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	if err := lexicon.WriteFrequencyList(f, entries); err != nil {
		f.Close()
		return "", 0, err
	}
	return path, len(entries), f.Close()
}

// readLists concatenates every .txt word list in dir whose name starts with
// prefix. A missing directory yields no words.
func readLists(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasSuffix(name, ".txt") && strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var words []string
	for _, name := range names {
		ws, err := lexicon.ReadWordList(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		words = append(words, ws...)
	}
	return words, nil
}
