// Command play runs a matching round in the terminal against the same game
// engine the bot uses.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"wordmatch/internal/domain"
	"wordmatch/internal/game"
	"wordmatch/internal/service"
	"wordmatch/internal/wordsource"

	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type playOptions struct {
	level       string
	conj        []string
	pairs       int
	seed        int64
	offline     bool
	model       string
	flashDelay  time.Duration
	settleDelay time.Duration
	timeout     time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Match Japanese words with their Chinese meaning in the terminal",
		Long: `Prints a board of two shuffled columns. Type a card id (j3, c0, ...) and
press enter to pick it, q to give up. Words come from OpenAI when
OPENAI_API_KEY is set, otherwise from the built-in list.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.gameConfig()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.level, "level", string(domain.LevelN5), "JLPT level (N5, N4, N3)")
	flags.StringSliceVar(&opts.conj, "conj", nil, "verb forms to practise, e.g. Te,Nai")
	flags.IntVar(&opts.pairs, "pairs", wordsource.DefaultPairs, "number of pairs to generate")
	flags.Int64Var(&opts.seed, "seed", 0, "shuffle seed, random when 0")
	flags.BoolVar(&opts.offline, "offline", false, "use the built-in word list even if an API key is set")
	flags.StringVar(&opts.model, "model", "gpt-4o-mini", "chat model for word generation")
	flags.DurationVar(&opts.flashDelay, "flash", game.DefaultFlashDelay, "how long a wrong pick stays red")
	flags.DurationVar(&opts.settleDelay, "settle", game.DefaultSettleDelay, "pause before the result")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "word generation timeout")

	return cmd
}

// gameConfig validates the level and verb form flags
func (o playOptions) gameConfig() (domain.GameConfig, error) {
	level, ok := domain.ParseLevel(strings.ToUpper(o.level))
	if !ok {
		return domain.GameConfig{}, fmt.Errorf("unknown level %q", o.level)
	}

	cfg := domain.GameConfig{Level: level}
	for _, raw := range o.conj {
		c, ok := domain.ParseConjugation(strings.TrimSpace(raw))
		if !ok {
			return domain.GameConfig{}, fmt.Errorf("unknown verb form %q", raw)
		}
		cfg.Conjugations = append(cfg.Conjugations, c)
	}
	return cfg, nil
}

func run(ctx context.Context, in io.Reader, out io.Writer, cfg domain.GameConfig, opts playOptions) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	_ = godotenv.Load()

	words := service.NewWordService(pickSource(opts, logger))

	fmt.Fprintln(out, "⏳ 单词生成中...")
	loadCtx, cancel := context.WithTimeout(ctx, opts.timeout)
	pairs, err := words.LoadPairs(loadCtx, cfg)
	cancel()
	if err != nil {
		return err
	}

	var rnd game.Shuffler
	if opts.seed != 0 {
		rnd = game.NewRand(opts.seed)
	}

	screen := newTerminal(out)
	done := make(chan []domain.WordPair, 1)

	session, err := game.NewSession(pairs, game.Options{
		FlashDelay:  opts.flashDelay,
		SettleDelay: opts.settleDelay,
		Rand:        rnd,
		Speaker:     screen,
		Logger:      logger,
		OnChange:    screen.Board,
		OnFinish:    func(mistakes []domain.WordPair) { done <- mistakes },
	})
	if err != nil {
		return err
	}
	defer session.Close()

	screen.Board(session.Snapshot())

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case mistakes := <-done:
			screen.Result(mistakes)
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			id := strings.TrimSpace(line)
			if id == "q" {
				screen.Quit(session.Mistakes())
				return nil
			}
			if _, known := session.Snapshot().Card(id); !known {
				screen.Println("没有这张卡片: " + id)
				continue
			}
			session.Select(id)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// pickSource uses OpenAI when a key is available, the built-in list otherwise
func pickSource(opts playOptions, logger *zap.Logger) wordsource.Source {
	key := os.Getenv("OPENAI_API_KEY")
	if opts.offline || key == "" {
		return wordsource.Static{}
	}

	clientCfg := openai.DefaultConfig(key)
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		clientCfg.BaseURL = base
	}
	return wordsource.NewOpenAI(openai.NewClientWithConfig(clientCfg), opts.model, opts.pairs, logger)
}
