// Package console runs a quiz session on a text terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/domain/entities"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/locale"
	"github.com/satoshi-quiz/satoshi-quiz-bot/internal/service"
)

// DefaultMaxAttempts is how often invalid input is re-prompted before the
// question counts as answered wrong.
const DefaultMaxAttempts = 3

// Options configures the presenter output.
type Options struct {
	Texts       locale.Texts
	Contact     string
	NoColor     bool
	MaxAttempts int
}

// Presenter reads answers from in and writes questions and results to out.
type Presenter struct {
	engine *service.Engine
	in     *bufio.Reader
	out    io.Writer
	opts   Options
	logger *zap.Logger

	readOnce sync.Once
	lines    chan readResult
}

type readResult struct {
	line string
	err  error
}

func NewPresenter(engine *service.Engine, in io.Reader, out io.Writer, opts Options, logger *zap.Logger) *Presenter {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Presenter{
		engine: engine,
		in:     bufio.NewReader(in),
		out:    out,
		opts:   opts,
		logger: logger,
	}
}

// Run plays one session and prints its result.
func (p *Presenter) Run(ctx context.Context, language, difficulty string, count int) (entities.Result, error) {
	t := p.opts.Texts

	if _, err := p.engine.StartSession(ctx, language, difficulty, count); err != nil {
		if !errors.Is(err, service.ErrDataUnavailable) {
			return entities.Result{}, err
		}
		p.logger.Warn("question pool unavailable",
			zap.String("language", language),
			zap.Error(err),
		)
		p.println(stylize(t.DataUnavailable, p.opts.NoColor, colorError))
	}

	for {
		if err := ctx.Err(); err != nil {
			return entities.Result{}, err
		}

		q, err := p.engine.CurrentQuestion()
		if errors.Is(err, service.ErrSessionComplete) {
			break
		}
		if err != nil {
			return entities.Result{}, err
		}
		info, err := p.engine.Session()
		if err != nil {
			return entities.Result{}, err
		}

		p.printQuestion(info, q)
		choice, err := p.readChoice(ctx, len(q.Options))
		if err != nil {
			return entities.Result{}, err
		}
		if _, err := p.engine.SubmitAnswer(choice); err != nil {
			return entities.Result{}, err
		}
		p.printFeedback(q, choice)
	}

	res, err := p.engine.FinalResult()
	if err != nil {
		return entities.Result{}, err
	}
	p.printResult(res)

	return res, nil
}

// readChoice prompts until a valid option is entered. After MaxAttempts invalid
// lines it returns -1, which the engine scores as wrong.
func (p *Presenter) readChoice(ctx context.Context, options int) (int, error) {
	for attempt := 0; attempt < p.opts.MaxAttempts; attempt++ {
		fmt.Fprint(p.out, "> ")
		line, err := p.readLine(ctx)
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return 0, fmt.Errorf("read answer: %w", err)
		}

		if idx, ok := parseChoice(line, options); ok {
			return idx, nil
		}
		p.println(stylize(fmt.Sprintf(p.opts.Texts.InvalidInput, optionLetter(options-1)), p.opts.NoColor, colorMuted))
	}
	return -1, nil
}

// readLine returns the next input line or ctx.Err() when ctx is done first.
// Lines are read by a single goroutine that stops after the first read error.
func (p *Presenter) readLine(ctx context.Context) (string, error) {
	p.readOnce.Do(func() {
		p.lines = make(chan readResult)
		go func() {
			defer close(p.lines)
			for {
				line, err := p.in.ReadString('\n')
				p.lines <- readResult{line: line, err: err}
				if err != nil {
					return
				}
			}
		}()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return r.line, r.err
	}
}

// parseChoice accepts an option letter (a-d, any case) or a 1-based number.
func parseChoice(input string, options int) (int, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, false
	}

	if len(s) == 1 {
		c := s[0]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			idx := int(c - 'A')
			return idx, idx < options
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > options {
		return 0, false
	}
	return n - 1, true
}

func optionLetter(idx int) string {
	return string(rune('A' + idx))
}

func (p *Presenter) println(s string) {
	fmt.Fprintln(p.out, s)
}
