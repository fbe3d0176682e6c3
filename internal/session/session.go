// Package session implements the line-oriented interactive editor: plain
// lines go into the buffer and lines starting with ':' are commands.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"runpad/internal/domain/execution"
	"runpad/internal/editor"
	"runpad/internal/lang"
	"runpad/internal/reporter"
	"runpad/internal/sniff"
)

// Submitter runs a submission. *runner.Runner satisfies it.
type Submitter interface {
	Submit(ctx context.Context, sub execution.Submission) *execution.Result
}

// Session is one interactive editing session.
type Session struct {
	runner   Submitter
	buf      *editor.Buffer
	language lang.Language
	clip     editor.Clipboard
	out      io.Writer
	logger   *zerolog.Logger

	autosavePath     string
	autosaveInterval time.Duration
}

// Option customizes a Session.
type Option func(*Session)

// WithLanguage sets the initially selected language.
func WithLanguage(l lang.Language) Option {
	return func(s *Session) { s.language = l }
}

// WithBuffer starts the session on an existing buffer.
func WithBuffer(buf *editor.Buffer) Option {
	return func(s *Session) {
		if buf != nil {
			s.buf = buf
		}
	}
}

// WithClipboard replaces the system clipboard.
func WithClipboard(clip editor.Clipboard) Option {
	return func(s *Session) { s.clip = clip }
}

// WithAutosave snapshots the buffer to path every interval while the
// session runs. An empty path disables autosave.
func WithAutosave(path string, interval time.Duration) Option {
	return func(s *Session) {
		s.autosavePath = path
		s.autosaveInterval = interval
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a session writing its responses to out.
func New(r Submitter, out io.Writer, opts ...Option) *Session {
	nop := zerolog.Nop()
	s := &Session{
		runner:   r,
		buf:      editor.NewBuffer(""),
		language: lang.Python,
		clip:     editor.SystemClipboard{},
		out:      out,
		logger:   &nop,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Buffer returns the session buffer.
func (s *Session) Buffer() *editor.Buffer { return s.buf }

// Language returns the selected language.
func (s *Session) Language() lang.Language { return s.language }

var errQuit = errors.New("quit")

// Run reads lines from in until EOF, ":quit" or ctx cancellation.
// Run читает строки до конца ввода или команды :quit.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	if s.autosavePath != "" {
		saver := editor.NewAutosaver(s.autosavePath, s.autosaveInterval, s.buf, s.logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			saver.Run(ctx)
		}()
	}

	s.logger.Info().Str("language", string(s.language)).Msg("session started")
	s.printf("runpad session (%s). Type :help for commands.\n", s.language.DisplayName())

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.handle(ctx, scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// handle processes one input line.
func (s *Session) handle(ctx context.Context, line string) error {
	switch {
	case strings.HasPrefix(line, "::"):
		s.buf.Append(line[1:])
		return nil
	case !strings.HasPrefix(line, ":"):
		s.buf.Append(line)
		return nil
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		s.printf("empty command, type :help\n")
		return nil
	}
	cmd, args := fields[0], fields[1:]
	s.logger.Debug().Str("command", cmd).Strs("args", args).Msg("session command")

	switch cmd {
	case "run", "r":
		s.run(ctx)
	case "lang", "l":
		s.setLanguage(args)
	case "detect":
		s.detect()
	case "save", "w":
		s.save(args)
	case "open", "e":
		s.open(args)
	case "share":
		s.share()
	case "show", "p":
		s.show()
	case "clear":
		s.buf.Clear()
		s.printf("buffer cleared\n")
	case "undo", "u":
		if !s.buf.Undo() {
			s.printf("nothing to undo\n")
		}
	case "redo":
		if !s.buf.Redo() {
			s.printf("nothing to redo\n")
		}
	case "replace", "s":
		s.replace(args)
	case "help", "h":
		s.printf("%s", helpText)
	case "quit", "q":
		return errQuit
	default:
		s.printf("unknown command :%s, type :help\n", cmd)
	}
	return nil
}

const helpText = `commands:
  :run              run the buffer
  :lang <name>      select python, c, cpp or java
  :detect           guess the language of the buffer
  :save <path>      save the buffer (extension added when missing)
  :open <path>      load a file into the buffer
  :share            copy the buffer to the clipboard
  :show             print the buffer with line numbers
  :clear            empty the buffer
  :undo, :redo      undo or redo the last change
  :replace <a> <b>  replace every a with b
  :quit             leave the session
lines starting with "::" are added with one ':' removed
`

func (s *Session) run(ctx context.Context) {
	res := s.runner.Submit(ctx, execution.Submission{Source: s.buf.Text(), Language: s.language})
	if err := reporter.Text(s.out, res); err != nil {
		s.logger.Error().Err(err).Msg("write result")
	}
}

func (s *Session) setLanguage(args []string) {
	if len(args) == 0 {
		s.printf("language: %s\n", s.language.DisplayName())
		return
	}
	l, err := lang.Parse(strings.Join(args, " "))
	if err != nil {
		s.printf("%v\n", err)
		return
	}
	s.language = l
	s.printf("language: %s\n", l.DisplayName())
}

func (s *Session) detect() {
	detected, ok := sniff.Detect(s.buf.Text())
	if !ok {
		s.printf("no language detected\n")
		return
	}
	s.printf("detected: %s\n", detected.DisplayName())
}

func (s *Session) save(args []string) {
	if len(args) != 1 {
		s.printf("usage: :save <path>\n")
		return
	}
	path, err := editor.Save(args[0], s.language, s.buf.Text())
	if err != nil {
		s.printf("%v\n", err)
		return
	}
	s.buf.MarkClean()
	s.printf("saved %s\n", path)
}

func (s *Session) open(args []string) {
	if len(args) != 1 {
		s.printf("usage: :open <path>\n")
		return
	}
	text, err := editor.Open(args[0])
	if err != nil {
		s.printf("%v\n", err)
		return
	}
	s.buf.SetText(text)
	s.buf.MarkClean()
	if l := lang.FromFilename(args[0]); l != lang.Unknown {
		s.language = l
	}
	s.printf("opened %s (%d lines, %s)\n", args[0], s.buf.Len(), s.language.DisplayName())
}

func (s *Session) share() {
	if err := editor.Share(s.clip, s.buf.Text()); err != nil {
		s.printf("%v\n", err)
		return
	}
	s.printf("code copied to clipboard\n")
}

func (s *Session) show() {
	text := s.buf.Text()
	if text == "" {
		s.printf("(empty)\n")
		return
	}
	for i, line := range strings.Split(text, "\n") {
		s.printf("%4d  %s\n", i+1, line)
	}
}

func (s *Session) replace(args []string) {
	if len(args) != 2 {
		s.printf("usage: :replace <old> <new>\n")
		return
	}
	n := s.buf.ReplaceAll(args[0], args[1])
	s.printf("%d replacement(s)\n", n)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
