package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"runpad/internal/domain/execution"
	"runpad/internal/editor"
	"runpad/internal/lang"
	"runpad/internal/reporter"
	"runpad/internal/session"
	"runpad/internal/sniff"
)

// readSource reads a file, or stdin when arg is "-" or empty. The returned
// name is empty for stdin.
func (c *cli) readSource(arg string) (text, name string, err error) {
	if arg == "" || arg == "-" {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "", nil
	}
	text, err = editor.Open(arg)
	return text, arg, err
}

// resolveLanguage picks the language from the flag, the file extension or
// the content, in that order.
func resolveLanguage(flagValue, name, src string) (lang.Language, error) {
	if flagValue != "" {
		l, err := lang.Parse(flagValue)
		if err != nil {
			return lang.Unknown, fmt.Errorf("%w: %v", errUsage, err)
		}
		return l, nil
	}
	if l := lang.FromFilename(name); l != lang.Unknown {
		return l, nil
	}
	if l, ok := sniff.Detect(src); ok {
		return l, nil
	}
	return lang.Unknown, fmt.Errorf("%w: cannot tell the language, pass -lang", errUsage)
}

func newFlagSet(name string, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("runpad "+name, flag.ContinueOnError)
	fs.SetOutput(w)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

// runCode implements "run". ok is false when the submission did not
// succeed.
func (c *cli) runCode(ctx context.Context, a *app, args []string) (ok bool, err error) {
	fs := newFlagSet("run", c.stderr)
	langName := fs.String("lang", "", "language: python, c, cpp or java")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	onScreen := fs.Bool("screen", false, "show the result full screen")
	themeName := fs.String("theme", "dark", "screen theme: dark or light")
	if err := parseFlags(fs, args); err != nil {
		return false, err
	}
	if fs.NArg() != 1 {
		return false, fmt.Errorf("%w: run expects one file or -", errUsage)
	}
	theme, err := reporter.ParseTheme(*themeName)
	if err != nil {
		return false, fmt.Errorf("%w: %v", errUsage, err)
	}

	src, name, err := c.readSource(fs.Arg(0))
	if err != nil {
		return false, err
	}
	language, err := resolveLanguage(*langName, name, src)
	if err != nil {
		return false, err
	}

	res := a.runner.Submit(ctx, execution.Submission{Source: src, Language: language})

	switch {
	case *asJSON:
		err = reporter.JSON(c.stdout, res)
	case *onScreen:
		var sc *reporter.Screen
		if sc, err = c.openScreen(theme); err == nil {
			err = sc.Show(src, res)
		}
	default:
		err = reporter.Text(c.stdout, res)
	}
	return res.OK(), err
}

func (c *cli) openScreen(theme reporter.Theme) (*reporter.Screen, error) {
	if c.newScreen != nil {
		return c.newScreen(theme)
	}
	return reporter.NewScreen(theme)
}

// detect implements "detect".
func (c *cli) detect(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: detect expects at most one file", errUsage)
	}
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	src, _, err := c.readSource(arg)
	if err != nil {
		return err
	}
	l, ok := sniff.Detect(src)
	if !ok {
		return fmt.Errorf("no language detected")
	}
	fmt.Fprintf(c.stdout, "%s\t%s\n", l, l.DisplayName())
	return nil
}

// save implements "save".
func (c *cli) save(args []string) error {
	fs := newFlagSet("save", c.stderr)
	langName := fs.String("lang", "", "language used for the extension")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return fmt.Errorf("%w: save expects <path> [file|-]", errUsage)
	}

	src, name, err := c.readSource(fs.Arg(1))
	if err != nil {
		return err
	}
	language, err := resolveLanguage(*langName, name, src)
	if err != nil && *langName != "" {
		return err
	}

	path, err := editor.Save(fs.Arg(0), language, src)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "saved", path)
	return nil
}

// share implements "share".
func (c *cli) share(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: share expects at most one file", errUsage)
	}
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	src, _, err := c.readSource(arg)
	if err != nil {
		return err
	}
	if err := editor.Share(c.clipboard(), src); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "Code copied to clipboard!")
	return nil
}

// languages implements "languages".
func (c *cli) languages(a *app) error {
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEXT\tCOMPILE\tRUN")
	for _, l := range a.registry.Languages() {
		spec, err := a.registry.Lookup(l)
		if err != nil {
			return err
		}
		compile := "-"
		if spec.NeedsCompile() {
			compile = strings.Join(spec.Compile, " ")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", l, l.DisplayName(), l.Extension(), compile, strings.Join(spec.Run, " "))
	}
	return tw.Flush()
}

// session implements "session".
func (c *cli) session(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("session", c.stderr)
	langName := fs.String("lang", "python", "initial language")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%w: session expects at most one file", errUsage)
	}

	language, err := lang.Parse(*langName)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	buf := editor.NewBuffer("")
	if fs.NArg() == 1 {
		text, err := editor.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		buf = editor.NewBuffer(text)
		if l := lang.FromFilename(fs.Arg(0)); l != lang.Unknown {
			language = l
		}
	}

	s := session.New(a.runner, c.stdout,
		session.WithLanguage(language),
		session.WithBuffer(buf),
		session.WithClipboard(c.clipboard()),
		session.WithAutosave(a.cfg.AutosaveFile, a.cfg.AutosaveInterval),
		session.WithLogger(a.logger),
	)
	return s.Run(ctx, c.stdin)
}

func (c *cli) clipboard() editor.Clipboard {
	if c.clip != nil {
		return c.clip
	}
	return editor.SystemClipboard{}
}
