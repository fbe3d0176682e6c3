package main

// go build -o runpad .

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"runpad/internal/editor"
	"runpad/internal/reporter"
)

// Version of runpad.
// Версия runpad.
const Version = "1.0.0"

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
	exitSetup  = 3
)

// errUsage marks errors caused by bad arguments.
var errUsage = errors.New("usage")

// printVersion prints the program version.
// printVersion выводит версию программы.
func printVersion(w io.Writer) {
	fmt.Fprintln(w, "runpad version", Version)
}

// detectSystemLanguage возвращает код языка системы: "ru" или "en"
func detectSystemLanguage() string {
	var candidates = []string{
		os.Getenv("LC_ALL"),
		os.Getenv("LC_MESSAGES"),
		os.Getenv("LANG"),
		os.Getenv("LANGUAGE"),
	}
	for _, v := range candidates {
		if v == "" {
			continue
		}
		lv := strings.ToLower(v)
		if dot := strings.IndexByte(lv, '.'); dot != -1 {
			lv = lv[:dot]
		}
		if strings.HasPrefix(lv, "ru") {
			return "ru"
		}
		if strings.HasPrefix(lv, "en") {
			return "en"
		}
	}
	return "en"
}

// cli carries the process streams so commands can be tested.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	clip      editor.Clipboard
	newScreen func(reporter.Theme) (*reporter.Screen, error)
}

// run parses the global flags and dispatches a command. It returns the
// process exit code.
// run разбирает глобальные флаги и запускает команду.
func (c *cli) run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("runpad", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { printUsage(c.stderr) }

	var (
		envFile     string
		showVersion bool
	)
	fs.StringVar(&envFile, "env", ".env", "path to a .env file")
	fs.BoolVar(&showVersion, "version", false, "Show version")
	fs.BoolVar(&showVersion, "v", false, "Show version (short)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if showVersion {
		printVersion(c.stdout)
		return exitOK
	}
	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(c.stderr)
		return exitUsage
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "version":
		printVersion(c.stdout)
		return exitOK
	case "help":
		printUsage(c.stdout)
		return exitOK
	case "detect":
		return c.report(c.detect(cmdArgs))
	case "save":
		return c.report(c.save(cmdArgs))
	case "share":
		return c.report(c.share(cmdArgs))
	}

	a, err := newApp(envFile, c.stderr)
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitSetup
	}
	defer a.close()

	switch cmd {
	case "run":
		ok, err := c.runCode(ctx, a, cmdArgs)
		if err != nil {
			return c.report(err)
		}
		if !ok {
			return exitFailed
		}
		return exitOK
	case "session":
		return c.report(c.session(ctx, a, cmdArgs))
	case "languages":
		return c.report(c.languages(a))
	default:
		fmt.Fprintf(c.stderr, "Error: unknown command %q\n", cmd)
		printUsage(c.stderr)
		return exitUsage
	}
}

// report converts a command error into an exit code.
func (c *cli) report(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitUsage
	default:
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return exitFailed
	}
}

// main is the entry point of the program.
// main является точкой входа в программу.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	c := &cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	code := c.run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
