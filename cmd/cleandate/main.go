// Command cleandate exposes the date library from the shell.
//
// Usage:
//
//	cleandate [--config=file] <command> [flags] [arguments]
//
// Dates are read and written using the configured pattern, yyyy-MM-dd by default.
// Run cleandate help for a list of commands.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"cloudeng.io/cmdutil/subcmd"
	"github.com/muhlemmer/cleanutils/internal/config"
	"github.com/muhlemmer/cleanutils/pkg/date"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
)

const ConfigEnvKey = "CLEANDATE_CONFIG"

var errUsage = errors.New("usage")

// failure marks errors which happened after the command line was accepted.
type failure struct {
	error
}

func (f failure) Unwrap() error {
	return f.error
}

// exitCode maps a dispatch error to the process exit status.
func exitCode(err error) int {
	var f failure
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.As(err, &f):
		return 1
	default:
		return 2
	}
}

type app struct {
	pattern string
	tag     language.Tag
	cal     *date.Calendar
	out     io.Writer
}

func newApp(cfg *config.Config, out io.Writer, opts ...date.Option) (*app, error) {
	tag, err := cfg.Tag()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return &app{
		pattern: cfg.Date.Pattern,
		tag:     tag,
		cal:     date.NewCalendar(append([]date.Option{date.WithLocation(loc)}, opts...)...),
		out:     out,
	}, nil
}

func (a *app) parse(text string) (date.CalendarDate, error) {
	return date.ParseLocale(text, a.pattern, a.tag)
}

func (a *app) format(d date.CalendarDate) (string, error) {
	return date.FormatLocale(d, a.pattern, a.tag)
}

func (a *app) dateAndInt(args []string) (date.CalendarDate, int, error) {
	d, err := a.parse(args[0])
	if err != nil {
		return d, 0, err
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return d, 0, fmt.Errorf("%w: %v", errUsage, err)
	}
	return d, n, nil
}

type globalFlags struct {
	Config string `subcmd:"config,,TOML configuration file; defaults to $CLEANDATE_CONFIG"`
}

type patternFlags struct {
	Pattern string `subcmd:"pattern,,pattern to use instead of the configured one"`
}

type localeFlags struct {
	Locale string `subcmd:"locale,,locale to use instead of the configured one"`
}

// operation computes the output of a command.
type operation func(a *app, values any, args []string) (string, error)

func (a *app) parseText(values any, args []string) (string, error) {
	pattern := a.pattern
	if p := values.(*patternFlags).Pattern; p != "" {
		pattern = p
	}
	d, err := date.ParseLocale(args[0], pattern, a.tag)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

func (a *app) formatDate(_ any, args []string) (string, error) {
	d, err := a.parse(args[0])
	if err != nil {
		return "", err
	}
	return date.FormatLocale(d, args[1], a.tag)
}

func (a *app) month(values any, args []string) (string, error) {
	d, err := a.parse(args[0])
	if err != nil {
		return "", err
	}
	tag := a.tag
	if l := values.(*localeFlags).Locale; l != "" {
		if tag, err = language.Parse(l); err != nil {
			return "", fmt.Errorf("%w: %v", errUsage, err)
		}
	}
	return date.MonthName(d, tag)
}

func (a *app) age(_ any, args []string) (string, error) {
	d, err := a.parse(args[0])
	if err != nil {
		return "", err
	}
	age, err := a.cal.Age(d)
	return strconv.Itoa(age), err
}

func (a *app) addDays(_ any, args []string) (string, error) {
	d, n, err := a.dateAndInt(args)
	if err != nil {
		return "", err
	}
	if d, err = date.AddDays(d, n); err != nil {
		return "", err
	}
	return a.format(d)
}

func (a *app) subtractMonths(_ any, args []string) (string, error) {
	d, n, err := a.dateAndInt(args)
	if err != nil {
		return "", err
	}
	if d, err = date.SubtractMonths(d, n); err != nil {
		return "", err
	}
	return a.format(d)
}

func (a *app) valid(values any, args []string) (string, error) {
	pattern := a.pattern
	if p := values.(*patternFlags).Pattern; p != "" {
		pattern = p
	}
	return strconv.FormatBool(date.IsValid(args[0], pattern)), nil
}

func (a *app) afterToday(_ any, args []string) (string, error) {
	d, err := a.parse(args[0])
	if err != nil {
		return "", err
	}
	after, err := a.cal.IsAfterToday(d)
	return strconv.FormatBool(after), err
}

func (a *app) daysBetween(_ any, args []string) (string, error) {
	d1, err := a.parse(args[0])
	if err != nil {
		return "", err
	}
	d2, err := a.parse(args[1])
	if err != nil {
		return "", err
	}
	days, err := date.DaysBetween(d1, d2)
	return strconv.Itoa(days), err
}

func (a *app) today(_ any, _ []string) (string, error) {
	return a.format(a.cal.Today())
}

// cli dispatches the command line to the app built from the configuration.
type cli struct {
	globals globalFlags
	stdout  io.Writer
	stderr  io.Writer
	opts    []date.Option
	app     *app
}

// configure loads the configuration and builds the app before the command runs.
func (c *cli) configure(ctx context.Context, runner func(context.Context) error) error {
	path := c.globals.Config
	if path == "" {
		path = os.Getenv(ConfigEnvKey)
	}
	logger := zerolog.Ctx(ctx).With().Str("config", path).Logger()

	cfg, err := config.Load(path)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return failure{fmt.Errorf("configuration: %w", err)}
	}
	level, _ := cfg.LogLevel()
	logger = logger.Level(level)

	if c.app, err = newApp(cfg, c.stdout, c.opts...); err != nil {
		return failure{fmt.Errorf("configuration: %w", err)}
	}
	return runner(logger.WithContext(ctx))
}

// runner adapts op to a subcmd.Runner which prints the result.
func (c *cli) runner(name string, op operation) subcmd.Runner {
	return func(ctx context.Context, values any, args []string) error {
		result, err := op(c.app, values, args)
		if errors.Is(err, errUsage) {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err != nil {
			return failure{fmt.Errorf("%s: %w", name, err)}
		}
		zerolog.Ctx(ctx).Debug().Str("command", name).Strs("args", args).Str("result", result).Msg("cleandate")

		if _, err = fmt.Fprintln(c.app.out, result); err != nil {
			return failure{err}
		}
		return nil
	}
}

func (c *cli) commands() *subcmd.CommandSet {
	type entry struct {
		name, summary string
		args          []string
		flags         any
		op            operation
	}
	entries := []entry{
		{"parse", "parse TEXT and print it as yyyy-MM-dd", []string{"<text>"}, &patternFlags{}, (*app).parseText},
		{"format", "print DATE using PATTERN", []string{"<date>", "<pattern>"}, nil, (*app).formatDate},
		{"month", "print the month name of DATE", []string{"<date>"}, &localeFlags{}, (*app).month},
		{"age", "print the age in years of someone born on BIRTHDATE", []string{"<birthdate>"}, nil, (*app).age},
		{"add-days", "print DATE shifted by N days", []string{"<date>", "<n>"}, nil, (*app).addDays},
		{"subtract-months", "print DATE shifted back by N months", []string{"<date>", "<n>"}, nil, (*app).subtractMonths},
		{"valid", "print whether TEXT is a valid date", []string{"<text>"}, &patternFlags{}, (*app).valid},
		{"after-today", "print whether DATE is after today", []string{"<date>"}, nil, (*app).afterToday},
		{"days-between", "print the amount of days from DATE1 to DATE2", []string{"<date1>", "<date2>"}, nil, (*app).daysBetween},
		{"today", "print today's date", nil, nil, (*app).today},
	}

	cmds := make([]*subcmd.Command, len(entries))
	for i, s := range entries {
		fs := subcmd.NewFlagSet()
		if s.flags != nil {
			fs.MustRegisterFlagStruct(s.flags, nil, nil)
		}
		opt := subcmd.ExactlyNumArguments(len(s.args))
		if len(s.args) == 0 {
			opt = subcmd.WithoutArguments()
		}
		cmds[i] = subcmd.NewCommand(s.name, fs, c.runner(s.name, s.op), opt)
		cmds[i].Document(s.summary, s.args...)
	}

	globals := subcmd.NewFlagSet()
	globals.MustRegisterFlagStruct(&c.globals, nil, nil)

	cmdSet := subcmd.NewCommandSet(cmds...)
	cmdSet.Document("cleandate parses, formats and shifts calendar dates.")
	cmdSet.WithGlobalFlags(globals)
	cmdSet.WithMain(c.configure)
	cmdSet.SetOutput(c.stderr)
	return cmdSet
}

func run(args []string, stdout, stderr io.Writer, opts ...date.Option) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP)
	defer cancel()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)

	c := &cli{stdout: stdout, stderr: stderr, opts: opts}
	cmdSet := c.commands()
	if len(args) == 0 {
		fmt.Fprint(stderr, cmdSet.Usage("cleandate"))
		return 2
	}

	err := cmdSet.DispatchWithArgs(ctx, "cleandate", args...)
	code := exitCode(err)
	if code != 0 {
		logger.Error().Err(err).Msg("cleandate")
	}
	if code == 2 {
		fmt.Fprint(stderr, cmdSet.Usage("cleandate"))
	}
	return code
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
