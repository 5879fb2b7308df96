package cli

import (
	"errors"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// ErrNoSubcommand is returned when the first argument is not a known subcommand
var ErrNoSubcommand = errors.New("missing subcommand: usage: compliance <check|compare> [flags]")

// ErrUnexpectedArgs is returned when check is given positional arguments
var ErrUnexpectedArgs = errors.New("unexpected arguments: usage: compliance check [flags]")

// ErrCompareArgs is returned when compare is not given exactly two versions
var ErrCompareArgs = errors.New("compare requires two versions: usage: compliance compare [--policy strict|ordered|semver] <a> <b>")

// Subcommand represents the CLI subcommand
type Subcommand string

const (
	SubcommandCheck   Subcommand = "check"
	SubcommandCompare Subcommand = "compare"
)

// Command represents the parsed CLI input
type Command struct {
	Subcommand Subcommand

	// check flags
	Engine          string // --engine linux|windows
	CheckType       string // --type software|updates
	Requirements    string // --requirements <path|->
	MetricsPath     string // --metrics <path>
	MetricsStdin    bool   // --metrics-stdin
	JSONOutput      bool   // --json
	CIMode          bool   // --ci
	Digest          bool   // --digest
	FailOnViolation bool   // --fail-on-violation
	LogLevel        string // --log-level

	// compare
	Policy   string    // --policy strict|ordered|semver
	Versions [2]string // the two versions to compare
}

type checkOptions struct {
	Engine          string `short:"e" long:"engine" description:"compliance engine" choice:"linux" choice:"windows"`
	CheckType       string `short:"t" long:"type" description:"what to check" choice:"software" choice:"updates"`
	Requirements    string `short:"r" long:"requirements" description:"YAML or JSON requirements file, - for stdin" value-name:"PATH"`
	MetricsPath     string `short:"m" long:"metrics" description:"metrics file holding the installed inventory" value-name:"PATH"`
	MetricsStdin    bool   `long:"metrics-stdin" description:"read the metrics text from stdin"`
	JSONOutput      bool   `long:"json" description:"print the report as JSON"`
	CIMode          bool   `long:"ci" description:"print GitHub Actions annotations"`
	Digest          bool   `long:"digest" description:"print the report digest"`
	FailOnViolation bool   `long:"fail-on-violation" description:"exit 5 when a requirement is non-compliant or missing"`
	LogLevel        string `long:"log-level" description:"diagnostic log level" choice:"debug" choice:"info" choice:"warn" choice:"error"`
}

type compareOptions struct {
	Policy string `short:"p" long:"policy" description:"comparison policy" choice:"strict" choice:"ordered" choice:"semver" default:"ordered"`
}

// ParseArgs parses CLI arguments into a Command.
// It expects args to be os.Args[1:] (excluding the program name).
func ParseArgs(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, ErrNoSubcommand
	}

	switch Subcommand(args[0]) {
	case SubcommandCheck:
		return parseCheck(args[1:])
	case SubcommandCompare:
		return parseCompare(args[1:])
	}
	return Command{}, ErrNoSubcommand
}

func parseCheck(args []string) (Command, error) {
	var opts checkOptions
	rest, err := newParser(&opts, "check", "[OPTIONS]").ParseArgs(args)
	if err != nil {
		return Command{}, err
	}
	if len(rest) > 0 {
		return Command{}, fmt.Errorf("%w: %v", ErrUnexpectedArgs, rest)
	}

	return Command{
		Subcommand:      SubcommandCheck,
		Engine:          opts.Engine,
		CheckType:       opts.CheckType,
		Requirements:    opts.Requirements,
		MetricsPath:     opts.MetricsPath,
		MetricsStdin:    opts.MetricsStdin,
		JSONOutput:      opts.JSONOutput,
		CIMode:          opts.CIMode,
		Digest:          opts.Digest,
		FailOnViolation: opts.FailOnViolation,
		LogLevel:        opts.LogLevel,
	}, nil
}

func parseCompare(args []string) (Command, error) {
	var opts compareOptions
	rest, err := newParser(&opts, "compare", "[OPTIONS] <a> <b>").ParseArgs(args)
	if err != nil {
		return Command{}, err
	}
	if len(rest) != 2 {
		return Command{}, ErrCompareArgs
	}

	return Command{
		Subcommand: SubcommandCompare,
		Policy:     opts.Policy,
		Versions:   [2]string{rest[0], rest[1]},
	}, nil
}

func newParser(data any, name, usage string) *flags.Parser {
	p := flags.NewParser(data, flags.HelpFlag|flags.PassDoubleDash)
	p.Name = "compliance " + name
	p.Usage = usage
	return p
}

// IsHelp reports whether err carries the help text requested with -h/--help.
func IsHelp(err error) bool {
	return flags.WroteHelp(err)
}
