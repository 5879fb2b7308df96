package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"compliance/internal/check"
	"compliance/internal/cli"
	"compliance/internal/logging"
	"compliance/internal/metrics"
	"compliance/internal/report"
	"compliance/internal/requirement"
	"compliance/internal/version"
)

func main() {
	exitCode := run(os.Args[1:], os.Environ(), os.Stdin)
	os.Exit(exitCode)
}

// run orchestrates the full execution flow.
// It returns an exit code (0 for success, non-zero for failure).
// This function is separated from main() to enable testing.
func run(args []string, environ []string, stdin io.Reader) int {
	cmd, err := cli.ParseArgs(args)
	if err != nil {
		if cli.IsHelp(err) {
			fmt.Println(err)
			return 0
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	if cmd.Subcommand == cli.SubcommandCompare {
		return runCompare(cmd)
	}
	return runCheck(cmd, environ, stdin)
}

// runCheck handles the check subcommand.
func runCheck(cmd cli.Command, environ []string, stdin io.Reader) int {
	level, err := logging.ParseLevel(resolveSetting(cmd.LogLevel, environ, "COMPLIANCE_LOG_LEVEL", ""))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	log := logging.New(os.Stderr, level)

	engine := metrics.Engine(resolveSetting(cmd.Engine, environ, "COMPLIANCE_ENGINE", string(metrics.EngineLinux)))
	checkType := metrics.CheckType(resolveSetting(cmd.CheckType, environ, "COMPLIANCE_CHECK_TYPE", string(metrics.CheckSoftware)))
	if _, err := metrics.DialectFor(engine, checkType); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	requirementsPath := resolveSetting(cmd.Requirements, environ, "COMPLIANCE_REQUIREMENTS", "")
	if requirementsPath == "-" && cmd.MetricsStdin {
		fmt.Fprintln(os.Stderr, "Error: --requirements - and --metrics-stdin cannot both read stdin")
		return 1
	}

	value, code := loadRequirements(requirementsPath, stdin)
	if code != 0 {
		return code
	}

	opts := check.Options{
		MetricsPath: resolveSetting(cmd.MetricsPath, environ, "COMPLIANCE_METRICS_PATH", ""),
		CheckType:   checkType,
		Logger:      log,
	}
	if cmd.MetricsStdin {
		content, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot read metrics from stdin: %v\n", err)
			return 1
		}
		opts.MetricsContent = string(content)
	}
	if opts.MetricsContent == "" && opts.MetricsPath == "" {
		log.Warn("no metrics source given, every requirement will be reported missing")
	}

	r, err := check.Run(engine, value, opts)
	if err != nil {
		log.Error("check failed", "engine", engine, "check_type", checkType, "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, metrics.ErrSourceNotFound) {
			return 3
		}
		return 1
	}

	ciMode := cmd.CIMode || getEnvBool(environ, "COMPLIANCE_CI") || getEnvBool(environ, "CI")
	if code := writeReport(r, cmd.JSONOutput, ciMode, log); code != 0 {
		return code
	}

	if cmd.Digest {
		digest, err := report.Digest(r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot compute report digest: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "digest: %s\n", digest)
	}

	if cmd.FailOnViolation && !r.Passed() {
		// Exit with code 5 for non-compliant or missing requirements
		return 5
	}
	return 0
}

// loadRequirements reads the requirements document from path, or stdin for "-".
// No path means no requirements.
func loadRequirements(path string, stdin io.Reader) (any, int) {
	switch path {
	case "":
		return nil, 0
	case "-":
		content, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot read requirements from stdin: %v\n", err)
			return nil, 1
		}
		value, err := requirement.Decode(content)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return nil, 1
		}
		return value, 0
	}

	value, err := requirement.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "requirements file not found: %s\n", path)
			return nil, 3
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, 1
	}
	return value, 0
}

// writeReport prints the report as JSON or text on stdout. CI annotations go to stderr.
func writeReport(r report.Report, jsonOutput, ciMode bool, log *slog.Logger) int {
	if jsonOutput {
		out, err := report.FormatJSON(r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot format report: %v\n", err)
			return 1
		}
		fmt.Println(out)
	} else {
		fmt.Print(report.FormatCLI(r))
	}

	if ciMode {
		fmt.Fprint(os.Stderr, report.FormatCI(r))
	}

	log.Info("check complete", "results", len(r.Results), "passed", r.Passed())
	return 0
}

// runCompare handles the compare subcommand.
func runCompare(cmd cli.Command) int {
	a, b := cmd.Versions[0], cmd.Versions[1]

	if cmd.Policy == "strict" {
		if version.Strict(a, b) {
			fmt.Printf("%s == %s\n", a, b)
		} else {
			fmt.Printf("%s != %s\n", a, b)
		}
		return 0
	}

	compare := version.Compare
	if cmd.Policy == "semver" {
		compare = version.SemVer
	}
	c, err := compare(a, b)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	switch {
	case c < 0:
		fmt.Printf("%s < %s\n", a, b)
	case c > 0:
		fmt.Printf("%s > %s\n", a, b)
	default:
		fmt.Printf("%s == %s\n", a, b)
	}
	return 0
}

// resolveSetting returns the flag value, else the environment variable, else def.
func resolveSetting(flagValue string, environ []string, name, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if v, ok := lookupEnv(environ, name); ok && v != "" {
		return v
	}
	return def
}

// lookupEnv finds name in an environ slice.
func lookupEnv(environ []string, name string) (string, bool) {
	prefix := name + "="
	for _, env := range environ {
		if strings.HasPrefix(env, prefix) {
			return strings.TrimPrefix(env, prefix), true
		}
	}
	return "", false
}

// getEnvBool checks if an environment variable is set to a truthy value
func getEnvBool(environ []string, name string) bool {
	v, ok := lookupEnv(environ, name)
	if !ok {
		return false
	}
	v = strings.ToLower(v)
	return v == "true" || v == "1" || v == "yes"
}
