package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into paths, filter, aggregation/chart, behavior,
// display, and utility. Negated flags (e.g. --no-chart) are applied after
// Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, bad value).
//
// Precedence: defaults < --config YAML file < explicit flags. ParseFlags
// handles the layering itself: flags are parsed once to capture --config,
// the file is applied, then flags are parsed again on top.
func ParseFlags(cfg *Config, version string) error {
	// A pre-scan extracts --config so file values can be layered under
	// the remaining flags. A flag.FlagSet cannot do this: it stops at the
	// first flag it does not know.
	cfgPath := findConfigFlag(os.Args[1:])
	if cfgPath != "" {
		if err := LoadFile(cfg, cfgPath); err != nil {
			return err
		}
		cfg.ConfigFile = cfgPath
	}

	fs := flag.NewFlagSet("faremeter", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var negated negatedFlags

	definePathFlags(fs, cfg)
	defineFilterFlags(fs, cfg, &negated)
	defineChartFlags(fs, cfg, &negated)
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "faremeter v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags applied after Parse. These either invert
// a default (e.g. noChart -> WriteChart=false) or trigger exit (showHelp,
// showVersion).
type negatedFlags struct {
	keepAllRateCodes bool
	allowZeroFare    bool
	allowZeroDist    bool
	noChart          bool
	noSecondary      bool
	noRowStats       bool
	forceColor       bool
	noColor          bool
	showVersion      bool
	showHelp         bool
}

// definePathFlags registers --chart, --csv, --config.
func definePathFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ChartPath, "chart", cfg.ChartPath, "Boxplot output path")
	fs.StringVar(&cfg.ChartPath, "o", cfg.ChartPath, "Same as --chart")
	fs.StringVar(&cfg.SummaryCSV, "csv", cfg.SummaryCSV, "Export summary table as CSV to path")
	// Registered again so the second parse accepts --config; the value was
	// already consumed by the pre-pass.
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML config file (flags override it)")
}

// defineFilterFlags registers the validity-filter bounds.
func defineFilterFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.Float64Var(&cfg.MinDurationMinutes, "min-duration", cfg.MinDurationMinutes,
		"Exclude trips at or below this many minutes")
	fs.Float64Var(&cfg.MaxDurationMinutes, "max-duration", cfg.MaxDurationMinutes,
		"Exclude trips at or above this many minutes")
	fs.BoolVar(&n.keepAllRateCodes, "all-rate-codes", false, "Keep non-standard rate codes (outside 1-6)")
	fs.BoolVar(&n.allowZeroFare, "allow-zero-fare", false, "Keep rows with total_amount <= 0")
	fs.BoolVar(&n.allowZeroDist, "allow-zero-distance", false, "Keep rows with trip_distance <= 0")
}

// defineChartFlags registers aggregation and chart tuning flags.
func defineChartFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.Var(&chartFormatValue{&cfg.ChartFormat}, "format", "Chart format: png | svg | pdf")
	fs.Float64Var(&cfg.ChartQuantileCap, "y-cap", cfg.ChartQuantileCap,
		"Cap boxplot y-axis at this quantile (0 disables)")
	fs.IntVar(&cfg.MinGroupSize, "min-group", cfg.MinGroupSize,
		"Flag groups smaller than this as low-confidence")
	fs.BoolVar(&n.noChart, "no-chart", false, "Skip boxplot rendering")
}

// defineBehaviorFlags registers dry-run and secondary-metric flags.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Load and validate only; write no outputs")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&n.noSecondary, "no-secondary", false, "Skip the cost-per-mile table")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&n.noRowStats, "no-row-stats", false, "Hide per-file row counts")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run environment diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated flag values into cfg
// (e.g. noChart -> WriteChart=false).
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.keepAllRateCodes {
		cfg.KnownRateCodesOnly = false
	}
	if n.allowZeroFare {
		cfg.RequirePositiveFare = false
	}
	if n.allowZeroDist {
		cfg.RequirePositiveDistance = false
	}
	if n.noChart {
		cfg.WriteChart = false
	}
	if n.noSecondary {
		cfg.SecondaryMetric = false
	}
	if n.noRowStats {
		cfg.ShowRowStats = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets DataDir from the optional positional arg. With no
// argument the configured default ("data") holds, matching the legacy
// zero-argument invocation.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		return nil
	case 1:
		cfg.DataDir = NormalizeDirArg(args[0])
		return nil
	default:
		return fmt.Errorf("at most one positional argument (data_dir) expected, got %d", len(args))
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "FareMeter v" + version + " — NYC taxi unit-economics reporter"},
		{"", ""},
		{"  faremeter [OPTIONS] [data_dir]", ""},
		{"", ""},
		{"Paths", ""},
		{"  -o, --chart <path>", "Boxplot output path (default: cost_per_minute_by_rate_code.png)"},
		{"  --csv <path>", "Export summary table as CSV"},
		{"  --config <path>", "YAML config file (flags override it)"},
		{"", ""},
		{"Filter", ""},
		{"  --min-duration <minutes>", "Exclude trips at or below this duration (default: 1)"},
		{"  --max-duration <minutes>", "Exclude trips at or above this duration (default: 1440)"},
		{"  --all-rate-codes", "Keep non-standard rate codes (outside 1-6)"},
		{"  --allow-zero-fare", "Keep rows with total_amount <= 0"},
		{"  --allow-zero-distance", "Keep rows with trip_distance <= 0"},
		{"", ""},
		{"Chart & aggregation", ""},
		{"  --format <png|svg|pdf>", "Chart format (default: png)"},
		{"  --y-cap <quantile>", "Cap boxplot y-axis at quantile (default: 0.95; 0 disables)"},
		{"  --min-group <n>", "Flag groups smaller than n as low-confidence (default: 2)"},
		{"  --no-chart", "Skip boxplot rendering"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Load and validate only; write no outputs"},
		{"  --no-secondary", "Skip the cost-per-mile table"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  --no-row-stats", "Hide per-file row counts"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "Environment diagnostics (data dir, Parquet files, output path)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// findConfigFlag scans args for --config/-config in both "--config path"
// and "--config=path" forms.
func findConfigFlag(args []string) string {
	for i, a := range args {
		switch {
		case a == "--config" || a == "-config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "-config="):
			return strings.TrimPrefix(a, "-config=")
		}
	}
	return ""
}

// flag.Value adapter so ChartFormat can be used with flag.Var.

type chartFormatValue struct{ p *ChartFormat }

func (c *chartFormatValue) String() string {
	if c.p == nil {
		return ""
	}
	return string(*c.p)
}

func (c *chartFormatValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "png":
		*c.p = ChartPNG
	case "svg":
		*c.p = ChartSVG
	case "pdf":
		*c.p = ChartPDF
	default:
		return fmt.Errorf("invalid chart format %q (use 'png', 'svg' or 'pdf')", s)
	}
	return nil
}
