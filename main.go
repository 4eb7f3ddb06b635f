// Package main implements the licenseguard CLI tool for enforcing dependency license policies.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/licenseguard/licenseguard/cmd"
	"github.com/licenseguard/licenseguard/internal/core"
	"github.com/licenseguard/licenseguard/internal/tui"
	"github.com/licenseguard/licenseguard/internal/version"
)

// Version information is managed in internal/version package
// GoReleaser injects version info directly via ldflags

// parseCommonFlags extracts common non-interactive flags from args
// Returns: flags, remainingArgs
func parseCommonFlags(args []string) (core.NonInteractiveFlags, []string) {
	flags := core.NonInteractiveFlags{}
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--yes", "-y":
			flags.Yes = true
		case "--quiet", "-q":
			flags.Mode = core.OutputQuiet
		case "--json":
			flags.Mode = core.OutputJSON
		default:
			remaining = append(remaining, arg)
		}
	}

	return flags, remaining
}

// newCallback selects the UI callback for the given flags.
func newCallback(flags core.NonInteractiveFlags) core.UICallback {
	if flags.Yes || flags.Mode != core.OutputNormal {
		return tui.NewNonInteractiveTUICallback(flags)
	}
	return tui.NewTUICallback()
}

// scanFlags holds the parsed options of the scan command.
type scanFlags struct {
	policyPath    string
	manifestPath  string
	format        string
	failOnUnknown bool
	timeout       time.Duration
	parallel      bool
	workers       int
	showHelp      bool
}

// parseScanFlags parses scan-specific flags. Both "--flag value" and
// "--flag=value" forms are accepted.
func parseScanFlags(args []string) (scanFlags, error) {
	f := scanFlags{
		policyPath:   core.DefaultPolicyFile,
		manifestPath: core.DefaultManifestFile,
		format:       string(core.FormatRequirements),
		timeout:      core.DefaultLookupTimeout,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--help" || arg == "-h":
			f.showHelp = true
		case arg == "--policy" && i+1 < len(args):
			f.policyPath = args[i+1]
			i++
		case strings.HasPrefix(arg, "--policy="):
			f.policyPath = strings.TrimPrefix(arg, "--policy=")
		case arg == "--manifest" && i+1 < len(args):
			f.manifestPath = args[i+1]
			i++
		case strings.HasPrefix(arg, "--manifest="):
			f.manifestPath = strings.TrimPrefix(arg, "--manifest=")
		case arg == "--format" && i+1 < len(args):
			f.format = args[i+1]
			i++
		case strings.HasPrefix(arg, "--format="):
			f.format = strings.TrimPrefix(arg, "--format=")
		case arg == "--fail-on-unknown":
			f.failOnUnknown = true
		case arg == "--parallel":
			f.parallel = true
		case arg == "--workers" && i+1 < len(args):
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				return f, fmt.Errorf("--workers requires a positive integer, got %q", args[i+1])
			}
			f.workers = n
			i++
		case strings.HasPrefix(arg, "--workers="):
			v := strings.TrimPrefix(arg, "--workers=")
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return f, fmt.Errorf("--workers requires a positive integer, got %q", v)
			}
			f.workers = n
		case arg == "--timeout" && i+1 < len(args):
			d, err := time.ParseDuration(args[i+1])
			if err != nil || d <= 0 {
				return f, fmt.Errorf("--timeout requires a positive duration, got %q", args[i+1])
			}
			f.timeout = d
			i++
		case strings.HasPrefix(arg, "--timeout="):
			v := strings.TrimPrefix(arg, "--timeout=")
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return f, fmt.Errorf("--timeout requires a positive duration, got %q", v)
			}
			f.timeout = d
		default:
			return f, fmt.Errorf("unknown option %q", arg)
		}
	}

	if f.format != string(core.FormatRequirements) {
		return f, fmt.Errorf("unsupported manifest format %q", f.format)
	}

	return f, nil
}

func main() {
	if len(os.Args) < 2 {
		tui.PrintHelp()
		os.Exit(0)
	}

	command := os.Args[1]

	// Handle help flags
	if command == "--help" || command == "-h" || command == "help" {
		tui.PrintHelp()
		os.Exit(0)
	}

	// Handle version flag
	if command == "--version" || command == "version" {
		fmt.Printf("licenseguard %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
		os.Exit(0)
	}

	switch command {
	case "scan":
		os.Exit(runScan(os.Args[2:]))

	case "policy":
		os.Exit(runPolicy(os.Args[2:]))

	case "sbom":
		os.Exit(runSBOM(os.Args[2:]))

	case "completion":
		if len(os.Args) < 3 {
			tui.PrintError("Usage", "licenseguard completion <bash|zsh|fish|powershell>")
			os.Exit(core.ExitInvalidArguments)
		}

		shell := os.Args[2]
		var script string
		switch shell {
		case "bash":
			script = cmd.GenerateBashCompletion()
		case "zsh":
			script = cmd.GenerateZshCompletion()
		case "fish":
			script = cmd.GenerateFishCompletion()
		case "powershell":
			script = cmd.GeneratePowerShellCompletion()
		default:
			tui.PrintError("Invalid Shell", fmt.Sprintf("'%s' is not supported. Use bash, zsh, fish, or powershell", shell))
			os.Exit(core.ExitInvalidArguments)
		}
		fmt.Print(script)

	default:
		tui.PrintError("Unknown Command", fmt.Sprintf("'%s' is not a valid licenseguard command", command))
		fmt.Println()
		tui.PrintHelp()
		os.Exit(core.ExitInvalidArguments)
	}
}

// runScan executes the scan command and returns the process exit code.
func runScan(args []string) int {
	flags, rest := parseCommonFlags(args)
	callback := newCallback(flags)

	opts, err := parseScanFlags(rest)
	if err != nil {
		if flags.Mode == core.OutputJSON {
			return core.EmitCLIError(core.ErrCodeInvalidArguments, err.Error(), core.ExitInvalidArguments)
		}
		callback.ShowError("Invalid Arguments", err.Error())
		return core.ExitInvalidArguments
	}
	if opts.showHelp {
		printScanHelp()
		return core.ExitSuccess
	}

	resolver := core.NewDepsDevResolver(&http.Client{Timeout: opts.timeout}, "")
	service := core.NewScanService(resolver, callback, tui.NewProgressFactory(flags.Mode))

	report, err := service.Scan(context.Background(), core.ScanOptions{
		PolicyPath:    opts.policyPath,
		ManifestPath:  opts.manifestPath,
		Format:        core.ManifestFormat(opts.format),
		FailOnUnknown: opts.failOnUnknown,
		Parallel:      opts.parallel,
		Workers:       opts.workers,
	})
	if err != nil {
		if flags.Mode == core.OutputJSON {
			return core.EmitCLIError(core.CLIErrorCodeForError(err), err.Error(), core.CLIExitCodeForError(err))
		}
		callback.ShowError("Scan Failed", err.Error())
		return core.CLIExitCodeForError(err)
	}

	if flags.Mode == core.OutputJSON {
		if report.Verdict.OverallPass {
			core.EmitCLISuccess(report)
			return core.ExitSuccess
		}
		resp := core.CLIResponse{
			Success: false,
			Data:    report,
			Error: &core.CLIErrorDetail{
				Code:    core.ErrCodePolicyViolations,
				Message: fmt.Sprintf("%d dependencies violate the license policy", len(report.Verdict.Violations)),
			},
		}
		core.EmitCLIResponse(resp)
		return core.ExitViolations
	}

	tui.PrintScanReport(report, flags.Mode)
	if !report.Verdict.OverallPass {
		return core.ExitViolations
	}
	return core.ExitSuccess
}

// runPolicy executes the policy subcommands and returns the process exit code.
func runPolicy(args []string) int {
	flags, rest := parseCommonFlags(args)
	callback := newCallback(flags)

	if len(rest) < 1 {
		callback.ShowError("Usage", "licenseguard policy <validate|init> [path]")
		return core.ExitInvalidArguments
	}

	sub := rest[0]
	path := core.DefaultPolicyFile
	if len(rest) > 1 {
		path = rest[1]
	}

	switch sub {
	case "validate":
		policy, err := core.LoadPolicy(path)
		if err != nil {
			if flags.Mode == core.OutputJSON {
				return core.EmitCLIError(core.CLIErrorCodeForError(err), err.Error(), core.CLIExitCodeForError(err))
			}
			callback.ShowError("Invalid Policy", err.Error())
			return core.CLIExitCodeForError(err)
		}

		if flags.Mode == core.OutputJSON {
			core.EmitCLISuccess(map[string]interface{}{
				"policy_file":      path,
				"approved_count":   len(policy.Approved),
				"restricted_count": len(policy.Restricted),
				"fail_on_unknown":  policy.FailOnUnknown,
			})
			return core.ExitSuccess
		}
		callback.ShowSuccess(fmt.Sprintf("%s is valid (%d approved, %d restricted)",
			path, len(policy.Approved), len(policy.Restricted)))
		return core.ExitSuccess

	case "init":
		if _, err := os.Stat(path); err == nil {
			confirmed := callback.AskConfirmation(
				fmt.Sprintf("Overwrite '%s'?", path),
				"The existing policy file will be replaced with the starter policy.",
			)
			if !confirmed {
				if flags.Mode != core.OutputQuiet {
					fmt.Println("Cancelled.")
				}
				return core.ExitInvalidArguments
			}
		}

		if err := core.SavePolicy(path, core.StarterPolicy()); err != nil {
			callback.ShowError("Init Failed", err.Error())
			return core.ExitConfigError
		}
		callback.ShowSuccess("Wrote starter policy to " + path)
		return core.ExitSuccess

	default:
		callback.ShowError("Unknown Subcommand", fmt.Sprintf("'%s' is not a valid policy subcommand. Use validate or init", sub))
		return core.ExitInvalidArguments
	}
}

// runSBOM executes the sbom command and returns the process exit code.
func runSBOM(args []string) int {
	flags, rest := parseCommonFlags(args)
	callback := newCallback(flags)

	manifestPath := core.DefaultManifestFile
	format := string(core.SBOMFormatCycloneDX)
	outputFile := ""
	timeout := core.DefaultLookupTimeout
	showHelp := false

	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch {
		case arg == "--help" || arg == "-h":
			showHelp = true
		case arg == "--manifest" && i+1 < len(rest):
			manifestPath = rest[i+1]
			i++
		case strings.HasPrefix(arg, "--manifest="):
			manifestPath = strings.TrimPrefix(arg, "--manifest=")
		case arg == "--format" && i+1 < len(rest):
			format = rest[i+1]
			i++
		case strings.HasPrefix(arg, "--format="):
			format = strings.TrimPrefix(arg, "--format=")
		case arg == "--output" && i+1 < len(rest):
			outputFile = rest[i+1]
			i++
		case strings.HasPrefix(arg, "--output="):
			outputFile = strings.TrimPrefix(arg, "--output=")
		case arg == "-o" && i+1 < len(rest):
			outputFile = rest[i+1]
			i++
		case arg == "--timeout" && i+1 < len(rest):
			d, err := time.ParseDuration(rest[i+1])
			if err != nil || d <= 0 {
				callback.ShowError("Invalid Arguments", fmt.Sprintf("--timeout requires a positive duration, got %q", rest[i+1]))
				return core.ExitInvalidArguments
			}
			timeout = d
			i++
		case strings.HasPrefix(arg, "--timeout="):
			v := strings.TrimPrefix(arg, "--timeout=")
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				callback.ShowError("Invalid Arguments", fmt.Sprintf("--timeout requires a positive duration, got %q", v))
				return core.ExitInvalidArguments
			}
			timeout = d
		default:
			callback.ShowError("Invalid Arguments", fmt.Sprintf("unknown option %q", arg))
			return core.ExitInvalidArguments
		}
	}

	if showHelp {
		fmt.Println("Generate Software Bill of Materials (SBOM) from manifest dependencies")
		fmt.Println()
		fmt.Println("Usage: licenseguard sbom [options]")
		fmt.Println()
		fmt.Println("Options:")
		fmt.Println("  --manifest <path>  Dependency manifest (default: requirements.txt)")
		fmt.Println("  --format <fmt>     Output format: cyclonedx (default) or spdx")
		fmt.Println("  --output <file>    Write to file instead of stdout")
		fmt.Println("  -o <file>          Shorthand for --output")
		fmt.Println("  --timeout <dur>    Per-lookup timeout (default: 10s)")
		fmt.Println("  --help, -h         Show this help message")
		fmt.Println()
		fmt.Println("Formats:")
		fmt.Println("  cyclonedx   CycloneDX 1.5 JSON - security-focused, widely supported by scanners")
		fmt.Println("  spdx        SPDX 2.3 JSON - compliance-focused for license analysis")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  licenseguard sbom                          # Output CycloneDX to stdout")
		fmt.Println("  licenseguard sbom --format spdx            # Output SPDX to stdout")
		fmt.Println("  licenseguard sbom -o sbom.json             # Write CycloneDX to file")
		return core.ExitSuccess
	}

	// Validate format
	var sbomFormat core.SBOMFormat
	switch format {
	case "cyclonedx":
		sbomFormat = core.SBOMFormatCycloneDX
	case "spdx":
		sbomFormat = core.SBOMFormatSPDX
	default:
		callback.ShowError("Invalid Format", fmt.Sprintf("'%s' is not a valid SBOM format. Use 'cyclonedx' or 'spdx'", format))
		return core.ExitInvalidArguments
	}

	deps, warnings, err := core.ReadManifest(manifestPath, core.FormatRequirements)
	if err != nil {
		if flags.Mode == core.OutputJSON {
			return core.EmitCLIError(core.CLIErrorCodeForError(err), err.Error(), core.CLIExitCodeForError(err))
		}
		callback.ShowError("SBOM Generation Failed", err.Error())
		return core.CLIExitCodeForError(err)
	}
	for _, w := range warnings {
		callback.ShowWarning("Manifest",
			fmt.Sprintf("line %d skipped (%s): %s", w.Line, w.Message, w.Content))
	}

	resolver := core.NewDepsDevResolver(&http.Client{Timeout: timeout}, "")
	executor := core.NewParallelExecutor(1)

	var progress core.ProgressTracker
	if len(deps) > 0 && outputFile != "" {
		// Progress only when the SBOM goes to a file; stdout must stay clean JSON
		progress = tui.NewProgressFactory(flags.Mode)(len(deps), "Resolving licenses")
	}
	records := executor.ResolveAll(context.Background(), deps, resolver, progress)
	if progress != nil {
		progress.Complete()
	}

	// Determine project name from current directory
	projectName := "unknown-project"
	if cwd, err := os.Getwd(); err == nil {
		parts := strings.Split(cwd, string(os.PathSeparator))
		if len(parts) > 0 {
			projectName = parts[len(parts)-1]
		}
	}

	generator := core.NewSBOMGenerator(projectName)
	output, err := generator.Generate(records, sbomFormat)
	if err != nil {
		callback.ShowError("SBOM Generation Failed", err.Error())
		return core.ExitViolations
	}

	// Write output
	if outputFile != "" {
		if err := os.WriteFile(outputFile, output, 0o644); err != nil {
			callback.ShowError("Write Failed", err.Error())
			return core.ExitConfigError
		}
		callback.ShowSuccess(fmt.Sprintf("SBOM written to %s", outputFile))
	} else {
		// Write to stdout
		fmt.Print(string(output))
	}
	return core.ExitSuccess
}

// printScanHelp prints the scan command usage.
func printScanHelp() {
	fmt.Println("Scan a dependency manifest and evaluate licenses against the policy")
	fmt.Println()
	fmt.Println("Usage: licenseguard scan [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --policy <path>     Policy file (default: policy.json; .yml/.yaml parsed as YAML)")
	fmt.Println("  --manifest <path>   Dependency manifest (default: requirements.txt)")
	fmt.Println("  --format <name>     Manifest format hint (default: requirements)")
	fmt.Println("  --fail-on-unknown   Fail closed on unknown or unlisted licenses")
	fmt.Println("  --timeout <dur>     Per-lookup timeout (default: 10s)")
	fmt.Println("  --parallel          Resolve licenses concurrently")
	fmt.Println("  --workers <N>       Number of parallel workers (default: NumCPU, max 8)")
	fmt.Println("  --quiet, -q         Minimal output")
	fmt.Println("  --json              Structured JSON output")
	fmt.Println("  --help, -h          Show this help message")
	fmt.Println()
	fmt.Println("Exit codes:")
	fmt.Println("  0  policy passed")
	fmt.Println("  1  policy violations found")
	fmt.Println("  2  configuration error (missing/malformed policy or manifest)")
	fmt.Println("  3  invalid arguments")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  licenseguard scan")
	fmt.Println("  licenseguard scan --policy compliance/policy.yaml --fail-on-unknown")
	fmt.Println("  licenseguard scan --parallel --workers 4 --json")
}
