// Package tui provides terminal user interface components and callbacks for licenseguard.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	styleErr     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// PrintError displays an error message with styling to the terminal.
func PrintError(title, msg string) { fmt.Println(styleErr.Render("✖ " + title)); fmt.Println(msg) }

// PrintSuccess displays a success message with styling to the terminal.
func PrintSuccess(msg string) { fmt.Println(styleSuccess.Render("✔ " + msg)) }

// PrintInfo displays an informational message to the terminal.
func PrintInfo(msg string) { fmt.Println(styleDim.Render(msg)) }

// PrintWarning displays a warning message with styling to the terminal.
func PrintWarning(title, msg string) { fmt.Println(styleWarn.Render("! " + title)); fmt.Println(msg) }

// StyleTitle applies title styling to the given text string.
func StyleTitle(text string) string { return styleTitle.Render(text) }

// PrintHelp displays usage information for licenseguard commands.
func PrintHelp() {
	fmt.Println(styleTitle.Render("licenseguard"))
	fmt.Println("License compliance gate: resolve dependency licenses and enforce an allow/deny policy")
	fmt.Println("\nCommands:")
	fmt.Println("  scan [options]      Scan a manifest and evaluate licenses against the policy")
	fmt.Println("    --policy <path>     Policy file (default: policy.json; .yml/.yaml parsed as YAML)")
	fmt.Println("    --manifest <path>   Dependency manifest (default: requirements.txt)")
	fmt.Println("    --format <name>     Manifest format hint (default: requirements)")
	fmt.Println("    --fail-on-unknown   Fail closed on unknown or unlisted licenses")
	fmt.Println("    --timeout <dur>     Per-lookup timeout (default: 10s)")
	fmt.Println("    --parallel          Resolve licenses concurrently")
	fmt.Println("    --workers <N>       Number of parallel workers (default: NumCPU, max 8)")
	fmt.Println("    --quiet, -q         Minimal output")
	fmt.Println("    --json              Structured JSON output")
	fmt.Println("  policy validate [path]")
	fmt.Println("                      Load and validate a policy file")
	fmt.Println("  policy init [path] [--yes]")
	fmt.Println("                      Write a starter policy file")
	fmt.Println("  sbom [options]      Emit an SBOM for the manifest's dependencies")
	fmt.Println("    --manifest <path>   Dependency manifest (default: requirements.txt)")
	fmt.Println("    --format <name>     cyclonedx (default) or spdx")
	fmt.Println("    --output <path>     Write to file instead of stdout")
	fmt.Println("    --timeout <dur>     Per-lookup timeout (default: 10s)")
	fmt.Println("  completion <shell>  Generate shell completion script (bash/zsh/fish/powershell)")
	fmt.Println("  version             Show version information")
	fmt.Println("\nExit codes:")
	fmt.Println("  0  policy passed")
	fmt.Println("  1  policy violations found")
	fmt.Println("  2  configuration error (missing/malformed policy or manifest)")
	fmt.Println("  3  invalid arguments")
	fmt.Println("\nExamples:")
	fmt.Println("  licenseguard scan")
	fmt.Println("  licenseguard scan --policy compliance/policy.json --manifest requirements.txt")
	fmt.Println("  licenseguard scan --parallel --workers 4 --json")
	fmt.Println("  licenseguard policy init")
	fmt.Println("  licenseguard sbom --format spdx --output sbom.spdx.json")
}
