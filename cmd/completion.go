// Package cmd provides CLI utilities for licenseguard
package cmd

import (
	"fmt"
	"strings"
)

// Commands available in licenseguard
var commands = []string{
	"scan",
	"policy",
	"sbom",
	"completion",
	"version",
	"help",
}

// GenerateBashCompletion generates bash completion script
func GenerateBashCompletion() string {
	return fmt.Sprintf(`# bash completion for licenseguard
_licenseguard_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Commands
    opts="%s"

    # Command-specific options
    case "${prev}" in
        scan)
            opts="--policy --manifest --format --fail-on-unknown --timeout --parallel --workers --quiet -q --json"
            ;;
        policy)
            opts="validate init"
            ;;
        sbom)
            opts="--manifest --format --output --timeout --quiet -q --json"
            ;;
        completion)
            opts="bash zsh fish powershell"
            ;;
        version)
            opts=""
            ;;
    esac

    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
}

complete -F _licenseguard_completions licenseguard
`, strings.Join(commands, " "))
}

// GenerateZshCompletion generates zsh completion script
func GenerateZshCompletion() string {
	cmdList := make([]string, len(commands))
	for i, cmd := range commands {
		desc := getCommandDescription(cmd)
		cmdList[i] = fmt.Sprintf("    '%s:%s'", cmd, desc)
	}

	return fmt.Sprintf(`#compdef licenseguard

_licenseguard() {
    local -a commands
    commands=(
%s
    )

    _arguments -C \
        '1: :->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                scan)
                    _arguments \
                        '--policy[Policy file path]:file:_files' \
                        '--manifest[Dependency manifest path]:file:_files' \
                        '--format[Manifest format]:format:(requirements)' \
                        '--fail-on-unknown[Fail closed on unknown licenses]' \
                        '--timeout[Per-lookup timeout]:duration:' \
                        '--parallel[Resolve licenses concurrently]' \
                        '--workers[Number of parallel workers]:count:' \
                        '--quiet[Minimal output]' \
                        '-q[Minimal output]' \
                        '--json[JSON output]'
                    ;;
                policy)
                    _arguments '1:subcommand:(validate init)'
                    ;;
                sbom)
                    _arguments \
                        '--manifest[Dependency manifest path]:file:_files' \
                        '--format[SBOM format]:format:(cyclonedx spdx)' \
                        '--output[Output file path]:file:_files' \
                        '--timeout[Per-lookup timeout]:duration:' \
                        '--quiet[Minimal output]' \
                        '-q[Minimal output]' \
                        '--json[JSON output]'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish powershell)'
                    ;;
            esac
            ;;
    esac
}

_licenseguard "$@"
`, strings.Join(cmdList, "\n"))
}

// GenerateFishCompletion generates fish completion script
func GenerateFishCompletion() string {
	var completions []string

	// Add command completions
	for _, cmd := range commands {
		desc := getCommandDescription(cmd)
		completions = append(completions, fmt.Sprintf("complete -c licenseguard -f -n '__fish_use_subcommand' -a '%s' -d '%s'", cmd, desc))
	}

	// Add flag completions
	completions = append(completions, "# scan command flags")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from scan' -l policy -d 'Policy file path' -r")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from scan' -l manifest -d 'Dependency manifest path' -r")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from scan' -l format -d 'Manifest format' -r")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from scan' -l fail-on-unknown -d 'Fail closed on unknown licenses'")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from scan' -l timeout -d 'Per-lookup timeout' -r")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from scan' -l parallel -d 'Resolve licenses concurrently'")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from scan' -l workers -d 'Number of parallel workers' -r")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from scan' -l quiet -s q -d 'Minimal output'")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from scan' -l json -d 'JSON output'")

	completions = append(completions, "# policy subcommands")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from policy' -f -a 'validate init'")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from policy' -l yes -s y -d 'Skip confirmation'")

	completions = append(completions, "# sbom command flags")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from sbom' -l manifest -d 'Dependency manifest path' -r")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from sbom' -l format -d 'SBOM format' -r -a 'cyclonedx spdx'")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from sbom' -l output -d 'Output file path' -r")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from sbom' -l timeout -d 'Per-lookup timeout' -r")

	completions = append(completions, "# completion command shells")
	completions = append(completions, "complete -c licenseguard -n '__fish_seen_subcommand_from completion' -f -a 'bash zsh fish powershell'")

	return strings.Join(completions, "\n")
}

// GeneratePowerShellCompletion generates PowerShell completion script
func GeneratePowerShellCompletion() string {
	cmdArray := make([]string, len(commands))
	for i, cmd := range commands {
		cmdArray[i] = fmt.Sprintf("'%s'", cmd)
	}

	return fmt.Sprintf(`# PowerShell completion for licenseguard
Register-ArgumentCompleter -Native -CommandName licenseguard -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $commands = @(%s)

    $line = $commandAst.ToString()
    $tokens = $line.Split(' ')

    if ($tokens.Count -eq 2) {
        # Complete command
        $commands | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
    }
    elseif ($tokens.Count -gt 2) {
        $subcommand = $tokens[1]

        switch ($subcommand) {
            'scan' {
                @('--policy', '--manifest', '--format', '--fail-on-unknown', '--timeout', '--parallel', '--workers', '--quiet', '-q', '--json') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
            'policy' {
                @('validate', 'init') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
            'sbom' {
                @('--manifest', '--format', '--output', '--timeout', '--quiet', '-q', '--json') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
            'completion' {
                @('bash', 'zsh', 'fish', 'powershell') |
                    Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
                    }
            }
        }
    }
}
`, strings.Join(cmdArray, ", "))
}

// getCommandDescription returns a short description for a command
func getCommandDescription(cmd string) string {
	descriptions := map[string]string{
		"scan":       "Scan manifest and enforce license policy",
		"policy":     "Validate or initialize a policy file",
		"sbom":       "Generate an SBOM for manifest dependencies",
		"completion": "Generate shell completion script",
		"version":    "Show version information",
		"help":       "Show help information",
	}

	if desc, ok := descriptions[cmd]; ok {
		return desc
	}
	return ""
}
