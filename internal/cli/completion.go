package cli

import (
	"fmt"
)

// CompletionCmd generates shell completions
type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type (bash, zsh, fish)"`
}

// Run executes the completion command
func (c *CompletionCmd) Run(globals *Globals) error {
	var script string
	switch c.Shell {
	case "bash":
		script = bashCompletion
	case "zsh":
		script = zshCompletion
	case "fish":
		script = fishCompletion
	default:
		return fmt.Errorf("unsupported shell: %s", c.Shell)
	}
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

const bashCompletion = `# convlog bash completion script
# Add to ~/.bashrc or ~/.bash_profile:
#   eval "$(convlog completion bash)"

_convlog_completions() {
    local cur prev words cword
    _init_completion || return

    local commands="analyze ui doctor schema config version completion"
    local global_flags="--output-format -q --quiet -v --verbose"
    local run_flags="-i --input -o --output -f --format --detailed --encoding --max-entries --min-level -p --pattern -x --exclude --step"

    case "${prev}" in
        convlog)
            COMPREPLY=($(compgen -W "${commands} ${run_flags} ${global_flags}" -- "${cur}"))
            return
            ;;
        --output-format)
            COMPREPLY=($(compgen -W "ndjson text" -- "${cur}"))
            return
            ;;
        -f|--format)
            COMPREPLY=($(compgen -W "csv markdown both" -- "${cur}"))
            return
            ;;
        --min-level)
            COMPREPLY=($(compgen -W "critical error warning" -- "${cur}"))
            return
            ;;
        --encoding)
            COMPREPLY=($(compgen -W "utf-8 utf-16 latin-1 windows-1252 shift_jis" -- "${cur}"))
            return
            ;;
        -i|--input)
            _filedir
            return
            ;;
        -o|--output)
            _filedir -d
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "show path generate" -- "${cur}"))
            return
            ;;
    esac

    case "${words[1]}" in
        analyze|ui|-*)
            COMPREPLY=($(compgen -W "${run_flags} ${global_flags}" -- "${cur}"))
            ;;
        schema)
            COMPREPLY=($(compgen -W "-t --type ${global_flags}" -- "${cur}"))
            ;;
        *)
            COMPREPLY=($(compgen -W "${commands} ${global_flags}" -- "${cur}"))
            ;;
    esac
}

complete -F _convlog_completions convlog
`

const zshCompletion = `#compdef convlog
# convlog zsh completion script
# Add to ~/.zshrc:
#   eval "$(convlog completion zsh)"

_convlog() {
    local -a commands
    commands=(
        'analyze:Analyze log files and write reports'
        'ui:Analyze interactively with a live progress view'
        'doctor:Check configuration and output directory'
        'schema:Output JSON Schema for convlog output types'
        'config:Show or manage configuration'
        'version:Show version information'
        'completion:Generate shell completions'
    )

    local -a global_opts
    global_opts=(
        '--output-format[Output stream format]:format:(ndjson text)'
        '-q[Suppress progress output]'
        '--quiet[Suppress progress output]'
        '-v[Show debug output]'
        '--verbose[Show debug output]'
    )

    local -a run_opts
    run_opts=(
        '-i[Input log file or directory]:input:_files'
        '--input[Input log file or directory]:input:_files'
        '-o[Output directory for reports]:output:_files -/'
        '--output[Output directory for reports]:output:_files -/'
        '-f[Report format]:format:(csv markdown both)'
        '--format[Report format]:format:(csv markdown both)'
        '--detailed[Generate detailed reports]'
        '--encoding[File encoding]:encoding:(utf-8 utf-16 latin-1 windows-1252 shift_jis)'
        '--max-entries[Entries per level in Markdown detailed reports]:count:'
        '--min-level[Minimum level to count]:level:(critical error warning)'
        '-p[Regex messages must match]:pattern:'
        '--pattern[Regex messages must match]:pattern:'
        '*-x[Regex pattern to exclude]:pattern:'
        '*--exclude[Regex pattern to exclude]:pattern:'
        '*--step[Step to count]:step:'
    )

    _arguments -C \
        $global_opts \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            _arguments $run_opts
            ;;
        args)
            case $words[1] in
                analyze|ui)
                    _arguments $run_opts $global_opts
                    ;;
                schema)
                    _arguments \
                        '*-t[Output types]:type:(files_found file_error report summary error version config doctor)' \
                        '*--type[Output types]:type:(files_found file_error report summary error version config doctor)' \
                        $global_opts
                    ;;
                config)
                    _arguments '1:action:(show path generate)'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

compdef _convlog convlog
`

const fishCompletion = `# convlog fish completion script
# Add to ~/.config/fish/completions/convlog.fish

# Disable file completion by default
complete -c convlog -f

# Commands
complete -c convlog -n "__fish_use_subcommand" -a "analyze" -d "Analyze log files and write reports"
complete -c convlog -n "__fish_use_subcommand" -a "ui" -d "Analyze interactively with a live progress view"
complete -c convlog -n "__fish_use_subcommand" -a "doctor" -d "Check configuration and output directory"
complete -c convlog -n "__fish_use_subcommand" -a "schema" -d "Output JSON Schema for convlog output types"
complete -c convlog -n "__fish_use_subcommand" -a "config" -d "Show or manage configuration"
complete -c convlog -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c convlog -n "__fish_use_subcommand" -a "completion" -d "Generate shell completions"

# Global flags
complete -c convlog -l output-format -d "Output stream format" -xa "ndjson text"
complete -c convlog -s q -l quiet -d "Suppress progress output"
complete -c convlog -s v -l verbose -d "Show debug output"

# Analyze and ui
complete -c convlog -n "not __fish_seen_subcommand_from doctor schema config version completion" -s i -l input -d "Input log file or directory" -rF
complete -c convlog -n "not __fish_seen_subcommand_from doctor schema config version completion" -s o -l output -d "Output directory for reports" -rF
complete -c convlog -n "not __fish_seen_subcommand_from doctor schema config version completion" -s f -l format -d "Report format" -xa "csv markdown both"
complete -c convlog -n "not __fish_seen_subcommand_from doctor schema config version completion" -l detailed -d "Generate detailed reports"
complete -c convlog -n "not __fish_seen_subcommand_from doctor schema config version completion" -l encoding -d "File encoding" -xa "utf-8 utf-16 latin-1 windows-1252 shift_jis"
complete -c convlog -n "not __fish_seen_subcommand_from doctor schema config version completion" -l max-entries -d "Entries per level in Markdown detailed reports" -x
complete -c convlog -n "not __fish_seen_subcommand_from doctor schema config version completion" -l min-level -d "Minimum level to count" -xa "critical error warning"
complete -c convlog -n "not __fish_seen_subcommand_from doctor schema config version completion" -s p -l pattern -d "Regex messages must match" -x
complete -c convlog -n "not __fish_seen_subcommand_from doctor schema config version completion" -s x -l exclude -d "Regex pattern to exclude" -x
complete -c convlog -n "not __fish_seen_subcommand_from doctor schema config version completion" -l step -d "Step to count" -x

# Schema command
complete -c convlog -n "__fish_seen_subcommand_from schema" -s t -l type -d "Output types" -xa "files_found file_error report summary error version config doctor"

# Config command
complete -c convlog -n "__fish_seen_subcommand_from config" -a "show path generate"

# Completion command
complete -c convlog -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
