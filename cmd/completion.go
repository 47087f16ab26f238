package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_seedpass() {
    local cur prev words cword
    _init_completion || return

    local commands="generate gen init remember forget list ls status export import diff compact help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$prev" in
        -n|--length)
            COMPREPLY=($(compgen -W "8 12 16 20 24 32 64" -- "$cur"))
            return
            ;;
        -scheme|--scheme)
            COMPREPLY=($(compgen -W "v1 v2" -- "$cur"))
            return
            ;;
    esac

    case "$cmd" in
        generate|gen)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-n --length --scheme --remember --confirm" -- "$cur"))
            else
                COMPREPLY=($(compgen -W "$(_seedpass_services)" -- "$cur"))
            fi
            ;;
        remember)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-n --length --scheme" -- "$cur"))
            else
                COMPREPLY=($(compgen -W "$(_seedpass_services)" -- "$cur"))
            fi
            ;;
        forget)
            COMPREPLY=($(compgen -W "$(_seedpass_services)" -- "$cur"))
            ;;
        import)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--overwrite" -- "$cur"))
            else
                _filedir
            fi
            ;;
        export|diff)
            _filedir
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

_seedpass_services() {
    seedpass list 2>/dev/null | tail -n +2 | awk '{print $1}'
}

complete -F _seedpass seedpass
`

const zshCompletion = `#compdef seedpass

_seedpass() {
    local -a commands
    commands=(
        'generate:Derive the password for a service'
        'gen:Derive the password for a service'
        'init:Create the profile store'
        'remember:Save length and scheme for a service'
        'forget:Remove the profile for a service'
        'list:List stored profiles'
        'ls:List stored profiles'
        'status:Show profile store status'
        'export:Write profiles as JSON'
        'import:Merge profiles from a JSON export'
        'diff:Compare stored profiles with an export'
        'compact:Compact the profile store'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'seedpass commands' commands
            ;;
        args)
            case "${words[2]}" in
                generate|gen)
                    _arguments \
                        '-n[Password length]:length:(8 12 16 20 24 32 64)' \
                        '--length[Password length]:length:(8 12 16 20 24 32 64)' \
                        '--scheme[Derivation scheme]:scheme:(v1 v2)' \
                        '--remember[Save the settings as a profile]' \
                        '--confirm[Ask for the secret twice]' \
                        '*:service:_seedpass_services'
                    ;;
                remember)
                    _arguments \
                        '-n[Password length]:length:(8 12 16 20 24 32 64)' \
                        '--scheme[Derivation scheme]:scheme:(v1 v2)' \
                        '*:service:_seedpass_services'
                    ;;
                forget)
                    _arguments '*:service:_seedpass_services'
                    ;;
                import)
                    _arguments \
                        '--overwrite[Replace differing profiles]' \
                        '*:file:_files'
                    ;;
                export|diff)
                    _arguments '*:file:_files'
                    ;;
                help)
                    _describe -t commands 'seedpass commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_seedpass_services() {
    local -a services
    services=(${(f)"$(seedpass list 2>/dev/null | tail -n +2 | awk '{print $1}')"})
    _describe -t services 'services' services
}

_seedpass "$@"
`

const fishCompletion = `# seedpass fish completions

set -l commands generate gen init remember forget list ls status export import diff compact help completion

complete -c seedpass -f

function __seedpass_services
    seedpass list 2>/dev/null | tail -n +2 | awk '{print $1}'
end

# Commands
complete -c seedpass -n "not __fish_seen_subcommand_from $commands" -a generate -d 'Derive a service password'
complete -c seedpass -n "not __fish_seen_subcommand_from $commands" -a init -d 'Create the profile store'
complete -c seedpass -n "not __fish_seen_subcommand_from $commands" -a remember -d 'Save service settings'
complete -c seedpass -n "not __fish_seen_subcommand_from $commands" -a forget -d 'Remove service settings'
complete -c seedpass -n "not __fish_seen_subcommand_from $commands" -a list -d 'List profiles'
complete -c seedpass -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show store status'
complete -c seedpass -n "not __fish_seen_subcommand_from $commands" -a export -d 'Write profiles as JSON'
complete -c seedpass -n "not __fish_seen_subcommand_from $commands" -a import -d 'Merge profiles from JSON'
complete -c seedpass -n "not __fish_seen_subcommand_from $commands" -a diff -d 'Compare profiles with export'
complete -c seedpass -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact store'
complete -c seedpass -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c seedpass -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# generate flags and services
complete -c seedpass -n "__fish_seen_subcommand_from generate gen remember" -s n -l length -x -a "8 12 16 20 24 32 64" -d 'Password length'
complete -c seedpass -n "__fish_seen_subcommand_from generate gen remember" -l scheme -x -a "v1 v2" -d 'Derivation scheme'
complete -c seedpass -n "__fish_seen_subcommand_from generate gen" -l remember -d 'Save settings as profile'
complete -c seedpass -n "__fish_seen_subcommand_from generate gen" -l confirm -d 'Ask for the secret twice'
complete -c seedpass -n "__fish_seen_subcommand_from generate gen remember forget" -a "(__seedpass_services)"

# files
complete -c seedpass -n "__fish_seen_subcommand_from import" -l overwrite -d 'Replace differing profiles'
complete -c seedpass -n "__fish_seen_subcommand_from import export diff" -F

# help completions
complete -c seedpass -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c seedpass -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
