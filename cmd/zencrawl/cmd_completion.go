package main

import (
	"flag"
	"fmt"
	"os"
)

func completionCmd() {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: zencrawl completion <bash|zsh|fish>\n\n")
		fmt.Fprintf(os.Stderr, "Generate shell completion scripts.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  # Bash\n")
		fmt.Fprintf(os.Stderr, "  zencrawl completion bash > /usr/local/etc/bash_completion.d/zencrawl\n")
		fmt.Fprintf(os.Stderr, "  # Zsh\n")
		fmt.Fprintf(os.Stderr, "  zencrawl completion zsh > \"${fpath[1]}/_zencrawl\"\n")
		fmt.Fprintf(os.Stderr, "  # Fish\n")
		fmt.Fprintf(os.Stderr, "  zencrawl completion fish > ~/.config/fish/completions/zencrawl.fish\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: shell name is required (bash, zsh, or fish)\n\n")
		fs.Usage()
		os.Exit(1)
	}

	shell := fs.Arg(0)
	switch shell {
	case "bash":
		fmt.Print(generateBashCompletion())
	case "zsh":
		fmt.Print(generateZshCompletion())
	case "fish":
		fmt.Print(generateFishCompletion())
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported shell %q (use bash, zsh, or fish)\n", shell)
		os.Exit(1)
	}
}

func generateBashCompletion() string {
	return `# bash completion for zencrawl                           -*- shell-script -*-

_zencrawl() {
    local cur prev words cword
    _init_completion || return

    local commands="scrape crawl map search history mock completion version help"

    # Flags per subcommand
    local common_flags="--output --color --curl --code --client-timeout --api-url --no-history --quiet --verbose"
    local page_flags="--wait-for --timeout --exclude-tags --include-tags --main-content --stealth --markdown --links --html --screenshot"
    local scrape_flags="${common_flags} ${page_flags}"
    local crawl_flags="${common_flags} ${page_flags} --limit --max-depth --exclude-paths --include-paths --ignore-sitemap --backward-links"
    local map_flags="${common_flags} --search --subdomains --ignore-sitemap"
    local search_flags="${common_flags} --limit --lang --country --scrape"
    local history_flags="--output --view --color"
    local mock_flags="--addr --latency --error-rate --cors-origin"

    # Flag values
    local output_formats="text json markdown html"
    local history_outputs="text json"
    local views="preview json markdown html"
    local languages="curl python javascript go"
    local html_modes="cleaned raw"
    local screenshot_modes="viewport full"
    local history_commands="list show rm clear"
    local shells="bash zsh fish"

    if [[ ${cword} -eq 1 ]]; then
        COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
        return
    fi

    local command="${words[1]}"

    # Complete flag values
    case "${prev}" in
        --output)
            if [[ "${command}" == "history" ]]; then
                COMPREPLY=($(compgen -W "${history_outputs}" -- "${cur}"))
            else
                COMPREPLY=($(compgen -W "${output_formats}" -- "${cur}"))
            fi
            return
            ;;
        --view)
            COMPREPLY=($(compgen -W "${views}" -- "${cur}"))
            return
            ;;
        --code)
            COMPREPLY=($(compgen -W "${languages}" -- "${cur}"))
            return
            ;;
        --html)
            COMPREPLY=($(compgen -W "${html_modes}" -- "${cur}"))
            return
            ;;
        --screenshot)
            COMPREPLY=($(compgen -W "${screenshot_modes}" -- "${cur}"))
            return
            ;;
        --client-timeout|--api-url|--wait-for|--timeout|--exclude-tags|--include-tags|--limit|--max-depth|--exclude-paths|--include-paths|--search|--lang|--country|--addr|--latency|--error-rate|--cors-origin)
            # These take user-provided values, no completion
            return
            ;;
    esac

    # Complete flags for each subcommand
    case "${command}" in
        scrape)
            COMPREPLY=($(compgen -W "${scrape_flags}" -- "${cur}"))
            ;;
        crawl)
            COMPREPLY=($(compgen -W "${crawl_flags}" -- "${cur}"))
            ;;
        map)
            COMPREPLY=($(compgen -W "${map_flags}" -- "${cur}"))
            ;;
        search)
            COMPREPLY=($(compgen -W "${search_flags}" -- "${cur}"))
            ;;
        history)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${history_flags}" -- "${cur}"))
            elif [[ ${cword} -eq 2 ]]; then
                COMPREPLY=($(compgen -W "${history_commands}" -- "${cur}"))
            fi
            ;;
        mock)
            COMPREPLY=($(compgen -W "${mock_flags}" -- "${cur}"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "${shells}" -- "${cur}"))
            ;;
    esac
}

complete -F _zencrawl zencrawl
`
}

func generateZshCompletion() string {
	return `#compdef zencrawl

# zsh completion for zencrawl

_zencrawl() {
    local -a commands
    commands=(
        'scrape:Scrape a single URL'
        'crawl:Crawl a site from a root URL'
        'map:List the URLs of a site'
        'search:Search the web and optionally scrape the hits'
        'history:List, show, remove or clear past extractions'
        'mock:Run a local mock of the scraping API'
        'completion:Generate shell completion scripts'
        'version:Print version information'
        'help:Show help message'
    )

    local -a common page
    common=(
        '--output[Output format]:format:(text json markdown html)'
        '--color[Syntax-highlight output]'
        '--curl[Print the equivalent curl command]'
        '--code[Print a snippet]:language:(curl python javascript go)'
        '--client-timeout[Abort the call after this duration]:duration:'
        '--api-url[API base URL]:url:'
        '--no-history[Do not record the extraction]'
        '--quiet[Suppress the summary line]'
        '--verbose[Log request details]'
    )
    page=(
        '--wait-for[Milliseconds to wait for the page]:ms:'
        '--timeout[Page timeout in milliseconds]:ms:'
        '--exclude-tags[Selectors to exclude]:selectors:'
        '--include-tags[Selectors to include]:selectors:'
        '--main-content[Extract only the main content]'
        '--stealth[Use stealth mode]'
        '--markdown[Request markdown output]'
        '--links[Request links]'
        '--html[HTML variant]:mode:(cleaned raw)'
        '--screenshot[Capture a screenshot]:mode:(viewport full)'
    )

    _arguments -C \
        '1:command:->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe -t commands 'zencrawl commands' commands
            ;;
        args)
            case $words[1] in
                scrape)
                    _arguments $common $page '1:url:'
                    ;;
                crawl)
                    _arguments $common $page \
                        '--limit[Maximum pages to crawl]:limit:' \
                        '--max-depth[Maximum link depth]:depth:' \
                        '--exclude-paths[Path patterns to skip]:patterns:' \
                        '--include-paths[Path patterns to keep]:patterns:' \
                        '--ignore-sitemap[Ignore the sitemap]' \
                        '--backward-links[Follow links above the root URL]' \
                        '1:url:'
                    ;;
                map)
                    _arguments $common \
                        '--search[Only return URLs matching this term]:term:' \
                        '--subdomains[Include subdomains]' \
                        '--ignore-sitemap[Ignore the sitemap]' \
                        '1:url:'
                    ;;
                search)
                    _arguments $common \
                        '--limit[Number of results]:limit:' \
                        '--lang[Result language]:language:' \
                        '--country[Result country]:country:' \
                        '--scrape[Scrape the content of each hit]' \
                        '1:query:'
                    ;;
                history)
                    _arguments \
                        '--output[Output format]:format:(text json)' \
                        '--view[Result view]:view:(preview json markdown html)' \
                        '--color[Syntax-highlight the result]' \
                        '1:action:(list show rm clear)' \
                        '2:id:'
                    ;;
                mock)
                    _arguments \
                        '--addr[Address to listen on]:address:' \
                        '--latency[Artificial response latency]:duration:' \
                        '--error-rate[Random error rate]:rate:' \
                        '--cors-origin[Access-Control-Allow-Origin value]:origin:'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_zencrawl "$@"
`
}

func generateFishCompletion() string {
	return `# fish completion for zencrawl

# Disable file completions by default
complete -c zencrawl -f

# Subcommands
complete -c zencrawl -n '__fish_use_subcommand' -a scrape -d 'Scrape a single URL'
complete -c zencrawl -n '__fish_use_subcommand' -a crawl -d 'Crawl a site from a root URL'
complete -c zencrawl -n '__fish_use_subcommand' -a map -d 'List the URLs of a site'
complete -c zencrawl -n '__fish_use_subcommand' -a search -d 'Search the web and optionally scrape the hits'
complete -c zencrawl -n '__fish_use_subcommand' -a history -d 'List, show, remove or clear past extractions'
complete -c zencrawl -n '__fish_use_subcommand' -a mock -d 'Run a local mock of the scraping API'
complete -c zencrawl -n '__fish_use_subcommand' -a completion -d 'Generate shell completion scripts'
complete -c zencrawl -n '__fish_use_subcommand' -a version -d 'Print version information'
complete -c zencrawl -n '__fish_use_subcommand' -a help -d 'Show help message'

# flags shared by the extraction commands
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl map search' -l output -d 'Output format' -ra 'text json markdown html'
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl map search' -l color -d 'Syntax-highlight output'
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl map search' -l curl -d 'Print the equivalent curl command'
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl map search' -l code -d 'Print a snippet' -ra 'curl python javascript go'
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl map search' -l client-timeout -d 'Abort the call after this duration' -r
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl map search' -l api-url -d 'API base URL' -r
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl map search' -l no-history -d 'Do not record the extraction'
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl map search' -l quiet -d 'Suppress the summary line'
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl map search' -l verbose -d 'Log request details'

# page flags
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl' -l wait-for -d 'Milliseconds to wait for the page' -r
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl' -l timeout -d 'Page timeout in milliseconds' -r
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl' -l exclude-tags -d 'Selectors to exclude' -r
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl' -l include-tags -d 'Selectors to include' -r
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl' -l main-content -d 'Extract only the main content'
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl' -l stealth -d 'Use stealth mode'
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl' -l markdown -d 'Request markdown output'
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl' -l links -d 'Request links'
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl' -l html -d 'HTML variant' -ra 'cleaned raw'
complete -c zencrawl -n '__fish_seen_subcommand_from scrape crawl' -l screenshot -d 'Capture a screenshot' -ra 'viewport full'

# crawl flags
complete -c zencrawl -n '__fish_seen_subcommand_from crawl' -l limit -d 'Maximum pages to crawl' -r
complete -c zencrawl -n '__fish_seen_subcommand_from crawl' -l max-depth -d 'Maximum link depth' -r
complete -c zencrawl -n '__fish_seen_subcommand_from crawl' -l exclude-paths -d 'Path patterns to skip' -r
complete -c zencrawl -n '__fish_seen_subcommand_from crawl' -l include-paths -d 'Path patterns to keep' -r
complete -c zencrawl -n '__fish_seen_subcommand_from crawl' -l backward-links -d 'Follow links above the root URL'
complete -c zencrawl -n '__fish_seen_subcommand_from crawl map' -l ignore-sitemap -d 'Ignore the sitemap'

# map flags
complete -c zencrawl -n '__fish_seen_subcommand_from map' -l search -d 'Only return URLs matching this term' -r
complete -c zencrawl -n '__fish_seen_subcommand_from map' -l subdomains -d 'Include subdomains'

# search flags
complete -c zencrawl -n '__fish_seen_subcommand_from search' -l limit -d 'Number of results' -r
complete -c zencrawl -n '__fish_seen_subcommand_from search' -l lang -d 'Result language' -r
complete -c zencrawl -n '__fish_seen_subcommand_from search' -l country -d 'Result country' -r
complete -c zencrawl -n '__fish_seen_subcommand_from search' -l scrape -d 'Scrape the content of each hit'

# history
complete -c zencrawl -n '__fish_seen_subcommand_from history' -a 'list show rm clear' -d 'History action'
complete -c zencrawl -n '__fish_seen_subcommand_from history' -l output -d 'Output format' -ra 'text json'
complete -c zencrawl -n '__fish_seen_subcommand_from history' -l view -d 'Result view' -ra 'preview json markdown html'
complete -c zencrawl -n '__fish_seen_subcommand_from history' -l color -d 'Syntax-highlight the result'

# mock flags
complete -c zencrawl -n '__fish_seen_subcommand_from mock' -l addr -d 'Address to listen on' -r
complete -c zencrawl -n '__fish_seen_subcommand_from mock' -l latency -d 'Artificial response latency' -r
complete -c zencrawl -n '__fish_seen_subcommand_from mock' -l error-rate -d 'Random error rate' -r
complete -c zencrawl -n '__fish_seen_subcommand_from mock' -l cors-origin -d 'Access-Control-Allow-Origin value' -r

# completion - shell names
complete -c zencrawl -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish' -d 'Shell type'
`
}
