package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/illarion/seedpass/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate", "gen":
		runGenerate(ctx, os.Args[2:])
	case "init":
		runInit(ctx, os.Args[2:])
	case "remember":
		runRemember(ctx, os.Args[2:])
	case "forget":
		runForget(ctx, os.Args[2:])
	case "list", "ls":
		runList(ctx, os.Args[2:])
	case "status":
		runStatus(ctx, os.Args[2:])
	case "export":
		runExport(ctx, os.Args[2:])
	case "import":
		runImport(ctx, os.Args[2:])
	case "diff":
		runDiff(ctx, os.Args[2:])
	case "compact":
		runCompact(ctx, os.Args[2:])
	case "completion":
		runCompletion(ctx, os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// parseArgs parses flags that may appear before or after positional
// arguments and returns the positional ones.
func parseArgs(fs *flag.FlagSet, args []string) []string {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// requireArgs exits with usage when the positional count is wrong
func requireArgs(command string, args []string, n int) {
	if len(args) != n {
		fmt.Fprintf(os.Stderr, "Error: %s expects %d argument(s), got %d\n\n", command, n, len(args))
		printCommandHelp(command)
		os.Exit(1)
	}
}

func runGenerate(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	length := fs.String("n", "", "Password length (4-64, default 16)")
	lengthLong := fs.String("length", "", "Password length (4-64, default 16)")
	scheme := fs.String("scheme", "", "Derivation scheme (v1, v2)")
	remember := fs.Bool("remember", false, "Save length and scheme as a profile")
	confirm := fs.Bool("confirm", false, "Ask for the master secret twice")
	rest := parseArgs(fs, args)
	requireArgs("generate", rest, 1)

	if *lengthLong != "" {
		length = lengthLong
	}
	cmd.Generate(ctx, rest[0], *length, *scheme, *remember, *confirm)
}

func runInit(_ context.Context, args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	rest := parseArgs(fs, args)
	requireArgs("init", rest, 0)

	cmd.Init()
}

func runRemember(_ context.Context, args []string) {
	fs := flag.NewFlagSet("remember", flag.ExitOnError)
	length := fs.String("n", "", "Password length (4-64, default 16)")
	lengthLong := fs.String("length", "", "Password length (4-64, default 16)")
	scheme := fs.String("scheme", "", "Derivation scheme (v1, v2)")
	rest := parseArgs(fs, args)
	requireArgs("remember", rest, 1)

	if *lengthLong != "" {
		length = lengthLong
	}
	cmd.Remember(rest[0], *length, *scheme)
}

func runForget(_ context.Context, args []string) {
	fs := flag.NewFlagSet("forget", flag.ExitOnError)
	rest := parseArgs(fs, args)
	requireArgs("forget", rest, 1)

	cmd.Forget(rest[0])
}

func runList(_ context.Context, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	parseArgs(fs, args)

	cmd.List()
}

func runStatus(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	parseArgs(fs, args)

	cmd.Status(ctx)
}

func runExport(_ context.Context, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	rest := parseArgs(fs, args)

	path := ""
	if len(rest) > 0 {
		requireArgs("export", rest, 1)
		path = rest[0]
	}
	cmd.Export(path)
}

func runImport(_ context.Context, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	overwrite := fs.Bool("overwrite", false, "Replace profiles whose settings differ")
	rest := parseArgs(fs, args)
	requireArgs("import", rest, 1)

	cmd.Import(rest[0], *overwrite)
}

func runDiff(_ context.Context, args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	rest := parseArgs(fs, args)
	requireArgs("diff", rest, 1)

	cmd.Diff(rest[0])
}

func runCompact(_ context.Context, args []string) {
	fs := flag.NewFlagSet("compact", flag.ExitOnError)
	parseArgs(fs, args)

	cmd.Compact()
}

func runCompletion(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: seedpass completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("seedpass - Deterministic per-service passwords from one master secret")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  seedpass <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  generate    Derive the password for a service (alias: gen)")
	fmt.Println("  init        Create the profile store")
	fmt.Println("  remember    Save length and scheme for a service")
	fmt.Println("  forget      Remove the profile for a service")
	fmt.Println("  list, ls    List stored profiles")
	fmt.Println("  status      Show profile store status")
	fmt.Println("  export      Write profiles as JSON")
	fmt.Println("  import      Merge profiles from a JSON export")
	fmt.Println("  diff        Compare stored profiles with an export")
	fmt.Println("  compact     Compact the profile store")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  seedpass generate gmail.com          # 16 characters")
	fmt.Println("  seedpass generate bank.example -n 24 --remember")
	fmt.Println("  seedpass list                        # Show remembered settings")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  SEEDPASS_SECRET  Master secret (otherwise prompted)")
	fmt.Println("  SEEDPASS_DB      Profile store path")
	fmt.Println()
	fmt.Println("Use 'seedpass help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "generate", "gen":
		fmt.Println("seedpass generate [-n length] [--scheme v1|v2] [--remember] [--confirm] <service>")
		fmt.Println()
		fmt.Println("Derives the password for <service> from your master secret.")
		fmt.Println("The same secret, service, length and scheme always give the same password.")
		fmt.Println("Service names are case-insensitive and surrounding spaces are ignored.")
		fmt.Println("Nothing is stored unless --remember is given, and even then only the")
		fmt.Println("length and scheme are saved, never the secret or the password.")
		fmt.Println()
		fmt.Println("The password is printed to stdout; the summary goes to stderr.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -n, --length N  Password length, clamped to 4-64 (default 16 or the profile's)")
		fmt.Println("  --scheme NAME   v1 (default, compatible) or v2 (unbiased, not periodic)")
		fmt.Println("  --remember      Save length and scheme for this service")
		fmt.Println("  --confirm       Ask for the master secret twice")
		fmt.Println()
		fmt.Println("Important: without a profile you must remember the length you chose.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  seedpass generate gmail.com")
		fmt.Println("  seedpass generate github.com -n 32 --scheme v2 --remember")
		fmt.Println("  SEEDPASS_SECRET=... seedpass gen example.org | pbcopy")
	case "init":
		fmt.Println("seedpass init")
		fmt.Println()
		fmt.Println("Creates the profile store used by 'remember' and 'generate --remember'.")
		fmt.Println("The store holds service names, lengths and schemes only.")
		fmt.Println("Location: $SEEDPASS_DB, or seedpass/profiles.db in your config directory.")
	case "remember":
		fmt.Println("seedpass remember [-n length] [--scheme v1|v2] <service>")
		fmt.Println()
		fmt.Println("Saves the length and scheme to use for <service> without deriving.")
		fmt.Println("Does not require the master secret.")
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("  seedpass remember bank.example -n 12")
	case "forget":
		fmt.Println("seedpass forget <service>")
		fmt.Println()
		fmt.Println("Removes the profile for <service>. The password itself is unaffected;")
		fmt.Println("generate falls back to the defaults afterwards.")
	case "list", "ls":
		fmt.Println("seedpass list")
		fmt.Println()
		fmt.Println("Lists stored profiles. Does not require the master secret.")
	case "status":
		fmt.Println("seedpass status")
		fmt.Println()
		fmt.Println("Shows the profile store location, size, profile count per scheme")
		fmt.Println("and the derivation defaults.")
	case "export":
		fmt.Println("seedpass export [file]")
		fmt.Println()
		fmt.Println("Writes all profiles as JSON to file, or stdout when omitted or '-'.")
	case "import":
		fmt.Println("seedpass import [--overwrite] <file>")
		fmt.Println()
		fmt.Println("Merges profiles from a JSON export ('-' reads stdin).")
		fmt.Println("Profiles whose settings differ are skipped unless --overwrite is given.")
	case "diff":
		fmt.Println("seedpass diff <file>")
		fmt.Println()
		fmt.Println("Compares stored profiles with a JSON export and prints a line diff.")
	case "compact":
		fmt.Println("seedpass compact")
		fmt.Println()
		fmt.Println("Compacts the profile store to reclaim unused disk space.")
	case "completion":
		fmt.Println("seedpass completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(seedpass completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(seedpass completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  seedpass completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
