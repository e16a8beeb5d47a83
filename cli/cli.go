package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/miniml/cli/cmd"
	"github.com/ardnew/miniml/lang"
	"github.com/ardnew/miniml/log"
	"github.com/ardnew/miniml/pkg"
)

// CLI is the top-level command-line interface for miniml.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version  kong.VersionFlag `help:"Print version and exit."`
	Path     []string         `help:"Prepend directory to the source search path." placeholder:"DIR" sep:"none" short:"I" type:"path"`
	MaxDepth int              `default:"${maxDepth}"                                help:"Maximum evaluation depth."`
	Cache    bool             `default:"true"                                       help:"Cache parsed blocks."      negatable:""`

	Run  cmd.Run  `cmd:"" default:"withargs" help:"Evaluate source files"`
	Fmt  cmd.Fmt  `cmd:""                    help:"Format source files"`
	Repl cmd.Repl `cmd:""                    help:"Start an interactive session"`
	Init cmd.Init `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the miniml CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier: pkg.ConfigFile(),
		cmd.CacheIdentifier:  pkg.CacheDir(),
		"history":            pkg.HistoryFile(),
		"version":            pkg.Version(),
		"maxDepth":           strconv.Itoa(lang.DefaultMaxDepth),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolveYAML, pkg.ConfigFile()),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSearchPath(ctx, cmd.SearchPath(cli.Path...))
	ctx = cmd.WithOptions(ctx,
		lang.WithLogger(log.Default()),
		lang.WithMaxDepth(cli.MaxDepth),
		lang.WithCache(cli.Cache),
	)

	// no-op unless built with tag pprof and a mode is selected
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
