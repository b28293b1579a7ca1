// Package cybermod parses cybermod CLI flags and runs its subcommands.
package cybermod

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/louisbranch/pound-of-flesh/internal/platform/config"
	apperrors "github.com/louisbranch/pound-of-flesh/internal/platform/errors"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/app"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/bootstrap"
	"github.com/louisbranch/pound-of-flesh/internal/services/cybermod/domain"
)

// Config holds cybermod command configuration.
type Config struct {
	Stack   bootstrap.Config
	Command string
	Args    []string
}

const usage = `usage: cybermod [flags] <command> [args]

commands:
  actors                          list actors
  inspect <actor>                 show slots and installed mods
  validate <actor> <item> [type]  check an installation without rolling
  install <actor> <item> [type]   run the installation dialog
  remove <actor> <item>           uninstall a mod
  overclock <actor> <item>        overclock an installed mod
  sanity-save <actor>             roll a sanity save
  skillware <actor> <item> <skill> bind a skill to installed skillware
`

var arity = map[string][2]int{
	"actors":      {0, 0},
	"inspect":     {1, 1},
	"validate":    {2, 3},
	"install":     {2, 3},
	"remove":      {2, 2},
	"overclock":   {2, 2},
	"sanity-save": {1, 1},
	"skillware":   {3, 3},
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string, lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	if err := config.ParseEnvWithLookup(&cfg.Stack, lookup); err != nil {
		return Config{}, err
	}
	bootstrap.RegisterFlags(fs, &cfg.Stack)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, errors.New("command is required")
	}
	cfg.Command = rest[0]
	cfg.Args = rest[1:]
	bounds, ok := arity[cfg.Command]
	if !ok {
		return Config{}, fmt.Errorf("unknown command %q", cfg.Command)
	}
	if len(cfg.Args) < bounds[0] || len(cfg.Args) > bounds[1] {
		return Config{}, fmt.Errorf("%s: wrong number of arguments", cfg.Command)
	}
	return cfg, nil
}

// Run opens the stack and executes one command.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	stack, err := bootstrap.Open(ctx, cfg.Stack, bootstrap.WriterNarrator{W: out})
	if err != nil {
		return err
	}
	defer func() { _ = stack.Close() }()

	runner := commandRunner{svc: stack.Service, stack: stack, in: in, out: out, locale: cfg.Stack.Locale}
	if err := runner.run(ctx, cfg.Command, cfg.Args); err != nil {
		return fmt.Errorf("%s: %s", cfg.Command, apperrors.UserMessage(err, cfg.Stack.Locale))
	}
	// Follow-up table draws print before the command exits.
	stack.Service.Flush()
	return nil
}

type commandRunner struct {
	svc    *app.Service
	stack  *bootstrap.Stack
	in     io.Reader
	out    io.Writer
	locale string
}

func (r commandRunner) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "actors":
		return r.actors(ctx)
	case "inspect":
		return r.inspect(ctx, args[0])
	case "validate":
		return r.validate(ctx, args)
	case "install":
		return r.install(ctx, args)
	case "remove":
		if _, err := r.svc.RemoveMod(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "removed %s\n", args[1])
		return nil
	case "overclock":
		res, err := r.svc.OverclockItem(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		if !res.Plan.Changed {
			fmt.Fprintf(r.out, "%s is already overclocked\n", args[1])
			return nil
		}
		fmt.Fprintf(r.out, "overclocked %s (level %d)\n", args[1], res.Level)
		if res.Effect != "" {
			fmt.Fprintln(r.out, res.Effect)
		}
		return nil
	case "sanity-save":
		res, err := r.svc.SanitySave(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "sanity save: %s\n", res.Outcome.Grade)
		return nil
	case "skillware":
		plan, err := r.svc.ResolveSkillware(ctx, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "%s bound at rank %s\n", plan.Skill, domain.RankName(plan.Rank))
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (r commandRunner) actors(ctx context.Context) error {
	actors, err := r.stack.Store.ListActors(ctx)
	if err != nil {
		return err
	}
	for _, actor := range actors {
		fmt.Fprintf(r.out, "%s\t%s\t%d items\n", actor.ID, actor.Name, actor.Items)
	}
	return nil
}

func (r commandRunner) inspect(ctx context.Context, actorID string) error {
	in, err := r.svc.Inspect(ctx, actorID)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%s\n", in.Actor.Name)
	fmt.Fprintf(r.out, "  cyberware %d/%d\n", in.Installed.Count(domain.TypeCyberware), in.Slots.Cyberware)
	if in.Slots.HasSlicksocket {
		fmt.Fprintf(r.out, "  slickware %d/%d\n", in.Installed.Count(domain.TypeSlickware), in.Slots.Slickware)
	} else {
		fmt.Fprintln(r.out, "  slickware: no slicksocket")
	}
	for _, item := range append(append([]domain.Item(nil), in.Installed.Cyberware...), in.Installed.Slickware...) {
		fmt.Fprintf(r.out, "  * %s (%s)%s\n", item.Name, domain.Classify(item), itemMarkers(item))
	}
	if in.Installed.IsOverclocked {
		fmt.Fprintf(r.out, "  overclock level %d: %s\n", in.Installed.OverclockLevel, in.OverclockEffect)
	}
	for _, item := range in.Installable {
		fmt.Fprintf(r.out, "  - installable: %s [%s]\n", item.Name, item.ID)
	}
	return nil
}

func itemMarkers(item domain.Item) string {
	var markers []string
	if item.Cyber.Overclocked {
		markers = append(markers, "overclocked")
	}
	if item.Cyber.Malfunctioning {
		markers = append(markers, "malfunctioning")
	}
	if len(markers) == 0 {
		return ""
	}
	return " " + strings.Join(markers, ", ")
}

func (r commandRunner) validate(ctx context.Context, args []string) error {
	requested, err := typeArg(args)
	if err != nil {
		return err
	}
	v, err := r.svc.Validate(ctx, args[0], args[1], requested)
	if err != nil {
		return err
	}
	if v.Valid {
		fmt.Fprintf(r.out, "valid: installs as %s\n", v.Type)
		return nil
	}
	fmt.Fprintf(r.out, "invalid: %s\n", apperrors.UserMessage(v.Reason, r.locale))
	return nil
}

func (r commandRunner) install(ctx context.Context, args []string) error {
	requested, err := typeArg(args)
	if err != nil {
		return err
	}
	res, err := r.svc.Run(ctx, app.BeginRequest{ActorID: args[0], ItemID: args[1], Type: requested}, newLinePrompter(r.in, r.out))
	if err != nil {
		return err
	}
	if res.OverclockEffect != "" {
		fmt.Fprintln(r.out, res.OverclockEffect)
	}
	return nil
}

func typeArg(args []string) (domain.Type, error) {
	if len(args) < 3 {
		return domain.TypeNone, nil
	}
	return domain.ParseType(args[2])
}

// linePrompter asks questions on out and reads one answer per line from in.
// End of input or "q" dismisses the question.
type linePrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	if in == nil {
		in = strings.NewReader("")
	}
	return &linePrompter{scanner: bufio.NewScanner(in), out: out}
}

func (p *linePrompter) Choose(ctx context.Context, request app.InputRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintln(p.out, request.Prompt)
	for idx, option := range request.Options {
		fmt.Fprintf(p.out, "  %d) %s [%s]\n", idx+1, option.Label, option.Value)
	}
	if request.Default != "" {
		fmt.Fprintf(p.out, "choice (default %s, q to cancel): ", request.Default)
	} else {
		fmt.Fprint(p.out, "choice (q to cancel): ")
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", app.ErrCancelled
	}
	answer := strings.TrimSpace(p.scanner.Text())
	if strings.EqualFold(answer, "q") {
		return "", app.ErrCancelled
	}
	// A number picks the option at that position.
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(request.Options) && !request.Allows(answer) {
		return request.Options[n-1].Value, nil
	}
	return answer, nil
}
