package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/smallbiznis/netlicensing/internal/entity"
	"github.com/smallbiznis/netlicensing/internal/form"
	licensedomain "github.com/smallbiznis/netlicensing/internal/license/domain"
	licenseedomain "github.com/smallbiznis/netlicensing/internal/licensee/domain"
	templatedomain "github.com/smallbiznis/netlicensing/internal/licensetemplate/domain"
	productdomain "github.com/smallbiznis/netlicensing/internal/product/domain"
	moduledomain "github.com/smallbiznis/netlicensing/internal/productmodule/domain"
	"github.com/smallbiznis/netlicensing/pkg/rest"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
)

var (
	ErrUsage         = errors.New("usage")
	ErrUnknownEntity = errors.New("unknown_entity")
	ErrUnknownAction = errors.New("unknown_action")
)

const (
	actionCreate = "create"
	actionGet    = "get"
	actionList   = "list"
	actionUpdate = "update"
	actionDelete = "delete"
)

// Command is one parsed invocation: nlic <entity> <action> [number].
type Command struct {
	Entity       string
	Action       string
	Number       string
	Properties   map[string]string
	Filter       string
	ForceCascade bool
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("nlic", pflag.ContinueOnError)
	flags.String("base_url", rest.DefaultBaseURL, "service base URL")
	flags.String("username", "", "vendor user name")
	flags.String("password", "", "vendor password")
	flags.String("api_key", "", "API key, used instead of user name and password")
	flags.Duration("timeout", rest.DefaultTimeout, "request timeout")
	flags.String("log.level", "warn", "log level")
	flags.String("log.output", "stderr", "log sink")
	flags.StringArrayP("property", "p", nil, "entity property as name=value, repeatable")
	flags.String("filter", "", "list filter as name=value;name=value")
	flags.Bool("force-cascade", false, "delete dependent entities too")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: nlic [flags] <%s> <create|get|list|update|delete> [number]\n", strings.Join(entityNames(), "|"))
		flags.PrintDefaults()
	}
	return flags
}

// parseCommand reads the command from parsed flags.
func parseCommand(flags *pflag.FlagSet) (Command, error) {
	args := flags.Args()
	if len(args) < 2 {
		return Command{}, fmt.Errorf("%w: entity and action are required", ErrUsage)
	}
	cmd := Command{
		Entity:     strings.ToLower(strings.TrimSpace(args[0])),
		Action:     strings.ToLower(strings.TrimSpace(args[1])),
		Properties: map[string]string{},
	}
	if len(args) > 2 {
		cmd.Number = strings.TrimSpace(args[2])
	}

	switch cmd.Action {
	case actionGet, actionUpdate, actionDelete:
		if cmd.Number == "" {
			return Command{}, fmt.Errorf("%w: %s requires a number", ErrUsage, cmd.Action)
		}
	case actionCreate, actionList:
	default:
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownAction, cmd.Action)
	}

	props, err := flags.GetStringArray("property")
	if err != nil {
		return Command{}, err
	}
	for _, raw := range props {
		name, value, ok := strings.Cut(raw, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return Command{}, fmt.Errorf("%w: property %q is not name=value", ErrUsage, raw)
		}
		cmd.Properties[name] = strings.TrimSpace(value)
	}
	if cmd.Filter, err = flags.GetString("filter"); err != nil {
		return Command{}, err
	}
	if cmd.ForceCascade, err = flags.GetBool("force-cascade"); err != nil {
		return Command{}, err
	}
	return cmd, nil
}

type RunnerParams struct {
	fx.In

	Products  productdomain.Service
	Modules   moduledomain.Service
	Templates templatedomain.Service
	Licensees licenseedomain.Service
	Licenses  licensedomain.Service
}

// Runner executes commands against the entity services and prints the
// results as JSON.
type Runner struct {
	out      io.Writer
	commands map[string]entityCommand
}

func NewRunner(p RunnerParams, out io.Writer) *Runner {
	return &Runner{out: out, commands: newCommands(p)}
}

func (r *Runner) Run(ctx context.Context, cmd Command) error {
	c, ok := r.commands[cmd.Entity]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, cmd.Entity)
	}
	result, err := c.run(ctx, cmd)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

type entityCommand interface {
	run(ctx context.Context, cmd Command) (any, error)
}

type commands[T any] struct {
	itemType string
	create   func(ctx context.Context, v *T) (*T, error)
	get      func(ctx context.Context, number string) (*T, error)
	list     func(ctx context.Context, filter string) (*entity.Page[T], error)
	update   func(ctx context.Context, number string, v *T) (*T, error)
	delete   func(ctx context.Context, number string, forceCascade bool) error
}

func (c *commands[T]) run(ctx context.Context, cmd Command) (any, error) {
	switch cmd.Action {
	case actionCreate:
		v, err := c.decode(cmd.Properties)
		if err != nil {
			return nil, err
		}
		return c.create(ctx, v)
	case actionGet:
		return c.get(ctx, cmd.Number)
	case actionList:
		return c.list(ctx, cmd.Filter)
	case actionUpdate:
		v, err := c.decode(cmd.Properties)
		if err != nil {
			return nil, err
		}
		return c.update(ctx, cmd.Number, v)
	case actionDelete:
		if err := c.delete(ctx, cmd.Number, cmd.ForceCascade); err != nil {
			return nil, err
		}
		return map[string]string{"deleted": cmd.Number}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAction, cmd.Action)
}

// decode builds the entity from name=value properties, the same way a
// response item is read.
func (c *commands[T]) decode(props map[string]string) (*T, error) {
	item := rest.Item{Type: c.itemType}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		item.Add(name, props[name])
	}
	var out T
	if err := form.Decode(item, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func newCommands(p RunnerParams) map[string]entityCommand {
	return map[string]entityCommand{
		rest.ResourceProduct: &commands[productdomain.Product]{
			itemType: rest.TypeProduct,
			create:   p.Products.Create,
			get:      p.Products.Get,
			list: func(ctx context.Context, filter string) (*entity.Page[productdomain.Product], error) {
				return p.Products.List(ctx, productdomain.ListRequest{Filter: filter})
			},
			update: p.Products.Update,
			delete: p.Products.Delete,
		},
		rest.ResourceProductModule: &commands[moduledomain.ProductModule]{
			itemType: rest.TypeProductModule,
			create: func(ctx context.Context, m *moduledomain.ProductModule) (*moduledomain.ProductModule, error) {
				return p.Modules.Create(ctx, m.ProductNumber, m)
			},
			get: p.Modules.Get,
			list: func(ctx context.Context, filter string) (*entity.Page[moduledomain.ProductModule], error) {
				return p.Modules.List(ctx, moduledomain.ListRequest{Filter: filter})
			},
			update: p.Modules.Update,
			delete: p.Modules.Delete,
		},
		rest.ResourceLicenseTemplate: &commands[templatedomain.LicenseTemplate]{
			itemType: rest.TypeLicenseTemplate,
			create: func(ctx context.Context, t *templatedomain.LicenseTemplate) (*templatedomain.LicenseTemplate, error) {
				return p.Templates.Create(ctx, t.ProductModuleNumber, t)
			},
			get: p.Templates.Get,
			list: func(ctx context.Context, filter string) (*entity.Page[templatedomain.LicenseTemplate], error) {
				return p.Templates.List(ctx, templatedomain.ListRequest{Filter: filter})
			},
			update: p.Templates.Update,
			delete: p.Templates.Delete,
		},
		rest.ResourceLicensee: &commands[licenseedomain.Licensee]{
			itemType: rest.TypeLicensee,
			create: func(ctx context.Context, l *licenseedomain.Licensee) (*licenseedomain.Licensee, error) {
				return p.Licensees.Create(ctx, l.ProductNumber, l)
			},
			get: p.Licensees.Get,
			list: func(ctx context.Context, filter string) (*entity.Page[licenseedomain.Licensee], error) {
				return p.Licensees.List(ctx, licenseedomain.ListRequest{Filter: filter})
			},
			update: p.Licensees.Update,
			delete: p.Licensees.Delete,
		},
		rest.ResourceLicense: &commands[licensedomain.License]{
			itemType: rest.TypeLicense,
			create: func(ctx context.Context, l *licensedomain.License) (*licensedomain.License, error) {
				return p.Licenses.Create(ctx, licensedomain.CreateRequest{
					LicenseeNumber:        l.LicenseeNumber,
					LicenseTemplateNumber: l.LicenseTemplateNumber,
					License:               l,
				})
			},
			get: p.Licenses.Get,
			list: func(ctx context.Context, filter string) (*entity.Page[licensedomain.License], error) {
				return p.Licenses.List(ctx, licensedomain.ListRequest{Filter: filter})
			},
			update: p.Licenses.Update,
			delete: p.Licenses.Delete,
		},
	}
}

func entityNames() []string {
	return []string{
		rest.ResourceProduct,
		rest.ResourceProductModule,
		rest.ResourceLicenseTemplate,
		rest.ResourceLicensee,
		rest.ResourceLicense,
	}
}
