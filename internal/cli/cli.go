package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/onchainrugs/rugweave"
	"github.com/onchainrugs/rugweave/aging"
)

// globalOpts are the flags shared by every command.
type globalOpts struct {
	verbose    bool
	configPath string
}

// Execute runs the CLI with args and returns the first command error.
func Execute(ctx context.Context, args []string) error {
	root := newRootCmd(os.Stdout, os.Stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var g globalOpts

	root := &cobra.Command{
		Use:           "rugweave",
		Short:         "Render woven onchain rugs",
		Long:          `rugweave draws the woven doormat artwork of an onchain rug from its parameters. The same parameters always produce the same pixels.`,
		Version:       rugweave.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if g.verbose {
				level = charmlog.DebugLevel
			}
			l := newLogger(stderr, level)
			rugweave.SetLogger(slogger(l))
			ctx := withLogger(cmd.Context(), l)
			ctx = withConfigPath(ctx, g.configPath)
			cmd.SetContext(ctx)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "TOML file overriding the render constants")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newHashCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newTraitsCmd())
	root.AddCommand(newGlyphsCmd())
	root.AddCommand(newViewCmd())
	root.AddCommand(newServeCmd())
	return root
}

const configKey ctxKey = 1

func withConfigPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, configKey, path)
}

// renderConfig loads the --config file over the defaults.
func renderConfig(ctx context.Context) (rugweave.Config, error) {
	path, _ := ctx.Value(configKey).(string)
	return loadConfig(path)
}

func loadConfig(path string) (rugweave.Config, error) {
	cfg := rugweave.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// paramOpts selects the rug a command works on.
type paramOpts struct {
	path    string
	seed    int64
	text    []string
	dirt    int
	texture int
	frame   string
}

func (o *paramOpts) bind(cmd *cobra.Command, withAging bool) {
	f := cmd.Flags()
	f.StringVarP(&o.path, "params", "p", "", "parameter file (.json or .toml); generated from --seed when empty")
	f.Int64Var(&o.seed, "seed", 42, "seed for generated parameters")
	f.StringSliceVar(&o.text, "text", nil, "replace the text rows (upper-cased)")
	if withAging {
		f.IntVar(&o.dirt, "dirt", 0, fmt.Sprintf("dirt level 0-%d", aging.MaxDirtLevel))
		f.IntVar(&o.texture, "texture", 0, fmt.Sprintf("texture level 0-%d", aging.MaxTextureLevel))
		f.StringVar(&o.frame, "frame", "", "frame level: none, bronze, silver, gold, diamond")
	}
}

// resolve loads or generates the parameters and applies the overrides.
func (o *paramOpts) resolve(cfg rugweave.Config) (rugweave.RenderParameters, error) {
	var p rugweave.RenderParameters
	if o.path != "" {
		var err error
		if p, err = rugweave.LoadParameters(o.path); err != nil {
			return p, err
		}
	} else {
		p = rugweave.GenerateParameters(o.seed, cfg)
	}
	if o.text != nil {
		p.TextRows = upperRows(o.text)
	}
	if o.dirt != 0 {
		p.Aging.DirtLevel = o.dirt
	}
	if o.texture != 0 {
		p.Aging.TextureLevel = o.texture
	}
	if o.frame != "" {
		frame, err := aging.ParseFrameLevel(o.frame)
		if err != nil {
			return p, err
		}
		p.Aging.Frame = frame
	}
	return p, nil
}

// upperRows maps text to the case of the built-in alphabet.
func upperRows(rows []string) []string {
	c := cases.Upper(language.Und)
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, c.String(r))
	}
	return out
}
