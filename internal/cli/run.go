package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macropower/vlist/api/v1beta1/configs"
	"github.com/macropower/vlist/pkg/config"
	"github.com/macropower/vlist/pkg/expr"
	"github.com/macropower/vlist/pkg/log"
	"github.com/macropower/vlist/pkg/source"
	"github.com/macropower/vlist/pkg/ui"
	"github.com/macropower/vlist/pkg/ui/theme"
	"github.com/macropower/vlist/pkg/ui/vlist"
)

const (
	cmdExamples = `  # Browse an endless demo list:
  vlist

  # Browse a file, loading 200 rows at a time:
  vlist ./access.log --page-size 200

  # Follow a growing file:
  vlist ./access.log --watch

  # Only show matching rows:
  vlist ./access.log --where 'line.contains("ERROR")'

  # Read from stdin and start at row 1000:
  seq 100000 | vlist - --jump 1000

  # Send output to a file (disables TUI):
  vlist ./access.log --jump 40 --height 10 > rows.txt`

	defaultHeight = 24
	logBufferSize = 100
)

var ErrInvalidHeight = errors.New("height must be positive")

type RunArgs struct {
	*RootArgs

	Path        string
	ConfigPath  string
	Where       string
	Theme       string
	RowHeight   int
	RowGap      int
	Buffer      int
	PageSize    int
	MaxRows     int
	Jump        int
	Height      int
	Threshold   float64
	Watch       bool
	Demo        bool
	LineNumbers bool
	WriteConfig bool
	ShowConfig  bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&ra.ConfigPath, "config", "", "Path to the vlist configuration file")
	f.IntVar(&ra.RowHeight, "row-height", 1, "Height of each row in lines")
	f.IntVar(&ra.RowGap, "row-gap", 0, "Blank lines between rows")
	f.IntVar(&ra.Buffer, "buffer", 10, "Rows rendered beyond the viewport on each side")
	f.Float64Var(&ra.Threshold, "threshold", 90, "Scroll percentage that loads the next page")
	f.IntVar(&ra.PageSize, "page-size", source.DefaultPageSize, "Rows requested per load")
	f.IntVar(&ra.MaxRows, "max-rows", 0, "Number of rows produced by the demo source, 0 for no limit")
	f.IntVar(&ra.Jump, "jump", -1, "Row shown at the top once loaded")
	f.StringVar(&ra.Where, "where", "", "CEL expression over line and index selecting the rows to show")
	f.BoolVarP(&ra.Watch, "watch", "w", false, "Follow the file and load rows as they are appended")
	f.BoolVar(&ra.Demo, "demo", false, "Show the generated demo list")
	f.BoolVar(&ra.LineNumbers, "line-numbers", false, "Show the index of each row")
	f.StringVar(&ra.Theme, "theme", "", "Chroma style name, or auto")
	f.IntVar(&ra.Height, "height", defaultHeight, "Lines printed when stdout is not a terminal")
	f.BoolVar(&ra.WriteConfig, "write-config", false, "Write the default configuration file and exit")
	f.BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run [path]",
		Short:   "Default command, can be used explicitly if the path is ambiguous",
		Example: cmdExamples,
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return nil, cobra.ShellCompDirectiveDefault
			}

			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ra.Path = ""
			if len(args) > 0 {
				ra.Path = args[0]
			}

			return run(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func run(cmd *cobra.Command, ra *RunArgs) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath := ra.ConfigPath
	if configPath == "" {
		configPath = configs.GetPath()
	}

	if ra.WriteConfig {
		return configs.WriteDefault(configPath, true)
	}

	err := configs.WriteDefault(configPath, false)
	if err != nil {
		slog.Debug("write default config", slog.Any("err", err))
	}

	cfg, err := config.LoadConfig(configPath, config.WithColor(isTerminal(cmd.ErrOrStderr())))
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ra.applyFlags(cmd.Flags(), cfg)

	err = cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	if ra.ShowConfig {
		slog.Info("active configuration", slog.String("path", configPath))

		return showConfig(cmd.OutOrStdout(), cfg)
	}

	src, err := ra.openSource(cmd, cfg)
	if err != nil {
		return err
	}

	if c, ok := src.(io.Closer); ok {
		defer func() {
			err := c.Close()
			if err != nil {
				slog.Warn("close source", slog.Any("err", err))
			}
		}()
	}

	// If stdout is not a terminal, print a single window.
	if !isTerminal(cmd.OutOrStdout()) {
		if ra.Height <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidHeight, ra.Height)
		}

		return printWindow(ctx, cmd.OutOrStdout(), src, cfg, ra.Height, ra.Jump)
	}

	logBuf := log.NewCircularBuffer(logBufferSize)
	logHandler, err := log.CreateHandlerWithStrings(logBuf, ra.LogLevel, ra.LogFormat)
	if err != nil {
		return fmt.Errorf("create log handler: %w", err)
	}

	slog.SetDefault(slog.New(logHandler))

	err = runUI(ctx, cfg, src, ra)
	if err != nil {
		slog.Error("run UI", slog.Any("err", err))
		flushLogs(cmd.ErrOrStderr(), logBuf)

		return fmt.Errorf("ui program failure: %w", err)
	}

	flushLogs(cmd.ErrOrStderr(), logBuf)

	return nil
}

// applyFlags overrides configuration values with the flags that were set on
// the command line or through the environment.
func (ra *RunArgs) applyFlags(fs *pflag.FlagSet, cfg *configs.Config) {
	if fs.Changed("row-height") {
		cfg.Window.RowHeight = ra.RowHeight
	}
	if fs.Changed("row-gap") {
		cfg.Window.RowGap = ra.RowGap
	}
	if fs.Changed("buffer") {
		cfg.Window.Buffer = ra.Buffer
	}
	if fs.Changed("threshold") {
		cfg.Threshold.Percent = ra.Threshold
	}
	if fs.Changed("page-size") {
		cfg.Source.PageSize = ra.PageSize
	}
	if fs.Changed("max-rows") {
		cfg.Source.MaxRows = ra.MaxRows
	}
	if fs.Changed("where") {
		cfg.Source.Where = ra.Where
	}
	if fs.Changed("watch") {
		cfg.Source.Follow = &ra.Watch
	}
	if fs.Changed("line-numbers") {
		cfg.UI.LineNumbers = &ra.LineNumbers
	}
	if fs.Changed("theme") {
		cfg.UI.Theme = ra.Theme
	}
}

// openSource selects the row source: the demo generator without a path,
// standard input for "-", and the named file otherwise. A where expression
// wraps the source in a filter.
func (ra *RunArgs) openSource(cmd *cobra.Command, cfg *configs.Config) (source.Source, error) {
	var src source.Source

	switch {
	case ra.Demo || ra.Path == "":
		src = source.NewGenerator(cfg.Source.MaxRows)

	case ra.Path == source.Stdin:
		src = source.NewReader("stdin", cmd.InOrStdin())

	default:
		f, err := source.Open(ra.Path, source.WithFollow(*cfg.Source.Follow))
		if err != nil {
			return nil, fmt.Errorf("open source: %w", err)
		}

		src = f
	}

	if cfg.Source.Where == "" {
		return src, nil
	}

	env, err := expr.NewEnvironment()
	if err != nil {
		return nil, fmt.Errorf("create expression environment: %w", err)
	}

	pred, err := env.Compile(cfg.Source.Where)
	if err != nil {
		return nil, fmt.Errorf("compile where: %w", err)
	}

	return source.NewFilter(src, pred), nil
}

func (ra *RunArgs) watching(cfg *configs.Config) bool {
	return *cfg.Source.Follow && !ra.Demo && ra.Path != "" && ra.Path != source.Stdin
}

// runUI starts the UI program.
func runUI(ctx context.Context, cfg *configs.Config, src source.Source, ra *RunArgs) error {
	delay, err := cfg.Threshold.Delay()
	if err != nil {
		return fmt.Errorf("threshold: %w", err)
	}

	lc := vlist.Config{
		Context:        ctx,
		Source:         src,
		Geometry:       *cfg.Window,
		Threshold:      cfg.Threshold.Percent,
		ThresholdDelay: delay,
		PageSize:       cfg.Source.PageSize,
		Jump:           ra.Jump,
	}

	if ra.Path != "" && !ra.Demo {
		h := source.NewHighlighter(ra.Path, theme.New(cfg.UI.Theme).ChromaStyle)
		if h != nil {
			lc.Highlight = h.Highlight
		}
	}

	p, err := ui.NewProgram(cfg.UI, lc, tea.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("create program: %w", err)
	}

	if ra.watching(cfg) {
		stop, err := forwardChanges(ctx, ra.Path, p)
		if err != nil {
			return err
		}
		defer stop()
	}

	_, err = p.Run()
	if err != nil {
		return fmt.Errorf("tea: %w", err)
	}

	return nil
}

// forwardChanges watches path and tells the program to resume loading
// whenever the file changes.
func forwardChanges(ctx context.Context, path string, p *tea.Program) (func(), error) {
	w, err := source.NewWatcher(path)
	if err != nil {
		return nil, fmt.Errorf("watch source: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan source.Event)
	w.Subscribe(ch)

	go w.Run(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case evt := <-ch:
				slog.Debug("source changed", slog.String("path", evt.Path), slog.String("op", evt.Op.String()))
				p.Send(vlist.SourceChangedMsg{})
			}
		}
	}()

	return func() {
		cancel()

		err := w.Close()
		if err != nil {
			slog.Warn("close watcher", slog.Any("err", err))
		}
	}, nil
}

func flushLogs(w io.Writer, buf *log.CircularBuffer) {
	slog.Debug("flush logs to console",
		slog.Int("count", buf.Size()),
		slog.Int("max", buf.Capacity()),
	)

	_, err := buf.WriteTo(w)
	if err != nil {
		panic(err)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in an int.
}
