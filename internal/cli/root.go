// Package cli contains the qsparse command.
package cli

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vinicius-lino-figueiredo/qsfilter"
)

// RootOptions holds the flags of the command.
type RootOptions struct {
	Verbose      bool
	Template     string
	PageNo       int
	PageSize     int
	PageFallback int
	Compact      bool
}

// Output is what the command prints. Conditions are keyed by operator name.
type Output struct {
	Query      map[string]map[string]any `json:"query"`
	Pagination *qsfilter.Pagination      `json:"pagination,omitempty"`
	Messages   []string                  `json:"messages,omitempty"`
}

// NewRootCommand creates the qsparse command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "qsparse [flags] <query>",
		Short: "Compile a query string into filter conditions",
		Long: `Compile a query string such as "price>100&tag!=x&sort=price|-1" into the
filter conditions and pagination it describes, printed as JSON.

Fields are checked against the template given with --template, a JSON or
YAML file mapping field names to their default, default_op, read_only and
transform. Without a template every field is accepted.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every diagnostic to stderr")
	cmd.Flags().StringVarP(&opts.Template, "template", "t", "", "template file (.json, .yaml or .yml)")
	cmd.Flags().IntVar(&opts.PageNo, "page-no", 0, "page_no used when the query has none")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "page_size used when the query has none")
	cmd.Flags().IntVar(&opts.PageFallback, "page-fallback", 0, "value of a missing page_no or page_size")
	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "print JSON on a single line")

	return cmd
}

func run(cmd *cobra.Command, opts *RootOptions, query string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	defer func() { _ = logger.Sync() }()

	options := []qsfilter.Option{
		qsfilter.WithLogger(logger),
		qsfilter.WithPageFallback(opts.PageFallback),
		qsfilter.WithConfig(config(opts)),
	}
	if opts.Template != "" {
		tpl, err := qsfilter.LoadTemplateFile(cmd.Context(), opts.Template)
		if err != nil {
			return fmt.Errorf("loading template: %w", err)
		}
		logger.Debug("template loaded", zap.String("path", opts.Template), zap.Int("fields", len(tpl)))
		options = append(options, qsfilter.WithTemplate(tpl))
	}

	res, err := qsfilter.ParseQuery(query, options...)
	if err != nil {
		return err
	}
	return write(cmd.OutOrStdout(), toOutput(res), opts.Compact)
}

func config(opts *RootOptions) *qsfilter.Config {
	cfg := &qsfilter.Config{Pagination: &qsfilter.PaginationConfig{}}
	if opts.PageNo > 0 {
		cfg.Pagination.PageNo = &opts.PageNo
	}
	if opts.PageSize > 0 {
		cfg.Pagination.PageSize = &opts.PageSize
	}
	return cfg
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	return zap.New(core)
}

func toOutput(res *qsfilter.Result) Output {
	out := Output{
		Query:      make(map[string]map[string]any, len(res.Query)),
		Pagination: res.Pagination,
		Messages:   res.Messages,
	}
	for field, cond := range res.Query {
		ops := make(map[string]any, len(cond))
		for op, v := range cond {
			ops[op.String()] = v
		}
		out.Query[field] = ops
	}
	return out
}

func write(w io.Writer, out Output, compact bool) error {
	var (
		b   []byte
		err error
	)
	if compact {
		b, err = json.Marshal(out)
	} else {
		b, err = json.MarshalIndent(out, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
