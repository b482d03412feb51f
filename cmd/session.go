package cmd

import (
	"context"
	"fmt"

	"github.com/oakwood-commons/jqi/internal/buffer"
	"github.com/oakwood-commons/jqi/internal/config"
	"github.com/oakwood-commons/jqi/internal/editor"
	"github.com/oakwood-commons/jqi/internal/jsonindex"
	"github.com/oakwood-commons/jqi/internal/query"
	"github.com/oakwood-commons/jqi/pkg/loader"
	"github.com/oakwood-commons/jqi/pkg/logger"
)

// session is everything one console run needs, wired together.
type session struct {
	inputFormat loader.Format
	format      query.Format
	index       *jsonindex.Index
	exec        *query.Executor
	buf         *buffer.TextBuffer
	ctrl        *editor.Controller
}

// newSession normalizes input to JSON, indexes it and builds the controller. initialQuery
// overrides the configured starting query; a blank query falls back to ".".
func newSession(ctx context.Context, input string, cfg config.Config, initialQuery string) (*session, error) {
	jsonText, inputFormat, err := loader.LoadJSON(input)
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}

	index := jsonindex.New(logger.Component(ctx, "index"))
	if err := index.Analyze(jsonText); err != nil {
		return nil, err
	}

	format, err := query.ParseFormat(cfg.Results.Format)
	if err != nil {
		return nil, err
	}
	exec, err := query.NewExecutor(jsonText,
		query.WithFormat(query.FormatOptions{Format: format, Indent: cfg.Results.Indent}),
		query.WithLogger(logger.Component(ctx, "query")),
	)
	if err != nil {
		return nil, err
	}

	q := initialQuery
	if q == "" {
		q = cfg.Editor.InitialQuery
	}
	if q == "" {
		q = "."
	}
	buf := buffer.NewWithText(q)
	buf.SetMaxHistory(cfg.Editor.MaxHistory)

	ctrl := editor.NewController(buf, exec, index,
		editor.WithLogger(logger.Component(ctx, "editor")),
	)
	return &session{
		inputFormat: inputFormat,
		format:      format,
		index:       index,
		exec:        exec,
		buf:         buf,
		ctrl:        ctrl,
	}, nil
}
