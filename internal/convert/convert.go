// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns classified clipboard content into a deliverable
// artifact: a document file produced by the external converter, or a parsed
// table for native spreadsheet insertion.
package convert

import (
	"context"
	"log/slog"

	"github.com/pdiddy/pastemd/internal/classify"
	"github.com/pdiddy/pastemd/pkg/types"
)

// DocumentConverter produces a document artifact from raw content.
// *Runner is the production implementation; tests substitute fakes.
type DocumentConverter interface {
	ConvertDocument(ctx context.Context, content string, from InputFormat, opts types.Options) (string, error)
}

// Orchestrator applies the kind × target conversion policy.
type Orchestrator struct {
	runner DocumentConverter
	logger *slog.Logger
}

// NewOrchestrator creates an orchestrator around a document converter.
func NewOrchestrator(runner DocumentConverter, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{runner: runner, logger: logger}
}

// Convert builds the artifact for one request. Failed conversions are
// reported once; there are no retries.
func (o *Orchestrator) Convert(ctx context.Context, req types.ConversionRequest) types.ConversionResult {
	switch req.Kind {
	case types.KindNone:
		return types.FailureResult(types.Failuref(types.ReasonClassificationEmpty, "clipboard holds nothing actionable"))
	case types.KindMarkdownTable:
		return o.convertTable(ctx, req)
	case types.KindHTMLRich:
		return o.convertHTML(ctx, req)
	default:
		return o.convertMarkdown(ctx, req, req.RawContent)
	}
}

// convertTable parses the table block directly when the destination is a
// spreadsheet (no external converter involved). For a word processor the
// table converts as a Markdown document instead, becoming a document table.
// A malformed table falls back to the document path rather than failing.
func (o *Orchestrator) convertTable(ctx context.Context, req types.ConversionRequest) types.ConversionResult {
	switch req.Target.App {
	case types.TargetWord, types.TargetWPS:
		return o.convertMarkdown(ctx, req, req.RawContent)
	}

	block, ok := classify.ExtractTable(req.RawContent)
	if ok {
		rows, err := classify.ParseTable(block, req.Options.ExcelKeepFormat)
		if err == nil {
			return types.TableResult(rows)
		}
		o.logger.Warn("table parse failed, falling back to document path", "error", err)
	}
	return o.convertMarkdown(ctx, req, req.RawContent)
}

func (o *Orchestrator) convertMarkdown(ctx context.Context, req types.ConversionRequest, md string) types.ConversionResult {
	opts := req.Options

	md = NormalizeMarkdown(md)
	md = ConvertLaTeXDelimiters(md)
	if opts.StrikethroughToDel {
		md = RewriteStrikethrough(md)
	}
	if opts.MDDisableFirstParaIndent {
		md = SuppressFirstParagraphIndentMarkdown(md)
	}

	path, err := o.runner.ConvertDocument(ctx, md, FormatMarkdown, opts)
	if err != nil {
		return types.FailureResult(err)
	}
	return types.DocumentResult(path, opts.KeepFile)
}

func (o *Orchestrator) convertHTML(ctx context.Context, req types.ConversionRequest) types.ConversionResult {
	opts := req.Options
	html := req.RawContent

	// A spreadsheet target wants rows, not a document. Clipboard HTML
	// usually carries the table markup; convert it to Markdown and
	// extract from there.
	if req.Target.App == types.TargetExcel && opts.EnableExcel {
		if md, err := HTMLToMarkdown(html); err == nil {
			if block, ok := classify.ExtractTable(md); ok {
				if rows, perr := classify.ParseTable(block, opts.ExcelKeepFormat); perr == nil {
					return types.TableResult(rows)
				}
			}
		} else {
			o.logger.Warn("html table extraction failed", "error", err)
		}
	}

	// Keeping formulas literal requires the Markdown reader: round-trip
	// the HTML through Markdown first.
	if opts.KeepOriginalFormula {
		md, err := HTMLToMarkdown(html)
		if err == nil {
			return o.convertMarkdown(ctx, req, md)
		}
		o.logger.Warn("formula-preserving path failed, converting HTML directly", "error", err)
	}

	if opts.HTMLDisableFirstParaIndent {
		html = SuppressFirstParagraphIndentHTML(html)
	}

	path, err := o.runner.ConvertDocument(ctx, html, FormatHTML, opts)
	if err != nil {
		return types.FailureResult(err)
	}
	return types.DocumentResult(path, opts.KeepFile)
}
