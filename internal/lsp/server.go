// Package lsp implements a language server that publishes lint
// diagnostics, formats documents and offers lint fixes as code actions.
package lsp

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple" // Backend for glsp's own logging
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/yaklabco/quill/internal/configloader"
	"github.com/yaklabco/quill/internal/logging"
	"github.com/yaklabco/quill/pkg/config"
	"github.com/yaklabco/quill/pkg/langdetect"
	"github.com/yaklabco/quill/pkg/lint"
	_ "github.com/yaklabco/quill/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/quill/pkg/runner"
	"github.com/yaklabco/quill/pkg/source"
)

const serverName = "quill"

// codeActionKindSourceFixAll was added to the protocol after 3.16.
const codeActionKindSourceFixAll = protocol.CodeActionKind("source.fixAll")

// Options configures a Server.
type Options struct {
	// Version is reported to the client.
	Version string

	// ConfigPath is an explicit config file, as given by --config.
	ConfigPath string

	// Debug enables verbose logging on stderr.
	Debug bool

	// Logger receives the server's own log output. Defaults to stderr,
	// as stdout carries the protocol.
	Logger *log.Logger
}

// Server is a language server over stdio.
type Server struct {
	opts    Options
	handler protocol.Handler
	server  *server.Server
	docs    *documents
	logger  *log.Logger

	mu    sync.RWMutex
	root  string
	procs processors
}

// processors run the three kinds of work the server does on a document.
type processors struct {
	lint   *runner.Processor
	fixAll *runner.Processor
	format *runner.Processor
}

// NewServer creates a server with the default configuration. The project
// configuration is loaded when the client initializes.
func NewServer(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		level := "info"
		if opts.Debug {
			level = "debug"
		}
		logger = logging.NewWithWriter(os.Stderr, level)
	}

	procs, err := newProcessors("", "", config.NewConfig())
	if err != nil {
		return nil, err
	}
	srv := &Server{opts: opts, docs: newDocuments(), procs: procs}
	srv.logger = logger.With(logging.FieldComponent, "lsp")

	srv.handler = protocol.Handler{
		Initialize:             srv.initialize,
		Initialized:            srv.initialized,
		Shutdown:               srv.shutdown,
		SetTrace:               srv.setTrace,
		TextDocumentDidOpen:    srv.didOpen,
		TextDocumentDidChange:  srv.didChange,
		TextDocumentDidClose:   srv.didClose,
		TextDocumentDidSave:    srv.didSave,
		TextDocumentFormatting: srv.formatting,
		TextDocumentCodeAction: srv.codeAction,
	}

	return srv, nil
}

// RunStdio serves the protocol on stdin and stdout until the client exits.
func (s *Server) RunStdio() error {
	verbosity := 1
	if s.opts.Debug {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	s.server = server.NewServer(&s.handler, serverName, s.opts.Debug)
	if err := s.server.RunStdio(); err != nil {
		return fmt.Errorf("language server: %w", err)
	}
	return nil
}

// configure loads the configuration for root and rebuilds the processors.
// A configuration that fails to load is reported and the defaults are
// used instead.
func (s *Server) configure(root string) error {
	ctx := s.background()

	cfg := config.NewConfig()
	projectRoot := root
	load, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:     root,
		ExplicitPath:   s.opts.ConfigPath,
		NonInteractive: true,
		IgnoreForeign:  true,
		Version:        s.opts.Version,
	})
	if err == nil {
		cfg = load.Config
		projectRoot = load.Root
		for _, warning := range load.Warnings {
			s.logger.Warn(warning)
		}
	}

	procs, buildErr := newProcessors(root, projectRoot, cfg)
	if buildErr != nil {
		return buildErr
	}

	s.mu.Lock()
	s.root = root
	s.procs = procs
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	return nil
}

func newProcessors(workDir, root string, cfg *config.Config) (processors, error) {
	pipeline := lint.NewPipeline(lint.NewEngine(lint.DefaultRegistry))
	build := func(mode runner.Mode, fix, write bool) (*runner.Processor, error) {
		modeCfg := cfg.Clone()
		modeCfg.Fix = fix
		modeCfg.Write = write
		return runner.NewProcessor(pipeline, runner.Options{
			WorkingDir: workDir,
			Root:       root,
			Mode:       mode,
			DryRun:     true,
			Config:     modeCfg,
		})
	}

	var (
		procs processors
		err   error
	)
	if procs.lint, err = build(runner.ModeLint, false, false); err != nil {
		return processors{}, err
	}
	if procs.fixAll, err = build(runner.ModeLint, true, false); err != nil {
		return processors{}, err
	}
	if procs.format, err = build(runner.ModeFormat, false, true); err != nil {
		return processors{}, err
	}
	return procs, nil
}

func (s *Server) current() processors {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.procs
}

func (s *Server) background() context.Context {
	return logging.WithLogger(context.Background(), s.logger)
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	root := ""
	switch {
	case params.RootURI != nil && *params.RootURI != "":
		root = uriToPath(*params.RootURI)
	case params.RootPath != nil && *params.RootPath != "":
		root = *params.RootPath
	}
	if root != "" {
		if err := s.configure(root); err != nil {
			s.logger.Warn("configuration not loaded", logging.FieldPath, root, logging.FieldError, err)
		}
	}

	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: boolPtr(true)},
	}
	capabilities.CodeActionProvider = &protocol.CodeActionOptions{
		CodeActionKinds: []protocol.CodeActionKind{
			protocol.CodeActionKindQuickFix,
			codeActionKindSourceFixAll,
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.opts.Version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	s.mu.RLock()
	root := s.root
	s.mu.RUnlock()
	s.logger.Debug("client initialized", logging.FieldWorkingDir, root)
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	doc := s.docs.open(item.URI, item.Version, item.Text)
	s.logger.Debug("document opened", logging.FieldURI, item.URI, logging.FieldDocumentVersion, item.Version)
	s.publish(ctx, doc)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	current, ok := s.docs.get(params.TextDocument.URI)
	text := ""
	if ok {
		text = current.text
	}

	for _, change := range params.ContentChanges {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = change.Text
		case protocol.TextDocumentContentChangeEvent:
			text = applyChange(text, change)
		}
	}

	doc := s.docs.update(params.TextDocument.URI, params.TextDocument.Version, text)
	s.publish(ctx, doc)
	return nil
}

// applyChange applies an incremental edit. Changes without a range
// replace the whole text.
func applyChange(text string, change protocol.TextDocumentContentChangeEvent) string {
	if change.Range == nil {
		return change.Text
	}
	m := newMapper(text)
	start := m.offset(change.Range.Start)
	end := max(start, m.offset(change.Range.End))
	return text[:start] + change.Text + text[end:]
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.docs.close(uri)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI

	if configloader.IsProjectConfig(uriToPath(uri)) {
		s.mu.RLock()
		root := s.root
		s.mu.RUnlock()
		if err := s.configure(root); err != nil {
			s.logger.Warn("configuration not reloaded", logging.FieldError, err)
		}
		s.publishAll(ctx)
		return nil
	}

	doc, ok := s.docs.get(uri)
	if params.Text != nil {
		version := protocol.Integer(0)
		if ok {
			version = doc.version
		}
		doc, ok = s.docs.update(uri, version, *params.Text), true
	}
	if ok {
		s.publish(ctx, doc)
	}
	return nil
}

func (s *Server) publishAll(ctx *glsp.Context) {
	s.docs.mu.RLock()
	open := make([]*openDocument, 0, len(s.docs.docs))
	for _, doc := range s.docs.docs {
		open = append(open, doc)
	}
	s.docs.mu.RUnlock()

	for _, doc := range open {
		s.publish(ctx, doc)
	}
}

// publish sends the diagnostics of doc to the client.
func (s *Server) publish(ctx *glsp.Context, doc *openDocument) {
	diags := s.diagnose(doc)
	version := protocol.UInteger(max(doc.version, 0))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         doc.uri,
		Version:     &version,
		Diagnostics: diags,
	})
}

// lintDocument runs the lint rules on doc. ok is false for documents the server
// does not handle.
func (s *Server) lintDocument(proc *runner.Processor, doc *openDocument) (runner.FileOutcome, bool) {
	lang := langdetect.Detect(doc.path, []byte(doc.text))
	if !runner.SupportedLanguage(lang) {
		return runner.FileOutcome{}, false
	}
	outcome := proc.Process(s.background(), doc.path, []byte(doc.text), lang)
	if outcome.Error != nil {
		s.logger.Warn("lint failed", logging.FieldURI, doc.uri, logging.FieldError, outcome.Error)
		return outcome, false
	}
	return outcome, true
}

func (s *Server) diagnose(doc *openDocument) []protocol.Diagnostic {
	outcome, ok := s.lintDocument(s.current().lint, doc)
	if !ok {
		return []protocol.Diagnostic{}
	}
	m := newMapper(string(outcome.Source))
	diags := make([]protocol.Diagnostic, 0, len(outcome.Diagnostics))
	for i := range outcome.Diagnostics {
		diags = append(diags, toProtocolDiagnostic(m, doc.uri, &outcome.Diagnostics[i]))
	}
	return diags
}

func (s *Server) formatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc, ok := s.docs.get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	lang := langdetect.Detect(doc.path, []byte(doc.text))
	if !runner.SupportedLanguage(lang) {
		return nil, nil
	}

	outcome := s.current().format.Process(s.background(), doc.path, []byte(doc.text), lang)
	switch {
	case outcome.Error != nil:
		return nil, fmt.Errorf("format %s: %w", doc.uri, outcome.Error)
	case outcome.FormatError != nil:
		// Documents with syntax errors are left alone; the errors are
		// already published as diagnostics.
		s.logger.Debug("not formatting", logging.FieldURI, doc.uri, logging.FieldError, outcome.FormatError)
		return nil, nil
	case !outcome.Changed:
		return []protocol.TextEdit{}, nil
	}

	return []protocol.TextEdit{{
		Range:   newMapper(doc.text).fullRange(),
		NewText: string(outcome.Output),
	}}, nil
}

func (s *Server) codeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	doc, ok := s.docs.get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	procs := s.current()
	outcome, ok := s.lintDocument(procs.lint, doc)
	if !ok {
		return nil, nil
	}

	m := newMapper(doc.text)
	start := m.offset(params.Range.Start)
	requested := source.NewRange(start, max(start, m.offset(params.Range.End)))
	actions := quickFixes(m, doc.uri, outcome.Diagnostics, requested, params.Context.Only)

	if wants(params.Context.Only, codeActionKindSourceFixAll) {
		if action, ok := s.fixAllAction(procs.fixAll, doc, m); ok {
			actions = append(actions, action)
		}
	}
	return actions, nil
}

// fixAllAction applies every safe fix to doc as one edit.
func (s *Server) fixAllAction(proc *runner.Processor, doc *openDocument, m *mapper) (protocol.CodeAction, bool) {
	outcome, ok := s.lintDocument(proc, doc)
	if !ok || !outcome.Changed {
		return protocol.CodeAction{}, false
	}
	kind := codeActionKindSourceFixAll
	return protocol.CodeAction{
		Title: "Fix all auto-fixable problems",
		Kind:  &kind,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{
				doc.uri: {{Range: m.fullRange(), NewText: string(outcome.Output)}},
			},
		},
	}, true
}

func boolPtr(b bool) *bool {
	return &b
}
