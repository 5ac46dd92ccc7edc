package codebase

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/noa/config"
	"github.com/dhamidi/noa/diagnostic"
	"github.com/dhamidi/noa/internal/logging"
	"github.com/dhamidi/noa/source"
)

const lsName = "noa"

var lspLog = logging.Get("lsp")

type LSPServer struct {
	fs       afero.Fs
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(fs afero.Fs, version string) *LSPServer {
	ls := &LSPServer{
		fs:      fs,
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
		TextDocumentCompletion:     ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

// Codebase returns the workspace opened by initialize, or nil before it.
func (ls *LSPServer) Codebase() *Codebase {
	return ls.codebase
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := getRootDir()
	if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	} else if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	}

	cfg, err := config.Load(ls.fs, rootDir, "", os.LookupEnv)
	if err != nil {
		lspLog.Errorf("config: %s; using defaults", err)
		cfg = config.Default()
	}
	ls.codebase = New(ls.fs, rootDir, cfg)
	lspLog.Infof("initialize %s", rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(context.Background()); err != nil {
		lspLog.Errorf("scan: %s", err)
		return nil
	}
	for _, f := range ls.codebase.Files() {
		ls.publish(ctx, f)
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	return ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		return ls.update(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		return ls.update(ctx, params.TextDocument.URI, *params.Text)
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	f, err := ls.codebase.ScanFile(context.Background(), path)
	if err != nil {
		lspLog.Warningf("save %s: %s", path, err)
		return nil
	}
	ls.publish(ctx, f)
	return nil
}

// textDocumentDidClose drops the editor's copy: the file on disk takes over,
// or the file is forgotten if it no longer exists.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if f, err := ls.codebase.ScanFile(context.Background(), path); err == nil {
		ls.publish(ctx, f)
		return nil
	}
	ls.codebase.RemoveFile(path)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return nil
	}
	f, err := ls.codebase.UpdateFile(context.Background(), path, []byte(text))
	if err != nil {
		lspLog.Errorf("update %s: %s", path, err)
		return nil
	}
	ls.publish(ctx, f)
	return nil
}

func (ls *LSPServer) publish(ctx *glsp.Context, f *File) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, publishParams(f))
}

func (ls *LSPServer) fileAt(uri protocol.DocumentUri) *File {
	path, err := uriToPath(uri)
	if err != nil || ls.codebase == nil {
		return nil
	}
	return ls.codebase.GetFile(path)
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	f := ls.fileAt(params.TextDocument.URI)
	if f == nil {
		return nil, nil
	}
	offset := toOffset(f.Source, params.Position)
	hover, ok := HoverAt(f, offset)
	if !ok {
		return nil, nil
	}
	r := toRange(f.Source, hover.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: hover.Text,
		},
		Range: &r,
	}, nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	f := ls.fileAt(params.TextDocument.URI)
	if f == nil {
		return nil, nil
	}
	return documentSymbols(f.Source, Symbols(f)), nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	f := ls.fileAt(params.TextDocument.URI)
	if f == nil {
		return nil, nil
	}
	completions := CompletionsAt(f, toOffset(f.Source, params.Position))
	if len(completions) == 0 {
		return nil, nil
	}

	items := make([]protocol.CompletionItem, 0, len(completions))
	for _, c := range completions {
		kind := toProtocolKind(c.Kind)
		item := protocol.CompletionItem{
			Label: c.Label,
			Kind:  &kind,
		}
		if c.Detail != "" {
			detail := c.Detail
			item.Detail = &detail
		}
		items = append(items, item)
	}
	return items, nil
}

func publishParams(f *File) protocol.PublishDiagnosticsParams {
	diags := make([]protocol.Diagnostic, 0, len(f.Diagnostics))
	for _, d := range f.Diagnostics {
		diags = append(diags, toDiagnostic(f.Source, d))
	}
	return protocol.PublishDiagnosticsParams{
		URI:         pathToURI(f.Path),
		Diagnostics: diags,
	}
}

func toDiagnostic(src *source.Source, d diagnostic.Diagnostic) protocol.Diagnostic {
	severity := toSeverity(d.Severity())
	name := lsName
	return protocol.Diagnostic{
		Range:    toRange(src, d.Location.Span),
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: string(d.Code())},
		Source:   &name,
		Message:  d.Message,
	}
}

func toSeverity(s diagnostic.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diagnostic.SeverityError:
		return protocol.DiagnosticSeverityError
	case diagnostic.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func documentSymbols(src *source.Source, syms []Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(syms))
	for _, s := range syms {
		detail := s.Detail
		kind := protocol.SymbolKindVariable
		if s.Kind == SymbolFunction {
			kind = protocol.SymbolKindFunction
		}
		out = append(out, protocol.DocumentSymbol{
			Name:           s.Name,
			Detail:         &detail,
			Kind:           kind,
			Range:          toRange(src, s.Span),
			SelectionRange: toRange(src, s.NameSpan),
			Children:       documentSymbols(src, s.Children),
		})
	}
	return out
}

// toPosition converts a byte offset to an LSP position, whose character
// counts UTF-16 code units.
func toPosition(src *source.Source, offset int) protocol.Position {
	pos := src.Position(offset)
	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(src.UTF16Column(offset)),
	}
}

func toRange(src *source.Source, span source.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(src, span.Start),
		End:   toPosition(src, span.End),
	}
}

func toOffset(src *source.Source, pos protocol.Position) int {
	return src.OffsetFromUTF16(int(pos.Line), int(pos.Character))
}

func toProtocolKind(kind CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case CompletionKindFunction:
		return protocol.CompletionItemKindFunction
	case CompletionKindVariable:
		return protocol.CompletionItemKindVariable
	default:
		return protocol.CompletionItemKindKeyword
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) protocol.DocumentUri {
	if u, err := url.Parse(path); err == nil && len(u.Scheme) > 1 {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

func getRootDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
