package codebase

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/minijavac/java/parser"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "minijavac"

var log = commonlog.GetLogger("minijavac.lsp")

// LSPServer publishes parse diagnostics for mini-Java documents and offers
// completion of declared names.
type LSPServer struct {
	codebase *Codebase
	handler  protocol.Handler
	server   *server.Server
	version  string
	opts     []parser.Option
	watcher  *FileWatcher

	mu     sync.Mutex
	open   map[string]bool
	notify glsp.NotifyFunc
}

func NewLSPServer(version string, opts ...parser.Option) *LSPServer {
	ls := &LSPServer{
		version: version,
		opts:    opts,
		open:    make(map[string]bool),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir, ls.opts...)
	log.Infof("root directory: %s", rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
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

// initialized starts watching the workspace so that files the editor has
// not opened still contribute declarations and diagnostics.
func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	ls.watcher = NewFileWatcher(ls.codebase)
	ls.watcher.Skip = ls.isOpen
	ls.watcher.OnChange = func(path string, info *FileInfo) {
		ls.publish(pathToURI(path), info)
	}
	ls.watcher.Start()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) isOpen(path string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.open[path]
}

func (ls *LSPServer) setOpen(path string, open bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if open {
		ls.open[path] = true
	} else {
		delete(ls.open, path)
	}
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.setOpen(path, true)
	info := ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publish(params.TextDocument.URI, info)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			info := ls.codebase.UpdateFile(path, []byte(textChange.Text))
			ls.publish(params.TextDocument.URI, info)
		}
	}
	return nil
}

// textDocumentDidClose hands the file back to the watcher, which rereads it
// from disk on its next pass.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.setOpen(path, false)
	if err := ls.codebase.ScanFile(path); err != nil {
		ls.codebase.RemoveFile(path)
		ls.publish(params.TextDocument.URI, nil)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.publish(params.TextDocument.URI, ls.codebase.UpdateFile(path, []byte(*params.Text)))
	} else if err := ls.codebase.ScanFile(path); err == nil {
		ls.publish(params.TextDocument.URI, ls.codebase.GetFile(path))
	}
	return nil
}

// publish sends the diagnostics of info, or clears them when info is nil.
func (ls *LSPServer) publish(uri protocol.DocumentUri, info *FileInfo) {
	ls.mu.Lock()
	notify := ls.notify
	ls.mu.Unlock()
	if notify == nil {
		return
	}

	diagnostics := toProtocolDiagnostics(info)
	log.Debugf("%s: %d diagnostics", uri, len(diagnostics))
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	file := ls.codebase.GetFile(path)
	if file == nil {
		return nil, nil
	}

	prefix := wordPrefix(file.Content, int(params.Position.Line)+1, int(params.Position.Character))
	completions := ls.codebase.Completions(prefix)
	if len(completions) == 0 {
		return nil, nil
	}

	var items []protocol.CompletionItem
	for _, c := range completions {
		kind := toProtocolKind(c.Kind)
		detail := c.Detail

		items = append(items, protocol.CompletionItem{
			Label:  c.Name,
			Kind:   &kind,
			Detail: &detail,
		})
	}

	return items, nil
}

// toProtocolDiagnostics converts the diagnostics of info. The result is
// never nil so that clients receive an empty array.
func toProtocolDiagnostics(info *FileInfo) []protocol.Diagnostic {
	out := []protocol.Diagnostic{}
	if info == nil {
		return out
	}
	source := lsName
	for _, d := range info.Diagnostics() {
		severity := protocol.DiagnosticSeverityError
		if d.Severity == parser.SeverityWarning {
			severity = protocol.DiagnosticSeverityWarning
		}
		out = append(out, protocol.Diagnostic{
			Range:    lineRange(info.Content, d.Line),
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		})
	}
	return out
}

// lineRange spans the whole of the 1-based line. Line 0 maps to the start
// of the document.
func lineRange(content []byte, line int) protocol.Range {
	if line <= 0 {
		return protocol.Range{}
	}
	lines := strings.Split(string(content), "\n")
	width := 0
	if line <= len(lines) {
		width = len(strings.TrimSuffix(lines[line-1], "\r"))
	}
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line - 1)},
		End:   protocol.Position{Line: protocol.UInteger(line - 1), Character: protocol.UInteger(width)},
	}
}

// wordPrefix returns the identifier characters left of col on the 1-based line.
func wordPrefix(content []byte, line, col int) string {
	lines := strings.Split(string(content), "\n")
	if line <= 0 || line > len(lines) {
		return ""
	}
	lineContent := lines[line-1]
	if col > len(lineContent) {
		col = len(lineContent)
	}

	start := col
	for start > 0 && isIdentByte(lineContent[start-1]) {
		start--
	}
	return lineContent[start:col]
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func toProtocolKind(kind SymbolKind) protocol.CompletionItemKind {
	switch kind {
	case SymbolRecord:
		return protocol.CompletionItemKindStruct
	case SymbolFunction, SymbolNative:
		return protocol.CompletionItemKindFunction
	case SymbolKeyword:
		return protocol.CompletionItemKindKeyword
	default:
		return protocol.CompletionItemKindText
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
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
