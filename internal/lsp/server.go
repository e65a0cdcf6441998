package lsp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/leapstack-labs/primerlint/internal/config"
	"github.com/leapstack-labs/primerlint/internal/runner"
	"github.com/leapstack-labs/primerlint/pkg/lint"
	_ "github.com/leapstack-labs/primerlint/pkg/lint/rules" // Register lint rules
)

// ErrExitWithoutShutdown is returned by Run when the client sends exit
// without a preceding shutdown request.
var ErrExitWithoutShutdown = errors.New("exit received before shutdown")

// JSON-RPC error codes.
const (
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// Server implements the Language Server Protocol for primerlint.
type Server struct {
	// Document management
	documents *DocumentStore

	// Project context
	projectRoot string
	initialized bool

	// Lint setup, replaced when the project config is saved
	lintMu    sync.RWMutex
	analyzer  *lint.Analyzer
	fixer     *runner.Runner
	threshold lint.Severity
	discovery runner.Discovery
	configErr error

	// Diagnostics of the last analysis per URI, for code actions and hover
	results   map[string]*documentLint
	resultsMu sync.RWMutex

	// I/O
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	// Logging
	logger *slog.Logger

	// Shutdown state
	shutdown   bool
	exited     bool
	shutdownMu sync.RWMutex
}

// NewServer creates a new LSP server instance.
func NewServer(reader io.Reader, writer io.Writer) *Server {
	return NewServerWithLogger(reader, writer, nil)
}

// NewServerWithLogger creates a new LSP server instance with a custom logger.
func NewServerWithLogger(reader io.Reader, writer io.Writer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	s := &Server{
		documents: NewDocumentStore(),
		results:   make(map[string]*documentLint),
		reader:    bufio.NewReader(reader),
		writer:    writer,
		logger:    logger,
	}
	s.configure("")
	return s
}

// Run starts the server's main loop, processing JSON-RPC messages until
// the client sends exit or closes the stream.
func (s *Server) Run() error {
	s.logger.Info("primerlint LSP server starting...")

	for {
		// Read message
		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.logger.Info("Client disconnected")
				return nil
			}
			s.logger.Error("Error reading message", "error", err)
			continue
		}

		// Handle message
		if err := s.handleMessage(msg); err != nil {
			s.logger.Error("Error handling message", "method", msg.Method, "error", err)
		}

		s.shutdownMu.RLock()
		exited, shutdown := s.exited, s.shutdown
		s.shutdownMu.RUnlock()
		if exited {
			if !shutdown {
				return ErrExitWithoutShutdown
			}
			return nil
		}
	}
}

// JSONRPCMessage represents a JSON-RPC 2.0 message.
type JSONRPCMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *JSONRPCError    `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC error.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// readMessage reads a JSON-RPC message from the input stream.
func (s *Server) readMessage() (*JSONRPCMessage, error) {
	// Read headers
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break // End of headers
		}

		name, value, ok := strings.Cut(line, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			contentLength, err = strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}

	if contentLength <= 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	// Read body
	body := make([]byte, contentLength)
	_, err := io.ReadFull(s.reader, body)
	if err != nil {
		return nil, fmt.Errorf("error reading body: %w", err)
	}

	// Parse message
	var msg JSONRPCMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("error parsing message: %w", err)
	}

	return &msg, nil
}

// sendResponse sends a JSON-RPC response.
func (s *Server) sendResponse(id *json.RawMessage, result any, err *JSONRPCError) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
	}

	if err != nil {
		msg.Error = err
	} else {
		resultBytes, _ := json.Marshal(result)
		msg.Result = resultBytes
	}

	s.writeMessage(&msg)
}

// sendNotification sends a JSON-RPC notification (no ID).
func (s *Server) sendNotification(method string, params any) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		Method:  method,
	}

	if params != nil {
		paramsBytes, _ := json.Marshal(params)
		msg.Params = paramsBytes
	}

	s.writeMessage(&msg)
}

// writeMessage writes a JSON-RPC message to the output stream.
func (s *Server) writeMessage(msg *JSONRPCMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("Error marshaling message", "error", err)
		return
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))
	_, _ = s.writer.Write([]byte(header))
	_, _ = s.writer.Write(body)
}

// invalidParams answers a request whose params could not be decoded.
func (s *Server) invalidParams(msg *JSONRPCMessage, err error) error {
	s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
	return err
}

// handleMessage dispatches a message to the appropriate handler.
func (s *Server) handleMessage(msg *JSONRPCMessage) error {
	s.logger.Debug("Received", "method", msg.Method)

	s.shutdownMu.RLock()
	shutdown := s.shutdown
	s.shutdownMu.RUnlock()
	if shutdown && msg.Method != "exit" {
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{
				Code:    codeInvalidRequest,
				Message: "Server is shutting down",
			})
		}
		return nil
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return s.handleInitialized(msg)
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		return s.handleExit(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/codeAction":
		return s.handleCodeAction(msg)
	default:
		if msg.ID != nil {
			// Unknown method with ID - respond with method not found
			s.sendResponse(msg.ID, nil, &JSONRPCError{
				Code:    codeMethodNotFound,
				Message: "Method not found: " + msg.Method,
			})
		}
		return nil
	}
}

// --- Lifecycle handlers ---

func (s *Server) handleInitialize(msg *JSONRPCMessage) error {
	var params InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.invalidParams(msg, err)
	}

	root := URIToPath(params.RootURI)
	if root == "" {
		root = params.RootPath
	}
	s.configure(root)
	s.logger.Info("Project root", "path", s.projectRoot)

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
				Save: &SaveOptions{
					IncludeText: false,
				},
			},
			HoverProvider: true,
			CodeActionProvider: &CodeActionOptions{
				CodeActionKinds: []CodeActionKind{CodeActionKindQuickFix, CodeActionKindFixAllPrimer},
			},
		},
		ServerInfo: &ServerInfo{Name: "primerlint"},
	}

	s.sendResponse(msg.ID, result, nil)
	return nil
}

func (s *Server) handleInitialized(_ *JSONRPCMessage) error {
	s.initialized = true
	s.logger.Info("Server initialized")
	s.reportConfigError()
	return nil
}

func (s *Server) handleShutdown(msg *JSONRPCMessage) error {
	s.shutdownMu.Lock()
	s.shutdown = true
	s.shutdownMu.Unlock()

	s.sendResponse(msg.ID, nil, nil)
	s.logger.Info("Server shutdown")
	return nil
}

func (s *Server) handleExit(_ *JSONRPCMessage) error {
	s.shutdownMu.Lock()
	s.exited = true
	s.shutdownMu.Unlock()

	s.logger.Info("Server exit")
	return nil
}

// --- Document handlers ---

func (s *Server) handleDidOpen(msg *JSONRPCMessage) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Open(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
	s.logger.Debug("Opened", "uri", params.TextDocument.URI)

	// Run diagnostics
	s.publishDiagnostics(params.TextDocument.URI)

	return nil
}

func (s *Server) handleDidClose(msg *JSONRPCMessage) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Close(params.TextDocument.URI)
	s.forget(params.TextDocument.URI)
	s.logger.Debug("Closed", "uri", params.TextDocument.URI)

	// Clear diagnostics
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []Diagnostic{},
	})

	return nil
}

func (s *Server) handleDidChange(msg *JSONRPCMessage) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	// We use full sync, so take the last change
	if len(params.ContentChanges) > 0 {
		lastChange := params.ContentChanges[len(params.ContentChanges)-1]
		s.documents.Update(params.TextDocument.URI, lastChange.Text, params.TextDocument.Version)
	}

	// Run diagnostics
	s.publishDiagnostics(params.TextDocument.URI)

	return nil
}

func (s *Server) handleDidSave(msg *JSONRPCMessage) error {
	var params DidSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	path := URIToPath(params.TextDocument.URI)
	s.logger.Debug("Saved", "path", path)

	// Saving the project config reloads it and relints every open document
	if isConfigFile(path) {
		s.configure(s.projectRoot)
		s.reportConfigError()
		for _, uri := range s.documents.List() {
			s.publishDiagnostics(uri)
		}
	}

	return nil
}

// --- Feature handlers ---

func (s *Server) handleHover(msg *JSONRPCMessage) error {
	var params HoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.invalidParams(msg, err)
	}

	hover := s.getHover(params)
	s.sendResponse(msg.ID, hover, nil)
	return nil
}

// --- Helper methods ---

// configure loads the project config found at or above root and rebuilds
// the analyzer. A broken config falls back to the defaults; the error is
// kept for reportConfigError.
func (s *Server) configure(root string) {
	if root != "" {
		if found := config.FindProjectRoot(root); found != "" {
			root = found
		}
	}
	s.projectRoot = root

	cfg, err := s.loadProjectConfig(root)
	if err != nil {
		s.logger.Warn("Falling back to default lint configuration", "error", err)
		cfg = &config.ProjectConfig{}
		config.ApplyDefaults(cfg)
	}

	analyzer, threshold, discovery, buildErr := buildLintSetup(cfg)
	if buildErr != nil {
		s.logger.Warn("Falling back to default lint configuration", "error", buildErr)
		fallback := &config.ProjectConfig{}
		config.ApplyDefaults(fallback)
		analyzer, threshold, discovery, _ = buildLintSetup(fallback)
		cfg = fallback
	}

	if cfg.DocsURL != "" {
		lint.SetDocsBaseURL(cfg.DocsURL)
	}

	s.lintMu.Lock()
	defer s.lintMu.Unlock()
	s.analyzer = analyzer
	s.fixer = runner.New(analyzer, runner.Options{
		Fix:       true,
		MaxPasses: cfg.Lint.MaxPasses,
		Logger:    s.logger,
	})
	s.threshold = threshold
	s.discovery = discovery
	s.configErr = errors.Join(err, buildErr)
}

func (s *Server) loadProjectConfig(root string) (*config.ProjectConfig, error) {
	if root == "" {
		cfg := &config.ProjectConfig{}
		config.ApplyDefaults(cfg)
		return cfg, nil
	}
	cfg, err := config.LoadFromDir(root)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &config.ProjectConfig{}
		config.ApplyDefaults(cfg)
	}
	return cfg, nil
}

func buildLintSetup(cfg *config.ProjectConfig) (*lint.Analyzer, lint.Severity, runner.Discovery, error) {
	analyzer, err := cfg.NewAnalyzer()
	if err != nil {
		return nil, 0, runner.Discovery{}, err
	}
	threshold, err := cfg.Lint.Threshold()
	if err != nil {
		return nil, 0, runner.Discovery{}, err
	}
	discovery, err := runner.NewDiscovery(cfg.Lint.Include, cfg.Lint.Exclude)
	if err != nil {
		return nil, 0, runner.Discovery{}, err
	}
	return analyzer, threshold, discovery, nil
}

// reportConfigError shows the last config error to the user, if any.
func (s *Server) reportConfigError() {
	s.lintMu.RLock()
	err := s.configErr
	s.lintMu.RUnlock()

	if err != nil {
		s.sendNotification("window/showMessage", &ShowMessageParams{
			Type:    MessageTypeWarning,
			Message: "primerlint: invalid configuration, using defaults: " + err.Error(),
		})
	}
}

func isConfigFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range config.ConfigFileNames {
		if base == name {
			return true
		}
	}
	return false
}
