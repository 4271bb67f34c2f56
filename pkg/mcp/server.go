// Implements an MCP server based on the following specification:
// https://modelcontextprotocol.io/specification/2024-11-05/basic/lifecycle
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	// Packages
	toolserver "github.com/mutablelogic/go-toolserver"
	tool "github.com/mutablelogic/go-toolserver/pkg/tool"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////
// TYPES

type Server struct {
	name    string
	version string

	// Private members
	mu          sync.RWMutex       // Handler map lock
	handlers    map[string]Handler // Method handlers
	toolkit     *tool.Toolkit      // Toolkit for the server
	logger      *zap.SugaredLogger // Logger
	origins     []string           // CORS origins for the HTTP transport
	sessions    *sessions          // SSE sessions
	initialised atomic.Bool
}

type Handler func(context.Context, any, json.RawMessage) (any, error)

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new MCP server with the given name and version
func New(name, version string, opts ...Opt) (*Server, error) {
	self := &Server{
		name:     name,
		version:  version,
		handlers: make(map[string]Handler, 10),
		logger:   zap.NewNop().Sugar(),
		origins:  []string{"*"},
		sessions: newSessions(),
	}
	if err := self.apply(opts...); err != nil {
		return nil, err
	}

	// Register default handlers
	self.HandlerFunc(MessageTypeInitialize, self.handleInitialize)
	self.HandlerFunc(MessageTypePing, self.handlePing)
	self.HandlerFunc(NotificationTypeInitialize, self.handleInitialized)
	self.HandlerFunc(MessageTypeListPrompts, self.handleListPrompts)
	self.HandlerFunc(MessageTypeListResources, self.handleListResources)
	self.HandlerFunc(MessageTypeListTools, self.handleListTools)
	self.HandlerFunc(MessageTypeCallTool, self.handleCallTool)

	// Return success
	return self, nil
}

// Close ends all open event streams
func (server *Server) Close() error {
	server.sessions.closeAll()
	return nil
}

// Implements an MCP server with standard input and output,
// and run in the foreground until the context is done or the
// input is exhausted.
func (server *Server) RunStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	var wg, writerWg sync.WaitGroup

	// Create a new buffered reader and writer
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)

	// Writer channel is closed once all requests have been processed
	writerCh := make(chan []byte)
	defer writerWg.Wait()
	defer close(writerCh)
	defer wg.Wait()

	writerWg.Go(func() {
		for data := range writerCh {
			if _, err := writer.Write(data); err != nil {
				server.logger.Errorw("write failed", "error", err)
				continue
			}
			// Flush the writer to ensure data is sent immediately
			writer.Flush()
		}
	})

	// Read lines in the background, so cancellation does not wait on input
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		var line string
		for {
			part, isPrefix, err := reader.ReadLine()
			if err != nil {
				readErr <- err
				return
			}
			if line += string(part); isPrefix {
				continue
			}
			select {
			case lines <- line:
			case <-done:
				return
			}
			line = ""
		}
	}()

	// Continue receiving input until the context is done
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var request string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if err == io.EOF {
				return nil
			}
			return err
		case request = <-lines:
		}
		if request = strings.TrimSpace(request); request == "" {
			continue
		}

		// Process a request in the background
		payload := []byte(request)
		wg.Go(func() {
			response, err := server.Handle(ctx, payload)
			if err != nil {
				server.logger.Warnw("invalid request", "error", err)
				response = parseError(err)
			}
			if response != nil {
				// Write the response and a newline
				writerCh <- append(response, '\n')
			}
		})
	}
}

// Initialised returns true once the client has sent the initialized notification
func (server *Server) Initialised() bool {
	return server.initialised.Load()
}

// HandlerFunc registers (or removes) a handler for a method
func (server *Server) HandlerFunc(method string, fn Handler) {
	server.mu.Lock()
	defer server.mu.Unlock()
	if fn == nil {
		delete(server.handlers, method)
	} else {
		server.handlers[method] = fn
	}
}

// Handle processes a single JSON-RPC message and returns the encoded
// response, or nil for a notification. An error is returned only when
// the payload cannot be decoded.
func (server *Server) Handle(ctx context.Context, payload []byte) ([]byte, error) {
	// Decode the request
	var request Request
	if err := json.Unmarshal(payload, &request); err != nil {
		return nil, toolserver.ErrBadParameter.With(err)
	}

	// Look up and call the handler
	response := Response{Version: RPCVersion, ID: request.ID}
	result, err := server.call(ctx, &request)
	if request.ID == nil {
		// Notification, no response
		if err != nil {
			server.logger.Debugw("notification failed", "method", request.Method, "error", err)
		}
		return nil, nil
	} else if err != nil {
		var target *Error
		if errors.As(err, &target) {
			response.Err = target
		} else {
			response.Err = NewError(ErrorCodeInternalError, err.Error())
		}
	} else if result == nil {
		return nil, nil
	} else {
		response.Result = result
	}

	// Return the response
	return json.Marshal(response)
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (server *Server) call(ctx context.Context, request *Request) (any, error) {
	if request.Method == "" {
		return nil, NewError(ErrorCodeInvalidRequest, "invalid request", "missing method")
	}

	server.mu.RLock()
	fn, exists := server.handlers[request.Method]
	server.mu.RUnlock()

	if !exists {
		return nil, NewError(ErrorCodeMethodNotFound, "method not found", request.Method)
	}
	server.logger.Debugw("request", "method", request.Method, "id", request.ID)
	return fn(ctx, request.ID, request.Payload)
}

func parseError(err error) []byte {
	data, _ := json.Marshal(Response{
		Version: RPCVersion,
		Err:     NewError(ErrorCodeParseError, "parse error", err.Error()),
	})
	return data
}

///////////////////////////////////////////////////////////////////////
// HANDLERS

func (server *Server) handleInitialize(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := new(ResponseInitialize)
	response.Version = ProtocolVersion
	response.ServerInfo.Name = server.name
	response.ServerInfo.Version = server.version
	response.Capabilities.Prompts = map[string]any{
		"listChanged": false,
	}
	response.Capabilities.Resources = map[string]any{
		"listChanged": false,
		"subscribe":   false,
	}
	response.Capabilities.Tools = map[string]any{
		"listChanged": false,
	}
	return response, nil
}

func (server *Server) handlePing(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	return map[string]any{}, nil
}

func (server *Server) handleInitialized(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	server.initialised.Store(true)
	return nil, nil
}

func (server *Server) handleListPrompts(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := new(ResponseListPrompts)
	response.Prompts = []any{}
	return response, nil
}

func (server *Server) handleListResources(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := new(ResponseListResources)
	response.Resources = []any{}
	return response, nil
}

func (server *Server) handleListTools(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := new(ResponseListTools)
	if server.toolkit == nil {
		response.Tools = []tool.Descriptor{}
	} else {
		response.Tools = server.toolkit.Describe()
	}
	return response, nil
}

func (server *Server) handleCallTool(ctx context.Context, _ any, payload json.RawMessage) (any, error) {
	if server.toolkit == nil {
		return nil, NewError(ErrorCodeMethodNotFound, "no tools configured")
	}

	var req RequestToolCall
	if len(payload) == 0 {
		return nil, NewError(ErrorCodeInvalidParameters, "missing params")
	} else if err := json.Unmarshal(payload, &req); err != nil {
		return nil, NewError(ErrorCodeInvalidParameters, err.Error())
	} else if req.Name == "" {
		return nil, NewError(ErrorCodeInvalidParameters, "missing tool name")
	}

	// Run the tool, and return any error as a tool error response rather
	// than a JSON-RPC error
	result, err := server.toolkit.Run(ctx, req.Name, req.Arguments)
	if err != nil {
		return textContent(err.Error(), true), nil
	}

	// Return success
	return textContent(string(result), false), nil
}
