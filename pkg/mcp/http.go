package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	// Packages
	mux "github.com/gorilla/mux"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	cors "github.com/rs/cors"
)

///////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	PathSSE      = "/sse"
	PathMessages = "/messages/"
	PathMCP      = "/mcp"
	PathHealth   = "/health"

	// Event names on the stream
	EventEndpoint = "endpoint"
	EventMessage  = "message"

	// Query parameter which identifies the stream
	querySession = "session_id"

	// Largest accepted message body
	maxBodySize = 4 << 20
)

///////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Handler returns the HTTP transport. A client opens an event stream on
// /sse, whose first event names the endpoint to post messages to, and
// receives responses as message events. Messages posted to /mcp are
// answered in the response body.
func (server *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc(PathSSE, server.handleStream).Methods(http.MethodGet)
	router.HandleFunc(PathMessages, server.handleMessage).Methods(http.MethodPost)
	router.HandleFunc("/messages", server.handleMessage).Methods(http.MethodPost)
	router.HandleFunc(PathMCP, server.handleSync).Methods(http.MethodPost)
	router.HandleFunc(PathHealth, server.handleHealth).Methods(http.MethodGet)
	router.Use(server.logRequests)

	// Allow browser-based inspectors to connect
	c := cors.New(cors.Options{
		AllowedOrigins: server.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(router)
}

///////////////////////////////////////////////////////////////////////
// HANDLERS

// GET /sse
func (server *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		_ = httpresponse.Error(w, httpresponse.ErrInternalError.With("streaming unsupported"))
		return
	}

	// Register the session, and remove it when the client goes away
	session := server.sessions.create()
	defer server.sessions.remove(session)
	server.logger.Debugw("stream opened", "session", session.id)
	defer server.logger.Debugw("stream closed", "session", session.id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// The first event tells the client where to post messages
	endpoint := PathMessages + "?" + url.Values{querySession: []string{session.id}}.Encode()
	writeEvent(w, EventEndpoint, []byte(endpoint))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-session.done:
			return
		case data := <-session.ch:
			writeEvent(w, EventMessage, data)
			flusher.Flush()
		}
	}
}

// POST /messages/?session_id=...
func (server *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(querySession)
	if id == "" {
		_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With("missing session_id"))
		return
	}
	session := server.sessions.get(id)
	if session == nil {
		_ = httpresponse.Error(w, httpresponse.ErrNotFound.With("session not found"))
		return
	}
	payload, err := readMessage(r)
	if err != nil {
		_ = httpresponse.Error(w, err)
		return
	}

	// Process the message after the request has completed, and send any
	// response on the stream
	ctx := context.WithoutCancel(r.Context())
	go func() {
		response, err := server.Handle(ctx, payload)
		if err != nil {
			response = parseError(err)
		}
		if response == nil {
			return
		}
		if err := session.send(ctx, response); err != nil {
			server.logger.Debugw("response dropped", "session", session.id, "error", err)
		}
	}()

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte("Accepted"))
}

// POST /mcp
func (server *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	payload, err := readMessage(r)
	if err != nil {
		_ = httpresponse.Error(w, err)
		return
	}
	response, err := server.Handle(r.Context(), payload)
	if err != nil {
		_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With(err.Error()))
		return
	} else if response == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	_ = httpresponse.JSON(w, http.StatusOK, 0, json.RawMessage(response))
}

// GET /health
func (server *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (server *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		server.logger.Debugw("http", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

// readMessage reads a request body which must be a JSON value
func readMessage(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, httpresponse.ErrBadRequest.With(err.Error())
	}
	if !json.Valid(data) {
		return nil, httpresponse.ErrBadRequest.With("invalid JSON")
	}
	return data, nil
}

// writeEvent writes a single server-sent event. The data must not contain
// newlines, which holds for encoded JSON and the endpoint path.
func writeEvent(w io.Writer, event string, data []byte) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
