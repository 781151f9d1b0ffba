package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"docqa/internal/app"
	"docqa/internal/httputil"
	"docqa/internal/session"
)

const (
	sessionCookie   = "docqa_session"
	previewChars    = 500
	shutdownTimeout = 10 * time.Second
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	// Refuse to start without a credential: every question would fail
	// anyway, and the operator should hear about it now.
	if _, err := deps.Credentials.Resolve(); err != nil {
		deps.Log.Error("no API credential found; set ANTHROPIC_API_KEY in the environment, config.env, or the secrets file", "err", err)
		os.Exit(1)
	}

	r := httputil.NewRouter(deps.Log)

	r.Post("/api/documents/upload", uploadHandler(deps))
	r.Post("/api/ask", askHandler(deps))
	r.Get("/api/session", sessionHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", deps.Config.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("server stopped", "err", err)
	}
	if err := deps.Sessions.Close(); err != nil {
		deps.Log.Warn("failed to close session store", "err", err)
	}
}

// sessionID returns the caller's session id, minting a cookie on first
// contact.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func uploadHandler(deps app.Deps) http.HandlerFunc {
	maxFileSize := deps.Config.MaxUploadSize

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// Validate file size before parsing
		if r.ContentLength > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.Fail(deps.Log, w, "file is required", err, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxFileSize {
			httputil.Fail(deps.Log, w, fmt.Sprintf("file too large (max %d bytes)", maxFileSize), nil, http.StatusBadRequest)
			return
		}

		if !isPDF(header) {
			httputil.Fail(deps.Log, w, "unsupported file type (only PDF allowed)", nil, http.StatusBadRequest)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to read file", err, http.StatusInternalServerError)
			return
		}

		// An unparsable document fails this upload attempt and leaves the
		// previous document (if any) untouched.
		text, err := deps.Extractor.Extract(ctx, content)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to extract text from document", err, http.StatusUnprocessableEntity)
			return
		}

		// Text and name are replaced together as one value.
		sess := session.Session{DocumentText: text, DocumentName: header.Filename}
		id := sessionID(w, r)
		if err := deps.Sessions.Put(ctx, id, sess); err != nil {
			httputil.Fail(deps.Log, w, "failed to save session", err, http.StatusInternalServerError)
			return
		}

		stats := sess.Stats()
		deps.Log.Info("document processed", "name", header.Filename, "words", stats.Words, "chars", stats.Chars)

		resp := map[string]any{
			"document_name": header.Filename,
			"word_count":    stats.Words,
			"char_count":    stats.Chars,
			"preview":       truncate(text, previewChars),
		}
		if stats.Words == 0 {
			resp["warning"] = "document contains no extractable text"
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}

type askRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

func askHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}
		question := strings.TrimSpace(req.Question)
		if question == "" {
			httputil.Fail(deps.Log, w, "please enter a question", nil, http.StatusBadRequest)
			return
		}

		id := sessionID(w, r)
		sess, ok, err := deps.Sessions.Get(ctx, id)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to load session", err, http.StatusInternalServerError)
			return
		}
		if !ok || !sess.Loaded() {
			httputil.Fail(deps.Log, w, "please upload a document before asking questions", nil, http.StatusBadRequest)
			return
		}

		answer, err := deps.LLM.Answer(ctx, sess.DocumentText, question)
		if err != nil {
			// The answer area always shows something; the ok flag lets
			// callers tell a real answer from a failure message.
			deps.Log.Error("answer failed", "err", err)
			httputil.WriteJSON(w, http.StatusOK, map[string]any{
				"answer": fmt.Sprintf("Error querying %s: %v", deps.LLM.Service(), err),
				"ok":     false,
			})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"answer": answer,
			"ok":     true,
		})
	}
}

func sessionHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := sessionID(w, r)
		sess, ok, err := deps.Sessions.Get(r.Context(), id)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to load session", err, http.StatusInternalServerError)
			return
		}
		if !ok || !sess.Loaded() {
			httputil.WriteJSON(w, http.StatusOK, map[string]any{"loaded": false})
			return
		}
		stats := sess.Stats()
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"loaded":        true,
			"document_name": sess.DocumentName,
			"word_count":    stats.Words,
			"char_count":    stats.Chars,
		})
	}
}

// isPDF accepts application/pdf uploads, falling back to the file extension
// when the part carries no Content-Type.
func isPDF(header *multipart.FileHeader) bool {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		return strings.EqualFold(filepath.Ext(header.Filename), ".pdf")
	}
	return contentType == "application/pdf"
}

// truncate limits text to maxLen characters, cutting at word boundary.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// Find last space before maxLen to avoid cutting words
	if idx := strings.LastIndex(s[:maxLen], " "); idx > 0 {
		return s[:idx] + "..."
	}
	return s[:maxLen] + "..."
}
