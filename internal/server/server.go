// Package server exposes the panel over HTTP: a shell page, a websocket
// speaking the panel protocol and the image files of the last scan
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lumipallolabs/imagedive/internal/core"
	"github.com/lumipallolabs/imagedive/internal/logging"
	"github.com/lumipallolabs/imagedive/internal/protocol"
)

// Server bridges one browser panel to a controller
type Server struct {
	ctrl  *core.Controller
	files *Registry
	host   core.Host[*session]
	groups groupState
	mux    *http.ServeMux
}

// New creates a server. files must be the locator the controller scans with.
func New(ctrl *core.Controller, files *Registry) *Server {
	s := &Server{
		ctrl:  ctrl,
		files: files,
		mux:   http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /", s.handleShell)
	s.mux.HandleFunc("GET /ws", s.handleWS)
	s.mux.HandleFunc("GET "+FilesPrefix+"{token}", s.handleFile)
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logging.Server.Printf("listening on %s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.PathValue("token"))
	path, ok := s.files.Lookup(token)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFile(w, r, path)
}

// dispatch handles one client message for the active session
func (s *Server) dispatch(ctx context.Context, sess *session, msg protocol.ClientMessage) {
	switch m := msg.(type) {
	case protocol.InitComplete:
		sess.push(protocol.PostConfig{Settings: s.ctrl.Settings()})
		s.scanAndPush(ctx, sess)
	case protocol.RefreshImages:
		s.scanAndPush(ctx, sess)
	case protocol.ConfigChanged:
		if s.ctrl.ApplyConfig(m.Settings) {
			s.scanAndPush(ctx, sess)
			return
		}
		// Grouping may have changed without a rescan
		sess.push(s.fold())
	case protocol.ToggleGroup:
		groups, err := s.toggle(m.Key)
		if err != nil {
			sess.pushError(err)
			return
		}
		sess.push(groups)
	case protocol.CopyToClipboard:
		if _, err := s.ctrl.Copy(m.Context.ImageURI, m.Context.Target); err != nil {
			sess.pushError(err)
		}
	case protocol.OpenImageFile:
		if err := s.ctrl.OpenImage(m.Context.ImageURI); err != nil {
			sess.pushError(err)
		}
	case protocol.RevealImage:
		if err := s.ctrl.RevealImage(m.Context.ImageURI); err != nil {
			sess.pushError(err)
		}
	}
}

func (s *Server) scanAndPush(ctx context.Context, sess *session) {
	if _, err := s.ctrl.Scan(ctx); err != nil {
		sess.pushError(err)
		return
	}
	s.files.Retain(s.ctrl.Collection())
	sess.push(protocol.PostImageData{Collection: s.ctrl.Display()})
	sess.push(s.fold())
}

func (s *Server) logf(format string, args ...any) {
	logging.Server.Printf(format, args...)
}
