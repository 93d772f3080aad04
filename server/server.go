// Package server exposes conversion over HTTP: a multipart upload in, the
// flattened table back as an attachment.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	cfg "github.com/NovantaCreativeTeam/pracsi-script/config"
	"github.com/NovantaCreativeTeam/pracsi-script/orchestrator"
	"github.com/NovantaCreativeTeam/pracsi-script/table"
	"github.com/NovantaCreativeTeam/pracsi-script/transcript"
)

const usage = `pracsi conversion server

POST /upload   multipart form, field "file": an ELAN .eaf document
               optional query ?format=csv|json|sqlite
               returns the flattened transcript as an attachment
`

type Server struct {
	cfg  *cfg.Root
	pipe *orchestrator.Pipeline
	log  logrus.FieldLogger
}

func New(c *cfg.Root, p *orchestrator.Pipeline, log logrus.FieldLogger) *Server {
	return &Server{cfg: c, pipe: p, log: log}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.home)
	mux.HandleFunc("/upload", s.upload)
	return mux
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("conversion server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, usage)
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := ulid.Make().String()
	w.Header().Set("X-Request-ID", id)
	log := s.log.WithField("request_id", id)

	var format table.Format
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := table.ParseFormat(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = f
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	file, hdr, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()
	if hdr.Filename == "" {
		http.Error(w, "no file selected", http.StatusBadRequest)
		return
	}
	name := filepath.Base(hdr.Filename)

	saved, err := s.save(id, file)
	if err != nil {
		log.WithError(err).Error("saving upload failed")
		http.Error(w, "could not store upload", http.StatusInternalServerError)
		return
	}
	defer os.Remove(saved)

	outDir, err := os.MkdirTemp("", "pracsi-"+id+"-")
	if err != nil {
		log.WithError(err).Error("creating output dir failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(outDir)

	in, err := os.Open(saved)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer in.Close()

	res, err := s.pipe.ConvertReader(r.Context(), in, orchestrator.Request{
		Source: name,
		Output: outDir,
		Format: format,
	})
	if err != nil {
		code := statusFor(err)
		log.WithError(err).WithField("file", name).Warn("conversion failed")
		http.Error(w, err.Error(), code)
		return
	}

	out, err := os.Open(res.Output)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer out.Close()

	download := strings.TrimSuffix(name, filepath.Ext(name)) + res.Format.Extension()
	w.Header().Set("Content-Type", res.Format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download))
	if _, err := io.Copy(w, out); err != nil {
		log.WithError(err).Warn("sending table failed")
	}
}

// save stores the upload under paths.uploads with a ULID name.
func (s *Server) save(id string, src io.Reader) (string, error) {
	if err := os.MkdirAll(s.cfg.Paths.Uploads, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.cfg.Paths.Uploads, id+".eaf")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	return path, f.Close()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, transcript.ErrMalformedTimeline):
		return http.StatusUnprocessableEntity
	case errors.Is(err, orchestrator.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}
