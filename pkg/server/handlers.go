package server

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/vango-dev/mdx"
	"github.com/vango-dev/mdx/pkg/render"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	paths, err := s.docs.list()
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list documents failed", "error", err)
		http.Error(w, "failed to list documents", http.StatusInternalServerError)
		return
	}

	var body strings.Builder
	body.WriteString("<h1>Documents</h1>\n")
	if len(paths) == 0 {
		body.WriteString("<p>No documents found.</p>\n")
	} else {
		body.WriteString("<ul>\n")
		for _, p := range paths {
			fmt.Fprintf(&body, "<li><a href=\"/%s\">%s</a></li>\n", render.EscapeAttr(p), render.EscapeText(p))
		}
		body.WriteString("</ul>\n")
	}
	s.writePage(w, r, http.StatusOK, "Documents", body.String())
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	source, err := s.docs.read(r.URL.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		s.logger.ErrorContext(r.Context(), "read document failed", "path", r.URL.Path, "error", err)
		http.Error(w, "failed to read document", http.StatusInternalServerError)
		return
	}

	start := time.Now()
	doc, err := s.engine.RenderDocument(r.Context(), source, s.handler)
	stage := mdx.Stage(err)
	if s.config.Metrics != nil {
		outcome := stage
		if err != nil && outcome == "" {
			outcome = "error"
		}
		s.config.Metrics.ObserveDocument(outcome, time.Since(start))
	}
	if err != nil {
		status := http.StatusInternalServerError
		if stage == mdx.StageCompile || stage == mdx.StageParse {
			status = http.StatusUnprocessableEntity
		}
		s.logger.ErrorContext(r.Context(), "render document failed",
			"path", r.URL.Path,
			"stage", stage,
			"error", err,
		)
		body := "<h1>Render failed</h1>\n<pre>" + render.EscapeText(err.Error()) + "</pre>\n"
		s.writePage(w, r, status, "Render failed", body)
		return
	}

	title, _ := doc.Frontmatter.String("title")
	if title == "" {
		title = strings.TrimSuffix(path.Base(r.URL.Path), ".md")
	}
	s.writePage(w, r, http.StatusOK, title, doc.HTML)
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, title, body string) {
	var buf bytes.Buffer
	err := render.RenderPage(&buf, render.PageData{
		Body:        body,
		Title:       title,
		Lang:        s.config.Lang,
		StyleSheets: s.config.StyleSheets,
		Styles:      s.config.Styles,
	})
	if err != nil {
		s.logger.ErrorContext(r.Context(), "write page failed", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
