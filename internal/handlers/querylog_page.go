package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"docqa/internal/storage"
)

// QueryLogPageHandler serves logged queries as rendered HTML review pages.
// Generated answers are markdown, so the page renders them the same way a
// chat client would.
type QueryLogPageHandler struct {
	queryLogs storage.QueryLogStore
	parser    goldmark.Markdown
	template  *template.Template
}

// queryPageData holds template data for rendered query review pages.
type queryPageData struct {
	ID             string
	Query          string
	Answer         template.HTML
	Status         string
	Confidence     string
	ProcessingTime string
	SourcesCount   int
	CreatedAt      string
	ErrorMsg       string
}

// NewQueryLogPageHandler creates a new handler for query review pages.
func NewQueryLogPageHandler(queryLogs storage.QueryLogStore) *QueryLogPageHandler {
	tmpl := template.Must(template.New("query").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Query {{.ID}}</title>
  <style>
    :root {
      color-scheme: dark;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.7;
      background: #050b18;
      color: #e4ecff;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid rgba(148, 163, 184, 0.2);
      padding-bottom: 1.5rem;
    }
    h1 {
      margin-top: 0;
      color: #fff;
      font-size: 1.5rem;
    }
    article {
      background: rgba(12, 19, 35, 0.85);
      border: 1px solid rgba(99, 102, 241, 0.2);
      border-radius: 16px;
      padding: 2rem;
      box-shadow: 0 15px 35px rgba(2, 6, 23, 0.8);
    }
    article h2, article h3, article h4 {
      color: #c7d2fe;
      margin-top: 1.5rem;
    }
    pre {
      background: #0f172a;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 10px;
      border: 1px solid rgba(99, 102, 241, 0.2);
    }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
      background: rgba(99, 102, 241, 0.18);
      padding: 2px 5px;
      border-radius: 6px;
      color: #cbd5ff;
    }
    .meta {
      color: #94a3b8;
      font-size: 0.9rem;
    }
    .meta span {
      margin-right: 1.5rem;
    }
    .error {
      color: #fca5a5;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Query}}</h1>
    <p class="meta">
      <span>status: {{.Status}}</span>
      <span>confidence: {{.Confidence}}</span>
      <span>time: {{.ProcessingTime}}s</span>
      <span>sources: {{.SourcesCount}}</span>
      <span>{{.CreatedAt}}</span>
    </p>
    {{if .ErrorMsg}}<p class="error">{{.ErrorMsg}}</p>{{end}}
  </header>
  <article>{{.Answer}}</article>
</body>
</html>`))

	return &QueryLogPageHandler{
		queryLogs: queryLogs,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
				extension.Strikethrough,
				extension.Linkify,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithHardWraps(),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP renders the requested query log entry as HTML.
func (h *QueryLogPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := getLogger(ctx)

	id := chi.URLParam(r, "id")
	record, err := h.queryLogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "query not found", http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "failed to load query log", "query_id", id, "error", err)
		http.Error(w, "failed to load query", http.StatusInternalServerError)
		return
	}

	htmlAnswer, err := h.renderMarkdown([]byte(record.ResponseText))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render answer markdown", "query_id", id, "error", err)
		http.Error(w, "failed to render query", http.StatusInternalServerError)
		return
	}

	pageData := queryPageData{
		ID:             record.ID,
		Query:          record.QueryText,
		Answer:         template.HTML(htmlAnswer),
		Status:         record.Status,
		Confidence:     fmt.Sprintf("%.2f", record.ConfidenceScore),
		ProcessingTime: fmt.Sprintf("%.2f", record.ProcessingTime),
		SourcesCount:   record.SourcesCount,
		CreatedAt:      record.CreatedAt.Format("2006-01-02 15:04:05"),
		ErrorMsg:       record.ErrorMsg,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute query template", "query_id", id, "error", err)
	}
}

func (h *QueryLogPageHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
