package http

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"

	"croprec/recommend"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Handlers serves the page, the form fallback, the websocket session and
// the health probe over one shared Service.
type Handlers struct {
	service  *recommend.Service
	logger   *zap.Logger
	page     *template.Template
	static   http.Handler
	upgrader websocket.Upgrader
}

func NewHandlers(service *recommend.Service, logger *zap.Logger) (*Handlers, error) {
	if service == nil {
		return nil, fmt.Errorf("service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	assets, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	return &Handlers{
		service: service,
		logger:  logger,
		page:    page,
		static:  http.StripPrefix("/static/", http.FileServer(http.FS(assets))),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}, nil
}

func RegisterHandlers(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /predict", h.handlePredict)
	mux.HandleFunc("GET /ws", h.handleWebSocket)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.Handle("GET /static/", h.static)
}

type healthResponse struct {
	Status     string   `json:"status"`
	Classifier string   `json:"classifier"`
	ModelPath  string   `json:"model_path,omitempty"`
	Classes    []string `json:"classes,omitempty"`
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(healthResponse{
		Status:     "ok",
		Classifier: h.service.Status().String(),
		ModelPath:  h.service.ModelPath(),
		Classes:    h.service.Classes(),
	})
}

// handleIndex renders the page; query parameters seed the controls.
func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	session := recommend.NewSession(h.service)
	applyForm(session, r.URL.Query())
	h.render(w, http.StatusOK, session.View())
}

// handlePredict is the no-script path: the sidebar form posts here.
func (h *Handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	session := recommend.NewSession(h.service)
	applyForm(session, r.PostForm)

	if !h.service.Ready() {
		h.render(w, http.StatusConflict, session.View())
		return
	}
	h.render(w, http.StatusOK, session.Handle(recommend.SubmitEvent()))
}

// applyForm feeds every parseable field in values to the session. Fields
// that are missing or not numbers keep their current value.
func applyForm(session *recommend.Session, values url.Values) {
	for _, spec := range recommend.Fields() {
		text := values.Get(spec.Key)
		if text == "" {
			continue
		}
		v, err := spec.Parse(text)
		if err != nil {
			continue
		}
		session.Handle(recommend.Input(spec.ID, v))
	}
}

func (h *Handlers) render(w http.ResponseWriter, status int, view recommend.View) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.page.Execute(w, view); err != nil {
		h.logger.Error("render page", zap.Error(err))
	}
}
