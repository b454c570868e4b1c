package serverapp

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yulcat/help-rota/internal/config"
	"github.com/yulcat/help-rota/internal/helper"
	"github.com/yulcat/help-rota/internal/httpmw"
	"github.com/yulcat/help-rota/internal/pin"
	"github.com/yulcat/help-rota/internal/realtime"
	"github.com/yulcat/help-rota/internal/store"
	"github.com/yulcat/help-rota/internal/task"
	"github.com/yulcat/help-rota/internal/visit"
	staticfiles "github.com/yulcat/help-rota/static"
)

type Options struct {
	Config        *config.Config
	DataDir       string
	StaticDir     string
	UseDiskStatic bool
	Logger        zerolog.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = opts.Config.DataDir
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = opts.Config.StaticDir
	}

	mux := http.NewServeMux()

	st, err := store.New(opts.DataDir, opts.Logger)
	if err != nil {
		return nil, err
	}

	hub := realtime.NewHub(opts.Logger)

	taskRepo := task.NewFileRepo(st, hub)
	visitRepo := visit.NewFileRepo(st, hub)
	helperRepo := helper.NewFileRepo(st, hub)
	gate := pin.NewGate(st, opts.Config.DefaultPIN)

	// New subscribers receive the current snapshot of every collection
	// before any live frames.
	hub.AddSource(task.Channel, func() any { return taskRepo.List() })
	hub.AddSource(visit.Channel, func() any { return visitRepo.List() })
	hub.AddSource(helper.Channel, func() any { return helperRepo.List() })

	taskHandler := task.NewHandler(taskRepo)
	mux.HandleFunc("/api/tasks", taskHandler.Root)
	mux.HandleFunc("/api/tasks/", taskHandler.Sub)

	visitHandler := visit.NewHandler(visitRepo)
	mux.HandleFunc("/api/visits", visitHandler.Root)
	mux.HandleFunc("/api/visits/", visitHandler.Sub)

	helperHandler := helper.NewHandler(helperRepo)
	mux.HandleFunc("/api/helpers", helperHandler.Root)

	pinHandler := pin.NewHandler(gate)
	mux.HandleFunc("/api/pin/verify", pinHandler.Verify)
	mux.HandleFunc("/api/pin", pinHandler.Set)

	mux.Handle("/ws", hub)

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		r.URL.Path = "/index.html"
		staticHandler.ServeHTTP(w, r)
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "help-rota",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":          true,
			"service":     "help-rota",
			"subscribers": hub.ClientCount(),
			"time":        time.Now().UTC().Format(time.RFC3339),
		})
	})

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("HELPROTA_DEV_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
