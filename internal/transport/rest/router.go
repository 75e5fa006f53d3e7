package rest

import (
	"net/http"

	"github.com/wilsonritt/snmp-monitor/internal/config"
	"github.com/wilsonritt/snmp-monitor/internal/transport/rest/middleware"
	"github.com/wilsonritt/snmp-monitor/internal/transport/websocket"
)

type RouterDeps struct {
	WS      *websocket.Handler
	Monitor *MonitorHandler
	Auth    *AuthHandler
	User    *UserHandler
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.CORS(cfg))

	userStack := middleware.New()
	userStack.Use(middleware.JWT(cfg))

	// HEALTH
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// WEBSOCKET
	mux.HandleFunc("GET /ws", deps.WS.Serve)

	// AUTH
	mux.HandleFunc("POST /auth/register", deps.Auth.Register)
	mux.HandleFunc("POST /auth/login", deps.Auth.Login)
	mux.Handle("POST /auth/logout", userStack.ThenFunc(deps.Auth.Logout))

	// INTERFACE DISCOVERY
	mux.Handle("POST /interfaces/discover", userStack.ThenFunc(deps.Monitor.Discover))

	// MONITORING SESSIONS
	mux.Handle("GET /sessions", userStack.ThenFunc(deps.Monitor.Index))
	mux.Handle("POST /sessions", userStack.ThenFunc(deps.Monitor.Store))
	mux.Handle("GET /sessions/{id}", userStack.ThenFunc(deps.Monitor.Show))
	mux.Handle("POST /sessions/{id}/stop", userStack.ThenFunc(deps.Monitor.Stop))
	mux.Handle("DELETE /sessions/{id}", userStack.ThenFunc(deps.Monitor.Destroy))
	mux.Handle("GET /sessions/{id}/samples", userStack.ThenFunc(deps.Monitor.Samples))
	mux.Handle("GET /sessions/{id}/latest", userStack.ThenFunc(deps.Monitor.Latest))
	mux.Handle("GET /sessions/{id}/export", userStack.ThenFunc(deps.Monitor.Export))

	// USERS
	mux.Handle("GET /users", userStack.ThenFunc(deps.User.Index))
	mux.Handle("POST /users", userStack.ThenFunc(deps.User.Store))
	mux.Handle("PUT /users/{id}", userStack.ThenFunc(deps.User.Update))
	mux.Handle("DELETE /users/{id}", userStack.ThenFunc(deps.User.Destroy))

	return globalMw.Apply(mux)
}
