package app

import (
	"testing"

	"github.com/riskibarqy/match-forecast/internal/config"
	"github.com/riskibarqy/match-forecast/internal/platform/logging"
)

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	if _, err := NewHTTPServer(config.Config{}, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty HTTPAddr")
	}
}

func TestNewHTTPServer(t *testing.T) {
	srv, err := NewHTTPServer(config.Config{HTTPAddr: ":0", CORSAllowedOrigins: []string{"*"}}, logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	if srv.Handler == nil {
		t.Fatalf("expected router to be set")
	}
}

func TestNewServices_WiresEveryLayer(t *testing.T) {
	services := NewServices(config.Config{FootballAPIKey: "key"}, nil, nil)
	if services.Provider == nil || services.Forms == nil || services.Features == nil || services.Predictions == nil {
		t.Fatalf("expected every service to be wired: %+v", services)
	}
}
