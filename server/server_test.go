package server

import (
	"context"
	"testing"
	"time"

	"github.com/KenichiNogami/ricePriceSurvey/common"
)

func TestNew_AppliesDefaults(t *testing.T) {
	srv := New(common.Server{Addr: ":9999"}, &MockSurveyor{})

	if srv.addr != ":9999" {
		t.Errorf("Expected addr :9999, got %s", srv.addr)
	}
	if srv.maxBodyBytes != 1<<20 {
		t.Errorf("Expected default max body bytes, got %d", srv.maxBodyBytes)
	}
	if srv.shutdownTimeout != 10*time.Second {
		t.Errorf("Expected default shutdown timeout, got %s", srv.shutdownTimeout)
	}
}

func TestRun_StopsWhenContextIsCanceled(t *testing.T) {
	settings := common.WithDefaultSettings().Server
	settings.Addr = "127.0.0.1:0"
	srv := New(settings, &MockSurveyor{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Expected Run to return after cancel")
	}
}

func TestRun_ReturnsListenError(t *testing.T) {
	settings := common.WithDefaultSettings().Server
	settings.Addr = "256.0.0.1:bad"
	srv := New(settings, &MockSurveyor{})

	if err := srv.Run(context.Background()); err == nil {
		t.Error("Expected an error for an invalid listen address")
	}
}
