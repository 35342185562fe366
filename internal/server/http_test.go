package server_test

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/config"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/server"
)

func TestShutdownTimeoutComesFromConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := server.NewHTTPServer(gin.New(), config.Config{ShutdownTimeout: 2 * time.Second})
	require.Equal(t, 2*time.Second, srv.ShutdownTimeout)

	// An unset or nonsense value falls back to the default.
	srv = server.NewHTTPServer(gin.New(), config.Config{})
	require.Equal(t, 10*time.Second, srv.ShutdownTimeout)
}

func TestRunStopsWhenContextIsCancelled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := server.NewHTTPServer(gin.New(), config.Config{ShutdownTimeout: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}
