package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/persons/internal/core"
)

// fakeServer behaves like http.Server: Start returns ErrServerClosed as soon
// as Shutdown begins, while Shutdown itself blocks until release is closed.
type fakeServer struct {
	closing  chan struct{}
	release  chan struct{}
	startErr error
	shutdown atomic.Int32
	finished atomic.Bool
}

func newFakeServer() *fakeServer {
	return &fakeServer{closing: make(chan struct{}), release: make(chan struct{})}
}

func (f *fakeServer) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.closing
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.shutdown.Add(1)
	close(f.closing)
	select {
	case <-f.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	f.finished.Store(true)
	return nil
}

func startServe(srv runner, imports *core.ImportLimiter) (chan<- os.Signal, <-chan error) {
	stop := make(chan os.Signal, 1)
	returned := make(chan error, 1)
	go func() { returned <- serve(srv, imports, 5*time.Second, stop) }()
	return stop, returned
}

func TestServe_WaitsForShutdownToFinish(t *testing.T) {
	srv := newFakeServer()
	stop, returned := startServe(srv, nil)

	stop <- syscall.SIGTERM
	<-srv.closing

	select {
	case <-returned:
		t.Fatal("serve returned while the server was still draining")
	case <-time.After(50 * time.Millisecond):
	}

	close(srv.release)
	require.NoError(t, <-returned)
	assert.True(t, srv.finished.Load())
	assert.Equal(t, int32(1), srv.shutdown.Load())
}

func TestServe_WaitsForImportsBeforeShutdown(t *testing.T) {
	imports := core.NewImportLimiter(1, time.Second)
	require.NoError(t, imports.Acquire(context.Background()))

	srv := newFakeServer()
	close(srv.release)
	stop, returned := startServe(srv, imports)

	stop <- syscall.SIGINT
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), srv.shutdown.Load(), "shutdown began with an import running")

	imports.Release()
	require.NoError(t, <-returned)
	assert.Equal(t, int32(1), srv.shutdown.Load())
}

func TestServe_StartFailure(t *testing.T) {
	srv := newFakeServer()
	srv.startErr = errors.New("listen tcp :8080: address already in use")

	_, returned := startServe(srv, nil)

	err := <-returned
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address already in use")
	assert.Equal(t, int32(0), srv.shutdown.Load())
}
