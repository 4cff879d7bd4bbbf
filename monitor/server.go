package monitor

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/launchdarkly/assert-harness/framework"
)

// Start serves handler on the given port in a new goroutine. The port is bound before Start
// returns, so requests can be made right away. The returned server can be shut down with Close.
func Start(port int, handler http.Handler, debugLogger framework.Logger) (*http.Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("monitor server failed to start: %w", err)
	}
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // arbitrary but non-infinite timeout to avoid Slowloris Attack
	}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			debugLogger.Printf("monitor server stopped: %s", err)
		}
	}()
	return server, nil
}
