package helpers

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// WaitForServer polls addr's /health endpoint until it answers 200, for up
// to five seconds.
func WaitForServer(addr string) error {
	url := strings.TrimRight(addr, "/") + "/health"
	for i := 0; i < 50; i++ {
		resp, err := http.Get(url)
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server at %s did not become healthy", addr)
}
