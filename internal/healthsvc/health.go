package healthsvc

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultHealthyAfter is how long /slowhealthy reports sick after startup.
const DefaultHealthyAfter = 60 * time.Second

// SlowHealth returns the status code and message /slowhealthy reports after
// elapsed time since startup. The result depends on nothing else.
func SlowHealth(elapsed, healthyAfter time.Duration) (int, string) {
	if elapsed < healthyAfter {
		return http.StatusBadRequest, fmt.Sprintf(
			"sick: started %v ago, healthy after %v",
			elapsed.Round(time.Second), healthyAfter,
		)
	}
	return http.StatusOK, fmt.Sprintf(
		"healthy: started %v ago, healthy after %v",
		elapsed.Round(time.Second), healthyAfter,
	)
}
