package hygiene

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// genericErrorDetails hide internal failures behind interchangeable phrasing
// so repeated probing cannot map errors to code paths.
var genericErrorDetails = []string{
	"Something went wrong",
	"Unable to process",
	"Please try again",
	"Request failed",
	"Service temporarily unavailable",
}

// GenericErrorDetail picks one of the interchangeable 500 details.
func GenericErrorDetail() string {
	return genericErrorDetails[rand.Intn(len(genericErrorDetails))]
}

// ResponseJitter returns a small random pause (50-150ms) added to responses
// so timing cannot fingerprint the processing path.
func ResponseJitter() time.Duration {
	return 50*time.Millisecond + time.Duration(rand.Float64()*float64(100*time.Millisecond))
}

// ScrubHeaders returns the only headers an outbound response may carry.
// Everything the framework would add beyond these gets dropped.
func ScrubHeaders() map[string]string {
	return map[string]string{
		"Content-Type":           "application/json",
		"X-Request-Id":           uuid.NewString(),
		"Cache-Control":          "no-store",
		"X-Content-Type-Options": "nosniff",
	}
}
