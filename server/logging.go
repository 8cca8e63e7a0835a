package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// ANSI colours for the DEV request log
const (
	red        = "\033[31m"
	green      = "\033[32m"
	yellow     = "\033[33m"
	blue       = "\033[34m"
	magenta    = "\033[35m"
	cyan       = "\033[36m"
	gray       = "\033[90m"
	resetColor = "\033[0m"
)

var methodColors = map[string]string{
	http.MethodGet:    green,
	http.MethodPost:   blue,
	http.MethodPut:    cyan,
	http.MethodDelete: yellow,
	http.MethodPatch:  magenta,
}

// statusRecorder remembers the status code written through it
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// LoggingMiddleware prints one coloured line per request in DEV
func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.env != "DEV" {
			next(w, r)
			return
		}
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next(rec, r)
		log.Printf("[%-19s] %s %s %s", coloredMethod(r.Method), r.URL.Path,
			coloredStatus(rec.status), time.Since(started).Round(time.Microsecond))
	}
}

func coloredMethod(method string) string {
	color, ok := methodColors[method]
	if !ok {
		color = gray
	}
	return color + fmt.Sprintf(" %-7s", method) + resetColor
}

func coloredStatus(status int) string {
	switch {
	case status == 0:
		return gray + "---" + resetColor
	case status >= http.StatusInternalServerError:
		return red + fmt.Sprint(status) + resetColor
	case status >= http.StatusBadRequest:
		return yellow + fmt.Sprint(status) + resetColor
	case status >= http.StatusMultipleChoices:
		return cyan + fmt.Sprint(status) + resetColor
	default:
		return green + fmt.Sprint(status) + resetColor
	}
}

func logRoute(method, path string) {
	log.Printf("[%-19s] %s", coloredMethod(method), path)
}

func logError(method, path, msg string) {
	log.Printf("[%-19s] %s %s", coloredMethod(method), path, red+msg+resetColor)
}
