// Package logging writes one JSON object per line, the format every
// component of the service uses for startup, migration, and runtime events.
package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

var (
	mu       sync.Mutex
	out      io.Writer = os.Stdout
	location           = time.UTC
)

// SetLocation sets the timezone used for the "ts" field.
func SetLocation(loc *time.Location) {
	if loc == nil {
		return
	}
	mu.Lock()
	location = loc
	mu.Unlock()
}

// SetOutput redirects log lines, mainly for tests. It returns a func that restores the previous writer.
func SetOutput(w io.Writer) func() {
	mu.Lock()
	prev := out
	out = w
	mu.Unlock()
	return func() {
		mu.Lock()
		out = prev
		mu.Unlock()
	}
}

// Location returns the configured timezone.
func Location() *time.Location {
	mu.Lock()
	defer mu.Unlock()
	return location
}

// Info logs an informational event.
func Info(component, event string, fields map[string]any) {
	write("info", component, event, fields)
}

// Error logs a failed event. err is rendered under the "error" key.
func Error(component, event string, err error, fields map[string]any) {
	merged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	if err != nil {
		merged["error"] = err.Error()
	}
	write("error", component, event, merged)
}

// JSON logs a pre-built entry, adding "ts" when absent.
func JSON(entry map[string]any) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := entry["ts"]; !ok {
		entry["ts"] = time.Now().In(location).Format(time.RFC3339)
	}
	b, err := json.Marshal(entry)
	if err != nil {
		log.Printf("log marshal: %v", err)
		return
	}
	_, _ = out.Write(append(b, '\n'))
}

func write(level, component, event string, fields map[string]any) {
	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	entry["level"] = level
	entry["component"] = component
	entry["event"] = event
	JSON(entry)
}
