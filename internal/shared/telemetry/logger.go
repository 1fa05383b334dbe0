package telemetry

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// Info logs a structured JSON line at info level.
func Info(msg string, fields map[string]any) {
	logLine("info", msg, fields)
}

// Error logs a structured JSON line at error level.
func Error(msg string, fields map[string]any) {
	logLine("error", msg, fields)
}

func logLine(level, msg string, fields map[string]any) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"msg":   msg,
	}
	for k, v := range fields {
		if _, exists := entry[k]; !exists {
			entry[k] = v
		}
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		log.Printf("telemetry marshal failed level=%s msg=%s err=%v", level, msg, err)
		return
	}
	payload = append(payload, '\n')
	_, _ = os.Stdout.Write(payload)
}
