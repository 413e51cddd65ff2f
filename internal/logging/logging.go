package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init routes the standard logger to stdout when debug is set and to logPath
// when it is not empty. With neither, log output is discarded so the text
// report stays clean.
func Init(logPath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	if debug {
		writers = append(writers, os.Stdout)
	}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	if len(writers) == 0 {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogStage records one pipeline step, e.g.
// "[FILTER] subject=Black@4 payload={"kept":98,"outliers":2}".
func LogStage(stage, subject string, payload any) {
	msg := buildStageMessage(stage, subject, payload)
	log.Println(msg)
}

func buildStageMessage(stage, subject string, payload any) string {
	name := strings.ToUpper(strings.TrimSpace(stage))
	if name == "" {
		name = "STAGE"
	}
	subjectValue := strings.TrimSpace(subject)
	if subjectValue == "" {
		subjectValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", name)}
	parts = append(parts, fmt.Sprintf("subject=%s", subjectValue))
	if payload != nil {
		parts = append(parts, fmt.Sprintf("payload=%s", formatPayload(payload)))
	}
	return strings.Join(parts, " ")
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
