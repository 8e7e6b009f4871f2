package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const (
	logFileName   = "activity.jsonl"
	logFileMode   = 0o600
	maxLogEntries = 10000
)

type logEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	TaskID    string    `json:"task_id"`
	Detail    string    `json:"detail"`
}

// logMutation records a mutation in the activity log. Best effort:
// a mutation never fails because its log entry could not be written.
func logMutation(todoDir, action, taskID, detail string) {
	path := filepath.Join(todoDir, logFileName)
	_ = appendEntry(path, logEntry{
		Timestamp: time.Now(),
		Action:    action,
		TaskID:    taskID,
		Detail:    detail,
	})
	trimLog(path)
}

func appendEntry(path string, e logEntry) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // path inside the todo dir
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// trimLog drops the oldest entries once the log grows past
// maxLogEntries, keeping the file bounded.
func trimLog(path string) {
	data, err := os.ReadFile(path) //nolint:gosec // path inside the todo dir
	if err != nil {
		return
	}

	excess := bytes.Count(data, []byte{'\n'}) - maxLogEntries
	if excess <= 0 {
		return
	}

	// Skip past the first excess lines and rewrite the remainder.
	off := 0
	for i := 0; i < excess; i++ {
		nl := bytes.IndexByte(data[off:], '\n')
		if nl < 0 {
			return
		}
		off += nl + 1
	}
	_ = os.WriteFile(path, data[off:], logFileMode)
}
