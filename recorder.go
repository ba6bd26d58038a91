package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"chronicle-globe/internal/debuglog"
)

// AsciinemaRecorder writes frames as an asciinema v2 cast.
type AsciinemaRecorder struct {
	enabled   bool
	file      *os.File
	startTime time.Time
	now       func() time.Time
	width     int
	height    int
}

func NewAsciinemaRecorder(path string, width, height int) (*AsciinemaRecorder, error) {
	if path == "" {
		return &AsciinemaRecorder{}, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cannot create recording '%s': %w", path, err)
	}

	recorder := &AsciinemaRecorder{
		enabled:   true,
		file:      file,
		startTime: time.Now(),
		now:       time.Now,
		width:     width,
		height:    height,
	}

	header := map[string]interface{}{
		"version":   2,
		"width":     width,
		"height":    height,
		"timestamp": recorder.startTime.Unix(),
		"env": map[string]string{
			"TERM":  "xterm-256color",
			"SHELL": "/bin/bash",
		},
	}
	if err := recorder.writeJSON(header); err != nil {
		file.Close()
		return nil, err
	}
	return recorder, nil
}

func (ar *AsciinemaRecorder) Enabled() bool { return ar != nil && ar.enabled }

// RecordFrame appends one full-screen frame, homing the cursor first.
func (ar *AsciinemaRecorder) RecordFrame(rows []string) {
	if !ar.Enabled() {
		return
	}
	var sb strings.Builder
	sb.WriteString("\x1b[H")
	sb.WriteString(strings.Join(rows, "\r\n"))

	elapsed := ar.now().Sub(ar.startTime).Seconds()
	if err := ar.writeJSON([]interface{}{elapsed, "o", sb.String()}); err != nil {
		debuglog.Printf("Recorder: write failed, stopping: %v", err)
		ar.Close()
	}
}

func (ar *AsciinemaRecorder) writeJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = ar.file.Write(append(data, '\n'))
	return err
}

func (ar *AsciinemaRecorder) Close() {
	if ar.Enabled() && ar.file != nil {
		ar.file.Close()
	}
	if ar != nil {
		ar.enabled = false
	}
}
