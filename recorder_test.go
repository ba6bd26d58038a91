package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecorderDisabled(t *testing.T) {
	r, err := NewAsciinemaRecorder("", 80, 24)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if r.Enabled() {
		t.Error("Recorder without a path should be disabled")
	}
	r.RecordFrame([]string{"ignored"})
	r.Close()

	var nilRecorder *AsciinemaRecorder
	if nilRecorder.Enabled() {
		t.Error("nil recorder should be disabled")
	}
	nilRecorder.Close()
}

func TestRecorderWritesCast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.cast")
	r, err := NewAsciinemaRecorder(path, 80, 24)
	if err != nil {
		t.Fatalf("NewAsciinemaRecorder failed: %v", err)
	}
	r.now = func() time.Time { return r.startTime.Add(1500 * time.Millisecond) }
	r.RecordFrame([]string{"ab", "cd"})
	r.Close()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)

	if !sc.Scan() {
		t.Fatal("Missing header line")
	}
	var header struct {
		Version int `json:"version"`
		Width   int `json:"width"`
		Height  int `json:"height"`
	}
	if err := json.Unmarshal(sc.Bytes(), &header); err != nil {
		t.Fatalf("Bad header: %v", err)
	}
	if header.Version != 2 || header.Width != 80 || header.Height != 24 {
		t.Errorf("Unexpected header %+v", header)
	}

	if !sc.Scan() {
		t.Fatal("Missing frame line")
	}
	var event []interface{}
	if err := json.Unmarshal(sc.Bytes(), &event); err != nil {
		t.Fatalf("Bad event: %v", err)
	}
	if len(event) != 3 || event[0].(float64) != 1.5 || event[1] != "o" || event[2] != "\x1b[Hab\r\ncd" {
		t.Errorf("Unexpected event %v", event)
	}
}

func TestRecorderBadPath(t *testing.T) {
	if _, err := NewAsciinemaRecorder(filepath.Join(t.TempDir(), "missing", "x.cast"), 80, 24); err == nil {
		t.Error("Expected error for unwritable path")
	}
}
