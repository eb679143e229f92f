// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"io"
	"time"
)

// Level controls how much operational data is emitted.
type Level int

const (
	LevelOff     Level = 0
	LevelMetrics Level = 1
	LevelDebug   Level = 2
)

// Observer emits structured operation records for the screening pipeline.
// Records are JSON lines on the configured writer; nothing is emitted below
// debug level so normal runs stay quiet. A nil *Observer is valid and silent.
type Observer struct {
	level  Level
	writer io.Writer
}

// NewObserver creates an observer at the given level writing to w.
func NewObserver(level Level, w io.Writer) *Observer {
	return &Observer{level: level, writer: w}
}

// OperationData is the record emitted for one pipeline operation.
type OperationData struct {
	Component  string         `json:"component"`
	Operation  string         `json:"operation"`
	Target     string         `json:"target,omitempty"`
	FilePath   string         `json:"file_path,omitempty"`
	DurationMs int64          `json:"duration_ms,omitempty"`
	Success    bool           `json:"success"`
	Error      string         `json:"error,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// StartTiming returns a completion function that logs the operation with its
// elapsed duration.
func (o *Observer) StartTiming(component, operation string) func(success bool, metadata map[string]any) {
	start := time.Now()
	return func(success bool, metadata map[string]any) {
		o.Log(OperationData{
			Component:  component,
			Operation:  operation,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// Log emits one operation record when the observer is at debug level.
func (o *Observer) Log(data OperationData) {
	if o == nil || o.level < LevelDebug || o.writer == nil {
		return
	}
	_ = json.NewEncoder(o.writer).Encode(data)
}
