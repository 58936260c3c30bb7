// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogOperation_DebugWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityDebug, &buf)

	o.LogOperation(StandardObservabilityData{
		Component: "classifier",
		Operation: "compare_documents",
		Target:    "a.pdf",
		Success:   true,
	})

	var data StandardObservabilityData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("debug output is not JSON: %v", err)
	}
	if data.Component != "classifier" || data.Operation != "compare_documents" {
		t.Errorf("unexpected payload %+v", data)
	}
	if !strings.HasPrefix(data.RequestID, "req-") {
		t.Errorf("request id should be stamped, got %q", data.RequestID)
	}
}

func TestLogOperation_OffWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityOff, &buf)
	o.LogOperation(StandardObservabilityData{Component: "extractor"})
	if buf.Len() != 0 {
		t.Errorf("off level must not write, got %q", buf.String())
	}
}

func TestLogOperation_NilObserverSafe(t *testing.T) {
	var o *StandardObserver
	o.LogOperation(StandardObservabilityData{Component: "extractor"})
	done := o.StartTiming("extractor", "extract_codes", "a.pdf")
	done(true, nil)
}

func TestStartTiming_RecordsDuration(t *testing.T) {
	var buf bytes.Buffer
	o := NewStandardObserver(ObservabilityDebug, &buf)

	done := o.StartTiming("variant_generator", "generate", "88A")
	done(true, map[string]interface{}{"variants": 4})

	var data StandardObservabilityData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("timing output is not JSON: %v", err)
	}
	if data.Operation != "generate" || !data.Success {
		t.Errorf("unexpected payload %+v", data)
	}
}
