package rates

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// RateNode is one refresh-rate timing node found in the workspace.
type RateNode struct {
	Node  string `json:"node"`
	FPS   int    `json:"fps"`
	Clock Clock  `json:"clock"`
	File  string `json:"file"`
}

// Clock is the node's pixel clock as reported by the scan. The helper may
// report it as a number or a string, so the JSON value is kept as is.
type Clock struct {
	raw json.RawMessage
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Clock) UnmarshalJSON(data []byte) error {
	c.raw = append(c.raw[:0], data...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Clock) MarshalJSON() ([]byte, error) {
	if len(c.raw) == 0 {
		return []byte("null"), nil
	}
	return c.raw, nil
}

func (c Clock) String() string {
	if len(c.raw) == 0 || bytes.Equal(c.raw, []byte("null")) {
		return ""
	}
	if s, err := strconv.Unquote(string(c.raw)); err == nil {
		return s
	}
	return string(c.raw)
}

// scannedNode mirrors the helper's JSON, which may quote numbers.
type scannedNode struct {
	Node  string      `json:"node"`
	FPS   json.Number `json:"fps"`
	Clock Clock       `json:"clock"`
	File  string      `json:"file"`
}

func (n scannedNode) toRateNode() RateNode {
	// the decoder already rejected non-numeric values
	fps, _ := n.FPS.Float64()
	return RateNode{Node: n.Node, FPS: int(math.Round(fps)), Clock: n.Clock, File: n.File}
}
