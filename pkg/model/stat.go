package model

import (
	"time"
)

type ProcessStats struct {
	Operation  string        `json:"operation"`
	Engine     string        `json:"engine"`
	InputSize  int64         `json:"input_size"`
	OutputSize int64         `json:"output_size"`
	ToolTime   time.Duration `json:"tool_time"`
	Total      time.Duration `json:"total"`
}
