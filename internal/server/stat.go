package server

import (
	"github.com/dustin/go-humanize"

	"pdftools/pkg/model"
)

type humanizedProcessStats struct {
	model.ProcessStats
	InputSizeHuman  string `json:"input_size_human"`
	OutputSizeHuman string `json:"output_size_human"`
	ToolTimeHuman   string `json:"tool_time_human"`
	TotalHuman      string `json:"total_human"`
}

func toHumanizedProcessStats(stats model.ProcessStats) humanizedProcessStats {
	return humanizedProcessStats{
		ProcessStats:    stats,
		InputSizeHuman:  humanize.Bytes(uint64(stats.InputSize)),
		OutputSizeHuman: humanize.Bytes(uint64(stats.OutputSize)),
		ToolTimeHuman:   stats.ToolTime.String(),
		TotalHuman:      stats.Total.String(),
	}
}
