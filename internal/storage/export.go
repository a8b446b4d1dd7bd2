package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/chromafill/internal/fill"
)

type ExportData struct {
	Run         RunMetadata      `json:"run"`
	Assignments []ExportedAssign `json:"assignments"`
}

type ExportedAssign struct {
	Step  int    `json:"step"`
	Index int    `json:"index"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Depth int    `json:"depth"`
	Color string `json:"color"`
	Hex   string `json:"hex"`
}

// ExportJSON writes a run and its assignments as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, assignments []fill.Assignment) error {
	data := ExportData{
		Run:         *meta,
		Assignments: make([]ExportedAssign, len(assignments)),
	}

	for i, a := range assignments {
		row, col := 0, 0
		if meta.Cols > 0 {
			row, col = a.Index/meta.Cols, a.Index%meta.Cols
		}
		data.Assignments[i] = ExportedAssign{
			Step:  a.Step,
			Index: a.Index,
			Row:   row,
			Col:   col,
			Depth: a.Depth,
			Color: a.Color.String(),
			Hex:   a.Color.Hex(),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
