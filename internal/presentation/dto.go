// Package presentation formats command output.
package presentation

import (
	"github.com/zjrosen/inkwell/internal/document"
	"github.com/zjrosen/inkwell/internal/editor"
)

// CountsDTO is the word, character and line counts of some text.
type CountsDTO struct {
	Words          int `json:"words"`
	Chars          int `json:"chars"`
	Lines          int `json:"lines"`
	ReadingMinutes int `json:"reading_minutes"`
}

// FileStatsDTO is the counts for one file.
type FileStatsDTO struct {
	Path string `json:"path"`
	CountsDTO
}

// ReportDTO is a stats report for output.
type ReportDTO struct {
	Files []FileStatsDTO `json:"files"`
	Total CountsDTO      `json:"total"`
}

// FromStats converts editor counts to a DTO.
func FromStats(s editor.Stats) CountsDTO {
	return CountsDTO{
		Words:          s.Words,
		Chars:          s.Chars,
		Lines:          s.Lines,
		ReadingMinutes: s.ReadingMinutes(),
	}
}

// FromReport converts a document report to a DTO. Files is never nil.
func FromReport(rep document.Report) ReportDTO {
	files := make([]FileStatsDTO, len(rep.Files))
	for i, f := range rep.Files {
		files[i] = FileStatsDTO{Path: f.Path, CountsDTO: FromStats(f.Stats)}
	}
	return ReportDTO{Files: files, Total: FromStats(rep.Total)}
}
