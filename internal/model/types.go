// Package model defines shared data structures.
package model

// Frontend names accepted by Config.Frontend.
const (
	FrontendLoop = "loop"
	FrontendTea  = "tea"
)

// Config defines practice settings after flags and the config file are merged.
type Config struct {
	Text     string
	File     string
	Lang     string
	Words    int
	CapsPct  float64
	PunctPct float64
	PunctSet string
	Frontend string
}

// LogConfig defines where diagnostics go.
type LogConfig struct {
	File  string
	Level string
}
