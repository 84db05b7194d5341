package utils

import (
	"math"
	"time"
)

// fpsWindow is the number of recent frames kept for the FPS summary.
const fpsWindow = 100

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	ChangedCells         int

	frames []float64
}

// FPS summarizes the frame rate over the recent window.
type FPS struct {
	Latest, Mean, Min, Max float64
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

func (s *Stats) Update(generation int, population int, changed int, duration time.Duration) {
	s.TotalGenerations = generation
	s.ChangedCells = changed
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
		s.frames = append(s.frames, s.GenerationsPerSecond)
		if len(s.frames) > fpsWindow {
			s.frames = s.frames[1:]
		}
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// FPS returns latest, mean, min and max over the last 100 frames.
func (s *Stats) FPS() FPS {
	if len(s.frames) == 0 {
		return FPS{}
	}

	fps := FPS{
		Latest: s.frames[len(s.frames)-1],
		Min:    math.Inf(1),
		Max:    math.Inf(-1),
	}
	sum := 0.0
	for _, f := range s.frames {
		sum += f
		fps.Min = math.Min(fps.Min, f)
		fps.Max = math.Max(fps.Max, f)
	}
	fps.Mean = sum / float64(len(s.frames))
	return fps
}
