package monitor

import "time"

type Status struct {
	Driver    string    `json:"driver"`
	Store     bool      `json:"store"`
	LastCheck time.Time `json:"last_check"`
}
