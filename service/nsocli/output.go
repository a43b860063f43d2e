package nsocli

import "time"

// Output represents the result of a command run
type Output struct {
	Success  bool          `json:"success"`
	Output   string        `json:"output,omitempty"` //output of the last attempt
	Status   int           `json:"status,omitempty"` //exit code of the last attempt
	Attempts int           `json:"attempts"`
	Elapsed  time.Duration `json:"elapsed"`
}
