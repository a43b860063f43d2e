package nsocli

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultContainer is used when neither input nor NSO_CNT name a container
	DefaultContainer     = "ncs-test"
	DefaultTimeLimit     = 300 * time.Second
	DefaultRetryInterval = 5 * time.Second
	// DefaultOnFail runs after a failed NSO CLI command
	DefaultOnFail = "show al:alarms"
)

// Input represents a single CLI command run
type Input struct {
	Container      string        `json:"container,omitempty" yaml:"container,omitempty"`           //NSO docker container name
	Command        string        `json:"command" yaml:"command"`                                   //command(s), newline separated
	SuccessPattern string        `json:"successPattern,omitempty" yaml:"successPattern,omitempty"` //succeed only if output matches
	FailPattern    string        `json:"failPattern,omitempty" yaml:"failPattern,omitempty"`       //fail at once if output matches
	TimeLimit      time.Duration `json:"timeLimit,omitempty" yaml:"timeLimit,omitempty"`
	RetryInterval  time.Duration `json:"retryInterval,omitempty" yaml:"retryInterval,omitempty"`
	Retry          bool          `json:"retry,omitempty" yaml:"retry,omitempty"`
	Shell          bool          `json:"shell,omitempty" yaml:"shell,omitempty"` //run in shell, not NSO CLI
	SuppressError  bool          `json:"suppressError,omitempty" yaml:"suppressError,omitempty"`
	OnFail         string        `json:"onFail,omitempty" yaml:"onFail,omitempty"`
}

// Init applies defaults
func (i *Input) Init() {
	if i.Container == "" {
		i.Container = DefaultContainer
	}
	if i.TimeLimit <= 0 {
		i.TimeLimit = DefaultTimeLimit
	}
	if i.RetryInterval <= 0 {
		i.RetryInterval = DefaultRetryInterval
	}
}

// OnFailCommand returns the command to run after failure, if any
func (i *Input) OnFailCommand() string {
	if i.OnFail == "" && !i.Shell {
		return DefaultOnFail
	}
	return i.OnFail
}

// Execution returns the command line handed to the shell
func (i *Input) Execution() string {
	if i.Shell {
		return i.Command
	}
	return FormatCommand(i.Container, "unhide debug\n"+i.Command)
}

// FormatCommand pipes command into ncs_cli inside the container
func FormatCommand(container, command string) string {
	escaped := strings.ReplaceAll(command, "'", "\\'")
	return fmt.Sprintf(`docker exec %s bash -lc "echo -e '%s' | ncs_cli --noninteractive --stop-on-error -u admin 2>&1" `, container, escaped)
}
