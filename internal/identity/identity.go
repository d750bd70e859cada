package identity

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// EnvUser overrides every other source of the display name.
const EnvUser = "FOXHOLE_USER"

// UserNameSource reports a configured user name.
type UserNameSource interface {
	GetUserName() (string, error)
}

// Git reads user.name from the git config.
type Git struct {
	Timeout time.Duration
}

// GetUserName runs `git config --get user.name`.
func (g Git) GetUserName() (string, error) {
	timeout := g.Timeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "git", "config", "--get", "user.name").Output()
	if err != nil {
		return "", fmt.Errorf("failed to get git user.name: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// DetectName guesses a display name using the fallback chain:
// 1. $FOXHOLE_USER
// 2. git config user.name (skipped if git is nil or unavailable)
// 3. $USER
func DetectName(git UserNameSource) (string, error) {
	if user := os.Getenv(EnvUser); user != "" {
		return user, nil
	}

	if git != nil {
		if name, err := git.GetUserName(); err == nil && name != "" {
			return name, nil
		}
	}

	if user := os.Getenv("USER"); user != "" {
		return user, nil
	}

	return "", fmt.Errorf("cannot detect a name: set $%s, configure 'git config user.name', or set $USER", EnvUser)
}
