package envfile

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/tristendillon/gsqa/core/emitter"
	"github.com/tristendillon/gsqa/core/logger"
)

var keyPattern = regexp.MustCompile(`(?m)^\s*([A-Z0-9_]+)=`)

// EnsureFiltered creates target from the variable assignments in base. A
// missing base is not an error: the step is skipped with a warning.
func EnsureFiltered(em *emitter.Emitter, base, target string, allow []string) (emitter.Result, error) {
	content, err := os.ReadFile(base)
	if os.IsNotExist(err) {
		logger.Warn("%s not found, skipping %s creation.", base, target)
		return emitter.Skipped, nil
	}
	if err != nil {
		return emitter.Skipped, fmt.Errorf("failed to read %s: %w", base, err)
	}

	res, err := em.Emit(target, Filter(string(content), allow))
	if err != nil {
		return res, err
	}
	if res == emitter.Written {
		logger.Info("Created: %s with relevant env vars from %s", target, base)
	}
	return res, nil
}

// Filter keeps the trimmed non-comment lines of content whose key is allowed
// or is itself assigned somewhere in content. Lines are joined without a
// trailing newline.
func Filter(content string, allow []string) string {
	relevant := make(map[string]struct{}, len(allow))
	for _, k := range allow {
		relevant[k] = struct{}{}
	}
	for _, m := range keyPattern.FindAllStringSubmatch(content, -1) {
		relevant[m[1]] = struct{}{}
	}

	var kept []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		key, _, _ := strings.Cut(trimmed, "=")
		if _, ok := relevant[key]; ok {
			kept = append(kept, trimmed)
		}
	}

	return strings.Join(kept, "\n")
}
