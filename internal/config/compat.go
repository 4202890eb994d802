package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides reads FORUMCORE_* environment variables that are not
// represented by dedicated CLI flags in the serve command, generalized
// from the teacher's ApplyJavaCompatFromEnv (Java-parity env overlay).
func (c *Config) ApplyEnvOverrides() error {
	if c == nil {
		return nil
	}

	var err error
	if raw := strings.TrimSpace(os.Getenv("FORUMCORE_MAX_BODY_SIZE")); raw != "" {
		size, parseErr := parseMemorySize(raw)
		if parseErr != nil {
			return fmt.Errorf("invalid FORUMCORE_MAX_BODY_SIZE: %w", parseErr)
		}
		c.MaxBodySize = size
	}

	if err = applyIntEnv("FORUMCORE_MIN_NAME_LENGTH", &c.MinNameLength); err != nil {
		return err
	}
	if err = applyIntEnv("FORUMCORE_MAX_NAME_LENGTH", &c.MaxNameLength); err != nil {
		return err
	}
	if err = applyIntEnv("FORUMCORE_MIN_CONTENT_LENGTH", &c.MinContentLength); err != nil {
		return err
	}
	if err = applyIntEnv("FORUMCORE_MAX_CONTENT_LENGTH", &c.MaxContentLength); err != nil {
		return err
	}
	if err = applyIntEnv("FORUMCORE_MAX_DESCRIPTION_LENGTH", &c.MaxDescriptionLength); err != nil {
		return err
	}
	if err = applyIntEnv("FORUMCORE_DEFAULT_PAGE_SIZE", &c.DefaultPageSize); err != nil {
		return err
	}
	if err = applyIntEnv("FORUMCORE_MAX_PAGE_SIZE", &c.MaxPageSize); err != nil {
		return err
	}

	if err = applyThrottleEnv("FORUMCORE_THROTTLE_NEW_CONTENT", &c.ThrottleNewContent); err != nil {
		return err
	}
	if err = applyThrottleEnv("FORUMCORE_THROTTLE_EDIT_CONTENT", &c.ThrottleEditContent); err != nil {
		return err
	}
	if err = applyThrottleEnv("FORUMCORE_THROTTLE_EDIT_PRIVILEGE", &c.ThrottleEditPrivilege); err != nil {
		return err
	}
	if err = applyThrottleEnv("FORUMCORE_THROTTLE_VOTE", &c.ThrottleVote); err != nil {
		return err
	}
	if err = applyThrottleEnv("FORUMCORE_THROTTLE_SUBSCRIBE", &c.ThrottleSubscribe); err != nil {
		return err
	}

	if err = applyDurationEnv("FORUMCORE_RESET_VOTE_EXPIRES_IN", &c.ResetVoteExpiresIn); err != nil {
		return err
	}
	if err = applyIntEnv("FORUMCORE_MAX_VISITORS_SINCE_LAST_EDIT", &c.MaxVisitorsSinceLastEdit); err != nil {
		return err
	}

	applyStringEnv("FORUMCORE_COLLATION_LOCALE", &c.CollationLocale)
	applyStringEnv("FORUMCORE_MODERATOR_OIDC_ROLE", &c.ModeratorOIDCRole)
	if err = applyBoolEnv("FORUMCORE_CORS_ENABLED", &c.CORSEnabled); err != nil {
		return err
	}
	applyStringEnv("FORUMCORE_CORS_ORIGINS", &c.CORSOrigins)

	// API keys: FORUMCORE_API_KEYS_<CLIENT_ID>=<key-value>[,<key-value>...].
	c.APIKeys = loadAPIKeysFromEnv()

	return nil
}

// loadAPIKeysFromEnv scans env vars matching
// FORUMCORE_API_KEYS_<CLIENT_ID>=<key>[,<key>...] and returns a map from
// key value to clientId. Comma-separated values allow a client to rotate
// between an old and new key without downtime.
func loadAPIKeysFromEnv() map[string]string {
	const prefix = "FORUMCORE_API_KEYS_"
	result := map[string]string{}
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, prefix) {
			continue
		}
		eqIdx := strings.IndexByte(env, '=')
		if eqIdx < 0 {
			continue
		}
		clientID := strings.ToLower(strings.TrimSpace(env[len(prefix):eqIdx]))
		if clientID == "" {
			continue
		}
		for _, key := range strings.Split(env[eqIdx+1:], ",") {
			keyValue := strings.TrimSpace(key)
			if keyValue == "" {
				continue
			}
			result[keyValue] = clientID
		}
	}
	return result
}

func applyThrottleEnv(prefix string, dest *ThrottleLimit) error {
	if err := applyIntEnv(prefix+"_MAX_COUNT", &dest.MaxCount); err != nil {
		return err
	}
	periodSeconds := int(dest.PeriodSeconds)
	if err := applyIntEnv(prefix+"_PERIOD_SECONDS", &periodSeconds); err != nil {
		return err
	}
	dest.PeriodSeconds = int64(periodSeconds)
	return nil
}

func applyStringEnv(key string, dest *string) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return
	}
	*dest = raw
}

func applyIntEnv(key string, dest *int) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dest = v
	return nil
}

func applyBoolEnv(key string, dest *bool) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dest = v
	return nil
}

func applyDurationEnv(key string, dest *time.Duration) error {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	v, err := parseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dest = v
	return nil
}

func parseDuration(raw string) (time.Duration, error) {
	v := strings.TrimSpace(strings.ToUpper(raw))
	if v == "" {
		return 0, fmt.Errorf("empty duration")
	}

	// Go duration first (e.g. 30s, 5m).
	if d, err := time.ParseDuration(strings.ToLower(v)); err == nil {
		return d, nil
	}

	// Minimal ISO-8601 support: PT#H#M#S
	if !strings.HasPrefix(v, "PT") {
		return 0, fmt.Errorf("unsupported format %q", raw)
	}
	rest := strings.TrimPrefix(v, "PT")
	if rest == "" {
		return 0, fmt.Errorf("invalid format %q", raw)
	}
	total := time.Duration(0)
	for len(rest) > 0 {
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 || i >= len(rest) {
			return 0, fmt.Errorf("invalid format %q", raw)
		}
		n, err := strconv.Atoi(rest[:i])
		if err != nil {
			return 0, fmt.Errorf("invalid format %q", raw)
		}
		switch rest[i] {
		case 'H':
			total += time.Duration(n) * time.Hour
		case 'M':
			total += time.Duration(n) * time.Minute
		case 'S':
			total += time.Duration(n) * time.Second
		default:
			return 0, fmt.Errorf("invalid format %q", raw)
		}
		rest = rest[i+1:]
	}
	if total <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	return total, nil
}

func parseMemorySize(raw string) (int64, error) {
	v := strings.TrimSpace(strings.ToUpper(raw))
	if v == "" {
		return 0, fmt.Errorf("empty size")
	}
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(v, "KB"), strings.HasSuffix(v, "K"):
		multiplier = 1024
		v = strings.TrimSuffix(strings.TrimSuffix(v, "KB"), "K")
	case strings.HasSuffix(v, "MB"), strings.HasSuffix(v, "M"):
		multiplier = 1024 * 1024
		v = strings.TrimSuffix(strings.TrimSuffix(v, "MB"), "M")
	case strings.HasSuffix(v, "GB"), strings.HasSuffix(v, "G"):
		multiplier = 1024 * 1024 * 1024
		v = strings.TrimSuffix(strings.TrimSuffix(v, "GB"), "G")
	case strings.HasSuffix(v, "B"):
		v = strings.TrimSuffix(v, "B")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid size %q", raw)
	}
	return n * multiplier, nil
}
