package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// DefaultNamespace holds the settings shared by every gateway.
const DefaultNamespace = "donationinterface"

// Resolver looks gateway settings up as <prefix>.<name>, then
// donationinterface.<name>, then the caller default. Resolved keys are
// cached per prefix and name.
type Resolver struct {
	v     *viper.Viper
	cache sync.Map
}

func NewResolver(v *viper.Viper) *Resolver {
	if v == nil {
		v = viper.New()
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Resolver{v: v}
}

// Load reads the optional YAML file at path and layers the environment on
// top of it. An empty path or a missing file yields an env-only resolver.
func Load(path string) (*Resolver, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			log.Printf("[config][resolver] config file not found, using env only path=%s", path)
		}
	}
	return NewResolver(v), nil
}

// LoadFromEnv uses DONATION_CONFIG_FILE when set.
func LoadFromEnv() (*Resolver, error) {
	return Load(os.Getenv("DONATION_CONFIG_FILE"))
}

type cacheEntry struct {
	key string
	ok  bool
}

func (r *Resolver) lookup(prefix, name string) (string, bool) {
	cacheKey := prefix + "|" + name
	if e, ok := r.cache.Load(cacheKey); ok {
		entry := e.(cacheEntry)
		return entry.key, entry.ok
	}

	var entry cacheEntry
	for _, ns := range []string{prefix, DefaultNamespace} {
		if ns == "" {
			continue
		}
		key := strings.ToLower(ns + "." + name)
		if r.v.IsSet(key) {
			entry = cacheEntry{key: key, ok: true}
			break
		}
	}
	r.cache.Store(cacheKey, entry)
	return entry.key, entry.ok
}

// IsSet reports whether name resolves for prefix.
func (r *Resolver) IsSet(prefix, name string) bool {
	_, ok := r.lookup(prefix, name)
	return ok
}

func (r *Resolver) String(prefix, name, def string) string {
	if key, ok := r.lookup(prefix, name); ok {
		return r.v.GetString(key)
	}
	return def
}

func (r *Resolver) Int(prefix, name string, def int) int {
	if key, ok := r.lookup(prefix, name); ok {
		return r.v.GetInt(key)
	}
	return def
}

func (r *Resolver) Bool(prefix, name string, def bool) bool {
	if key, ok := r.lookup(prefix, name); ok {
		return isTruthy(r.v.GetString(key))
	}
	return def
}

// Seconds reads an integer number of seconds.
func (r *Resolver) Seconds(prefix, name string, def time.Duration) time.Duration {
	if key, ok := r.lookup(prefix, name); ok {
		return time.Duration(r.v.GetInt(key)) * time.Second
	}
	return def
}

// StringMap returns a map setting with lowercased keys.
func (r *Resolver) StringMap(prefix, name string) map[string]string {
	out := map[string]string{}
	key, ok := r.lookup(prefix, name)
	if !ok {
		return out
	}
	if err := r.v.UnmarshalKey(key, &out); err != nil {
		log.Printf("[config][resolver] invalid map setting key=%s err=%v", key, err)
		return map[string]string{}
	}
	lowered := make(map[string]string, len(out))
	for k, v := range out {
		lowered[strings.ToLower(k)] = v
	}
	return lowered
}

// IntRanges reads a map of name to [lower, upper].
func (r *Resolver) IntRanges(prefix, name string) map[string][2]int {
	out := map[string][2]int{}
	key, ok := r.lookup(prefix, name)
	if !ok {
		return out
	}
	raw := map[string][]int{}
	if err := r.v.UnmarshalKey(key, &raw); err != nil {
		log.Printf("[config][resolver] invalid range setting key=%s err=%v", key, err)
		return out
	}
	for k, bounds := range raw {
		if len(bounds) != 2 || bounds[0] > bounds[1] {
			log.Printf("[config][resolver] skipping malformed range key=%s name=%s bounds=%v", key, k, bounds)
			continue
		}
		out[strings.ToLower(k)] = [2]int{bounds[0], bounds[1]}
	}
	return out
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
