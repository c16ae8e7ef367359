// Package envfile loads dotenv-style files and merges them with the process
// environment. File values never override variables already set in the
// process environment.
package envfile

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Load reads the env file at path. A missing file is only an error when
// required is true; the conventional ".env" lookup tolerates absence.
func Load(path string, required bool) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return values, nil
}

// Merge builds a full environ slice from the file values overlaid by the
// current process environment. Process values win on conflict.
func Merge(fileValues map[string]string) []string {
	merged := make(map[string]string, len(fileValues))
	for k, v := range fileValues {
		merged[k] = v
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			merged[k] = v
		}
	}

	environ := make([]string, 0, len(merged))
	for k, v := range merged {
		environ = append(environ, k+"="+v)
	}
	return environ
}
