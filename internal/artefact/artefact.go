// Package artefact implements the "exists and length>0" gate spec §5 and
// §7 require of every produced file: an existing artefact short-circuits
// its producer, and a partially-written artefact is never read on the
// next run. Adapted from the teacher's internal/cache, narrowed from a
// TTL'd result cache to a pure existence/content-hash gate since the
// pipeline's artefacts (spec §6) are never expired, only ever produced
// once per run.
package artefact

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/zeebo/blake3"
)

// ErrPersistenceFailure wraps any write failure; callers treat this as
// fatal for the project (spec §7: "PersistenceFailure | Artefact write |
// Fatal for that project").
var ErrPersistenceFailure = fmt.Errorf("artefact: persistence failure")

// Exists reports whether path exists and has non-zero length, the gate
// that lets an existing artefact short-circuit its producer.
func Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Size() > 0
}

// HashBytes returns the BLAKE3 hex digest of data, used to fingerprint a
// dataset for the round-trip idempotence property (spec §8: "identical
// inputs and seed produces byte-identical tabular artefacts").
func HashBytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile returns the BLAKE3 hex digest of the file at path.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return HashBytes(data), nil
}

// WriteOnce writes data to path unless an artefact already exists there
// (spec §5: "Filesystem outputs are written exactly once per pipeline
// run; an existing artefact short-circuits its producer"). Returns
// (wrote=false, nil) when short-circuited. Writes are temp+rename so a
// reader never observes a partially-written file.
func WriteOnce(path string, data []byte) (wrote bool, err error) {
	if Exists(path) {
		return false, nil
	}
	if err := writeAtomic(path, data); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrPersistenceFailure, path, err)
	}
	return true, nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// EnsurePlaceholder creates an empty file at path if absent, never
// overwriting an existing one (spec §6: "AFMethod_refactored ... created
// empty if absent, never overwritten").
func EnsurePlaceholder(path string) error {
	if Exists(path) {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return nil // zero-length file already present: still "absent" per Exists, but don't clobber it either
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersistenceFailure, path, err)
	}
	return f.Close()
}
