package outsink

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

var ErrDirectoryUnwritable = errors.New("output directory unwritable")

// Discriminator styles.
const (
	Counter   = "counter"
	Timestamp = "timestamp"
)

const maxAttempts = 100000

// Reservation is a claimed base name. The claim is a hidden lock file created
// exclusively, so two runs never end up with the same name.
type Reservation struct {
	Dir  string
	Base string
	lock string
}

// Path joins the reserved base name with ext (".pdf", ".json").
func (r *Reservation) Path(ext string) string {
	return filepath.Join(r.Dir, r.Base+ext)
}

// Release drops the claim. Safe to call more than once.
func (r *Reservation) Release() error {
	if r == nil || r.lock == "" {
		return nil
	}
	err := os.Remove(r.lock)
	r.lock = ""
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("release %q: %w", r.Base, err)
	}
	return nil
}

// Reserve finds the first free "<prefix>-<discriminator>" in dir. A name is
// taken when a .pdf or .json with that base exists or another run holds it.
func Reserve(dir, prefix, style string) (*Reservation, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: mkdir %q: %v", ErrDirectoryUnwritable, dir, err)
	}

	next, err := candidates(prefix, style, time.Now())
	if err != nil {
		return nil, err
	}
	for i := 0; i < maxAttempts; i++ {
		base := next(i)
		taken, err := exists(dir, base+".pdf", base+".json")
		if err != nil {
			return nil, err
		}
		if taken {
			continue
		}

		lock := filepath.Join(dir, "."+base+".lock")
		f, err := os.OpenFile(lock, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: lock %q: %v", ErrDirectoryUnwritable, lock, err)
		}
		_, _ = fmt.Fprintf(f, "%d\n", os.Getpid())
		_ = f.Close()
		return &Reservation{Dir: dir, Base: base, lock: lock}, nil
	}
	return nil, fmt.Errorf("%w: no free name for %q in %q", ErrDirectoryUnwritable, prefix, dir)
}

func candidates(prefix, style string, now time.Time) (func(int) string, error) {
	switch style {
	case Counter, "":
		return func(i int) string { return fmt.Sprintf("%s-%04d", prefix, i) }, nil
	case Timestamp:
		stamp := now.Format("20060102-150405")
		return func(i int) string {
			if i == 0 {
				return prefix + "-" + stamp
			}
			return fmt.Sprintf("%s-%s-%d", prefix, stamp, i)
		}, nil
	default:
		return nil, fmt.Errorf("unknown discriminator %q", style)
	}
}

func exists(dir string, names ...string) (bool, error) {
	for _, name := range names {
		_, err := os.Stat(filepath.Join(dir, name))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, fs.ErrNotExist):
		default:
			return false, fmt.Errorf("%w: probe %q: %v", ErrDirectoryUnwritable, name, err)
		}
	}
	return false, nil
}
