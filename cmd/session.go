package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dotcommander/lifeindex/internal/answers"
	"github.com/dotcommander/lifeindex/internal/config"
	"github.com/dotcommander/lifeindex/internal/cue"
	"github.com/dotcommander/lifeindex/internal/survey"
)

// session is the loaded configuration plus the answer store it points at
type session struct {
	cfg        *config.Config
	profile    *survey.Profile
	validator  *cue.Validator
	path       string
	store      *answers.Store
	snapshot   answers.Snapshot
	rejections []answers.Rejection
}

// openSession loads configuration and the snapshot at path, or the
// configured store when path is empty
func openSession(path string) (*session, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}

	profile, err := survey.Lookup(cfg.Profile)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, profile: profile, path: cfg.Store}
	if path != "" {
		s.path = path
	}

	if cfg.Schemas.Enabled {
		s.validator = cue.NewValidator()
		if err := s.validator.LoadSchemas(); err != nil {
			return nil, fmt.Errorf("error loading schemas: %w", err)
		}
	}

	s.store, s.snapshot, s.rejections, err = loadStore(profile, s.path, s.validator)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// loadStore reads one snapshot into a fresh store. A nil validator skips
// schema checks. Rejected answers are logged and returned.
func loadStore(profile *survey.Profile, path string, v *cue.Validator) (*answers.Store, answers.Snapshot, []answers.Rejection, error) {
	if v != nil {
		if err := checkSchema(v, path); err != nil {
			return nil, answers.Snapshot{}, nil, err
		}
	}

	snap, err := answers.ReadSnapshot(path)
	if err != nil {
		return nil, snap, nil, err
	}

	store := answers.NewStore(profile)
	rejected := store.Load(snap)
	for _, r := range rejected {
		slog.Warn("skipping snapshot answer", "file", path, "id", r.ID, "raw", r.Raw, "error", r.Err)
	}
	slog.Debug("snapshot loaded", "file", path, "profile", profile.Name, "answers", store.Len())

	return store, snap, rejected, nil
}

// checkSchema validates an existing snapshot file; missing files pass
func checkSchema(v *cue.Validator, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	errs, err := v.ValidateFile(path, content)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Message
		}
		return fmt.Errorf("invalid snapshot %s: %s", path, strings.Join(msgs, "; "))
	}
	return nil
}

// save writes the store back to the session path
func (s *session) save() error {
	if err := answers.WriteSnapshot(s.path, s.store.Snapshot()); err != nil {
		return err
	}
	slog.Debug("snapshot saved", "file", s.path, "answers", s.store.Len())
	return nil
}
