// Package redact scrubs secrets from captured toolchain output before it is
// printed or written to reports. Build scripts echo environment values and
// registry credentials into compiler errors often enough that raw stderr is
// never reported as-is.
package redact

import (
	"sort"
	"strings"
	"sync"

	"github.com/zricethezav/gitleaks/v8/detect"
)

// Placeholder replaces every detected secret.
const Placeholder = "REDACTED"

// Secrets redacts values matched by the gitleaks default rule set.
type Secrets struct {
	once     sync.Once
	detector *detect.Detector
	initErr  error
}

// New returns a lazily initialised secret redactor.
func New() *Secrets {
	return &Secrets{}
}

// Err reports whether the rule set failed to load. Redact is a no-op then.
func (s *Secrets) Err() error {
	s.init()
	return s.initErr
}

func (s *Secrets) init() {
	s.once.Do(func() {
		s.detector, s.initErr = detect.NewDetectorDefaultConfig()
	})
}

// Redact returns text with every detected secret replaced by Placeholder.
func (s *Secrets) Redact(text string) string {
	s.init()
	if s.detector == nil || text == "" {
		return text
	}

	hits := s.detector.DetectBytes([]byte(text))
	if len(hits) == 0 {
		return text
	}

	secrets := make([]string, 0, len(hits))
	for _, h := range hits {
		if h.Secret != "" {
			secrets = append(secrets, h.Secret)
		}
	}
	// longest first so a secret containing another is replaced whole
	sort.Slice(secrets, func(i, j int) bool { return len(secrets[i]) > len(secrets[j]) })

	for _, secret := range secrets {
		text = strings.ReplaceAll(text, secret, Placeholder)
	}
	return text
}
