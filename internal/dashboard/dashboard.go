// Package dashboard serves the mock city data shown on the landing page and
// the dashboard. The data ships embedded and can be overridden by a YAML
// file that is reloaded when it changes.
package dashboard

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mmuslimabdulj/city-pulse/internal/domain"
)

//go:embed fixture.yaml
var embeddedFixture []byte

// ErrEmptyFixture is returned for a fixture without any dashboard data
var ErrEmptyFixture = errors.New("dashboard fixture is empty")

// Parse decodes a YAML fixture. Unknown keys are rejected so typos surface
// at load time.
func Parse(data []byte) (domain.Dashboard, error) {
	var d domain.Dashboard
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return domain.Dashboard{}, fmt.Errorf("parse dashboard fixture: %w", err)
	}
	if len(d.Stats) == 0 && len(d.Reports) == 0 && len(d.Features) == 0 {
		return domain.Dashboard{}, ErrEmptyFixture
	}
	for i, r := range d.Reports {
		switch r.Severity {
		case domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh, domain.SeverityCritical:
		default:
			return domain.Dashboard{}, fmt.Errorf("report %d: unknown severity %q", i, r.Severity)
		}
	}
	return d, nil
}

// Default returns the embedded data set
func Default() domain.Dashboard {
	d, err := Parse(embeddedFixture)
	if err != nil {
		panic(err)
	}
	return d
}

// Provider holds the current dashboard data
type Provider struct {
	mu      sync.RWMutex
	current domain.Dashboard
	path    string
	logger  *zap.Logger
}

// NewProvider loads path, or the embedded fixture when path is empty
func NewProvider(path string, logger *zap.Logger) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Provider{path: path, logger: logger}
	if path == "" {
		p.current = Default()
		return p, nil
	}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Path returns the override file, empty when serving the embedded data
func (p *Provider) Path() string {
	return p.path
}

// Snapshot returns the current data
func (p *Provider) Snapshot() domain.Dashboard {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Reload re-reads the override file. On error the previous data stays.
func (p *Provider) Reload() error {
	if p.path == "" {
		return nil
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("read dashboard fixture: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.current = d
	p.mu.Unlock()

	p.logger.Info("dashboard fixture loaded",
		zap.String("path", p.path),
		zap.Int("reports", len(d.Reports)),
	)
	return nil
}

// SeverityClass is the text colour class of a report severity
func SeverityClass(s domain.Severity) string {
	switch s {
	case domain.SeverityCritical:
		return "text-red-600"
	case domain.SeverityHigh:
		return "text-orange-600"
	case domain.SeverityMedium:
		return "text-yellow-600"
	default:
		return "text-green-600"
	}
}
