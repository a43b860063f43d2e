package cigen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/callpoint/service/nsoversion"
	"go.uber.org/zap"
)

// Include is a generated CI include file
type Include struct {
	Name   string
	Filter func(versions []nsoversion.Version) []nsoversion.Version
}

// Includes lists every generated file
var Includes = []Include{
	{Name: "build-all.yaml", Filter: func(v []nsoversion.Version) []nsoversion.Version { return v }},
	{Name: "build-all4.yaml", Filter: func(v []nsoversion.Version) []nsoversion.Version { return nsoversion.Major(4, v) }},
	{Name: "build-all5.yaml", Filter: func(v []nsoversion.Version) []nsoversion.Version { return nsoversion.Major(5, v) }},
	{Name: "build-tot.yaml", Filter: nsoversion.TipOfTrain},
	{Name: "build-tot4.yaml", Filter: func(v []nsoversion.Version) []nsoversion.Version {
		return nsoversion.TipOfTrain(nsoversion.Major(4, v))
	}},
	{Name: "build-tot5.yaml", Filter: func(v []nsoversion.Version) []nsoversion.Version {
		return nsoversion.TipOfTrain(nsoversion.Major(5, v))
	}},
}

// Service generates CI include files from a versions.json document
type Service struct {
	fs     afs.Service
	job    string
	logger *zap.Logger
}

// LoadVersions reads versions.json, either an array of versions or an object keyed by version
func (s *Service) LoadVersions(ctx context.Context, URL string) ([]nsoversion.Version, error) {
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %v: %w", URL, err)
	}
	var names []string
	var doc interface{}
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode %v: %w", URL, err)
	}
	switch actual := doc.(type) {
	case map[string]interface{}:
		for k := range actual {
			names = append(names, k)
		}
	case []interface{}:
		for _, item := range actual {
			names = append(names, fmt.Sprint(item))
		}
	default:
		return nil, fmt.Errorf("unsupported versions document %T", doc)
	}
	sort.Strings(names)
	return nsoversion.ParseAll(names)
}

// WriteAll generates every include file into destURL
func (s *Service) WriteAll(ctx context.Context, versionsURL, destURL string) ([]string, error) {
	versions, err := s.LoadVersions(ctx, versionsURL)
	if err != nil {
		return nil, err
	}
	if exists, _ := s.fs.Exists(ctx, destURL); !exists {
		if err = s.fs.Create(ctx, destURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create %v: %w", destURL, err)
		}
	}
	var written []string
	for _, include := range Includes {
		data, err := Generate(s.job, include.Filter(versions))
		if err != nil {
			return written, fmt.Errorf("failed to generate %v: %w", include.Name, err)
		}
		URL := url.Join(destURL, include.Name)
		if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
			return written, fmt.Errorf("failed to upload %v: %w", URL, err)
		}
		s.logger.Info("generated", zap.String("URL", URL), zap.Int("jobs", len(include.Filter(versions))))
		written = append(written, URL)
	}
	return written, nil
}

// New creates a generator
func New(fs afs.Service, options ...Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	ret := &Service{fs: fs, job: DefaultJob, logger: zap.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

type Option func(*Service)

// WithJob sets the archetype job name
func WithJob(job string) Option {
	return func(s *Service) {
		if job != "" {
			s.job = job
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
