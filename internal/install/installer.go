// SPDX-License-Identifier: MPL-2.0

package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"modget-cli/internal/download"
	"modget-cli/internal/manifest"
	"modget-cli/internal/registry"
	"modget-cli/internal/resolve"

	"github.com/charmbracelet/log"
)

// Stages of the install flow where a fatal failure can occur.
const (
	StageFetchProject  Stage = "fetch project"
	StageSelectVersion Stage = "select version"
	StageDownloadMain  Stage = "download main file"
)

var (
	// ErrNoCompatibleVersion indicates the root project has no version
	// matching the constraint. (For dependencies the same condition is a
	// logged skip, not an error.)
	ErrNoCompatibleVersion = errors.New("no compatible version")

	// ErrNoFiles indicates the selected root version has no files attached,
	// leaving nothing to install.
	ErrNoFiles = errors.New("version has no files")
)

type (
	// Stage identifies where in the install flow a fatal failure occurred.
	Stage string

	// FatalError aborts the whole install. Only root-level failures produce
	// one; dependency-level failures are absorbed into the Result.
	FatalError struct {
		Stage   Stage
		Project string
		Cause   error
	}

	// Client is the full registry surface the installer needs.
	// *registry.Client satisfies it.
	Client interface {
		Project(ctx context.Context, id string) (*registry.Project, error)
		Versions(ctx context.Context, slug string) ([]registry.Version, error)
		Download(ctx context.Context, url string) (io.ReadCloser, error)
	}

	// Options configures an Installer.
	Options struct {
		// Constraint is the loader / game-version pair versions must satisfy.
		Constraint resolve.Constraint
		// DownloadDir is where files are materialized (created if missing).
		DownloadDir string
		// Concurrency bounds parallel dependency downloads; 0 means the
		// download package default.
		Concurrency int
		// Logger overrides the default stderr logger.
		Logger *log.Logger
	}

	// Plan is the outcome of resolution before any download happens.
	Plan struct {
		Project    registry.Project
		Version    registry.Version
		Resolution *resolve.Resolution
	}

	// DependencyStatus is the per-dependency outcome of an install.
	DependencyStatus struct {
		ProjectID     string
		Slug          string
		Title         string
		VersionNumber string
		Filename      string
		Downloaded    bool
		// Err explains a failed or skipped download; nil when Downloaded.
		Err error
	}

	// Result aggregates an install run. The run as a whole succeeded if
	// Install returned it without error; individual dependencies may still
	// have failed.
	Result struct {
		Project      registry.Project
		Version      registry.Version
		MainFile     registry.File
		Dependencies []DependencyStatus
	}

	// Installer drives the install flow against a registry client.
	Installer struct {
		client     Client
		resolver   *resolve.Resolver
		downloader *download.Downloader
		logger     *log.Logger
		opts       Options
	}
)

// Error implements the error interface.
func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Project, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *FatalError) Unwrap() error { return e.Cause }

// FailedDependencies returns the dependencies that did not make it to disk.
func (r *Result) FailedDependencies() []DependencyStatus {
	var failed []DependencyStatus
	for _, d := range r.Dependencies {
		if !d.Downloaded {
			failed = append(failed, d)
		}
	}
	return failed
}

// New creates an Installer.
func New(client Client, opts Options) *Installer {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "install"})
	}

	downloadOpts := []download.Option{download.WithLogger(logger.WithPrefix("download"))}
	if opts.Concurrency > 0 {
		downloadOpts = append(downloadOpts, download.WithConcurrency(opts.Concurrency))
	}

	return &Installer{
		client:     client,
		resolver:   resolve.NewResolver(client, resolve.WithLogger(logger.WithPrefix("resolve"))),
		downloader: download.New(client, downloadOpts...),
		logger:     logger,
		opts:       opts,
	}
}

// Plan fetches the root project, selects its newest compatible version, and
// resolves the required dependency closure without downloading anything.
func (i *Installer) Plan(ctx context.Context, identifier string) (*Plan, error) {
	project, err := i.client.Project(ctx, identifier)
	if err != nil {
		return nil, &FatalError{Stage: StageFetchProject, Project: identifier, Cause: err}
	}

	versions, err := i.client.Versions(ctx, project.Slug)
	if err != nil {
		return nil, &FatalError{Stage: StageSelectVersion, Project: project.Slug, Cause: err}
	}

	compatible := resolve.SelectCompatible(versions, i.opts.Constraint)
	if len(compatible) == 0 {
		return nil, &FatalError{
			Stage:   StageSelectVersion,
			Project: project.Slug,
			Cause:   fmt.Errorf("%w for %s", ErrNoCompatibleVersion, i.opts.Constraint),
		}
	}
	rootVersion := compatible[0]
	// Dependency records refer to projects by internal id; make sure the
	// root is recognizable under that id so cycles back to it are skipped.
	if rootVersion.ProjectID == "" {
		rootVersion.ProjectID = project.ID
	}

	i.logger.Info("using version",
		"project", project.Title, "version", rootVersion.VersionNumber)

	res, err := i.resolver.Resolve(ctx, rootVersion, i.opts.Constraint)
	if err != nil {
		return nil, err
	}

	return &Plan{Project: *project, Version: rootVersion, Resolution: res}, nil
}

// Install runs the full flow for the project named by identifier (slug or
// id). The returned error is non-nil only for fatal, root-level failures;
// partial dependency failures are reported through the Result.
func (i *Installer) Install(ctx context.Context, identifier string) (*Result, error) {
	plan, err := i.Plan(ctx, identifier)
	if err != nil {
		return nil, err
	}

	mainFile, ok := download.PrimaryFile(plan.Version.Files)
	if !ok {
		return nil, &FatalError{Stage: StageDownloadMain, Project: plan.Project.Slug, Cause: ErrNoFiles}
	}

	if err := os.MkdirAll(i.opts.DownloadDir, 0o755); err != nil {
		return nil, &FatalError{Stage: StageDownloadMain, Project: plan.Project.Slug, Cause: err}
	}

	mainReq := download.Request{
		ProjectID: plan.Project.ID,
		Filename:  mainFile.Filename,
		URL:       mainFile.URL,
	}
	if err := i.downloader.Download(ctx, mainReq, i.opts.DownloadDir); err != nil {
		return nil, &FatalError{Stage: StageDownloadMain, Project: plan.Project.Slug, Cause: err}
	}

	result := &Result{
		Project:  plan.Project,
		Version:  plan.Version,
		MainFile: mainFile,
	}
	result.Dependencies = i.downloadDependencies(ctx, plan.Resolution)

	i.writeManifest(result)

	return result, nil
}

// downloadDependencies materializes every resolved dependency's primary
// file on the downloader's worker pool. Dependencies without files are
// skipped with a warning and reported as not downloaded.
func (i *Installer) downloadDependencies(ctx context.Context, res *resolve.Resolution) []DependencyStatus {
	entries := res.Entries()

	statuses := make([]DependencyStatus, 0, len(entries))
	var reqs []download.Request
	reqIndex := make(map[string]int) // project id -> statuses index

	for _, entry := range entries {
		status := DependencyStatus{
			ProjectID:     entry.Version.ProjectID,
			Slug:          entry.Project.Slug,
			Title:         entry.Project.Title,
			VersionNumber: entry.Version.VersionNumber,
		}
		if status.ProjectID == "" {
			status.ProjectID = entry.Project.ID
		}

		file, ok := download.PrimaryFile(entry.Version.Files)
		if !ok {
			i.logger.Warn("no files for dependency, skipping", "slug", entry.Project.Slug)
			status.Err = ErrNoFiles
			statuses = append(statuses, status)
			continue
		}

		status.Filename = file.Filename
		reqIndex[status.ProjectID] = len(statuses)
		statuses = append(statuses, status)
		reqs = append(reqs, download.Request{
			ProjectID: status.ProjectID,
			Filename:  file.Filename,
			URL:       file.URL,
		})
	}

	for _, r := range i.downloader.DownloadAll(ctx, reqs, i.opts.DownloadDir) {
		idx := reqIndex[r.ProjectID]
		statuses[idx].Downloaded = r.Err == nil
		statuses[idx].Err = r.Err
	}

	return statuses
}

// writeManifest records the main mod and every downloaded dependency in the
// download directory's manifest. The manifest is informational; failures
// are logged, never fatal.
func (i *Installer) writeManifest(result *Result) {
	path := manifest.Path(i.opts.DownloadDir)

	m, err := manifest.Load(path)
	if err != nil {
		i.logger.Warn("could not read manifest, starting fresh", "err", err)
		m = manifest.New()
	}

	now := time.Now().UTC()
	m.Add(manifest.Entry{
		ProjectID:     result.Project.ID,
		Slug:          result.Project.Slug,
		Title:         result.Project.Title,
		VersionID:     result.Version.ID,
		VersionNumber: result.Version.VersionNumber,
		Filename:      result.MainFile.Filename,
		InstalledAt:   now,
	})
	for _, dep := range result.Dependencies {
		if !dep.Downloaded {
			continue
		}
		m.Add(manifest.Entry{
			ProjectID:     dep.ProjectID,
			Slug:          dep.Slug,
			Title:         dep.Title,
			VersionNumber: dep.VersionNumber,
			Filename:      dep.Filename,
			InstalledAt:   now,
		})
	}

	if err := m.Save(path); err != nil {
		i.logger.Warn("could not write manifest", "err", err)
	}
}
