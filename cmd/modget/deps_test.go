// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"modget-cli/internal/install"
	"modget-cli/internal/issue"
	"modget-cli/internal/registry"
	"modget-cli/internal/resolve"
)

func requiredDep(projectID string) registry.Dependency {
	return registry.Dependency{ProjectID: projectID, DependencyType: registry.DependencyRequired}
}

func TestRenderDepsTree(t *testing.T) {
	t.Parallel()

	// root -> a -> b, and both root and a also require b (diamond).
	res := resolve.NewResolution()
	res.Insert("a", resolve.Entry{
		Project: registry.Project{ID: "a", Title: "Alpha"},
		Version: registry.Version{
			ProjectID:     "a",
			VersionNumber: "1.0.0",
			Dependencies:  []registry.Dependency{requiredDep("b")},
		},
	})
	res.Insert("b", resolve.Entry{
		Project: registry.Project{ID: "b", Title: "Beta"},
		Version: registry.Version{ProjectID: "b", VersionNumber: "2.0.0"},
	})

	plan := &install.Plan{
		Project: registry.Project{ID: "root", Title: "Root Mod"},
		Version: registry.Version{
			ProjectID:     "root",
			VersionNumber: "3.0.0",
			Dependencies:  []registry.Dependency{requiredDep("a"), requiredDep("b")},
		},
		Resolution: res,
	}

	var sb strings.Builder
	renderDepsTree(&sb, plan)
	out := sb.String()

	for _, want := range []string{"Root Mod", "Alpha", "Beta"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
	// Beta appears nested under Alpha first; the second reference is marked.
	if !strings.Contains(out, "Beta (seen)") {
		t.Errorf("duplicate reference should be marked seen:\n%s", out)
	}
	if strings.Count(out, "2.0.0") != 1 {
		t.Errorf("Beta's version should be printed exactly once:\n%s", out)
	}
}

func TestRenderDepsTree_CycleBackToRoot(t *testing.T) {
	t.Parallel()

	res := resolve.NewResolution()
	res.Insert("a", resolve.Entry{
		Project: registry.Project{ID: "a", Title: "Alpha"},
		Version: registry.Version{
			ProjectID:     "a",
			VersionNumber: "1.0.0",
			Dependencies:  []registry.Dependency{requiredDep("root")},
		},
	})

	plan := &install.Plan{
		Project: registry.Project{ID: "root", Title: "Root Mod"},
		Version: registry.Version{
			ProjectID:     "root",
			VersionNumber: "3.0.0",
			Dependencies:  []registry.Dependency{requiredDep("a")},
		},
		Resolution: res,
	}

	var sb strings.Builder
	renderDepsTree(&sb, plan)
	out := sb.String()

	// The cycle back to the root prints the root's name, not its raw id.
	if !strings.Contains(out, "Root Mod (seen)") {
		t.Errorf("cycle back to root should be marked with the root's title:\n%s", out)
	}
}

func TestRenderDepsTree_UnresolvedDependency(t *testing.T) {
	t.Parallel()

	plan := &install.Plan{
		Project: registry.Project{ID: "root", Title: "Root Mod"},
		Version: registry.Version{
			ProjectID:     "root",
			VersionNumber: "3.0.0",
			Dependencies:  []registry.Dependency{requiredDep("ghost")},
		},
		Resolution: resolve.NewResolution(),
	}

	var sb strings.Builder
	renderDepsTree(&sb, plan)

	if !strings.Contains(sb.String(), "ghost (not resolved)") {
		t.Errorf("unresolved dependency should be flagged:\n%s", sb.String())
	}
}

func TestIssueForInstallError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		wantID issue.Id
		wantOK bool
	}{
		{
			name:   "project not found",
			err:    &install.FatalError{Stage: install.StageFetchProject, Project: "x", Cause: registry.ErrProjectNotFound},
			wantID: issue.ProjectNotFoundId,
			wantOK: true,
		},
		{
			name:   "no compatible version",
			err:    &install.FatalError{Stage: install.StageSelectVersion, Project: "x", Cause: install.ErrNoCompatibleVersion},
			wantID: issue.NoCompatibleVersionId,
			wantOK: true,
		},
		{
			name:   "no files",
			err:    &install.FatalError{Stage: install.StageDownloadMain, Project: "x", Cause: install.ErrNoFiles},
			wantID: issue.NoFilesId,
			wantOK: true,
		},
		{
			name:   "download failure",
			err:    &install.FatalError{Stage: install.StageDownloadMain, Project: "x", Cause: errors.New("connection reset")},
			wantID: issue.DownloadFailedId,
			wantOK: true,
		},
		{
			name:   "registry failure",
			err:    &install.FatalError{Stage: install.StageFetchProject, Project: "x", Cause: errors.New("http 500")},
			wantID: issue.RegistryUnreachableId,
			wantOK: true,
		},
		{
			name:   "unrelated error",
			err:    errors.New("boom"),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, ok := issueForInstallError(tt.err)
			if ok != tt.wantOK {
				t.Fatalf("ok = %t, want %t", ok, tt.wantOK)
			}
			if ok && id != tt.wantID {
				t.Errorf("id = %d, want %d", id, tt.wantID)
			}
		})
	}
}
