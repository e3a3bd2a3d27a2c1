// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ProjectNotFoundId Id = iota + 1
	NoCompatibleVersionId
	NoFilesId
	DownloadFailedId
	RegistryUnreachableId
	ConfigLoadFailedId
	ManifestWriteFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	projectNotFoundIssue = &Issue{
		id: ProjectNotFoundId,
		mdMsg: `
# Project not found!

The registry has no project under the slug or ID you specified.

## Things you can try:
- Check the slug for typos. Slugs are the last segment of the project URL:
~~~
https://modrinth.com/mod/sodium  ->  sodium
~~~

- Search for the project to discover its slug:
~~~
$ modget search sodium
~~~`,
		extLinks: []HttpLink{"https://modrinth.com/mods"},
	}

	noCompatibleVersionIssue = &Issue{
		id: NoCompatibleVersionId,
		mdMsg: `
# No compatible version!

The project exists, but none of its published versions support your
loader and game version combination.

## Things you can try:
- List what the project actually supports:
~~~
$ modget info <slug>
~~~

- Retry with a different target:
~~~
$ modget install <slug> --loader fabric --game-version 1.21
~~~

- Set your usual target once in the config file:
~~~cue
loader:       "fabric"
game_version: "1.21"
~~~`,
	}

	noFilesIssue = &Issue{
		id: NoFilesId,
		mdMsg: `
# Version has no files!

The selected version exists in the registry but publishes no downloadable
files. This is a problem with the project's release, not with your setup.

## Things you can try:
- Pin a different version of the project:
~~~
$ modget install <slug>@<version-id>
~~~

- Check the project's version list on the registry website`,
	}

	downloadFailedIssue = &Issue{
		id: DownloadFailedId,
		mdMsg: `
# Download failed!

A mod file could not be fetched or written to disk. Partially written
files are cleaned up, so the download directory is never left with
truncated jars.

## Things you can try:
- Check your network connection and retry
- Verify the download directory is writable:
~~~
$ modget config show
~~~

- Lower the download concurrency if your connection is flaky:
~~~cue
downloads: concurrency: 1
~~~`,
	}

	registryUnreachableIssue = &Issue{
		id: RegistryUnreachableId,
		mdMsg: `
# Registry unreachable!

A request to the registry API failed before producing a response, or the
registry answered with a server error.

## Things you can try:
- Check your network connection
- Check the registry status page
- Raise the request timeout if you are on a slow connection:
~~~cue
http: timeout_seconds: 120
~~~`,
		extLinks: []HttpLink{"https://status.modrinth.com"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config.cue contains syntax errors or values the schema rejects.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Wrong types (e.g. a quoted number for concurrency)
- Out-of-range values (concurrency must be 1-32)

## Things you can try:
- Check the error message above for the specific path
- Locate the file being loaded:
~~~
$ modget config path
~~~

## Example of a valid config:
~~~cue
loader:       "fabric"
game_version: "1.21"
download_dir: "mods"
downloads: concurrency: 4
~~~`,
	}

	manifestWriteFailedIssue = &Issue{
		id: ManifestWriteFailedId,
		mdMsg: `
# Could not record installed mods!

The mods were downloaded, but the manifest that tracks installed mods
could not be written. Installs still succeeded; only bookkeeping failed.

## Things you can try:
- Verify the download directory is writable
- Re-run the install once the permission problem is fixed; files that
  already exist are simply overwritten`,
	}

	issues = map[Id]*Issue{
		projectNotFoundIssue.Id():     projectNotFoundIssue,
		noCompatibleVersionIssue.Id(): noCompatibleVersionIssue,
		noFilesIssue.Id():             noFilesIssue,
		downloadFailedIssue.Id():      downloadFailedIssue,
		registryUnreachableIssue.Id(): registryUnreachableIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		manifestWriteFailedIssue.Id(): manifestWriteFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
