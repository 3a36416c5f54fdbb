package domain

// ChangeTypeNone marks a change that does not require a version bump.
const ChangeTypeNone = "none"

// Change is one entry of a change file.
type Change struct {
	PackageName string
	Comment     string
	Type        string
}

// ChangeFile records the pending changes of a project for the next publish.
type ChangeFile struct {
	PackageName string
	Email       string
	Changes     []Change
}

// NewEmptyChangeFile returns a change file declaring that project changed without
// needing a release.
func NewEmptyChangeFile(project, email string) ChangeFile {
	return ChangeFile{
		PackageName: project,
		Email:       email,
		Changes: []Change{
			{PackageName: project, Type: ChangeTypeNone},
		},
	}
}
