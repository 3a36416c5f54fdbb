// Package ledger stores change files under the workspace .changes directory.
package ledger

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.trai.ch/lockstep/internal/core/domain"
	"gopkg.in/yaml.v3"
)

var marshal = yaml.Marshal

type changeFileDTO struct {
	PackageName string      `yaml:"packageName"`
	Email       string      `yaml:"email"`
	Changes     []changeDTO `yaml:"changes"`
}

type changeDTO struct {
	PackageName string `yaml:"packageName"`
	Comment     string `yaml:"comment"`
	Type        string `yaml:"type"`
}

// Writer implements ports.ChangeWriter.
type Writer struct {
	newID func() string
}

// Option configures a Writer.
type Option func(*Writer)

// WithIDGenerator replaces the random file name generator.
func WithIDGenerator(gen func() string) Option {
	return func(w *Writer) {
		w.newID = gen
	}
}

// NewWriter creates a new Writer. File names are random UUIDs.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{newID: uuid.NewString}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write creates <root>/.changes/<project>/<id>.yaml and returns its path.
func (w *Writer) Write(root string, change domain.ChangeFile) (string, error) {
	dto := changeFileDTO{
		PackageName: change.PackageName,
		Email:       change.Email,
		Changes:     make([]changeDTO, 0, len(change.Changes)),
	}
	for _, c := range change.Changes {
		dto.Changes = append(dto.Changes, changeDTO(c))
	}

	data, err := marshal(dto)
	if err != nil {
		return "", domain.Raise(domain.ErrChangeWriteFailed, "project", change.PackageName, "reason", err.Error())
	}

	dir := domain.DefaultChangesPath(root, change.PackageName)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return "", domain.Raise(domain.ErrChangeWriteFailed, "path", dir, "reason", err.Error())
	}

	path := filepath.Join(dir, w.newID()+".yaml")
	// #nosec G304 -- path is built from the workspace root and a generated name
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		return "", domain.Raise(domain.ErrChangeWriteFailed, "path", path, "reason", err.Error())
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", domain.Raise(domain.ErrChangeWriteFailed, "path", path, "reason", err.Error())
	}
	if err := f.Close(); err != nil {
		return "", domain.Raise(domain.ErrChangeWriteFailed, "path", path, "reason", err.Error())
	}

	return path, nil
}
