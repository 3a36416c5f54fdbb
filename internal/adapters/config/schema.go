package config

// Workfile is the on-disk shape of lockstep.yaml.
type Workfile struct {
	Version                  string   `yaml:"version"`
	PackageManager           string   `yaml:"packageManager"`
	Lockfile                 string   `yaml:"lockfile"`
	EnsureConsistentVersions bool     `yaml:"ensureConsistentVersions"`
	Projects                 []string `yaml:"projects"`
}

// Manifest is the subset of package.json that lockstep reads.
type Manifest struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Private              bool              `json:"private"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}
