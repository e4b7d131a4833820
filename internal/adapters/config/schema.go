package config

// Vendfile represents the structure of the vend.yaml / vend.toml manifest.
type Vendfile struct {
	Version      string                     `yaml:"version" toml:"version"`
	CacheDir     string                     `yaml:"cacheDir" toml:"cacheDir"`
	Dependencies map[string][]DependencyDTO `yaml:"dependencies" toml:"dependencies"`
}

// DependencyDTO represents a declared dependency in the manifest.
//
// An entry with only a name and a dir is a local directory dependency.
// Every other entry is fetched from version control.
type DependencyDTO struct {
	Name    string   `yaml:"name" toml:"name"`
	VCS     string   `yaml:"vcs" toml:"vcs"`
	URL     string   `yaml:"url" toml:"url"`
	Commit  string   `yaml:"commit" toml:"commit"`
	Tag     string   `yaml:"tag" toml:"tag"`
	Dir     string   `yaml:"dir" toml:"dir"`
	Exclude []string `yaml:"exclude" toml:"exclude"`
}

func (d DependencyDTO) isLocal() bool {
	return d.VCS == "" && d.URL == "" && d.Commit == "" && d.Tag == "" && d.Dir != ""
}
