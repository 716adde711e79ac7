package workspace

import "time"

// Project owns one file tree plus identity metadata. Exactly one project is
// current at a time; the orchestrator and the preview compiler always operate
// on a snapshot of it. LastModified is bumped on every tree mutation.
type Project struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Type         string            `json:"type"`
	Files        []*FileNode       `json:"files"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// WithFiles returns a copy of the project carrying files as its tree and
// modified as its LastModified timestamp. The receiver is left untouched;
// swapping whole projects is the only mutation the holder performs.
func (p *Project) WithFiles(files []*FileNode, modified time.Time) *Project {
	clone := *p
	clone.Files = files
	clone.LastModified = modified
	return &clone
}
