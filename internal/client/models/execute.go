package models

// ExecResult is the response of the remote execution service. At most one of
// Output and Error is expected to be set.
type ExecResult struct {
	Output string `json:"output"`
	Error  string `json:"error"`
}

// Text returns Output, or Error when Output is empty.
func (r ExecResult) Text() string {
	if r.Output != "" {
		return r.Output
	}
	return r.Error
}
