package domain

// Record is a single classified line. Step is empty when the line carries no
// [STEP:...] tag.
type Record struct {
	LineNumber int    `json:"line_number"`
	Message    string `json:"message"`
	Level      Level  `json:"level"`
	Step       string `json:"step,omitempty"`
}

// HasStep reports whether the record was tagged with a step
func (r Record) HasStep() bool { return r.Step != "" }

// Entry is a Record annotated with the file it came from
type Entry struct {
	Record
	Filename string `json:"filename,omitempty"`
}

// NewEntry annotates a record with its source filename
func NewEntry(rec Record, filename string) Entry {
	return Entry{Record: rec, Filename: filename}
}

// FileError describes a file whose scan failed. The rest of the run is unaffected.
type FileError struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

func (e *FileError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }
