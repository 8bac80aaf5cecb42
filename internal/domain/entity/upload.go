package entity

import "fmt"

// File is a locally selected document about to be submitted.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// IsZero reports whether no file has been selected.
func (f File) IsZero() bool {
	return f.Name == "" && len(f.Content) == 0
}

// UploadRequest binds a monthly statement to the period it covers.
type UploadRequest struct {
	File   File
	Period Period
}

// SubmittedName is the deterministic name the backend receives: "{month}-{year}-{originalName}".
func (r UploadRequest) SubmittedName() string {
	return fmt.Sprintf("%s-%s-%s", r.Period.Month, r.Period.YearString(), r.File.Name)
}

// Renamed returns the file under its submitted name. Content and MIME type are untouched.
func (r UploadRequest) Renamed() File {
	return File{
		Name:        r.SubmittedName(),
		ContentType: r.File.ContentType,
		Content:     r.File.Content,
	}
}

// UploadAck is the backend's acknowledgement of an ingested statement.
type UploadAck struct {
	Filename  string `json:"filename"`
	OutputCSV string `json:"output_csv"`
	Message   string `json:"message"`
}
