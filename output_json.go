package csstw

import (
	"encoding/json"
	"io"
)

// WriteJSON writes results as indented JSON. A single file is written as its
// bare result list, the shape the converter returns; several files are
// written as a list of {path, results, warnings} objects.
func WriteJSON(w io.Writer, files []FileResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if len(files) == 1 {
		results := files[0].Results
		if results == nil {
			results = []Result{}
		}
		return encoder.Encode(results)
	}
	if files == nil {
		files = []FileResult{}
	}
	return encoder.Encode(files)
}
