package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// maxUploadSize bounds the in-memory portion of a multipart parse.
const maxUploadSize = 10 << 20

// stageUpload copies the named multipart file into a local temp file
// and returns its path. An absent field is not an error: the empty
// path is returned and the caller decides whether the file was
// required. The staged file is owned by the service layer from here
// on; it removes it whether the upload to object storage succeeds or
// fails.
func stageUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	staged, err := os.CreateTemp("", "clipstream-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", err
	}
	defer staged.Close()

	if _, err := io.Copy(staged, file); err != nil {
		os.Remove(staged.Name())
		return "", err
	}

	return staged.Name(), nil
}
