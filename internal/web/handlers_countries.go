package web

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/persons/internal/core"
	"github.com/JonMunkholm/persons/internal/logging"
	"github.com/JonMunkholm/persons/internal/web/templates"
)

// Messages shown on the upload page.
const (
	msgSelectFile      = "Please Select an Excel file"
	msgUnsupportedFile = "Unsupported file, it must be an xlsx file!"
)

func (s *Server) handleCountriesUploadForm(w http.ResponseWriter, r *http.Request) error {
	return render(w, r, templates.CountriesUpload(templates.UploadPage{}))
}

// handleCountriesUpload imports country names from the posted workbook.
//
// Problems with the file itself are shown on the upload page. When the
// import stops part way, the rows already inserted are reported too.
func (s *Server) handleCountriesUpload(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	file, header, err := r.FormFile("excelFile")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return fmt.Errorf("upload countries: %w", errPayloadTooLarge)
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			return rejectUpload(w, r, fmt.Errorf("%w: %v", core.ErrNoFile, err), msgSelectFile)
		}
		return fmt.Errorf("read upload: %w", err)
	}
	defer file.Close()

	if header.Size == 0 {
		return rejectUpload(w, r, fmt.Errorf("%w: %s is empty", core.ErrNoFile, header.Filename), msgSelectFile)
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		return rejectUpload(w, r, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, header.Filename), msgUnsupportedFile)
	}

	n, err := s.deps.Countries.UploadCountriesFromExcel(r.Context(), file)
	if err != nil {
		var verr *core.ValidationError
		if !errors.Is(err, core.ErrUnsupportedFile) &&
			!errors.Is(err, core.ErrSheetNotFound) &&
			!errors.As(err, &verr) {
			return err
		}
		page := templates.UploadPage{ErrorMessage: core.FormatUserError(err)}
		if n > 0 {
			page.Message = uploadedMessage(n)
		}
		return uploadPage(w, r, page)
	}

	return uploadPage(w, r, templates.UploadPage{Message: uploadedMessage(n)})
}

// rejectUpload logs why the posted file was refused and shows msg on the
// upload page.
func rejectUpload(w http.ResponseWriter, r *http.Request, reason error, msg string) error {
	logging.WithFields(r.Context(), "code", core.MapError(reason).Code).
		Info("upload rejected", "reason", reason.Error())
	return uploadPage(w, r, templates.UploadPage{ErrorMessage: msg})
}

func uploadPage(w http.ResponseWriter, r *http.Request, p templates.UploadPage) error {
	return render(w, r, templates.CountriesUpload(p))
}

func uploadedMessage(n int) string {
	return fmt.Sprintf("%d Countries Uploaded", n)
}
