package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/atanum62/shyama-erp-sub000/utils"
)

const maxUploadMemory = 32 << 20 // 32 MB

// uploadImages pushes every file under the multipart field to R2 and returns
// the public URLs. It runs before any state transition so a failed upload
// never commits one. On failure the count of files already uploaded is
// reported; those objects are left in place, not deleted behind the caller's
// back.
func uploadImages(r *http.Request, field string) ([]string, error) {
	if r.MultipartForm == nil || r.MultipartForm.File == nil {
		return nil, nil
	}
	files := r.MultipartForm.File[field]

	var urls []string
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return urls, fmt.Errorf("open %q (%d of %d already uploaded): %v", fh.Filename, len(urls), len(files), err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return urls, fmt.Errorf("read %q (%d of %d already uploaded): %v", fh.Filename, len(urls), len(files), err)
		}

		name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), fh.Filename)
		url, err := utils.UploadToR2(data, name, fh.Header.Get("Content-Type"))
		if err != nil {
			return urls, fmt.Errorf("upload %q (%d of %d already uploaded): %v", fh.Filename, len(urls), len(files), err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// writeUploadError reports a collaborator failure distinctly from a
// transition failure, with the orphaned-object warning when some files went
// through before the failure.
func writeUploadError(w http.ResponseWriter, uploaded []string, err error) {
	resp := ApiResponse{
		Success: false,
		Message: "image upload failed, no state change applied: " + err.Error(),
	}
	if len(uploaded) > 0 {
		resp.Warning = fmt.Sprintf("%d image(s) were already uploaded and remain in storage", len(uploaded))
	}
	writeJSON(w, http.StatusBadGateway, resp)
}
