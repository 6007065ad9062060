package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/hireboard/internal/services"
	"github.com/yoockh/hireboard/internal/utils"
)

const maxUploadSize = 10 << 20

// UploadHandler stores resume, logo and picture blobs and attaches the
// resulting reference to the caller's profile.
type UploadHandler struct {
	svc services.ProfileService
}

func NewUploadHandler(svc services.ProfileService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// openSniffed opens the multipart file and sniffs its content type from the
// first 512 bytes, handing back a reader that replays them.
func openSniffed(fh *multipart.FileHeader) (io.Reader, string, func(), error) {
	file, err := fh.Open()
	if err != nil {
		return nil, "", nil, err
	}

	head := make([]byte, 512)
	n, _ := file.Read(head)
	head = head[:n]
	ct := http.DetectContentType(head)

	r := io.MultiReader(bytes.NewReader(head), file)
	return r, ct, func() { _ = file.Close() }, nil
}

func (h *UploadHandler) formFile(c *gin.Context, op string) (*multipart.FileHeader, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'file'", err))
		return nil, false
	}
	if fh.Size <= 0 || fh.Size > maxUploadSize {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large (max 10MB)", nil))
		return nil, false
	}
	return fh, true
}

func (h *UploadHandler) Resume(c *gin.Context) {
	const op = "UploadHandler.Resume"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	fh, ok := h.formFile(c, op)
	if !ok {
		return
	}

	r, ct, closeFn, err := openSniffed(fh)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer closeFn()

	if ct != "application/pdf" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "resume must be a pdf", nil))
		return
	}

	p, err := h.svc.AttachResume(c.Request.Context(), userID, fh.Filename, ct, r)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func isImage(ct string) bool {
	switch ct {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
		return true
	}
	return false
}

func (h *UploadHandler) Picture(c *gin.Context) {
	const op = "UploadHandler.Picture"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	fh, ok := h.formFile(c, op)
	if !ok {
		return
	}

	r, ct, closeFn, err := openSniffed(fh)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer closeFn()

	if !isImage(ct) {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "picture must be an image", nil))
		return
	}

	p, err := h.svc.AttachPicture(c.Request.Context(), userID, fh.Filename, ct, r)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *UploadHandler) Logo(c *gin.Context) {
	const op = "UploadHandler.Logo"

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	fh, ok := h.formFile(c, op)
	if !ok {
		return
	}

	r, ct, closeFn, err := openSniffed(fh)
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer closeFn()

	if !isImage(ct) {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "logo must be an image", nil))
		return
	}

	p, err := h.svc.AttachLogo(c.Request.Context(), userID, fh.Filename, ct, r)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
