package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"

	"github.com/crowdhq/crowd-client-go/internal/dtos"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadImages POSTs the given local files as a multipart/form-data body
// under the "images" field. Missing metadata gets the same defaults the app
// has always applied: image/jpeg and image_<i>.jpg.
func (c *Client) UploadImages(ctx context.Context, reqPath string, files []dtos.ImageFile, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for i, f := range files {
		mimeType := f.MIME
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		name := f.Filename
		if name == "" {
			name = fmt.Sprintf("image_%d.jpg", i)
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(
			`form-data; name="images"; filename="%s"`, quoteEscaper.Replace(name),
		))
		h.Set("Content-Type", mimeType)

		part, err := writer.CreatePart(h)
		if err != nil {
			return fmt.Errorf("failed to build multipart body: %w", err)
		}
		src, err := os.Open(f.Path)
		if err != nil {
			return fmt.Errorf("failed to open image %s: %w", f.Path, err)
		}
		_, err = io.Copy(part, src)
		src.Close()
		if err != nil {
			return fmt.Errorf("failed to read image %s: %w", f.Path, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return c.do(ctx, "POST", reqPath, nil, writer.FormDataContentType(), &buf, out, nil)
}
