package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Convert uploads the document at eafPath to a pracsi server at baseURL and
// copies the returned table to w. It returns the file name the server
// suggested.
func (h *HTTP) Convert(ctx context.Context, baseURL, eafPath, format string, w io.Writer) (string, error) {
	var b bytes.Buffer
	mw := multipart.NewWriter(&b)

	fw, err := mw.CreateFormFile("file", filepath.Base(eafPath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	fd, err := os.Open(eafPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", eafPath, err)
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return "", fmt.Errorf("copy document: %w", err)
	}
	if err = mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	target := strings.TrimRight(baseURL, "/") + "/upload"
	if format != "" {
		target += "?format=" + url.QueryEscape(format)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, &b)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := h.c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		const maxErr = 4096
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErr))
		return "", fmt.Errorf("convert %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("read table: %w", err)
	}

	name := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		name = params["filename"]
	}
	return name, nil
}
