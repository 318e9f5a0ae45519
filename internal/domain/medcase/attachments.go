package medcase

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

const (
	MaxImageSize = 10 * 1024 * 1024 // 10 MB
	MaxImages    = 6
)

var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Attachment is an image read from the client form, held in memory until it
// is forwarded to the backend.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ReadAttachments checks and loads the uploaded images.
func ReadAttachments(headers []*multipart.FileHeader) ([]Attachment, error) {
	if len(headers) > MaxImages {
		return nil, ErrTooManyImages
	}

	out := make([]Attachment, 0, len(headers))
	for _, fh := range headers {
		a, err := readAttachment(fh)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func readAttachment(fh *multipart.FileHeader) (Attachment, error) {
	if fh.Size == 0 {
		return Attachment{}, ErrEmptyFile
	}
	if fh.Size > MaxImageSize {
		return Attachment{}, ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to read file: %w", err)
	}
	if len(content) > MaxImageSize {
		return Attachment{}, ErrFileTooLarge
	}

	// Sniff from content; the client-supplied header is not trusted.
	mimeType := strings.Split(http.DetectContentType(content), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return Attachment{}, ErrInvalidMimeType
	}

	return Attachment{
		Filename:    sanitizeName(fh.Filename, mimeType),
		ContentType: mimeType,
		Content:     content,
	}, nil
}

func sanitizeName(name, mimeType string) string {
	name = filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(name))
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if ext == "." {
		ext = ""
	}
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		name = "image"
	}
	if ext == "" {
		ext = mimeToExt(mimeType)
	}
	return name + ext
}

func mimeToExt(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
