package helper

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	maxUploadSize  = int64(5 * 1024 * 1024)
	photoMaxWidth  = 1280
	photoMaxHeight = 1280
	webpQuality    = 80
)

/*
PhotoService is the opaque "store bytes, return URL" collaborator the core
consumes. It re-encodes every student photo to WebP before pushing to OSS so
the stored URL never leaks the original format or EXIF payload.
*/
type PhotoService interface {
	UploadStudentPhoto(ctx context.Context, libraryID uuid.UUID, fh *multipart.FileHeader) (publicURL string, err error)
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}

type OSSPhotoService struct {
	svc *OSSService
}

func NewOSSPhotoServiceFromEnv(prefix string) (*OSSPhotoService, error) {
	s, err := NewOSSServiceFromEnv(prefix)
	if err != nil {
		return nil, err
	}
	return &OSSPhotoService{svc: s}, nil
}

func (p *OSSPhotoService) UploadStudentPhoto(ctx context.Context, libraryID uuid.UUID, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "File not found in request")
	}
	if libraryID == uuid.Nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "library_id is not valid")
	}
	if fh.Size > maxUploadSize {
		return "", fiber.NewError(fiber.StatusBadRequest, "Photo exceeds the 5MB limit")
	}

	src, err := fh.Open()
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Could not open uploaded file")
	}
	defer src.Close()

	all, err := io.ReadAll(src)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file")
	}

	img, err := decodeImage(all, fh.Filename)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Unsupported image format (jpeg/png/webp only)")
	}
	img = downscaleIfNeeded(img, photoMaxWidth, photoMaxHeight)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Photo re-encode failed")
	}

	base := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename)) + ".webp"
	key := p.svc.buildObjectKey("students/"+libraryID.String(), base)
	if err := p.svc.UploadStream(ctx, key, buf, "image/webp"); err != nil {
		return "", fiber.NewError(fiber.StatusBadGateway, "Photo storage unreachable")
	}
	return p.svc.PublicURL(key), nil
}

func (p *OSSPhotoService) DeleteByPublicURL(ctx context.Context, publicURL string) error {
	key, err := p.keyFromPublicURL(publicURL)
	if err != nil {
		return err
	}
	if err := p.svc.DeleteObject(ctx, key); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("Could not delete object: %v", err))
	}
	return nil
}

func (p *OSSPhotoService) keyFromPublicURL(publicURL string) (string, error) {
	prefix := p.svc.PublicURL("")
	if !strings.HasPrefix(publicURL, prefix) {
		return "", fiber.NewError(fiber.StatusBadRequest, "URL does not belong to this bucket")
	}
	return strings.TrimPrefix(publicURL, prefix), nil
}

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	if strings.Contains(ct, "webp") || strings.EqualFold(filepath.Ext(filename), ".webp") {
		return webp.Decode(bytes.NewReader(all))
	}
	// imaging applies EXIF orientation for jpeg so portrait photos stay upright
	return imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
}

// downscaleIfNeeded keeps aspect, CatmullRom for quality.
func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
