package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

const cloudinaryFolder = "feedboard/images"

// Cloudinary stores images in a Cloudinary folder and references them
// by secure URL.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary builds a store from a cloudinary:// URL.
func NewCloudinary(cloudinaryURL string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Save(ctx context.Context, r io.Reader, filename string) (string, error) {
	result, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   cloudinaryFolder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

func (c *Cloudinary) Remove(ctx context.Context, ref string) error {
	publicID := publicIDFromURL(ref)
	if publicID == "" {
		return nil
	}
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// publicIDFromURL recovers the public id from a delivery URL of the form
// .../upload/v123/<folder>/<id>.<ext>.
func publicIDFromURL(ref string) string {
	parts := strings.SplitN(ref, "/upload/", 2)
	if len(parts) != 2 {
		return ""
	}
	p := parts[1]
	if strings.HasPrefix(p, "v") {
		if i := strings.Index(p, "/"); i >= 0 {
			p = p[i+1:]
		}
	}
	return strings.TrimSuffix(p, path.Ext(p))
}
