// Package cloudinary uploads images with Cloudinary's signed upload API.
package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/remote"
	"hotel_booking/internal/domain"
)

type Config struct {
	BaseURL   string // https://api.cloudinary.com
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type Uploader struct {
	cfg Config
	rc  *remote.Client
	now func() time.Time
}

func New(cfg Config, rc *remote.Client) *Uploader {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.cloudinary.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Uploader{cfg: cfg, rc: rc, now: time.Now}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadImages uploads the non-empty images in order. On any failure no URLs
// are returned; images already stored remotely are left in place.
func (u *Uploader) UploadImages(ctx context.Context, images []domain.Image) ([]string, error) {
	if u.cfg.CloudName == "" || u.cfg.APIKey == "" || u.cfg.APISecret == "" {
		for _, img := range images {
			if !img.Empty() {
				return nil, fmt.Errorf("%w: cloudinary credentials missing", domain.ErrUploadFailed)
			}
		}
		return nil, nil
	}

	var urls []string
	for i, img := range images {
		if img.Empty() {
			continue
		}
		link, err := u.upload(ctx, img)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Str("filename", img.Filename).Msg("image upload failed")
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrUploadFailed, img.Filename, err)
		}
		urls = append(urls, link)
	}
	return urls, nil
}

func (u *Uploader) upload(ctx context.Context, img domain.Image) (string, error) {
	publicID := uuid.NewString()
	if u.cfg.Folder != "" {
		publicID = u.cfg.Folder + "/" + publicID
	}
	ts := strconv.FormatInt(u.now().Unix(), 10)

	ct := img.ContentType
	if ct == "" {
		ct = http.DetectContentType(img.Data)
	}
	form := url.Values{}
	form.Set("file", "data:"+ct+";base64,"+base64.StdEncoding.EncodeToString(img.Data))
	form.Set("api_key", u.cfg.APIKey)
	form.Set("public_id", publicID)
	form.Set("timestamp", ts)
	form.Set("signature", Sign(publicID, ts, u.cfg.APISecret))
	body := form.Encode()

	endpoint := u.cfg.BaseURL + "/v1_1/" + url.PathEscape(u.cfg.CloudName) + "/image/upload"
	build := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}

	var res uploadResponse
	err := u.rc.Do(ctx, "upload", build, 1, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&res)
	})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", res.Error.Message)
	}
	if res.SecureURL != "" {
		return res.SecureURL, nil
	}
	if res.URL != "" {
		return res.URL, nil
	}
	return "", fmt.Errorf("cloudinary: no url in response")
}

// Sign computes the SHA-1 signature over the sorted signed params.
func Sign(publicID, timestamp, secret string) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte("public_id="+publicID+"&timestamp="+timestamp+secret)))
}
