package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/foodgram-next/internal/config"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadService 媒体文件存储服务
type UploadService struct {
	cfg *config.Config
}

// NewUploadService 创建媒体文件存储服务
func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg}
}

// SaveBase64Image 解析 data:image/...;base64, 格式的图片并保存到 media/<subdir>/YYYY/MM
// 返回相对于媒体根目录的路径
func (s *UploadService) SaveBase64Image(dataURI, subdir string) (string, error) {
	content, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	if s.cfg.Upload.MaxSize > 0 && int64(len(content)) > s.cfg.Upload.MaxSize {
		return "", newValidationError("error.image_too_large", ErrImageTooLarge, s.cfg.Upload.MaxSize/1024/1024)
	}

	contentType := mimetype.Detect(content).String()
	ext, known := imageExtensions[contentType]
	if !known || !s.isAllowedType(contentType) {
		return "", ErrImageTypeNotAllowed
	}

	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageInvalid, err)
	}
	if (s.cfg.Upload.MaxWidth > 0 && imgCfg.Width > s.cfg.Upload.MaxWidth) ||
		(s.cfg.Upload.MaxHeight > 0 && imgCfg.Height > s.cfg.Upload.MaxHeight) {
		return "", newValidationError("error.image_dimension_exceeded", ErrImageDimensionExceeded, s.cfg.Upload.MaxWidth, s.cfg.Upload.MaxHeight)
	}

	now := time.Now()
	relPath := path.Join(sanitizeSubdir(subdir), now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
	fullPath := filepath.Join(s.mediaRoot(), filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return "", err
	}
	return relPath, nil
}

// Remove 删除媒体文件，文件不存在时忽略
func (s *UploadService) Remove(relPath string) error {
	relPath = strings.TrimSpace(relPath)
	if relPath == "" || strings.Contains(relPath, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.mediaRoot(), filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MediaURL 将相对路径转换为对外访问地址
func (s *UploadService) MediaURL(relPath string) string {
	relPath = strings.TrimLeft(strings.TrimSpace(relPath), "/")
	if relPath == "" {
		return ""
	}
	prefix := strings.TrimRight(strings.TrimSpace(s.cfg.Media.URLPrefix), "/")
	if prefix == "" {
		prefix = "/media"
	}
	base := strings.TrimRight(strings.TrimSpace(s.cfg.Server.PublicURL), "/")
	return base + prefix + "/" + relPath
}

func (s *UploadService) mediaRoot() string {
	root := strings.TrimSpace(s.cfg.Media.Root)
	if root == "" {
		return "media"
	}
	return root
}

func (s *UploadService) isAllowedType(contentType string) bool {
	if len(s.cfg.Upload.AllowedTypes) == 0 {
		return true
	}
	for _, allowed := range s.cfg.Upload.AllowedTypes {
		if strings.EqualFold(strings.TrimSpace(allowed), contentType) {
			return true
		}
	}
	return false
}

func decodeDataURI(dataURI string) ([]byte, error) {
	dataURI = strings.TrimSpace(dataURI)
	header, payload, found := strings.Cut(dataURI, ",")
	if !found || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return nil, ErrImageInvalid
	}
	content, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageInvalid, err)
	}
	if len(content) == 0 {
		return nil, ErrImageInvalid
	}
	return content, nil
}

func sanitizeSubdir(subdir string) string {
	cleaned := path.Clean("/" + strings.TrimSpace(subdir))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "common"
	}
	return cleaned
}
