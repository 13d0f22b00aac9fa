package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrImageTooLarge    = errors.New("image exceeds upload limit")
	ErrUnknownKind      = errors.New("unknown upload kind")
)

// MaxUploadBytes 单个上传文件的大小上限。
const MaxUploadBytes = 10 << 20

const jpegQuality = 85

// Kind 决定上传图片的存放目录与缩略图规格。
type Kind string

const (
	KindIcon  Kind = "icon"
	KindCard  Kind = "card"
	KindNews  Kind = "news"
	KindHero  Kind = "hero"
	KindPhoto Kind = "photo"
)

type rendition struct {
	dir    string
	width  int
	height int
	fill   bool
}

var renditions = map[Kind]rendition{
	KindIcon:  {dir: "icons", width: 100, height: 100, fill: true},
	KindCard:  {dir: "cards", width: 400, height: 300, fill: true},
	KindNews:  {dir: "news", width: 400, height: 225, fill: true},
	KindHero:  {dir: "heroes", width: 1920, height: 600},
	KindPhoto: {dir: "photos", width: 1600, height: 1600},
}

// ParseKind 将查询参数解析为已知的上传类型。
func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := renditions[kind]; !ok {
		return "", ErrUnknownKind
	}
	return kind, nil
}

// Stored 描述一次写入的结果，路径均相对于媒体根目录。
type Stored struct {
	Path      string
	Thumbnail string
	Width     int
	Height    int
}

// Store 将上传图片写入 root 目录，对外以 urlPath 提供访问。
type Store struct {
	root    string
	urlPath string
}

func NewStore(root, urlPath string) *Store {
	return &Store{
		root:    root,
		urlPath: "/" + strings.Trim(urlPath, "/"),
	}
}

// URL 返回文件的站内地址，空路径返回空串。
func (s *Store) URL(rel string) string {
	rel = strings.TrimLeft(strings.TrimSpace(rel), "/")
	if rel == "" {
		return ""
	}
	return path.Join(s.urlPath, rel)
}

// Root 返回媒体根目录。
func (s *Store) Root() string {
	return s.root
}

// SaveImage 保存上传图片并在写入路径内生成缩略图。
// 横幅与照片按上限等比缩放后覆盖原图，不生成缩略图；其余类型保留原图并额外生成裁剪缩略图。
func (s *Store) SaveImage(r io.Reader, kind Kind) (Stored, error) {
	spec, ok := renditions[kind]
	if !ok {
		return Stored{}, ErrUnknownKind
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return Stored{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return Stored{}, ErrImageTooLarge
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Stored{}, ErrUnsupportedImage
	}

	name := uuid.New().String()

	if !spec.fill {
		fitted := fitWithin(src, spec.width, spec.height)
		rel := path.Join(spec.dir, name+".jpg")
		if err := s.writeJPEG(rel, fitted); err != nil {
			return Stored{}, err
		}
		b := fitted.Bounds()
		return Stored{Path: rel, Width: b.Dx(), Height: b.Dy()}, nil
	}

	rel := path.Join(spec.dir, name+formatExt(format))
	if err := s.writeFile(rel, data); err != nil {
		return Stored{}, err
	}

	thumbRel := path.Join(spec.dir, "thumbs", name+".jpg")
	if err := s.writeJPEG(thumbRel, cropToFill(src, spec.width, spec.height)); err != nil {
		_ = s.Delete(rel)
		return Stored{}, err
	}

	b := src.Bounds()
	return Stored{Path: rel, Thumbnail: thumbRel, Width: b.Dx(), Height: b.Dy()}, nil
}

// formatExt 扩展名只取决于解码出的格式，客户端文件名不参与。
func formatExt(format string) string {
	if format == "jpeg" {
		return ".jpg"
	}
	return "." + format
}

// Delete 删除已存文件，文件不存在时忽略。
func (s *Store) Delete(rel string) error {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return nil
	}
	err := os.Remove(s.abs(rel))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimLeft(rel, "/")))
}

func (s *Store) writeFile(rel string, data []byte) error {
	target := s.abs(rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}
	return os.WriteFile(target, data, 0o644)
}

func (s *Store) writeJPEG(rel string, img image.Image) error {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return s.writeFile(rel, buf.Bytes())
}

// fitWithin 等比缩小到 maxW x maxH 以内，不放大。
func fitWithin(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxW || h > maxH {
		scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
		w = max(1, int(math.Round(float64(w)*scale)))
		h = max(1, int(math.Round(float64(h)*scale)))
	}
	dst := newCanvas(w, h)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// cropToFill 居中裁剪出目标宽高比后缩放到 w x h。
func cropToFill(src image.Image, w, h int) image.Image {
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()

	crop := b
	if srcW*h > srcH*w {
		cropW := srcH * w / h
		offset := (srcW - cropW) / 2
		crop = image.Rect(b.Min.X+offset, b.Min.Y, b.Min.X+offset+cropW, b.Max.Y)
	} else if srcW*h < srcH*w {
		cropH := srcW * h / w
		offset := (srcH - cropH) / 2
		crop = image.Rect(b.Min.X, b.Min.Y+offset, b.Max.X, b.Min.Y+offset+cropH)
	}

	dst := newCanvas(w, h)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Over, nil)
	return dst
}

// newCanvas JPEG 不支持透明，先铺白底。
func newCanvas(w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return dst
}
