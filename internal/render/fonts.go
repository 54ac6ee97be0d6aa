package render

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"hanzireel/internal/config"
)

// ErrNoCJKFont is reported when no font covering Chinese characters is
// configured or installed.
var ErrNoCJKFont = errors.New("no CJK font available")

// FontSet holds the parsed fonts used for text. Parsed fonts are safe for
// concurrent use; faces built from them are not.
type FontSet struct {
	Regular *opentype.Font
	Bold    *opentype.Font
	// CJK is nil when no CJK font could be loaded; those runes are skipped.
	CJK     *opentype.Font
	CJKPath string
}

// LoadFonts parses the fonts named in the render config, falling back to the
// embedded Go fonts for Latin text.
func LoadFonts(cfg config.Render) (*FontSet, error) {
	regular, err := parseFontOr(cfg.LatinFont, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("latin font: %w", err)
	}
	bold, err := parseFontOr(cfg.LatinBoldFont, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("latin bold font: %w", err)
	}
	set := &FontSet{Regular: regular, Bold: bold}
	if strings.TrimSpace(cfg.CJKFont) == "" {
		return set, nil
	}
	cjk, err := ParseFontFile(cfg.CJKFont)
	if err != nil {
		return nil, fmt.Errorf("cjk font: %w", err)
	}
	set.CJK = cjk
	set.CJKPath = cfg.CJKFont
	return set, nil
}

func parseFontOr(path string, fallback []byte) (*opentype.Font, error) {
	if strings.TrimSpace(path) == "" {
		return opentype.Parse(fallback)
	}
	return ParseFontFile(path)
}

// ParseFontFile parses a TrueType/OpenType file. Collections (.ttc, .otc)
// yield their first font.
func ParseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttc", ".otc":
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse font collection %s: %w", path, err)
		}
		if coll.NumFonts() == 0 {
			return nil, fmt.Errorf("font collection %s is empty", path)
		}
		return coll.Font(0)
	default:
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", path, err)
		}
		return f, nil
	}
}

type faceKey struct {
	font *opentype.Font
	size int
}

// faceCache builds faces on demand for one worker. Sizes are quantized to
// quarter pixels so animated text does not grow the cache without bound.
type faceCache struct {
	fonts *FontSet
	faces map[faceKey]font.Face
	buf   sfnt.Buffer
}

const maxCachedFaces = 256

func newFaceCache(fonts *FontSet) *faceCache {
	return &faceCache{fonts: fonts, faces: make(map[faceKey]font.Face)}
}

func (c *faceCache) face(f *opentype.Font, px float64) (font.Face, error) {
	key := faceKey{font: f, size: int(math.Round(px * 4))}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	if len(c.faces) >= maxCachedFaces {
		c.close()
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(key.size) / 4,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("build face: %w", err)
	}
	c.faces[key] = face
	return face, nil
}

// fontFor picks the font that has a glyph for r, preferring the Latin font
// so punctuation and digits keep their Latin shapes. It returns nil when no
// loaded font covers r.
func (c *faceCache) fontFor(r rune, bold bool) *opentype.Font {
	latin := c.fonts.Regular
	if bold {
		latin = c.fonts.Bold
	}
	if c.hasGlyph(latin, r) {
		return latin
	}
	if c.fonts.CJK != nil && c.hasGlyph(c.fonts.CJK, r) {
		return c.fonts.CJK
	}
	return nil
}

func (c *faceCache) hasGlyph(f *opentype.Font, r rune) bool {
	idx, err := f.GlyphIndex(&c.buf, r)
	return err == nil && idx != 0
}

func (c *faceCache) close() {
	for key, face := range c.faces {
		_ = face.Close()
		delete(c.faces, key)
	}
}
