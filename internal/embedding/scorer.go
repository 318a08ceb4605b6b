package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/hdbank-ai/card-advisor/internal/cache"
)

// Scorer computes semantic similarity between text pairs. The embedder is
// resolved once at startup and shared read-only across all sessions;
// per-text vectors are cached so fixed trigger phrases are embedded once.
type Scorer struct {
	embedder Embedder
	cache    cache.Client
	cacheTTL time.Duration
}

// NewScorer creates a scorer backed by the given embedder. The cache is
// optional; pass nil to embed on every call.
func NewScorer(embedder Embedder, c cache.Client, ttl time.Duration) *Scorer {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Scorer{embedder: embedder, cache: c, cacheTTL: ttl}
}

// Verify performs a single probe embedding so an unreachable model fails
// startup instead of the first user turn.
func (s *Scorer) Verify(ctx context.Context) error {
	if _, err := s.embed(ctx, "xin chào"); err != nil {
		return fmt.Errorf("embedding model unavailable: %w", err)
	}
	return nil
}

// Score returns the cosine similarity of the two texts' embeddings, in [-1, 1].
func (s *Scorer) Score(ctx context.Context, a, b string) (float64, error) {
	va, err := s.embed(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("embed %q: %w", a, err)
	}
	vb, err := s.embed(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("embed %q: %w", b, err)
	}
	return Cosine(va, vb), nil
}

func (s *Scorer) embed(ctx context.Context, text string) ([]float32, error) {
	if s.cache == nil {
		return s.embedder.EmbedSingle(ctx, text)
	}

	key := cache.Key("emb", s.embedder.Model(), hashText(text))
	if data, err := s.cache.Get(ctx, key); err == nil {
		if v, err := decodeVector(data); err == nil {
			return v, nil
		}
	}

	v, err := s.embedder.EmbedSingle(ctx, text)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, encodeVector(v), s.cacheTTL)
	return v, nil
}

// Cosine computes cosine similarity of two vectors. Zero or mismatched
// vectors score 0, never NaN.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:16])
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(x))
	}
	return buf
}

func decodeVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("malformed vector payload: %d bytes", len(data))
	}
	v := make([]float32, len(data)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return v, nil
}
