package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/so-keyldzn/semantiq/internal/apperr"
)

const (
	defaultLocalEndpoint = "127.0.0.1:8111"
	defaultLocalTimeout  = 30 * time.Second
)

// localProvider speaks the wire protocol of an external embedding
// subprocess over HTTP, standing in for the "sentence-transformer model
// loaded from disk" the default implementation wraps (§4.3). Locating,
// verifying, and starting that subprocess is the Model loader's job (§6,
// external collaborator); localProvider only assumes one is already
// listening at Endpoint.
type localProvider struct {
	endpoint string
	client   *http.Client
}

func newLocalProvider(endpoint string) (*localProvider, error) {
	if endpoint == "" {
		endpoint = defaultLocalEndpoint
	}
	return &localProvider{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultLocalTimeout},
	}, nil
}

type embedRequest struct {
	Texts []string `json:"texts"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// EmbedBatch posts texts to the subprocess's /embed endpoint and
// unit-normalizes whatever comes back, so the guarantee in §4.3 holds
// regardless of what the subprocess itself does.
func (p *localProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	body, err := json.Marshal(embedRequest{Texts: texts})
	if err != nil {
		return nil, apperr.Internalf(err, "marshal embed request")
	}

	url := fmt.Sprintf("http://%s/embed", p.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Internalf(err, "build embed request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.EmbedderUnavailable, err, "embedding server unreachable at %s", p.endpoint)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusServiceUnavailable:
		return nil, apperr.New(apperr.EmbedderUnavailable, "embedding server at %s reports model not loaded", p.endpoint)
	default:
		return nil, apperr.New(apperr.EmbedderTransient, "embedding server returned status %d", resp.StatusCode)
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperr.Wrap(apperr.EmbedderTransient, err, "decode embed response")
	}
	if len(parsed.Embeddings) != len(texts) {
		return nil, apperr.New(apperr.EmbedderTransient,
			"embedding server returned %d vectors for %d inputs", len(parsed.Embeddings), len(texts))
	}

	for _, vec := range parsed.Embeddings {
		normalizeInPlace(vec)
	}
	return parsed.Embeddings, nil
}

func normalizeInPlace(v []float32) {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	if sumSq == 0 {
		return
	}
	norm := float32(math.Sqrt(sumSq))
	for i := range v {
		v[i] /= norm
	}
}

func (p *localProvider) Dimensions() int { return Dimensions }

func (p *localProvider) Close() error { return nil }
